// Package qr encodes URLs into PNG QR codes.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256

	// minModulePixels keeps long payloads scannable when the configured image
	// size would squeeze a module below this many pixels.
	minModulePixels = 3
)

var (
	ErrEmptyContent = errors.New("qr content is empty")
	ErrEncoding     = errors.New("failed to encode qr code")
)

// Payload is an encoded QR image for a single URL.
type Payload struct {
	URL string
	PNG []byte
}

// DataURL returns the PNG as a data: URL suitable for an <img> src.
func (p Payload) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(p.PNG)
}

// Encoder renders QR codes with a fixed recovery level and image size.
type Encoder struct {
	Level qrcode.RecoveryLevel
	Size  int
}

// NewEncoder builds an Encoder from a level letter (L, M, Q, H) and a pixel
// size. Unknown levels fall back to M; non-positive sizes to DefaultSize.
func NewEncoder(level string, size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{Level: ParseLevel(level), Size: size}
}

// ParseLevel maps a level letter to a recovery level.
func ParseLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Encode renders content as a PNG QR code. When content does not fit at the
// configured recovery level the level is lowered step by step, so the full
// string is always encoded or an error is returned.
func (e *Encoder) Encode(content string) (Payload, error) {
	if content == "" {
		return Payload{}, ErrEmptyContent
	}

	var (
		q   *qrcode.QRCode
		err error
	)
	for level := e.Level; level >= qrcode.Low; level-- {
		q, err = qrcode.New(content, level)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	size := e.Size
	if size <= 0 {
		size = DefaultSize
	}
	if modules := len(q.Bitmap()); size < modules*minModulePixels {
		size = -minModulePixels
	}

	png, err := q.PNG(size)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return Payload{URL: content, PNG: png}, nil
}
