package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"qrfolio-backend/internal/shared/storage/object"
	"qrfolio-backend/internal/shared/util"
)

const (
	// Prefix is the content-store area holding attachments.
	Prefix = "uploads"

	// DefaultMaxVideoBytes caps video attachments at 500 MiB.
	DefaultMaxVideoBytes = int64(500 << 20)

	mimePDF     = "application/pdf"
	videoPrefix = "video/"
)

// Candidate is an incoming attachment before validation. SizeBytes is the
// declared size; a negative value means unknown.
type Candidate struct {
	Kind         Kind
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Body         io.Reader
	// Tag, when set, is inserted between the timestamp and the name.
	Tag string
}

// Receiver validates attachments and persists them to a content store.
type Receiver struct {
	Store         object.Store
	MaxVideoBytes int64
	// VerifyPDF additionally parses résumé bodies as PDF documents.
	VerifyPDF bool
	Now       func() time.Time
}

// NewReceiver constructs a Receiver with the default video size limit.
func NewReceiver(store object.Store) *Receiver {
	return &Receiver{Store: store, MaxVideoBytes: DefaultMaxVideoBytes, Now: time.Now}
}

// Validate checks the declared metadata of c without touching storage.
func (r *Receiver) Validate(c Candidate) error {
	mediaType := normalizeMediaType(c.MimeType)
	switch c.Kind {
	case KindResume:
		if mediaType != mimePDF {
			return ErrInvalidResumeType
		}
	case KindVideoFile:
		if !strings.HasPrefix(mediaType, videoPrefix) || len(mediaType) == len(videoPrefix) {
			return ErrInvalidVideoType
		}
		if c.SizeBytes > r.maxVideoBytes() {
			return ErrFileTooLarge
		}
	default:
		return fmt.Errorf("unknown attachment kind %q", c.Kind)
	}
	if c.SizeBytes == 0 {
		return ErrEmptyFile
	}
	if _, err := BaseName(c); err != nil {
		return err
	}
	return nil
}

// BaseName is the sanitized name c is stored under, before the timestamp. A
// name without an extension gets the one implied by its media type.
func BaseName(c Candidate) (string, error) {
	name, err := util.SanitizeFileName(c.OriginalName)
	if err != nil {
		return "", ErrInvalidFileName
	}
	if path.Ext(name) == "" {
		name += ExtensionFor(normalizeMediaType(c.MimeType))
	}
	if c.Tag != "" {
		tag, err := util.SanitizeFileName(c.Tag)
		if err != nil {
			return "", ErrInvalidFileName
		}
		name = tag + "-" + name
	}
	return name, nil
}

// Receive validates c and writes its body to the store under
// uploads/<unix-ms>-<base name>.
func (r *Receiver) Receive(ctx context.Context, c Candidate) (Attachment, error) {
	if err := r.Validate(c); err != nil {
		return Attachment{}, err
	}
	if c.Body == nil {
		return Attachment{}, ErrEmptyFile
	}
	base, err := BaseName(c)
	if err != nil {
		return Attachment{}, err
	}

	body := c.Body
	if c.Kind == KindVideoFile {
		body = &limitedReader{r: c.Body, max: r.maxVideoBytes()}
	}
	if c.Kind == KindResume && r.VerifyPDF {
		data, err := io.ReadAll(body)
		if err != nil {
			return Attachment{}, fmt.Errorf("%w: read resume: %w", ErrStorage, err)
		}
		if err := verifyPDF(data); err != nil {
			return Attachment{}, ErrInvalidResumeType
		}
		body = bytes.NewReader(data)
	}

	storedName := fmt.Sprintf("%d-%s", r.now().UnixMilli(), base)
	key := path.Join(Prefix, storedName)
	mediaType := normalizeMediaType(c.MimeType)

	size, err := r.Store.Put(ctx, key, mediaType, body)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return Attachment{}, ErrFileTooLarge
		}
		return Attachment{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return Attachment{
		OriginalName: c.OriginalName,
		StoredName:   storedName,
		Path:         key,
		MimeType:     mediaType,
		SizeBytes:    size,
		Kind:         c.Kind,
	}, nil
}

func (r *Receiver) maxVideoBytes() int64 {
	if r.MaxVideoBytes <= 0 {
		return DefaultMaxVideoBytes
	}
	return r.MaxVideoBytes
}

func (r *Receiver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func normalizeMediaType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

// limitedReader fails with ErrFileTooLarge as soon as more than max bytes
// have been read, so the store discards the partial write.
type limitedReader struct {
	r   io.Reader
	max int64
	n   int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		return n, ErrFileTooLarge
	}
	return n, err
}
