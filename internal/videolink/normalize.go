// Package videolink rewrites video-hosting links into their embeddable form.
package videolink

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	shortMarker = "youtu.be/"
	longMarker  = "youtube.com/"
	embedBase   = "https://www.youtube.com/embed/"
)

var (
	// ErrNoLink means the caller supplied no link at all. It is not an
	// ErrInvalidLink: absent and malformed are different cases.
	ErrNoLink = errors.New("no video link provided")

	// ErrInvalidLink is wrapped by every rejection of a supplied link.
	ErrInvalidLink = errors.New("invalid video link")

	ErrMalformedLink   = fmt.Errorf("%w: malformed url", ErrInvalidLink)
	ErrUnsupportedHost = fmt.Errorf("%w: not a recognized video host", ErrInvalidLink)
	ErrMissingVideoID  = fmt.Errorf("%w: missing video id", ErrInvalidLink)
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Normalize turns a short-form or long-form video URL into
// https://www.youtube.com/embed/<id>.
func Normalize(raw string) (string, error) {
	link := strings.TrimSpace(raw)
	if link == "" {
		return "", ErrNoLink
	}

	var (
		id  string
		err error
	)
	switch {
	case strings.Contains(link, shortMarker):
		id, err = shortID(link)
	case strings.Contains(link, longMarker):
		id, err = longID(link)
	default:
		return "", ErrUnsupportedHost
	}
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrMissingVideoID
	}
	if !videoIDPattern.MatchString(id) {
		return "", ErrMalformedLink
	}
	return embedBase + id, nil
}

// IsInvalid reports whether err is a rejection of a supplied link.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidLink)
}

func shortID(link string) (string, error) {
	if _, err := url.Parse(link); err != nil {
		return "", ErrMalformedLink
	}
	_, rest, _ := strings.Cut(link, shortMarker)
	if i := strings.IndexAny(rest, "?#/"); i >= 0 {
		rest = rest[:i]
	}
	return rest, nil
}

func longID(link string) (string, error) {
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", ErrMalformedLink
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch segments[0] {
	case "embed", "shorts", "live":
		if len(segments) < 2 {
			return "", ErrMissingVideoID
		}
		return segments[1], nil
	}
	return u.Query().Get("v"), nil
}
