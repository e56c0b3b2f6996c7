package util

import (
	"errors"
	"path"
	"regexp"
	"strings"
)

// ErrInvalidFileName is returned when a name cannot be made safe for storage.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameLen = 200

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChar    = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// SanitizeFileName collapses whitespace runs into a single underscore and
// maps every other character outside [A-Za-z0-9._-] to an underscore, so the
// result is safe both as a path segment and inside a URL.
func SanitizeFileName(name string) (string, error) {
	s := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	s = unsafeChar.ReplaceAllString(s, "_")
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		ext := path.Ext(s)
		if len(ext) >= maxFileNameLen {
			ext = ""
		}
		s = s[:maxFileNameLen-len(ext)] + ext
	}
	return s, nil
}

// SafeKey reports whether a slash-separated storage key stays inside its root.
func SafeKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
