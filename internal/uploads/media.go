package uploads

import (
	"mime"
	"strings"
)

var extensionByType = map[string]string{
	"application/pdf":  ".pdf",
	"video/mp4":        ".mp4",
	"video/webm":       ".webm",
	"video/ogg":        ".ogv",
	"video/quicktime":  ".mov",
	"video/x-matroska": ".mkv",
	"video/x-msvideo":  ".avi",
	"video/x-m4v":      ".m4v",
	"video/mpeg":       ".mpeg",
	"video/3gpp":       ".3gp",
}

var typeByExtension = func() map[string]string {
	m := make(map[string]string, len(extensionByType)+2)
	for t, ext := range extensionByType {
		m[ext] = t
	}
	m[".ogg"] = "video/ogg"
	m[".mpg"] = "video/mpeg"
	return m
}()

// ExtensionFor returns the file extension implied by an accepted media type,
// or "" when none is known.
func ExtensionFor(mediaType string) string {
	if ext, ok := extensionByType[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// MediaTypeFor maps an attachment extension back to its media type. It does
// not depend on the host's mime tables, which often lack video types.
func MediaTypeFor(ext string) string {
	return typeByExtension[strings.ToLower(ext)]
}
