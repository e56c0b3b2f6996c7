package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/shared/server/respond"
	"qrfolio-backend/internal/shared/storage/object"
	"qrfolio-backend/internal/shared/util"
	"qrfolio-backend/internal/uploads"
)

// ContentHandler serves published microsites and their attachments from the
// content store. Anything else is a 404.
func ContentHandler(store object.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
			return
		}
		key := strings.TrimPrefix(c.Request.URL.Path, "/")
		if !servableKey(key) {
			respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
			return
		}

		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) || errors.Is(err, object.ErrInvalidKey) {
				respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to read content", err.Error())
			return
		}
		defer rc.Close()

		c.Header("Content-Type", contentTypeFor(key))
		c.Header("X-Content-Type-Options", "nosniff")
		if rs, ok := rc.(io.ReadSeeker); ok {
			// Range support for video scrubbing.
			http.ServeContent(c.Writer, c.Request, path.Base(key), time.Time{}, rs)
			return
		}
		c.Status(http.StatusOK)
		if c.Request.Method == http.MethodHead {
			return
		}
		_, _ = io.Copy(c.Writer, rc)
	}
}

// servableKey accepts portfolio pages at the root and single-segment
// attachments under uploads/.
func servableKey(key string) bool {
	if !util.SafeKey(key) {
		return false
	}
	dir, name := path.Split(key)
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch dir {
	case "":
		return publish.IsMicrositeName(name)
	case uploads.Prefix + "/":
		return true
	default:
		return false
	}
}

func contentTypeFor(key string) string {
	if publish.IsMicrositeName(path.Base(key)) {
		return "text/html; charset=utf-8"
	}
	ext := strings.ToLower(path.Ext(key))
	if ct := uploads.MediaTypeFor(ext); ct != "" {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
