package generate

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qrfolio-backend/internal/microsite"
	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/shared/server/middleware"
	"qrfolio-backend/internal/shared/server/respond"
	"qrfolio-backend/internal/uploads"
)

const (
	// formOverheadBytes leaves room for the résumé and text fields on top of
	// the largest accepted video.
	formOverheadBytes = 20 << 20
	multipartMemory   = 32 << 20
)

// Handler wires the generation endpoint to the service.
type Handler struct {
	Svc          *Service
	MaxBodyBytes int64
}

// NewHandler constructs a Handler whose request bodies are capped at
// maxVideoBytes plus form overhead.
func NewHandler(svc *Service, maxVideoBytes int64) *Handler {
	if maxVideoBytes <= 0 {
		maxVideoBytes = uploads.DefaultMaxVideoBytes
	}
	return &Handler{Svc: svc, MaxBodyBytes: maxVideoBytes + formOverheadBytes}
}

// RegisterRoutes attaches the generation route.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/generate", h.generate)
}

type generateResponse struct {
	QRCode string `json:"qrCode"`
	Link   string `json:"link"`
}

func (h *Handler) generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "file_too_large", uploads.ErrFileTooLarge.Error(), err.Error())
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_form", "request must be multipart/form-data", err.Error())
		return
	}
	if form := c.Request.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	resume, closeResume, err := formFile(c, "resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_form", "unable to read resume", err.Error())
		return
	}
	defer closeResume()

	videoFile, closeVideo, err := formFile(c, "videoFile", "video")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_form", "unable to read video file", err.Error())
		return
	}
	defer closeVideo()

	res, err := h.Svc.Generate(c.Request.Context(), Input{
		RequestID: middleware.RequestIDFromContext(c),
		Resume:    resume,
		VideoFile: videoFile,
		VideoLink: c.PostForm("videoLink"),
		Profile:   profileFromForm(c),
		Origin:    publish.OriginFromRequest(c.Request),
	})
	if err != nil {
		var failure *Failure
		if errors.As(err, &failure) {
			c.Set("statusTransition", failure.Transition)
		}
		status, code, message := Classify(err)
		respond.Error(c, status, code, message, err.Error())
		return
	}

	c.Set("statusTransition", Transition(StateEncoded, StateResponded))
	respond.OK(c, generateResponse{QRCode: res.QR.DataURL(), Link: res.Microsite.PublicURL})
}

// formFile returns the first file uploaded under any of fields, or nil.
func formFile(c *gin.Context, fields ...string) (*uploads.Candidate, func(), error) {
	noop := func() {}
	form := c.Request.MultipartForm
	if form == nil {
		return nil, noop, nil
	}
	var fh *multipart.FileHeader
	for _, field := range fields {
		if files := form.File[field]; len(files) > 0 {
			fh = files[0]
			break
		}
	}
	if fh == nil {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &uploads.Candidate{
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		SizeBytes:    fh.Size,
		Body:         f,
	}, func() { _ = f.Close() }, nil
}

func profileFromForm(c *gin.Context) microsite.Profile {
	v := func(key string) string { return strings.TrimSpace(c.PostForm(key)) }
	return microsite.Profile{
		Name:         v("name"),
		Headline:     v("headline"),
		About:        v("about"),
		ProjectTitle: v("projectTitle"),
		ProjectDesc:  v("projectDesc"),
		ProjectLink:  v("projectLink"),
		GitHub:       v("github"),
		LinkedIn:     v("linkedin"),
		Website:      v("website"),
	}
}
