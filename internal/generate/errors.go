package generate

import (
	"errors"
	"net/http"

	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/qr"
	"qrfolio-backend/internal/uploads"
	"qrfolio-backend/internal/videolink"
)

var (
	ErrMissingResume      = errors.New("resume file is required")
	ErrVideoInputConflict = errors.New("provide either a video file or a video link, not both")
)

// Failure is returned by Generate. At is the last state reached before the
// pipeline failed.
type Failure struct {
	At         State
	Transition string
	Err        error
}

func (f *Failure) Error() string { return f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

// Classify maps a generation error to an HTTP status, a stable error code and
// a client-facing message. Server-side messages never include details.
func Classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrMissingResume):
		return http.StatusBadRequest, "missing_resume", ErrMissingResume.Error()
	case errors.Is(err, ErrVideoInputConflict):
		return http.StatusBadRequest, "missing_or_conflicting_video_input", ErrVideoInputConflict.Error()
	case errors.Is(err, uploads.ErrInvalidResumeType):
		return http.StatusBadRequest, "invalid_resume_type", uploads.ErrInvalidResumeType.Error()
	case errors.Is(err, uploads.ErrInvalidVideoType):
		return http.StatusBadRequest, "invalid_video_type", uploads.ErrInvalidVideoType.Error()
	case errors.Is(err, uploads.ErrFileTooLarge):
		return http.StatusBadRequest, "file_too_large", uploads.ErrFileTooLarge.Error()
	case errors.Is(err, uploads.ErrInvalidFileName):
		return http.StatusBadRequest, "invalid_file_name", uploads.ErrInvalidFileName.Error()
	case errors.Is(err, uploads.ErrEmptyFile):
		return http.StatusBadRequest, "empty_file", uploads.ErrEmptyFile.Error()
	case videolink.IsInvalid(err):
		return http.StatusBadRequest, "invalid_video_link", err.Error()
	case errors.Is(err, uploads.ErrStorage),
		errors.Is(err, publish.ErrStorage),
		errors.Is(err, publish.ErrNoBaseURL):
		return http.StatusInternalServerError, "storage_error", "failed to store microsite"
	case errors.Is(err, qr.ErrEncoding), errors.Is(err, qr.ErrEmptyContent):
		return http.StatusInternalServerError, "encoding_error", "failed to generate qr code"
	default:
		return http.StatusInternalServerError, "internal_error", "failed to generate microsite"
	}
}
