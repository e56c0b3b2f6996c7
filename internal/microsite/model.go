package microsite

import (
	"errors"
	"strings"

	"qrfolio-backend/internal/uploads"
)

var (
	ErrResumeRequired = errors.New("a stored resume attachment is required")
	ErrVideoRequired  = errors.New("exactly one video source is required")
)

// VideoSource is either UploadedVideo or LinkedVideo.
type VideoSource interface {
	videoSource()
}

// UploadedVideo references a video file persisted by the upload receiver.
type UploadedVideo struct {
	File uploads.Attachment
}

// LinkedVideo references a normalized embed URL.
type LinkedVideo struct {
	EmbedURL string
}

func (UploadedVideo) videoSource() {}
func (LinkedVideo) videoSource()   {}

// Profile holds the optional text shown above the résumé and video.
// About is Markdown.
type Profile struct {
	Name         string
	Headline     string
	About        string
	ProjectTitle string
	ProjectDesc  string
	ProjectLink  string
	GitHub       string
	LinkedIn     string
	Website      string
}

// Request is the validated input to Synthesize.
type Request struct {
	Resume  uploads.Attachment
	Video   VideoSource
	Profile Profile
}

// NewRequest validates the pieces of a microsite request.
func NewRequest(resume uploads.Attachment, video VideoSource, profile Profile) (Request, error) {
	if resume.Kind != uploads.KindResume || strings.TrimSpace(resume.Path) == "" {
		return Request{}, ErrResumeRequired
	}
	switch v := video.(type) {
	case UploadedVideo:
		if v.File.Kind != uploads.KindVideoFile || strings.TrimSpace(v.File.Path) == "" {
			return Request{}, ErrVideoRequired
		}
	case LinkedVideo:
		if strings.TrimSpace(v.EmbedURL) == "" {
			return Request{}, ErrVideoRequired
		}
	default:
		return Request{}, ErrVideoRequired
	}
	return Request{Resume: resume, Video: video, Profile: profile}, nil
}
