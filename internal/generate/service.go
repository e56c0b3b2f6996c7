package generate

import (
	"context"
	"errors"
	"strings"
	"time"

	"qrfolio-backend/internal/microsite"
	"qrfolio-backend/internal/publish"
	"qrfolio-backend/internal/qr"
	"qrfolio-backend/internal/shared/metrics"
	"qrfolio-backend/internal/shared/telemetry"
	"qrfolio-backend/internal/uploads"
	"qrfolio-backend/internal/videolink"
)

// Input is one generation request. Exactly one of VideoFile and a non-blank
// VideoLink must be set.
type Input struct {
	RequestID string
	Resume    *uploads.Candidate
	VideoFile *uploads.Candidate
	VideoLink string
	Profile   microsite.Profile
	Origin    publish.Origin
}

// Result is a published microsite and the QR code pointing at it.
type Result struct {
	Microsite  publish.Microsite
	QR         qr.Payload
	Resume     uploads.Attachment
	Video      microsite.VideoSource
	Transition string
}

// Service runs the generation pipeline.
type Service struct {
	Receiver  *uploads.Receiver
	Publisher *publish.Publisher
	Encoder   *qr.Encoder
}

// NewService constructs a Service.
func NewService(receiver *uploads.Receiver, publisher *publish.Publisher, encoder *qr.Encoder) *Service {
	return &Service{Receiver: receiver, Publisher: publisher, Encoder: encoder}
}

// Generate validates the input, persists the attachments, publishes the
// microsite and encodes its URL. Errors are returned as *Failure.
func (s *Service) Generate(ctx context.Context, in Input) (Result, error) {
	start := time.Now()
	metrics.IncGenerateStarted()

	t := newTracker(in.RequestID)
	res, err := s.run(ctx, t, in)
	metrics.ObserveGenerateDurationMs(metrics.SinceMillis(start))
	if err != nil {
		_, code, _ := Classify(err)
		metrics.IncGenerateFailed(code)
		at := t.state
		t.to(StateFailed)
		telemetry.Warn("generate.failed", map[string]any{
			"request_id": in.RequestID,
			"state":      string(at),
			"code":       code,
			"error":      err.Error(),
		})
		return Result{}, &Failure{At: at, Transition: t.last, Err: err}
	}
	metrics.IncGenerateCompleted()
	res.Transition = t.last
	return res, nil
}

func (s *Service) run(ctx context.Context, t *tracker, in Input) (res Result, err error) {
	if in.Resume == nil {
		return Result{}, ErrMissingResume
	}
	link := strings.TrimSpace(in.VideoLink)
	hasFile := in.VideoFile != nil
	if hasFile == (link != "") {
		return Result{}, ErrVideoInputConflict
	}

	resumeIn := *in.Resume
	resumeIn.Kind = uploads.KindResume
	if err := s.Receiver.Validate(resumeIn); err != nil {
		return Result{}, err
	}

	var (
		videoIn  uploads.Candidate
		embedURL string
	)
	if hasFile {
		videoIn = *in.VideoFile
		videoIn.Kind = uploads.KindVideoFile
		if err := s.Receiver.Validate(videoIn); err != nil {
			return Result{}, err
		}
		// Both files can land in the same millisecond.
		resumeName, _ := uploads.BaseName(resumeIn)
		videoName, _ := uploads.BaseName(videoIn)
		if resumeName == videoName {
			videoIn.Tag = "video"
		}
	} else {
		embedURL, err = videolink.Normalize(link)
		if err != nil {
			return Result{}, err
		}
	}
	t.to(StateValidated)

	var stored []string
	defer func() {
		if err != nil && len(stored) > 0 {
			telemetry.Warn("generate.orphaned_objects", map[string]any{
				"request_id": in.RequestID,
				"keys":       stored,
			})
		}
	}()

	resume, err := s.Receiver.Receive(ctx, resumeIn)
	if err != nil {
		return Result{}, err
	}
	stored = append(stored, resume.Path)
	metrics.AddUploadedBytes(resume.SizeBytes)

	var video microsite.VideoSource = microsite.LinkedVideo{EmbedURL: embedURL}
	if hasFile {
		att, err := s.Receiver.Receive(ctx, videoIn)
		if err != nil {
			return Result{}, err
		}
		stored = append(stored, att.Path)
		metrics.AddUploadedBytes(att.SizeBytes)
		video = microsite.UploadedVideo{File: att}
	}
	t.to(StatePersisted)

	req, err := microsite.NewRequest(resume, video, in.Profile)
	if err != nil {
		return Result{}, err
	}
	page, err := microsite.Synthesize(req)
	if err != nil {
		return Result{}, err
	}
	t.to(StateSynthesized)

	site, err := s.Publisher.Publish(ctx, page, in.Origin)
	if err != nil {
		return Result{}, err
	}
	stored = append(stored, site.FileName)
	t.to(StatePublished)

	payload, err := s.Encoder.Encode(site.PublicURL)
	if err != nil {
		return Result{}, err
	}
	t.to(StateEncoded)

	return Result{Microsite: site, QR: payload, Resume: resume, Video: video}, nil
}

// FailedAt reports the state at which err stopped the pipeline.
func FailedAt(err error) (State, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.At, true
	}
	return "", false
}
