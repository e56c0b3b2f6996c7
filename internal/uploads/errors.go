package uploads

import "errors"

var (
	ErrInvalidResumeType = errors.New("resume must be a PDF document")
	ErrInvalidVideoType  = errors.New("video file must have a video/* content type")
	ErrFileTooLarge      = errors.New("video file exceeds the size limit")
	ErrInvalidFileName   = errors.New("invalid file name")
	ErrEmptyFile         = errors.New("file is empty")
	ErrStorage           = errors.New("failed to store upload")
)
