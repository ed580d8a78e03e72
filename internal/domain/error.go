package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotReady        = errors.New("video processing not completed yet")
	ErrPipelineBusy    = errors.New("pipeline already running for this video")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrFileTooLarge    = errors.New("uploaded file exceeds size limit")
	ErrBadContentType  = errors.New("unsupported video content type")
)
