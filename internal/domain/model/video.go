package model

import "time"

type VideoStatus string

const (
	VideoStatusPending      VideoStatus = "pending"
	VideoStatusTranscribing VideoStatus = "transcribing"
	VideoStatusGenerating   VideoStatus = "generating"
	VideoStatusCompleted    VideoStatus = "completed"
	VideoStatusError        VideoStatus = "error"
)

// Terminal reports whether the pipeline will never advance this status again.
func (s VideoStatus) Terminal() bool {
	return s == VideoStatusCompleted || s == VideoStatusError
}

// Video is one uploaded lecture and its end-to-end processing record.
// The status/progress/error fields are mutated exclusively by the
// pipeline runner; everything else is immutable after creation.
type Video struct {
	ID           string
	Title        string
	Duration     int // seconds
	FilePath     string
	Status       VideoStatus
	Progress     int // 0..100, scoped to the current status
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
