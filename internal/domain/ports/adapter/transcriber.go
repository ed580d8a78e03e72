package adapter

import (
	"context"

	"lecture-quiz/internal/domain/model"
)

// Transcriber converts a stored video file into timed transcript
// chunks. Implementations must honor ctx cancellation; the pipeline
// bounds every call with a timeout.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string) ([]model.TranscriptChunk, error)
}
