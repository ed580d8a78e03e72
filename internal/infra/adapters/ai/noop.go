package ai

import (
	"context"
	"fmt"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/adapter"
)

// NoopTranscriber fabricates a transcript without calling any provider.
// Dev mode only.
type NoopTranscriber struct {
	Duration int // seconds to pretend the video lasts; 0 = use chunk defaults
}

var _ adapter.Transcriber = (*NoopTranscriber)(nil)

func (n *NoopTranscriber) Transcribe(ctx context.Context, filePath string) ([]model.TranscriptChunk, error) {
	dur := n.Duration
	if dur <= 0 {
		dur = 2 * model.WindowSeconds
	}
	var out []model.TranscriptChunk
	for start := 0; start < dur; start += 15 {
		end := start + 15
		if end > dur {
			end = dur
		}
		out = append(out, model.TranscriptChunk{
			Start: float64(start),
			End:   float64(end),
			Text:  fmt.Sprintf("Placeholder transcript from %ds to %ds.", start, end),
		})
	}
	return out, nil
}

// NoopGenerator returns fixed questions. Dev mode only.
type NoopGenerator struct {
	Questions int
}

var _ adapter.QuestionGenerator = (*NoopGenerator)(nil)

func (n *NoopGenerator) Generate(ctx context.Context, text string) ([]adapter.GeneratedQuestion, error) {
	count := n.Questions
	if count <= 0 {
		count = 3
	}
	out := make([]adapter.GeneratedQuestion, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, adapter.GeneratedQuestion{
			Question:     fmt.Sprintf("Placeholder question %d about this segment?", i+1),
			Options:      []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectIndex: i % model.OptionCount,
		})
	}
	return out, nil
}
