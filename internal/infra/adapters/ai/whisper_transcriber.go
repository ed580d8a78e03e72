package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/adapter"
)

var _ adapter.Transcriber = (*WhisperTranscriber)(nil)

// WhisperTranscriber transcribes a stored video through the OpenAI
// audio API, requesting verbose JSON so timed segments come back.
type WhisperTranscriber struct {
	cli   *openai.Client
	model string
}

func NewWhisperTranscriber(apiKey, model string) (*WhisperTranscriber, error) {
	if apiKey == "" {
		return nil, errors.New("whisper: empty api key")
	}
	if model == "" {
		model = "whisper-1"
	}
	return &WhisperTranscriber{cli: openai.NewClient(apiKey), model: model}, nil
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, filePath string) ([]model.TranscriptChunk, error) {
	resp, err := w.cli.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filePath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper transcription: %w", err)
	}

	chunks := make([]model.TranscriptChunk, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		chunks = append(chunks, model.TranscriptChunk{Start: s.Start, End: s.End, Text: text})
	}
	if len(chunks) == 0 {
		// Some models return plain text without segment timings.
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, errors.New("whisper returned an empty transcript")
		}
		chunks = append(chunks, model.TranscriptChunk{Start: 0, End: resp.Duration, Text: text})
	}
	return chunks, nil
}
