package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"lecture-quiz/internal/domain/ports/adapter"
)

var _ adapter.QuestionGenerator = (*GeminiGenerator)(nil)

// GeminiGenerator produces multiple-choice questions via the official
// Gemini SDK. Used when only a Gemini key is configured.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	questions int
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string, questionsPerSegment int) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if questionsPerSegment <= 0 {
		questionsPerSegment = 3
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: c, model: model, questions: questionsPerSegment}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, text string) ([]adapter.GeneratedQuestion, error) {
	if text == "" {
		return nil, errors.New("gemini: empty segment text")
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(mcqPrompt(g.questions, text)),
		&genai.GenerateContentConfig{MaxOutputTokens: 1024},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	reply := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		reply = resp.Candidates[0].Content.Parts[0].Text
	}
	if reply == "" {
		return nil, errors.New("gemini: empty reply")
	}
	return parseMCQs(reply)
}
