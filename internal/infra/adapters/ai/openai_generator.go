package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	"lecture-quiz/internal/domain/ports/adapter"
)

var _ adapter.QuestionGenerator = (*OpenAIGenerator)(nil)

// maxPromptTokens caps the transcript portion of the prompt so a very
// dense 5-minute window cannot blow the model's context.
const maxPromptTokens = 3000

// OpenAIGenerator produces multiple-choice questions via the Chat
// Completions API.
type OpenAIGenerator struct {
	cli       *openai.Client
	model     string
	questions int
	enc       *tiktoken.Tiktoken
}

func NewOpenAIGenerator(apiKey, model string, questionsPerSegment int) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai: empty api key")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if questionsPerSegment <= 0 {
		questionsPerSegment = 3
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Unknown model names fall back to the common encoding.
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("tiktoken: %w", err)
		}
	}
	return &OpenAIGenerator{
		cli:       openai.NewClient(apiKey),
		model:     model,
		questions: questionsPerSegment,
		enc:       enc,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, text string) ([]adapter.GeneratedQuestion, error) {
	if text == "" {
		return nil, errors.New("openai: empty segment text")
	}

	resp, err := g.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: mcqPrompt(g.questions, g.truncate(text))},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: no completion choices")
	}
	return parseMCQs(resp.Choices[0].Message.Content)
}

// truncate trims the transcript to the token budget, keeping the head
// of the window (the text most likely to carry the topic statement).
func (g *OpenAIGenerator) truncate(text string) string {
	tokens := g.enc.Encode(text, nil, nil)
	if len(tokens) <= maxPromptTokens {
		return text
	}
	return g.enc.Decode(tokens[:maxPromptTokens])
}
