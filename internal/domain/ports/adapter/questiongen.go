package adapter

import "context"

// GeneratedQuestion is one multiple-choice question as returned by a
// generation provider, before persistence.
type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// QuestionGenerator produces a small ordered set of multiple-choice
// questions for one segment's transcript text. Malformed provider
// output must be returned as an error, never as partial questions.
type QuestionGenerator interface {
	Generate(ctx context.Context, text string) ([]GeneratedQuestion, error)
}
