package model

import (
	"fmt"
	"time"
)

// OptionCount is the required number of answer options per question.
const OptionCount = 4

// Question is one multiple-choice question generated from a single
// transcript segment. Immutable once written.
type Question struct {
	ID            string
	TranscriptID  string
	QuestionText  string
	Options       []string
	CorrectOption int // index into Options
	CreatedAt     time.Time
}

// Validate checks the structural invariants of a question: exactly four
// options and a correct index inside the option range.
func (q *Question) Validate() error {
	if q.QuestionText == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), OptionCount)
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return fmt.Errorf("correct option index %d out of range [0,%d)", q.CorrectOption, len(q.Options))
	}
	return nil
}

// CorrectAnswer returns the text of the correct option.
func (q *Question) CorrectAnswer() string {
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectOption]
}
