package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/adapter"
)

// mcqPrompt builds the generation prompt for one segment's transcript.
// The provider must answer with a bare JSON array.
func mcqPrompt(count int, text string) string {
	return fmt.Sprintf(`Generate %d multiple choice questions based on this text. Each question should have 4 options with exactly one correct answer. Format as JSON array:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 0
  }
]

Text: %s`, count, text)
}

// parseMCQs decodes a provider reply into validated questions. Models
// sometimes wrap the array in a markdown code fence, so fences are
// stripped before decoding. Any structural violation fails the whole
// reply; the pipeline treats that as a stage failure.
func parseMCQs(reply string) ([]adapter.GeneratedQuestion, error) {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var out []adapter.GeneratedQuestion
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("malformed question json: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("provider returned no questions")
	}
	for i, q := range out {
		if q.Question == "" {
			return nil, fmt.Errorf("question %d: empty text", i)
		}
		if len(q.Options) != model.OptionCount {
			return nil, fmt.Errorf("question %d: %d options, want %d", i, len(q.Options), model.OptionCount)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %d: correct index %d out of range", i, q.CorrectIndex)
		}
	}
	return out, nil
}
