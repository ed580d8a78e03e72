package repository

import (
	"context"

	"lecture-quiz/internal/domain/model"
)

// QuestionRepository persists generated questions, append only.
type QuestionRepository interface {
	Create(ctx context.Context, tx Tx, q *model.Question) error
	ListBySegment(ctx context.Context, segmentID string) ([]*model.Question, error)
}
