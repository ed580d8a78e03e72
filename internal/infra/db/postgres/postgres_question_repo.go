package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/repository"
)

var _ repository.QuestionRepository = (*PostgresQuestionRepo)(nil)

type PostgresQuestionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresQuestionRepo(pool *pgxpool.Pool) *PostgresQuestionRepo {
	return &PostgresQuestionRepo{pool: pool}
}

func (r *PostgresQuestionRepo) Create(ctx context.Context, tx repository.Tx, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("invalid question: %w", err)
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	opts, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	const sql = `
INSERT INTO questions (id, transcript_id, question_text, options, correct_option, created_at)
VALUES ($1,$2,$3,$4,$5,$6);
`
	if _, err := pick(r.pool, tx).Exec(ctx, sql, q.ID, q.TranscriptID, q.QuestionText, opts, q.CorrectOption, q.CreatedAt); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (r *PostgresQuestionRepo) ListBySegment(ctx context.Context, segmentID string) ([]*model.Question, error) {
	const sql = `
SELECT id, transcript_id, question_text, options, correct_option, created_at
  FROM questions WHERE transcript_id=$1 ORDER BY created_at;
`
	rows, err := r.pool.Query(ctx, sql, segmentID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []*model.Question
	for rows.Next() {
		var q model.Question
		var opts []byte
		if err := rows.Scan(&q.ID, &q.TranscriptID, &q.QuestionText, &opts, &q.CorrectOption, &q.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(opts, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}
