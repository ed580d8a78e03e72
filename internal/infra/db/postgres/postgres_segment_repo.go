package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/repository"
)

var _ repository.SegmentRepository = (*PostgresSegmentRepo)(nil)

type PostgresSegmentRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSegmentRepo(pool *pgxpool.Pool) *PostgresSegmentRepo {
	return &PostgresSegmentRepo{pool: pool}
}

func (r *PostgresSegmentRepo) Create(ctx context.Context, tx repository.Tx, s *model.TranscriptSegment) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	const q = `
INSERT INTO transcripts (id, video_id, segment_start, segment_end, text, created_at)
VALUES ($1,$2,$3,$4,$5,$6);
`
	_, err := pick(r.pool, tx).Exec(ctx, q, s.ID, s.VideoID, s.SegmentStart, s.SegmentEnd, s.Text, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create segment: %w", err)
	}
	return nil
}

func (r *PostgresSegmentRepo) ListByVideo(ctx context.Context, videoID string) ([]*model.TranscriptSegment, error) {
	const q = `
SELECT id, video_id, segment_start, segment_end, text, created_at
  FROM transcripts WHERE video_id=$1 ORDER BY segment_start;
`
	rows, err := r.pool.Query(ctx, q, videoID)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	var out []*model.TranscriptSegment
	for rows.Next() {
		var s model.TranscriptSegment
		if err := rows.Scan(&s.ID, &s.VideoID, &s.SegmentStart, &s.SegmentEnd, &s.Text, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
