package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/repository"
)

var _ repository.VideoRepository = (*PostgresVideoRepo)(nil)

type PostgresVideoRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresVideoRepo(pool *pgxpool.Pool) *PostgresVideoRepo {
	return &PostgresVideoRepo{pool: pool}
}

func (r *PostgresVideoRepo) Create(ctx context.Context, v *model.Video) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now

	const q = `
INSERT INTO videos (id, title, duration, file_path, status, progress, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);
`
	_, err := r.pool.Exec(ctx, q,
		v.ID, v.Title, v.Duration, v.FilePath, string(v.Status), v.Progress, v.ErrorMessage, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

func (r *PostgresVideoRepo) FindByID(ctx context.Context, id string) (*model.Video, error) {
	const q = `
SELECT id, title, duration, file_path, status, progress, error_message, created_at, updated_at
  FROM videos WHERE id=$1;
`
	row := r.pool.QueryRow(ctx, q, id)
	var v model.Video
	var status string
	if err := row.Scan(&v.ID, &v.Title, &v.Duration, &v.FilePath, &status, &v.Progress, &v.ErrorMessage, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	v.Status = model.VideoStatus(status)
	return &v, nil
}

func (r *PostgresVideoRepo) UpdateStatus(ctx context.Context, id string, status model.VideoStatus, progress int, errorMessage string) error {
	const q = `
UPDATE videos SET status=$2, progress=$3, error_message=$4, updated_at=$5 WHERE id=$1;
`
	tag, err := r.pool.Exec(ctx, q, id, string(status), progress, errorMessage, time.Now())
	if err != nil {
		return fmt.Errorf("update video status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresVideoRepo) UpdateProgress(ctx context.Context, id string, progress int) error {
	// Guard against regressions: progress only moves forward within a stage.
	const q = `
UPDATE videos SET progress=GREATEST(progress,$2), updated_at=$3 WHERE id=$1;
`
	tag, err := r.pool.Exec(ctx, q, id, progress, time.Now())
	if err != nil {
		return fmt.Errorf("update video progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
