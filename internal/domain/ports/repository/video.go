package repository

import (
	"context"

	"lecture-quiz/internal/domain/model"
)

// VideoRepository persists video job records. Status, progress and
// error message are the only mutable fields after creation.
type VideoRepository interface {
	Create(ctx context.Context, v *model.Video) error
	FindByID(ctx context.Context, id string) (*model.Video, error)
	UpdateStatus(ctx context.Context, id string, status model.VideoStatus, progress int, errorMessage string) error
	UpdateProgress(ctx context.Context, id string, progress int) error
}
