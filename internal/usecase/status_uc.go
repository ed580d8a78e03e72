package usecase

import (
	"context"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/repository"
)

// StatusView is the poller-facing slice of a video record.
type StatusView struct {
	Status       model.VideoStatus `json:"status"`
	Progress     int               `json:"progress"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// StatusUseCase serves read-only status checks. Repeated reads with no
// pipeline activity return identical views.
type StatusUseCase struct {
	videos repository.VideoRepository
}

func NewStatusUseCase(videos repository.VideoRepository) *StatusUseCase {
	return &StatusUseCase{videos: videos}
}

func (uc *StatusUseCase) Status(ctx context.Context, videoID string) (*StatusView, error) {
	v, err := uc.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return &StatusView{Status: v.Status, Progress: v.Progress, ErrorMessage: v.ErrorMessage}, nil
}
