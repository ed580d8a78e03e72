package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/adapter"
	"lecture-quiz/internal/domain/ports/repository"
)

// UploadInput is one multipart upload, already parsed by the HTTP layer.
type UploadInput struct {
	File        io.Reader
	Size        int64
	ContentType string
	Title       string
	Duration    int // seconds
}

// UploadUseCase validates an upload, stores the file, and creates the
// pending video record. The pipeline is kicked off by the caller once
// the record exists.
type UploadUseCase struct {
	videos  repository.VideoRepository
	store   adapter.FileStore
	maxSize int64
	log     *zerolog.Logger
}

func NewUploadUseCase(videos repository.VideoRepository, store adapter.FileStore, maxSize int64, logger *zerolog.Logger) *UploadUseCase {
	l := logger.With().Str("component", "UploadUseCase").Logger()
	return &UploadUseCase{videos: videos, store: store, maxSize: maxSize, log: &l}
}

// Upload rejects bad input without creating any record; on success the
// returned video is in status pending with progress 0.
func (uc *UploadUseCase) Upload(ctx context.Context, in UploadInput) (*model.Video, error) {
	if in.File == nil {
		return nil, fmt.Errorf("%w: no file uploaded", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration is required", domain.ErrInvalidArgument)
	}
	if !isVideoContentType(in.ContentType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrBadContentType, in.ContentType)
	}
	if uc.maxSize > 0 && in.Size > uc.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, in.Size)
	}

	path, err := uc.store.Save(in.File, ".mp4")
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	v := &model.Video{
		Title:    strings.TrimSpace(in.Title),
		Duration: in.Duration,
		FilePath: path,
		Status:   model.VideoStatusPending,
		Progress: 0,
	}
	if err := uc.videos.Create(ctx, v); err != nil {
		// Keep the store consistent with the datastore.
		_ = uc.store.Remove(path)
		return nil, fmt.Errorf("create video record: %w", err)
	}

	uc.log.Info().Str("video_id", v.ID).Str("title", v.Title).Int("duration", v.Duration).Msg("video uploaded")
	return v, nil
}

func isVideoContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "video/mp4"
}
