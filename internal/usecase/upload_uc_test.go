package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
)

func newUploadFixture(maxSize int64) (*UploadUseCase, *memVideoRepo, *memFileStore) {
	videos := newMemVideoRepo()
	store := newMemFileStore()
	logger := zerolog.Nop()
	return NewUploadUseCase(videos, store, maxSize, &logger), videos, store
}

func validUpload() UploadInput {
	return UploadInput{
		File:        strings.NewReader("fake mp4 bytes"),
		Size:        14,
		ContentType: "video/mp4",
		Title:       "Intro to Databases",
		Duration:    600,
	}
}

func TestUpload_Success(t *testing.T) {
	uc, videos, store := newUploadFixture(500 << 20)

	v, err := uc.Upload(context.Background(), validUpload())
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if v.ID == "" {
		t.Error("expected a generated video id")
	}
	if v.Status != model.VideoStatusPending {
		t.Errorf("status = %s, want pending", v.Status)
	}
	if v.Progress != 0 {
		t.Errorf("progress = %d, want 0", v.Progress)
	}
	if store.count() != 1 {
		t.Errorf("stored files = %d, want 1", store.count())
	}
	stored, err := videos.FindByID(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.FilePath == "" {
		t.Error("expected file path to be persisted")
	}
}

func TestUpload_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*UploadInput)
		wantErr error
	}{
		{
			name:    "missing file",
			mutate:  func(in *UploadInput) { in.File = nil },
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "blank title",
			mutate:  func(in *UploadInput) { in.Title = "   " },
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "zero duration",
			mutate:  func(in *UploadInput) { in.Duration = 0 },
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "wrong content type",
			mutate:  func(in *UploadInput) { in.ContentType = "video/webm" },
			wantErr: domain.ErrBadContentType,
		},
		{
			name:    "too large",
			mutate:  func(in *UploadInput) { in.Size = (500 << 20) + 1 },
			wantErr: domain.ErrFileTooLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, store := newUploadFixture(500 << 20)
			in := validUpload()
			tc.mutate(&in)

			_, err := uc.Upload(context.Background(), in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Upload() error = %v, want %v", err, tc.wantErr)
			}
			if store.count() != 0 {
				t.Errorf("rejected upload left %d files in the store", store.count())
			}
		})
	}
}

func TestUpload_ContentTypeWithParams(t *testing.T) {
	uc, _, _ := newUploadFixture(500 << 20)
	in := validUpload()
	in.ContentType = "video/mp4; codecs=avc1"

	if _, err := uc.Upload(context.Background(), in); err != nil {
		t.Fatalf("Upload() error = %v, want nil", err)
	}
}

func TestUpload_RepoFailureRemovesFile(t *testing.T) {
	uc, videos, store := newUploadFixture(500 << 20)
	videos.createErr = errors.New("db down")

	_, err := uc.Upload(context.Background(), validUpload())
	if err == nil {
		t.Fatal("expected error when the record cannot be created")
	}
	if store.count() != 0 {
		t.Errorf("orphaned file left behind: store has %d files", store.count())
	}
}
