package usecase

import (
	"context"
	"errors"
	"testing"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
)

// seedCompleted populates the repos with one completed video carrying
// two segments, the first with one question.
func seedCompleted(t *testing.T, videos *memVideoRepo, segments *memSegmentRepo, questions *memQuestionRepo) *model.Video {
	t.Helper()
	ctx := context.Background()

	v := &model.Video{Title: "Operating Systems L4", Duration: 600, Status: model.VideoStatusCompleted, Progress: 100}
	if err := videos.Create(ctx, v); err != nil {
		t.Fatalf("seed video: %v", err)
	}

	s1 := &model.TranscriptSegment{VideoID: v.ID, SegmentStart: 0, SegmentEnd: 300, Text: "first window"}
	s2 := &model.TranscriptSegment{VideoID: v.ID, SegmentStart: 300, SegmentEnd: 600, Text: "second window"}
	for _, s := range []*model.TranscriptSegment{s1, s2} {
		if err := segments.Create(ctx, nil, s); err != nil {
			t.Fatalf("seed segment: %v", err)
		}
	}

	q := &model.Question{
		TranscriptID:  s1.ID,
		QuestionText:  "What does the scheduler do?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectOption: 2,
	}
	if err := questions.Create(ctx, nil, q); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return v
}

func TestAssemble_Completed(t *testing.T) {
	videos, segments, questions := newMemVideoRepo(), newMemSegmentRepo(), newMemQuestionRepo()
	v := seedCompleted(t, videos, segments, questions)
	uc := NewResultsUseCase(videos, segments, questions)

	res, err := uc.Assemble(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(res.Segments))
	}
	if res.Segments[0].Segment.SegmentStart != 0 || res.Segments[1].Segment.SegmentStart != 300 {
		t.Error("segments not ordered by start time")
	}
	if len(res.Segments[0].Questions) != 1 {
		t.Errorf("segment 1 questions = %d, want 1", len(res.Segments[0].Questions))
	}
	if len(res.Segments[1].Questions) != 0 {
		t.Errorf("segment 2 questions = %d, want 0", len(res.Segments[1].Questions))
	}
}

func TestAssemble_UnknownVideo(t *testing.T) {
	uc := NewResultsUseCase(newMemVideoRepo(), newMemSegmentRepo(), newMemQuestionRepo())
	_, err := uc.Assemble(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Assemble() error = %v, want ErrNotFound", err)
	}
}

func TestAssemble_NotCompleted(t *testing.T) {
	for _, status := range []model.VideoStatus{
		model.VideoStatusPending,
		model.VideoStatusTranscribing,
		model.VideoStatusGenerating,
		model.VideoStatusError,
	} {
		t.Run(string(status), func(t *testing.T) {
			videos := newMemVideoRepo()
			v := &model.Video{Title: "t", Duration: 60, Status: status}
			if err := videos.Create(context.Background(), v); err != nil {
				t.Fatal(err)
			}
			uc := NewResultsUseCase(videos, newMemSegmentRepo(), newMemQuestionRepo())

			_, err := uc.Assemble(context.Background(), v.ID)
			if !errors.Is(err, domain.ErrNotReady) {
				t.Fatalf("Assemble() error = %v, want ErrNotReady", err)
			}
		})
	}
}

func TestStatus_ReadOnly(t *testing.T) {
	videos := newMemVideoRepo()
	v := &model.Video{Title: "t", Duration: 60, Status: model.VideoStatusTranscribing, Progress: 40}
	if err := videos.Create(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	uc := NewStatusUseCase(videos)

	first, err := uc.Status(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	second, err := uc.Status(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if *first != *second {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
	if first.Status != model.VideoStatusTranscribing || first.Progress != 40 {
		t.Errorf("unexpected view: %+v", first)
	}
}

func TestStatus_UnknownVideo(t *testing.T) {
	uc := NewStatusUseCase(newMemVideoRepo())
	_, err := uc.Status(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Status() error = %v, want ErrNotFound", err)
	}
}
