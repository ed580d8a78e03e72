package usecase

import (
	"context"
	"fmt"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/repository"
)

// SegmentWithQuestions is one transcript segment annotated with its
// ordered question list.
type SegmentWithQuestions struct {
	Segment   *model.TranscriptSegment
	Questions []*model.Question
}

// AssembledResult joins a completed video with all of its segments and
// their questions, ordered by segment start.
type AssembledResult struct {
	Video    *model.Video
	Segments []*SegmentWithQuestions
}

// ResultsUseCase assembles results for completed videos.
type ResultsUseCase struct {
	videos    repository.VideoRepository
	segments  repository.SegmentRepository
	questions repository.QuestionRepository
}

func NewResultsUseCase(videos repository.VideoRepository, segments repository.SegmentRepository, questions repository.QuestionRepository) *ResultsUseCase {
	return &ResultsUseCase{videos: videos, segments: segments, questions: questions}
}

// Assemble returns domain.ErrNotFound for unknown ids and
// domain.ErrNotReady when the video exists but has not completed.
func (uc *ResultsUseCase) Assemble(ctx context.Context, videoID string) (*AssembledResult, error) {
	v, err := uc.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v.Status != model.VideoStatusCompleted {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrNotReady, v.Status)
	}

	segs, err := uc.segments.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}

	out := &AssembledResult{Video: v, Segments: make([]*SegmentWithQuestions, 0, len(segs))}
	for _, s := range segs {
		qs, err := uc.questions.ListBySegment(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("list questions for segment %s: %w", s.ID, err)
		}
		out.Segments = append(out.Segments, &SegmentWithQuestions{Segment: s, Questions: qs})
	}
	return out, nil
}
