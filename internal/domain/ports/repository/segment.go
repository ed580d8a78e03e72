package repository

import (
	"context"

	"lecture-quiz/internal/domain/model"
)

// SegmentRepository persists transcript segments. Segments are append
// only and are always read back ordered by segment_start.
type SegmentRepository interface {
	Create(ctx context.Context, tx Tx, s *model.TranscriptSegment) error
	ListByVideo(ctx context.Context, videoID string) ([]*model.TranscriptSegment, error)
}
