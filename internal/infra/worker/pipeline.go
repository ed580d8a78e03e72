package worker

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/adapter"
	"lecture-quiz/internal/domain/ports/repository"
	"lecture-quiz/internal/infra/metrics"
)

// Locker is satisfied by the redis locker. One pipeline run per video.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, error)
	Unlock(ctx context.Context, key, token string) error
}

// lockTTL bounds how long a crashed run can keep a video locked.
const lockTTL = time.Hour

// PipelineRunner drives one video through the processing state machine:
//
//	pending -> transcribing -> generating -> completed
//
// with any stage failure landing in terminal error. Stages run strictly
// sequentially; segments are generated in order so progress reporting
// stays monotonic and a failure is attributable to a single segment.
type PipelineRunner struct {
	videos      repository.VideoRepository
	segments    repository.SegmentRepository
	questions   repository.QuestionRepository
	tm          repository.TransactionManager
	transcriber adapter.Transcriber
	generator   adapter.QuestionGenerator
	locker      Locker

	transcribeTimeout time.Duration
	generateTimeout   time.Duration

	log *zerolog.Logger
}

func NewPipelineRunner(
	videos repository.VideoRepository,
	segments repository.SegmentRepository,
	questions repository.QuestionRepository,
	tm repository.TransactionManager,
	transcriber adapter.Transcriber,
	generator adapter.QuestionGenerator,
	locker Locker,
	transcribeTimeout, generateTimeout time.Duration,
	logger *zerolog.Logger,
) *PipelineRunner {
	l := logger.With().Str("component", "PipelineRunner").Logger()
	return &PipelineRunner{
		videos:            videos,
		segments:          segments,
		questions:         questions,
		tm:                tm,
		transcriber:       transcriber,
		generator:         generator,
		locker:            locker,
		transcribeTimeout: transcribeTimeout,
		generateTimeout:   generateTimeout,
		log:               &l,
	}
}

// Run processes one video end to end. It returns domain.ErrPipelineBusy
// when another run already owns the video.
func (r *PipelineRunner) Run(ctx context.Context, videoID string) error {
	lockKey := "pipeline:video:" + videoID
	token, err := r.locker.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return err
	}
	defer func() {
		// Release with a fresh context so a cancelled run still unlocks.
		uctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = r.locker.Unlock(uctx, lockKey, token)
	}()

	v, err := r.videos.FindByID(ctx, videoID)
	if err != nil {
		return err
	}
	if v.Status != model.VideoStatusPending {
		r.log.Warn().Str("video_id", videoID).Str("status", string(v.Status)).Msg("skipping run: video is not pending")
		return nil
	}

	log := r.log.With().Str("video_id", videoID).Logger()
	log.Info().Int("duration", v.Duration).Msg("pipeline started")
	start := time.Now()

	segs, err := r.transcribe(ctx, v, &log)
	if err != nil {
		metrics.IncPipelineJob(string(model.VideoStatusError))
		return err
	}

	if err := r.generate(ctx, v, segs, &log); err != nil {
		metrics.IncPipelineJob(string(model.VideoStatusError))
		return err
	}

	if err := r.setStatus(ctx, v.ID, model.VideoStatusCompleted, 100, ""); err != nil {
		return err
	}
	metrics.IncPipelineJob(string(model.VideoStatusCompleted))
	log.Info().Dur("duration_ms", time.Since(start)).Int("segments", len(segs)).Msg("pipeline completed")
	return nil
}

// transcribe runs the transcribing stage and persists the windowed
// segments. On success the video is left in status generating with
// progress reset to 0.
func (r *PipelineRunner) transcribe(ctx context.Context, v *model.Video, log *zerolog.Logger) ([]*model.TranscriptSegment, error) {
	if err := r.setStatus(ctx, v.ID, model.VideoStatusTranscribing, 0, ""); err != nil {
		return nil, err
	}

	stageStart := time.Now()
	tctx, cancel := context.WithTimeout(ctx, r.transcribeTimeout)
	chunks, err := r.transcriber.Transcribe(tctx, v.FilePath)
	cancel()
	metrics.ObserveStage("transcribing", time.Since(stageStart).Seconds(), err == nil)
	if err != nil {
		return nil, r.fail(v.ID, fmt.Errorf("transcription failed: %w", err), log)
	}

	windows := model.BucketChunks(model.SegmentWindows(v.Duration), chunks)
	if len(windows) == 0 {
		return nil, r.fail(v.ID, fmt.Errorf("video has no duration to segment"), log)
	}

	segs := make([]*model.TranscriptSegment, 0, len(windows))
	err = r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		for i := range windows {
			s := windows[i]
			s.VideoID = v.ID
			if err := r.segments.Create(ctx, tx, &s); err != nil {
				return err
			}
			segs = append(segs, &s)
		}
		return nil
	})
	if err != nil {
		return nil, r.fail(v.ID, fmt.Errorf("persist transcript segments: %w", err), log)
	}

	// Stage done: finish transcribing at 100, then enter generating at 0.
	if err := r.videos.UpdateProgress(ctx, v.ID, 100); err != nil {
		return nil, err
	}
	if err := r.setStatus(ctx, v.ID, model.VideoStatusGenerating, 0, ""); err != nil {
		return nil, err
	}
	log.Info().Int("segments", len(segs)).Int("chunks", len(chunks)).Msg("transcript segmented")
	return segs, nil
}

// generate runs the generating stage segment by segment, in order,
// persisting each segment's questions atomically and bumping progress
// after each one. Already-persisted questions are kept on failure.
func (r *PipelineRunner) generate(ctx context.Context, v *model.Video, segs []*model.TranscriptSegment, log *zerolog.Logger) error {
	stageStart := time.Now()
	total := len(segs)

	for i, seg := range segs {
		if seg.Text == "" {
			metrics.ObserveStage("generating", time.Since(stageStart).Seconds(), false)
			return r.fail(v.ID, fmt.Errorf("segment %d/%d has no transcript text", i+1, total), log)
		}

		gctx, cancel := context.WithTimeout(ctx, r.generateTimeout)
		generated, err := r.generator.Generate(gctx, seg.Text)
		cancel()
		if err != nil {
			metrics.ObserveStage("generating", time.Since(stageStart).Seconds(), false)
			return r.fail(v.ID, fmt.Errorf("question generation failed for segment %d/%d: %w", i+1, total, err), log)
		}

		err = r.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			for _, g := range generated {
				q := &model.Question{
					TranscriptID:  seg.ID,
					QuestionText:  g.Question,
					Options:       g.Options,
					CorrectOption: g.CorrectIndex,
				}
				if err := r.questions.Create(ctx, tx, q); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			metrics.ObserveStage("generating", time.Since(stageStart).Seconds(), false)
			return r.fail(v.ID, fmt.Errorf("persist questions for segment %d/%d: %w", i+1, total, err), log)
		}
		metrics.AddQuestionsGenerated(len(generated))

		progress := int(math.Round(100 * float64(i+1) / float64(total)))
		if err := r.videos.UpdateProgress(ctx, v.ID, progress); err != nil {
			return err
		}
		log.Debug().Int("segment", i+1).Int("total", total).Int("progress", progress).Msg("segment questions generated")
	}

	metrics.ObserveStage("generating", time.Since(stageStart).Seconds(), true)
	return nil
}

func (r *PipelineRunner) setStatus(ctx context.Context, id string, status model.VideoStatus, progress int, msg string) error {
	return r.videos.UpdateStatus(ctx, id, status, progress, msg)
}

// fail transitions the video to terminal error. The status write uses a
// fresh context so cancellation of the run cannot lose the diagnostic.
func (r *PipelineRunner) fail(id string, cause error, log *zerolog.Logger) error {
	log.Error().Err(cause).Msg("pipeline stage failed")
	fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.videos.UpdateStatus(fctx, id, model.VideoStatusError, 0, cause.Error()); err != nil {
		log.Error().Err(err).Msg("could not record pipeline failure")
	}
	return cause
}
