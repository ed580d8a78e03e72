package worker

import "context"

// Scheduler hands freshly uploaded videos to the pool. Upload handling
// returns as soon as the run is queued; the pipeline owns the video
// from there.
type Scheduler struct {
	pool   *Pool
	runner *PipelineRunner
}

func NewScheduler(pool *Pool, runner *PipelineRunner) *Scheduler {
	return &Scheduler{pool: pool, runner: runner}
}

func (s *Scheduler) Schedule(videoID string) error {
	return s.pool.Submit(func(ctx context.Context) error {
		return s.runner.Run(ctx, videoID)
	})
}
