package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/adapter"
	"lecture-quiz/internal/domain/ports/repository"
)

// statusEvent is one observed write to a video's status or progress,
// kept so tests can assert on the whole transition sequence.
type statusEvent struct {
	status   model.VideoStatus
	progress int
}

type memVideoRepo struct {
	mu     sync.Mutex
	store  map[string]*model.Video
	events map[string][]statusEvent
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{
		store:  make(map[string]*model.Video),
		events: make(map[string][]statusEvent),
	}
}

func (m *memVideoRepo) Create(ctx context.Context, v *model.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	cp := *v
	m.store[v.ID] = &cp
	return nil
}

func (m *memVideoRepo) FindByID(ctx context.Context, id string) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memVideoRepo) UpdateStatus(ctx context.Context, id string, status model.VideoStatus, progress int, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	v.Progress = progress
	v.ErrorMessage = errorMessage
	m.events[id] = append(m.events[id], statusEvent{status: status, progress: progress})
	return nil
}

func (m *memVideoRepo) UpdateProgress(ctx context.Context, id string, progress int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	if progress > v.Progress {
		v.Progress = progress
	}
	m.events[id] = append(m.events[id], statusEvent{status: v.Status, progress: v.Progress})
	return nil
}

func (m *memVideoRepo) history(id string) []statusEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]statusEvent(nil), m.events[id]...)
}

type memSegmentRepo struct {
	mu   sync.Mutex
	segs []*model.TranscriptSegment
}

func (m *memSegmentRepo) Create(ctx context.Context, _ repository.Tx, s *model.TranscriptSegment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	cp := *s
	m.segs = append(m.segs, &cp)
	return nil
}

func (m *memSegmentRepo) ListByVideo(ctx context.Context, videoID string) ([]*model.TranscriptSegment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.TranscriptSegment
	for _, s := range m.segs {
		if s.VideoID == videoID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memQuestionRepo struct {
	mu    sync.Mutex
	bySeg map[string][]*model.Question
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{bySeg: make(map[string][]*model.Question)}
}

func (m *memQuestionRepo) Create(ctx context.Context, _ repository.Tx, q *model.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	cp := *q
	m.bySeg[q.TranscriptID] = append(m.bySeg[q.TranscriptID], &cp)
	return nil
}

func (m *memQuestionRepo) ListBySegment(ctx context.Context, segmentID string) ([]*model.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Question(nil), m.bySeg[segmentID]...), nil
}

func (m *memQuestionRepo) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, qs := range m.bySeg {
		n += len(qs)
	}
	return n
}

type noTx struct{}

type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, noTx{})
}

// memLocker grants every lock unless busy is set.
type memLocker struct {
	mu       sync.Mutex
	busy     bool
	locked   int
	unlocked int
}

func (m *memLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return "", domain.ErrPipelineBusy
	}
	m.locked++
	return uuid.NewString(), nil
}

func (m *memLocker) Unlock(ctx context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlocked++
	return nil
}

// fakeTranscriber returns a canned chunk list.
type fakeTranscriber struct {
	chunks []model.TranscriptChunk
	err    error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, filePath string) ([]model.TranscriptChunk, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

// fakeGenerator returns three questions per call and can be set to
// fail on the nth call (1-based).
type fakeGenerator struct {
	mu         sync.Mutex
	calls      int
	failAtCall int
	failErr    error
}

func (f *fakeGenerator) Generate(ctx context.Context, text string) ([]adapter.GeneratedQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failAtCall > 0 && f.calls == f.failAtCall {
		return nil, f.failErr
	}
	out := make([]adapter.GeneratedQuestion, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, adapter.GeneratedQuestion{
			Question:     "What was discussed?",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: i % 4,
		})
	}
	return out, nil
}
