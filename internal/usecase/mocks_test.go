package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/domain/model"
	"lecture-quiz/internal/domain/ports/repository"
)

// memVideoRepo is a small in-memory implementation used by unit tests.
type memVideoRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.Video
	createErr error
	findCount int
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{store: make(map[string]*model.Video)}
}

func (m *memVideoRepo) Create(ctx context.Context, v *model.Video) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	cp := *v
	m.store[v.ID] = &cp
	return nil
}

func (m *memVideoRepo) FindByID(ctx context.Context, id string) (*model.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCount++
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
	v.UpdatedAt = time.Now()
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
	v.UpdatedAt = time.Now()
	return nil
}

type memSegmentRepo struct {
	mu    sync.RWMutex
	segs  []*model.TranscriptSegment
	byVid map[string][]*model.TranscriptSegment
}

func newMemSegmentRepo() *memSegmentRepo {
	return &memSegmentRepo{byVid: make(map[string][]*model.TranscriptSegment)}
}

func (m *memSegmentRepo) Create(ctx context.Context, _ repository.Tx, s *model.TranscriptSegment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	cp := *s
	m.segs = append(m.segs, &cp)
	m.byVid[s.VideoID] = append(m.byVid[s.VideoID], &cp)
	return nil
}

func (m *memSegmentRepo) ListByVideo(ctx context.Context, videoID string) ([]*model.TranscriptSegment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// stored in creation order, which is segment_start order
	out := make([]*model.TranscriptSegment, 0, len(m.byVid[videoID]))
	for _, s := range m.byVid[videoID] {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type memQuestionRepo struct {
	mu    sync.RWMutex
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
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	cp := *q
	m.bySeg[q.TranscriptID] = append(m.bySeg[q.TranscriptID], &cp)
	return nil
}

func (m *memQuestionRepo) ListBySegment(ctx context.Context, segmentID string) ([]*model.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Question, 0, len(m.bySeg[segmentID]))
	for _, q := range m.bySeg[segmentID] {
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

// memFileStore keeps uploaded bytes in memory.
type memFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newMemFileStore() *memFileStore {
	return &memFileStore{files: make(map[string][]byte)}
}

func (m *memFileStore) Save(r io.Reader, ext string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := fmt.Sprintf("mem://%s%s", uuid.NewString(), ext)
	m.files[path] = buf.Bytes()
	return path, nil
}

func (m *memFileStore) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memFileStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}
