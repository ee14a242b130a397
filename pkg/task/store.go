package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/matcher/pkg/matching"
)

// DefaultRetention — сколько хранится терминальная задача до вычистки.
const DefaultRetention = 30 * time.Minute

// Store хранит задачи в памяти процесса. Все переходы состояний идут
// через его методы под одним мьютексом, поэтому читатель всегда видит
// согласованный снимок: status и result/error меняются вместе.
type Store struct {
	mu        sync.RWMutex
	tasks     map[uuid.UUID]*Task
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewStore(retention time.Duration, logger *zap.Logger) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		tasks:     make(map[uuid.UUID]*Task),
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Create регистрирует новую задачу в состоянии queued.
func (s *Store) Create() Task {
	now := s.now()
	t := &Task{
		ID:        uuid.New(),
		Status:    StatusQueued,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()
	return snapshot(t)
}

// Get возвращает снимок задачи или ErrNotFound.
func (s *Store) Get(id uuid.UUID) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return snapshot(t), nil
}

// Delete убирает задачу (откат несостоявшейся постановки в очередь).
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
}

// MarkProcessing переводит queued -> processing.
func (s *Store) MarkProcessing(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.Status != StatusQueued {
		return
	}
	t.Status = StatusProcessing
	t.UpdatedAt = s.now()
}

// SetProgress двигает прогресс только вперёд; на терминальной задаче — no-op.
func (s *Store) SetProgress(id uuid.UUID, progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.Status.Terminal() || progress <= t.Progress {
		return
	}
	t.Progress = progress
	t.UpdatedAt = s.now()
}

// Complete атомарно выставляет completed + result + progress=100.
func (s *Store) Complete(id uuid.UUID, result []matching.Result) {
	if result == nil {
		result = []matching.Result{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}
	t.Status = StatusCompleted
	t.Result = result
	t.Progress = 100
	t.UpdatedAt = s.now()
}

// Fail атомарно выставляет failed + error.
func (s *Store) Fail(id uuid.UUID, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || t.Status.Terminal() {
		return
	}
	t.Status = StatusFailed
	t.Error = &msg
	t.UpdatedAt = s.now()
}

// RunJanitor периодически вычищает терминальные задачи старше retention.
// Блокируется до отмены контекста.
func (s *Store) RunJanitor(ctx context.Context) error {
	interval := s.retention / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Store) sweep() {
	cutoff := s.now().Add(-s.retention)
	s.mu.Lock()
	removed := 0
	for id, t := range s.tasks {
		if t.Status.Terminal() && t.UpdatedAt.Before(cutoff) {
			delete(s.tasks, id)
			removed++
		}
	}
	s.mu.Unlock()
	if removed > 0 {
		s.logger.Debug("expired tasks removed", zap.Int("count", removed))
	}
}

// snapshot копирует задачу вместе со срезом результатов, чтобы снимок
// не делил память с хранимой записью.
func snapshot(t *Task) Task {
	cp := *t
	if t.Result != nil {
		cp.Result = make([]matching.Result, len(t.Result))
		copy(cp.Result, t.Result)
	}
	if t.Error != nil {
		msg := *t.Error
		cp.Error = &msg
	}
	return cp
}
