package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MemoryTaskStore is a TaskStore held in process memory. Its contents do not
// survive a restart.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
	order []uuid.UUID
}

var _ TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks: make(map[uuid.UUID]*Task),
	}
}

// SaveTask records a new task.
func (s *MemoryTaskStore) SaveTask(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("%w: %s", ErrTaskExists, task.ID)
	}
	stored := task
	s.tasks[task.ID] = &stored
	s.order = append(s.order, task.ID)
	return nil
}

// GetTask returns a copy of the stored task.
func (s *MemoryTaskStore) GetTask(_ context.Context, id uuid.UUID) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *t, nil
}

// UpdateTask applies fn under the store's lock. fn must not call back into
// the store.
func (s *MemoryTaskStore) UpdateTask(_ context.Context, id uuid.UUID, fn func(*Task)) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	fn(t)
	t.ID = id
	return *t, nil
}

// ListTasks returns copies of the stored tasks in submission order.
func (s *MemoryTaskStore) ListTasks(_ context.Context, status TaskStatus) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.FilterMap(s.order, func(id uuid.UUID, _ int) (Task, bool) {
		t := s.tasks[id]
		return *t, status == "" || t.Status == status
	}), nil
}

// CountByStatus returns the number of tasks in each status.
func (s *MemoryTaskStore) CountByStatus() map[TaskStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.CountValuesBy(lo.Values(s.tasks), func(t *Task) TaskStatus {
		return t.Status
	})
}
