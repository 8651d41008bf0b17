package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListFn          func(ctx context.Context) ([]*domain.Task, error)
	GetByIDFn       func(ctx context.Context, id string) (*domain.Task, error)
	CreateFn        func(ctx context.Context, task *domain.Task) error
	UpdateFn        func(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	DeleteFn        func(ctx context.Context, id string) error
	CountByStatusFn func(ctx context.Context, status domain.TaskStatus) (int64, error)
	CountFn         func(ctx context.Context) (int64, error)
	InsertManyFn    func(ctx context.Context, tasks []*domain.Task) error

	// Now stamps created/updated times in the default implementation
	Now func() time.Time

	mu    sync.Mutex
	order []primitive.ObjectID
	tasks map[primitive.ObjectID]*domain.Task
	calls map[string]int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore(seed ...*domain.Task) *MockTaskStore {
	m := &MockTaskStore{
		Now:   time.Now,
		tasks: make(map[primitive.ObjectID]*domain.Task),
		calls: make(map[string]int),
	}
	for _, t := range seed {
		m.put(t)
	}
	return m
}

// Calls returns how many times method was invoked.
func (m *MockTaskStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of invocations across all methods.
func (m *MockTaskStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

func (m *MockTaskStore) timestamp() time.Time {
	return m.Now().UTC().Truncate(time.Millisecond)
}

// put stores a copy of t; callers must not hold m.mu.
func (m *MockTaskStore) put(t *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if _, exists := m.tasks[t.ID]; !exists {
		m.order = append(m.order, t.ID)
	}
	clone := *t
	m.tasks[t.ID] = &clone
}

func (m *MockTaskStore) lookup(id string) (primitive.ObjectID, *domain.Task, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, nil, false
	}
	t, ok := m.tasks[oid]
	return oid, t, ok
}

// List implements store.TaskStore
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Task, 0, len(m.order))
	for _, id := range m.order {
		clone := *m.tasks[id]
		out = append(out, &clone)
	}
	return out, nil
}

// GetByID implements store.TaskStore
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, t, ok := m.lookup(id)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// Create implements store.TaskStore
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	task.ID = primitive.NewObjectID()
	task.CreatedAt = m.timestamp()
	task.UpdatedAt = nil
	m.put(task)
	return nil
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(
	ctx context.Context,
	id string,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	now := m.timestamp()
	m.mu.Lock()
	defer m.mu.Unlock()
	_, t, ok := m.lookup(id)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	update.Apply(t, now)
	clone := *t
	return &clone, nil
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	oid, _, ok := m.lookup(id)
	if !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, oid)
	for i, existing := range m.order {
		if existing == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// CountByStatus implements store.TaskStore
func (m *MockTaskStore) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	m.record("CountByStatus")
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

// Count implements store.TaskStore
func (m *MockTaskStore) Count(ctx context.Context) (int64, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tasks)), nil
}

// InsertMany implements store.TaskStore
func (m *MockTaskStore) InsertMany(ctx context.Context, tasks []*domain.Task) error {
	m.record("InsertMany")
	if m.InsertManyFn != nil {
		return m.InsertManyFn(ctx, tasks)
	}

	for _, t := range tasks {
		if t.CreatedAt.IsZero() {
			t.CreatedAt = m.timestamp()
		}
		m.put(t)
	}
	return nil
}
