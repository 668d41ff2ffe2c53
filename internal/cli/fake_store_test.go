package cli

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/idilsaglam/todoprompt/internal/model"
	"github.com/idilsaglam/todoprompt/internal/store"
)

var errDiskGone = errors.New("disk gone")

// memStore is an in-memory store.Store with switchable failures.
type memStore struct {
	list     model.List
	listErr  error
	writeErr error
	calls    []string
}

func (m *memStore) List(ctx context.Context) (model.List, error) {
	m.calls = append(m.calls, "list")
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append(model.List{}, m.list...), nil
}

func (m *memStore) Add(ctx context.Context, todo model.Todo) error {
	m.calls = append(m.calls, "add")
	if m.writeErr != nil {
		return m.writeErr
	}
	if m.list.Find(todo.ID) >= 0 {
		return store.ErrDuplicateID
	}
	m.list = append(m.list, todo)
	return nil
}

func (m *memStore) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	m.calls = append(m.calls, "remove")
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	i := m.list.Find(id)
	if i < 0 {
		return 0, nil
	}
	m.list = append(m.list[:i], m.list[i+1:]...)
	return 1, nil
}

func (m *memStore) MarkDone(ctx context.Context, id uuid.UUID) (int64, error) {
	m.calls = append(m.calls, "mark done")
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	i := m.list.Find(id)
	if i < 0 {
		return 0, nil
	}
	m.list[i].Done = true
	return 1, nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.calls = append(m.calls, "clear")
	if m.writeErr != nil {
		return m.writeErr
	}
	m.list = nil
	return nil
}

func (m *memStore) Close() error { return nil }

var _ store.Store = (*memStore)(nil)

func threeTodos() model.List {
	return model.List{
		{ID: uuid.MustParse("aaaa1111-1111-4000-8000-000000000001"), Message: "one"},
		{ID: uuid.MustParse("bbbb2222-2222-4000-8000-000000000002"), Message: "two"},
		{ID: uuid.MustParse("cccc3333-3333-4000-8000-000000000003"), Message: "three"},
	}
}

func todoWithID(id, msg string) model.Todo {
	return model.Todo{ID: uuid.MustParse(id), Message: msg}
}
