// Package flatfile stores the todo list in a line-oriented text file.
//
// Every operation reads the whole file. Mutations apply the change in memory
// and replace the file through a temporary sibling and a rename, so the file
// on disk always holds a complete list.
package flatfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todoprompt/internal/logging"
	"github.com/idilsaglam/todoprompt/internal/model"
	"github.com/idilsaglam/todoprompt/internal/store"
)

// Store is the flat-file todo store.
type Store struct {
	path   string
	logger *log.Logger
}

// Open prepares the file at path, creating it empty on first use.
func Open(path string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	path = filepath.Clean(path)
	if err := ensureFile(path); err != nil {
		return nil, err
	}
	logger.Debug("flat file store opened", "path", path)
	return &Store{path: path, logger: logger}, nil
}

func ensureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return store.ReadFailure("stat file", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return store.WriteFailure("mkdir", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return store.WriteFailure("create file", err)
	}
	if err := f.Close(); err != nil {
		return store.WriteFailure("create file", err)
	}
	return nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

func (s *Store) List(ctx context.Context) (model.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.load()
}

func (s *Store) Add(ctx context.Context, todo model.Todo) error {
	_, err := s.update(ctx, "add", func(list model.List) (model.List, int64, error) {
		if list.Find(todo.ID) >= 0 {
			return nil, 0, fmt.Errorf("%w: %s", store.ErrDuplicateID, todo.ID)
		}
		return append(list, todo), 1, nil
	})
	return err
}

func (s *Store) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.update(ctx, "remove", func(list model.List) (model.List, int64, error) {
		i := list.Find(id)
		if i < 0 {
			return list, 0, nil
		}
		return append(list[:i], list[i+1:]...), 1, nil
	})
}

// MarkDone reports 1 for an already done todo as well.
func (s *Store) MarkDone(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.update(ctx, "mark done", func(list model.List) (model.List, int64, error) {
		i := list.Find(id)
		if i < 0 {
			return list, 0, nil
		}
		list[i].Done = true
		return list, 1, nil
	})
}

// Clear truncates the list without reading it, so it also recovers a
// corrupt file.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.save(nil); err != nil {
		return err
	}
	s.logger.Debug("cleared todos", "path", s.path)
	return nil
}

// Close is a no-op; the file is only held open during an operation.
func (s *Store) Close() error { return nil }

// update is the read-modify-write boundary. Nothing is written when fn
// reports zero modified records.
func (s *Store) update(ctx context.Context, op string, fn func(model.List) (model.List, int64, error)) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	list, err := s.load()
	if err != nil {
		return 0, err
	}
	next, n, err := fn(list)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		s.logger.Debug("nothing to "+op, "path", s.path)
		return 0, nil
	}
	if err := s.save(next); err != nil {
		return 0, err
	}
	s.logger.Debug(op, "path", s.path, "modified", n, "todos", len(next))
	return n, nil
}

func (s *Store) load() (model.List, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, store.ReadFailure("read file", err)
	}
	list, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return list, nil
}

func (s *Store) save(list model.List) error {
	if err := writeFileAtomic(s.path, Marshal(list), 0o644); err != nil {
		return store.WriteFailure("write file", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var _ store.Store = (*Store)(nil)
