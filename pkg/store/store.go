// Package store holds the canonical task list and writes it through to a
// key-value store after every change.
package store

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/harrisonrobin/taskpad/pkg/kv"
	"github.com/harrisonrobin/taskpad/pkg/model"
)

// DefaultKey is the key the task list is stored under.
const DefaultKey = "tasks"

// Store is not safe for concurrent use. Callers serialize access.
type Store struct {
	tasks []model.Task
	kv    kv.Store
	key   string
	clock clockwork.Clock
	log   *log.Logger
}

type Option func(*Store)

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New loads the task list from backend. A missing or unreadable value
// yields an empty list.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    backend,
		key:   DefaultKey,
		clock: clockwork.NewRealClock(),
		log:   log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.log.Printf("Warning: could not read task list '%s': %v", s.key, err)
		return
	}
	if !ok {
		return
	}
	tasks, err := Decode(raw)
	if err != nil {
		s.log.Printf("Warning: ignoring corrupt task list '%s': %v", s.key, err)
		return
	}
	s.tasks = tasks
}

// persist writes the whole list. Failures are logged and the in-memory list
// stays authoritative.
func (s *Store) persist() {
	raw, err := Encode(s.tasks)
	if err != nil {
		s.log.Printf("Warning: could not encode task list: %v", err)
		return
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		s.log.Printf("Warning: could not save task list '%s': %v", s.key, err)
	}
}

func (s *Store) checkIndex(op string, index int) error {
	if index < 0 || index >= len(s.tasks) {
		s.log.Printf("Warning: %s: index %d out of range (have %d tasks)", op, index, len(s.tasks))
		return fmt.Errorf("%s: %w: index %d", op, ErrNotFound, index)
	}
	return nil
}

func validate(name string, status model.Status) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status '%s'", ErrValidation, status)
	}
	return nil
}

// Create appends a new task stamped with the current time.
func (s *Store) Create(name string, status model.Status) (model.Task, error) {
	if err := validate(name, status); err != nil {
		return model.Task{}, err
	}
	t := model.Task{Name: name, Status: status, CreatedAt: s.clock.Now()}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, nil
}

// Update replaces the name and status of the task at index. CreatedAt is
// kept. It returns ErrNoOp if both values equal the current ones.
func (s *Store) Update(index int, name string, status model.Status) (model.Task, error) {
	if err := s.checkIndex("update", index); err != nil {
		return model.Task{}, err
	}
	if err := validate(name, status); err != nil {
		return model.Task{}, err
	}
	cur := s.tasks[index]
	if cur.Name == name && cur.Status == status {
		return cur, fmt.Errorf("update: %w", ErrNoOp)
	}
	cur.Name = name
	cur.Status = status
	s.tasks[index] = cur
	s.persist()
	return cur, nil
}

// Remove deletes the task at index. Later tasks move down by one.
func (s *Store) Remove(index int) (model.Task, error) {
	if err := s.checkIndex("remove", index); err != nil {
		return model.Task{}, err
	}
	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index:index], s.tasks[index+1:]...)
	s.persist()
	return removed, nil
}

// ToggleStatus flips the task at index between complete and incomplete.
func (s *Store) ToggleStatus(index int) (model.Task, error) {
	if err := s.checkIndex("toggle", index); err != nil {
		return model.Task{}, err
	}
	s.tasks[index].Status = s.tasks[index].Status.Toggle()
	s.persist()
	return s.tasks[index], nil
}

// List returns the tasks matching filter in canonical order, each paired
// with its canonical index.
func (s *Store) List(filter model.Filter) []model.Entry {
	entries := make([]model.Entry, 0, len(s.tasks))
	for i, t := range s.tasks {
		if filter.Matches(t) {
			entries = append(entries, model.Entry{Index: i, Task: t})
		}
	}
	return entries
}

func (s *Store) Get(index int) (model.Task, error) {
	if err := s.checkIndex("get", index); err != nil {
		return model.Task{}, err
	}
	return s.tasks[index], nil
}

func (s *Store) Len() int { return len(s.tasks) }

// Counts returns the number of incomplete and complete tasks.
func (s *Store) Counts() (incomplete, complete int) {
	for _, t := range s.tasks {
		if t.Done() {
			complete++
		} else {
			incomplete++
		}
	}
	return incomplete, complete
}

// Export returns the serialized task list as it is written to the backend.
func (s *Store) Export() (string, error) {
	return Encode(s.tasks)
}
