// Package session tracks the add/edit form: whether it is open, the draft
// being typed, and which task an edit targets.
package session

import (
	"errors"
	"fmt"

	"github.com/harrisonrobin/taskpad/pkg/model"
	"github.com/harrisonrobin/taskpad/pkg/store"
)

const (
	MsgAdded     = "Task added successfully!"
	MsgUpdated   = "Task updated successfully!"
	MsgDeleted   = "Task deleted successfully!"
	MsgNoChanges = "No changes made!"
	MsgEmptyName = "Task name cannot be empty!"
	MsgNotFound  = "Task not found!"
	MsgFailed    = "Task could not be saved!"
)

// ErrClosed is returned for draft changes or submits while no form is open.
var ErrClosed = errors.New("no task form open")

type Mode int

const (
	CLOSED Mode = iota
	CREATING
	EDITING
)

func (m Mode) String() string {
	switch m {
	case CREATING:
		return "creating"
	case EDITING:
		return "editing"
	}
	return "closed"
}

// Tasks is the part of the task store a session drives.
type Tasks interface {
	Create(name string, status model.Status) (model.Task, error)
	Update(index int, name string, status model.Status) (model.Task, error)
	Remove(index int) (model.Task, error)
	ToggleStatus(index int) (model.Task, error)
	Get(index int) (model.Task, error)
}

// Notifier receives the outcome of submitted actions.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Snapshot is the read-only state renderers draw from.
type Snapshot struct {
	Mode        Mode
	DraftName   string
	DraftStatus model.Status
	// TargetIndex is the canonical index being edited, -1 unless editing.
	TargetIndex int
}

type Session struct {
	tasks  Tasks
	notify Notifier

	mode   Mode
	name   string
	status model.Status
	target int
}

func New(tasks Tasks, notify Notifier) *Session {
	s := &Session{tasks: tasks, notify: notify}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.mode = CLOSED
	s.name = ""
	s.status = model.INCOMPLETE
	s.target = -1
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) Snapshot() Snapshot {
	return Snapshot{Mode: s.mode, DraftName: s.name, DraftStatus: s.status, TargetIndex: s.target}
}

// OpenForCreate opens an empty form. An open edit is discarded first.
func (s *Session) OpenForCreate() {
	s.reset()
	s.mode = CREATING
}

// OpenForEdit opens the form seeded from the task at canonical index. An
// open form is discarded first. On error the session is left unchanged.
func (s *Session) OpenForEdit(index int) error {
	t, err := s.tasks.Get(index)
	if err != nil {
		return err
	}
	s.reset()
	s.mode = EDITING
	s.name = t.Name
	s.status = t.Status
	s.target = index
	return nil
}

func (s *Session) SetName(name string) error {
	if s.mode == CLOSED {
		return ErrClosed
	}
	s.name = name
	return nil
}

func (s *Session) SetStatus(status model.Status) error {
	if s.mode == CLOSED {
		return ErrClosed
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status '%s'", store.ErrValidation, status)
	}
	s.status = status
	return nil
}

// Cancel closes the form without touching the store.
func (s *Session) Cancel() {
	s.reset()
}

// Submit commits the draft. A no-op edit or an invalid draft keeps the form
// open so it can be corrected; the returned error says which.
func (s *Session) Submit() error {
	switch s.mode {
	case CREATING:
		_, err := s.tasks.Create(s.name, s.status)
		switch {
		case err == nil:
			s.notify.Success(MsgAdded)
			s.reset()
			return nil
		case errors.Is(err, store.ErrValidation):
			s.notify.Error(MsgEmptyName)
		default:
			s.notify.Error(MsgFailed)
		}
		return err

	case EDITING:
		_, err := s.tasks.Update(s.target, s.name, s.status)
		switch {
		case err == nil:
			s.notify.Success(MsgUpdated)
			s.reset()
			return nil
		case errors.Is(err, store.ErrNoOp):
			s.notify.Error(MsgNoChanges)
		case errors.Is(err, store.ErrNotFound):
			s.notify.Error(MsgNotFound)
			s.reset()
		case errors.Is(err, store.ErrValidation):
			s.notify.Error(MsgEmptyName)
		default:
			s.notify.Error(MsgFailed)
		}
		return err
	}
	return ErrClosed
}

// Remove deletes the task at canonical index. An edit of a later task keeps
// pointing at the same task; an edit of the removed task is closed.
func (s *Session) Remove(index int) error {
	if _, err := s.tasks.Remove(index); err != nil {
		s.notify.Error(MsgNotFound)
		return err
	}
	s.notify.Success(MsgDeleted)

	if s.mode == EDITING {
		switch {
		case s.target == index:
			s.reset()
		case s.target > index:
			s.target--
		}
	}
	return nil
}

// Toggle flips the status of the task at canonical index.
func (s *Session) Toggle(index int) error {
	if _, err := s.tasks.ToggleStatus(index); err != nil {
		s.notify.Error(MsgNotFound)
		return err
	}
	return nil
}
