package model

import (
	"fmt"
	"strings"
	"time"
)

// Status is the completion state of a task.
type Status string

const (
	INCOMPLETE Status = "incomplete"
	COMPLETE   Status = "complete"
)

// ParseStatus parses a status name. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case INCOMPLETE:
		return INCOMPLETE, nil
	case COMPLETE:
		return COMPLETE, nil
	}
	return "", fmt.Errorf("unknown status '%s'", s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == INCOMPLETE || s == COMPLETE
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == COMPLETE {
		return INCOMPLETE
	}
	return COMPLETE
}

// Task is a single entry of the task list.
type Task struct {
	Name      string
	Status    Status
	CreatedAt time.Time // set once on creation
}

// Done reports whether the task is complete.
func (t Task) Done() bool {
	return t.Status == COMPLETE
}

// Equal compares all fields, CreatedAt to the nanosecond.
func (t Task) Equal(other Task) bool {
	return t.Name == other.Name && t.Status == other.Status && t.CreatedAt.Equal(other.CreatedAt)
}

// Entry pairs a task with its position in the unfiltered collection.
// Index is the only valid key for edit, delete and toggle.
type Entry struct {
	Index int
	Task  Task
}
