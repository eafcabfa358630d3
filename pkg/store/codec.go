package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/taskpad/pkg/model"
)

// record is the stored form of a task. Lists written by the browser version
// of the app carry the status as "state".
type record struct {
	Name      string    `json:"name"`
	Status    string    `json:"status,omitempty"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Encode serializes tasks as a JSON array in canonical order.
func Encode(tasks []model.Task) (string, error) {
	records := make([]record, len(tasks))
	for i, t := range tasks {
		records[i] = record{Name: t.Name, Status: string(t.Status), CreatedAt: t.CreatedAt}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode tasks: %w", err)
	}
	return string(b), nil
}

// Decode parses a value written by Encode. Any invalid record fails the
// whole value.
func Decode(s string) ([]model.Task, error) {
	if strings.TrimSpace(s) == "" || strings.TrimSpace(s) == "null" {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal([]byte(s), &records); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(records))
	for i, r := range records {
		status := r.Status
		if status == "" {
			status = r.State
		}
		st, err := model.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("record %d: empty name", i)
		}
		tasks = append(tasks, model.Task{Name: r.Name, Status: st, CreatedAt: r.CreatedAt})
	}
	return tasks, nil
}
