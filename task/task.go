// Package task is a minimal task record that stores its repeat schedule as
// an opaque rule string and exchanges tasks with calendar clients as VTODOs.
package task

import (
	"strings"
	"time"

	"github.com/cyp0633/librecur/recurrence"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

// Task is a to-do item. Rule holds the recurrence rule exactly as stored;
// it is only interpreted through the recurrence package.
type Task struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Rule    string    `json:"rule,omitempty"`
	Created time.Time `json:"created"`
}

// New creates a non-recurring task with a random ID
func New(title string) *Task {
	return &Task{
		ID:      uuid.New(),
		Title:   title,
		Created: time.Now(),
	}
}

// Recurrence parses the stored rule. It is None for non-recurring tasks.
func (t *Task) Recurrence() mo.Option[recurrence.Pattern] {
	return recurrence.Parse(t.Rule)
}

// SetRecurrence validates p and stores its canonical rule
func (t *Task) SetRecurrence(p recurrence.Pattern) error {
	if err := p.Err(); err != nil {
		return err
	}
	t.Rule = recurrence.ToRule(p)
	return nil
}

// ClearRecurrence makes the task non-recurring
func (t *Task) ClearRecurrence() {
	t.Rule = ""
}

// IsRecurring reports whether the task has a non-blank rule
func (t *Task) IsRecurring() bool {
	return strings.TrimSpace(t.Rule) != ""
}

// Describe returns the English description of the schedule, or "" when the
// task does not recur
func (t *Task) Describe() string {
	p, ok := t.Recurrence().Get()
	if !ok {
		return ""
	}
	return recurrence.Describe(p)
}
