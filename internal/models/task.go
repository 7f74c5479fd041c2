package models

import (
	"time"

	"todo-list-api/internal/idgen"
)

// newID generates the ids of new tasks and projects.
var newID idgen.Func = idgen.Generate

// Task represents a single to-do item.
//
// A task is owned by at most one non-computed Project; project is a
// back-reference maintained by Project.AddTask and Project.RemoveTask.
type Task struct {
	id          string
	title       string
	description string
	dueDate     time.Time
	priority    Priority
	completed   bool
	project     *Project
}

// TaskPatch describes a partial task update. Nil fields are left untouched.
// A non-nil DueDate holding the zero time clears the due date.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *Priority
	Completed   *bool
	Project     *Project
}

// TaskRecord is the persisted form of a Task. It carries neither the id nor
// the owning project.
type TaskRecord struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
}

// NewTask creates an incomplete task with a fresh id.
func NewTask(title, description string, dueDate time.Time, priority Priority) *Task {
	if priority == "" {
		priority = PriorityNormal
	}
	t := &Task{
		id:          newID(),
		title:       title,
		description: description,
		priority:    priority,
	}
	t.SetDueDate(dueDate)
	return t
}

// TaskFromRecord rebuilds a task from its persisted form. A fresh id is assigned.
func TaskFromRecord(rec TaskRecord) (*Task, error) {
	priority, err := ParsePriority(string(rec.Priority))
	if err != nil {
		return nil, err
	}
	var due time.Time
	if rec.DueDate != nil {
		due = *rec.DueDate
	}
	t := NewTask(rec.Title, rec.Description, due, priority)
	t.completed = rec.Completed
	return t, nil
}

func (t *Task) ID() string          { return t.id }
func (t *Task) Title() string       { return t.title }
func (t *Task) Description() string { return t.description }
func (t *Task) Priority() Priority  { return t.priority }
func (t *Task) Completed() bool     { return t.completed }

// DueDate returns the due date at local midnight, or the zero time if unset.
func (t *Task) DueDate() time.Time { return t.dueDate }

// HasDueDate reports whether a due date is set.
func (t *Task) HasDueDate() bool { return !t.dueDate.IsZero() }

// Project returns the owning project, or nil.
func (t *Task) Project() *Project { return t.project }

// SetDueDate stores d truncated to local midnight.
func (t *Task) SetDueDate(d time.Time) {
	t.dueDate = StartOfDay(d)
}

// DueOn reports whether the task is due on the calendar day of day.
func (t *Task) DueOn(day time.Time) bool {
	return t.HasDueDate() && SameDay(t.dueDate, day)
}

// DueOnOrAfter reports whether the task is due on the calendar day of day or later.
func (t *Task) DueOnOrAfter(day time.Time) bool {
	return t.HasDueDate() && !t.dueDate.Before(StartOfDay(day))
}

// ToggleCompleted flips the completion flag and returns the new value.
func (t *Task) ToggleCompleted() bool {
	t.completed = !t.completed
	return t.completed
}

// Update applies patch. When patch.Project names a different project the
// task is moved through the projects' membership operations so both sides
// stay consistent. Nothing is applied if patch is invalid.
func (t *Task) Update(patch TaskPatch) error {
	if patch.Priority != nil && !patch.Priority.Valid() {
		return ErrInvalidPriority
	}
	if target := patch.Project; target != nil && (t.project == nil || t.project.id != target.id) {
		if target.dummy {
			return ErrDummyProject
		}
		if t.project != nil {
			t.project.RemoveTask(t)
		}
		target.AddTask(t)
	}

	if patch.Title != nil {
		t.title = *patch.Title
	}
	if patch.Description != nil {
		t.description = *patch.Description
	}
	if patch.DueDate != nil {
		t.SetDueDate(*patch.DueDate)
	}
	if patch.Priority != nil {
		t.priority = *patch.Priority
	}
	if patch.Completed != nil {
		t.completed = *patch.Completed
	}
	return nil
}

// ToRecord returns the persisted form of the task.
func (t *Task) ToRecord() TaskRecord {
	rec := TaskRecord{
		Title:       t.title,
		Description: t.description,
		Priority:    t.priority,
		Completed:   t.completed,
	}
	if t.HasDueDate() {
		due := t.dueDate
		rec.DueDate = &due
	}
	return rec
}
