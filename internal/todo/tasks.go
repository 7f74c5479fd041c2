package todo

import (
	"time"

	"todo-list-api/internal/models"
)

// TaskChanges describes a partial task update addressed by ids.
// Nil fields are left untouched.
type TaskChanges struct {
	Title       *string
	Description *string
	// DueDate holding the zero time clears the due date.
	DueDate   *time.Time
	Priority  *models.Priority
	Completed *bool
	// ProjectID moves the task to another non-computed project.
	ProjectID *string
}

// TaskByID returns the task with the given id from any project.
func (r *Registry) TaskByID(id string) (*models.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, false
	}
	return r.taskByID(id)
}

func (r *Registry) taskByID(id string) (*models.Task, bool) {
	for _, s := range r.sections {
		for _, p := range s.Projects {
			if t, ok := p.TaskByID(id); ok {
				return t, true
			}
		}
	}
	return nil, false
}

// TaskInput holds the fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	// DueDate is optional; the zero time means no due date.
	DueDate  time.Time
	Priority models.Priority
}

// CreateTask builds a task from in and adds it to the project with the given id.
func (r *Registry) CreateTask(projectID string, in TaskInput) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	return r.addTask(projectID, models.NewTask(in.Title, in.Description, in.DueDate, in.Priority))
}

// AddTask adds task to the project with the given id. A task owned by
// another project is moved.
func (r *Registry) AddTask(projectID string, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	if task == nil {
		return nil, ErrInvalidTask
	}
	return r.addTask(projectID, task)
}

func (r *Registry) addTask(projectID string, task *models.Task) (*models.Task, error) {
	p, ok := r.projectByID(projectID)
	if !ok {
		return nil, ErrProjectNotFound
	}
	if p.Dummy() {
		return nil, models.ErrDummyProject
	}
	if owner := task.Project(); owner != nil && owner != p {
		owner.RemoveTask(task)
	}
	p.AddTask(task)
	r.refreshViews()
	if err := r.persist(Event{Type: EventTaskAdded, ProjectID: p.ID(), TaskID: task.ID()}); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask applies changes to the task with the given id.
func (r *Registry) UpdateTask(id string, changes TaskChanges) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	t, ok := r.taskByID(id)
	if !ok {
		return nil, ErrTaskNotFound
	}
	patch := models.TaskPatch{
		Title:       changes.Title,
		Description: changes.Description,
		DueDate:     changes.DueDate,
		Priority:    changes.Priority,
		Completed:   changes.Completed,
	}
	if changes.ProjectID != nil {
		target, ok := r.projectByID(*changes.ProjectID)
		if !ok {
			return nil, ErrProjectNotFound
		}
		patch.Project = target
	}
	if err := t.Update(patch); err != nil {
		return nil, err
	}
	r.refreshViews()
	if err := r.persist(Event{Type: EventTaskUpdated, ProjectID: ownerID(t), TaskID: t.ID()}); err != nil {
		return nil, err
	}
	return t, nil
}

// RemoveTask deletes the task with the given id from every project holding it.
func (r *Registry) RemoveTask(id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	var removed *models.Task
	projectID := ""
	for _, p := range r.allProjects() {
		t, ok := p.TaskByID(id)
		if !ok {
			continue
		}
		if removed == nil {
			removed = t
			projectID = ownerID(t)
		}
		p.RemoveTask(t)
	}
	if removed == nil {
		return nil, ErrTaskNotFound
	}
	if err := r.persist(Event{Type: EventTaskRemoved, ProjectID: projectID, TaskID: id}); err != nil {
		return nil, err
	}
	return removed, nil
}

// ToggleCompleted flips the completion flag of the task and returns the new value.
func (r *Registry) ToggleCompleted(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return false, ErrNotReady
	}
	t, ok := r.taskByID(id)
	if !ok {
		return false, ErrTaskNotFound
	}
	completed := t.ToggleCompleted()
	if err := r.persist(Event{Type: EventTaskToggled, ProjectID: ownerID(t), TaskID: t.ID()}); err != nil {
		return false, err
	}
	return completed, nil
}

func ownerID(t *models.Task) string {
	if p := t.Project(); p != nil {
		return p.ID()
	}
	return ""
}
