package models

import "slices"

// Project is a named, ordered collection of tasks.
//
// Dummy projects hold computed views onto tasks owned elsewhere, so adding
// or removing a task never touches its back-reference.
type Project struct {
	id       string
	name     string
	active   bool
	preserve bool
	dummy    bool
	tasks    []*Task
}

// ProjectOptions controls construction of a Project.
type ProjectOptions struct {
	// Active marks the project currently selected. The registry keeps exactly one active.
	Active bool
	// Preserve marks a built-in project that cannot be renamed or deleted.
	Preserve bool
	// Dummy marks a computed project whose tasks are a derived view.
	Dummy bool
}

// ProjectPatch describes a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Name     *string
	Active   *bool
	Preserve *bool
	Dummy    *bool
}

// ProjectRecord is the persisted form of a Project. The "perserve" key is
// kept for compatibility with snapshots written by earlier clients.
type ProjectRecord struct {
	Name     string       `json:"name"`
	Active   bool         `json:"active"`
	Preserve bool         `json:"perserve"`
	Dummy    bool         `json:"dummy"`
	Tasks    []TaskRecord `json:"tasks"`
}

// NewProject creates a project with a fresh id and absorbs tasks in order.
func NewProject(name string, opts ProjectOptions, tasks ...*Task) *Project {
	p := &Project{
		id:       newID(),
		name:     name,
		active:   opts.Active,
		preserve: opts.Preserve,
		dummy:    opts.Dummy,
	}
	p.AddTasks(tasks)
	return p
}

// ProjectFromRecord rebuilds a project and its tasks from persisted form.
func ProjectFromRecord(rec ProjectRecord) (*Project, error) {
	tasks := make([]*Task, 0, len(rec.Tasks))
	for _, tr := range rec.Tasks {
		t, err := TaskFromRecord(tr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return NewProject(rec.Name, ProjectOptions{
		Active:   rec.Active,
		Preserve: rec.Preserve,
		Dummy:    rec.Dummy,
	}, tasks...), nil
}

func (p *Project) ID() string      { return p.id }
func (p *Project) Name() string    { return p.name }
func (p *Project) Active() bool    { return p.active }
func (p *Project) Preserved() bool { return p.preserve }
func (p *Project) Dummy() bool     { return p.dummy }

// Len returns the number of tasks in the project.
func (p *Project) Len() int { return len(p.tasks) }

// TaskByID returns the task with the given id.
func (p *Project) TaskByID(id string) (*Task, bool) {
	for _, t := range p.tasks {
		if t.id == id {
			return t, true
		}
	}
	return nil, false
}

// Tasks returns a copy of the task list in insertion order, keeping only
// tasks accepted by filter when it is non-nil.
func (p *Project) Tasks(filter func(*Task) bool) []*Task {
	if filter == nil {
		return slices.Clone(p.tasks)
	}
	out := make([]*Task, 0, len(p.tasks))
	for _, t := range p.tasks {
		if filter(t) {
			out = append(out, t)
		}
	}
	return out
}

// AddTask appends t unless a task with the same id is already present.
func (p *Project) AddTask(t *Task) *Task {
	if t == nil {
		return nil
	}
	if _, ok := p.TaskByID(t.id); ok {
		return t
	}
	p.tasks = append(p.tasks, t)
	if !p.dummy {
		t.project = p
	}
	return t
}

// AddTasks adds every task in order and returns tasks unchanged.
func (p *Project) AddTasks(tasks []*Task) []*Task {
	for _, t := range tasks {
		p.AddTask(t)
	}
	return tasks
}

// RemoveTask removes the task with t's id, if present.
func (p *Project) RemoveTask(t *Task) *Task {
	if t == nil {
		return nil
	}
	i := slices.IndexFunc(p.tasks, func(x *Task) bool { return x.id == t.id })
	if i < 0 {
		return t
	}
	removed := p.tasks[i]
	p.tasks = slices.Delete(p.tasks, i, i+1)
	if !p.dummy && removed.project == p {
		removed.project = nil
	}
	return t
}

// RemoveTasks empties the project and returns the tasks it held.
func (p *Project) RemoveTasks() []*Task {
	previous := p.tasks
	if !p.dummy {
		for _, t := range previous {
			if t.project == p {
				t.project = nil
			}
		}
	}
	p.tasks = nil
	return previous
}

// Update applies patch. Task membership is not part of a patch.
func (p *Project) Update(patch ProjectPatch) {
	if patch.Name != nil {
		p.name = *patch.Name
	}
	if patch.Active != nil {
		p.active = *patch.Active
	}
	if patch.Preserve != nil {
		p.preserve = *patch.Preserve
	}
	if patch.Dummy != nil {
		p.dummy = *patch.Dummy
	}
}

// ToRecord returns the persisted form of the project including its tasks.
func (p *Project) ToRecord() ProjectRecord {
	rec := ProjectRecord{
		Name:     p.name,
		Active:   p.active,
		Preserve: p.preserve,
		Dummy:    p.dummy,
		Tasks:    make([]TaskRecord, 0, len(p.tasks)),
	}
	for _, t := range p.tasks {
		rec.Tasks = append(rec.Tasks, t.ToRecord())
	}
	return rec
}
