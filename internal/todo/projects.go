package todo

import (
	"slices"

	"todo-list-api/internal/models"
)

// ProjectByID returns the project with the given id from either section.
func (r *Registry) ProjectByID(id string) (*models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, false
	}
	r.refreshViews()
	return r.projectByID(id)
}

// DefaultProject returns the built-in project that receives new tasks (Inbox).
func (r *Registry) DefaultProject() (*models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, false
	}
	return r.find(isDefault)
}

// ActiveProject returns the currently selected project.
func (r *Registry) ActiveProject() (*models.Project, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, false
	}
	r.refreshViews()
	return r.find((*models.Project).Active)
}

// Projects returns every project, default section first, keeping only those
// accepted by filter when it is non-nil. The slice is a fresh copy.
func (r *Registry) Projects(filter func(*models.Project) bool) []*models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	r.refreshViews()
	all := r.allProjects()
	if filter == nil {
		return all
	}
	return slices.DeleteFunc(all, func(p *models.Project) bool { return !filter(p) })
}

// Sections returns a copy of both sections. The projects inside are shared.
func (r *Registry) Sections() []Section {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	r.refreshViews()
	out := make([]Section, 0, len(r.sections))
	for _, s := range r.sections {
		out = append(out, Section{Key: s.Key, Title: s.Title, Projects: slices.Clone(s.Projects)})
	}
	return out
}

// AddProject appends p to the user projects. A project whose id is already
// registered is returned as is without persisting. Adding an active project
// makes it the active one.
func (r *Registry) AddProject(p *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	if p == nil {
		return nil, ErrInvalidProject
	}
	if existing, ok := r.projectByID(p.ID()); ok {
		return existing, nil
	}
	if p.Active() {
		if current, ok := r.find((*models.Project).Active); ok {
			setActive(current, false)
		}
	}
	user := r.section(models.SectionUserProjects)
	user.Projects = append(user.Projects, p)
	r.refreshViews()
	if err := r.persist(Event{Type: EventProjectAdded, ProjectID: p.ID()}); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProject applies patch to the project with the given id. Built-in
// projects cannot be renamed, the active flag goes through
// ChangeActiveProject, and the preserve and dummy flags are read-only.
func (r *Registry) UpdateProject(id string, patch models.ProjectPatch) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	p, ok := r.projectByID(id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	switch {
	case patch.Active != nil:
		return nil, ErrUseChangeActive
	case patch.Preserve != nil, patch.Dummy != nil:
		return nil, ErrFlagsReadOnly
	case patch.Name != nil && p.Preserved():
		return nil, ErrProjectPreserved
	}
	p.Update(patch)
	if err := r.persist(Event{Type: EventProjectUpdated, ProjectID: p.ID()}); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveProject deletes a user project together with its tasks. Built-in
// projects are rejected with ErrProjectPreserved. If the removed project was
// active the default project becomes active.
func (r *Registry) RemoveProject(id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil, ErrNotReady
	}
	p, ok := r.projectByID(id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	user := r.section(models.SectionUserProjects)
	if r.sectionOf(p) != user {
		return nil, ErrProjectPreserved
	}
	user.Projects = slices.DeleteFunc(user.Projects, func(x *models.Project) bool { return x.ID() == id })
	if p.Active() {
		setActive(p, false)
		if def, ok := r.find(isDefault); ok {
			setActive(def, true)
		}
	}
	r.refreshViews()
	if err := r.persist(Event{Type: EventProjectRemoved, ProjectID: p.ID()}); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangeActiveProject makes the project with the given id the only active one.
func (r *Registry) ChangeActiveProject(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return ErrNotReady
	}
	target, ok := r.projectByID(id)
	if !ok {
		return ErrProjectNotFound
	}
	// every active project is cleared, so a snapshot with none is handled too
	for _, p := range r.allProjects() {
		if p.Active() && p != target {
			setActive(p, false)
		}
	}
	setActive(target, true)
	return r.persist(Event{Type: EventActiveChanged, ProjectID: target.ID()})
}
