package todo

import (
	"slices"

	"todo-list-api/internal/models"
)

// Tasks returns the tasks of every non-computed project, keeping only those
// accepted by filter when it is non-nil.
func (r *Registry) Tasks(filter func(*models.Task) bool) []*models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	return r.ownedTasks(filter)
}

// TodaysTasks returns the tasks due on the current calendar day.
func (r *Registry) TodaysTasks() []*models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	return r.todaysTasks()
}

// UpcomingTasks returns the tasks due today or later, earliest first.
// Tasks due on the same day keep their relative order.
func (r *Registry) UpcomingTasks() []*models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return nil
	}
	return r.upcomingTasks()
}

func (r *Registry) ownedTasks(filter func(*models.Task) bool) []*models.Task {
	var out []*models.Task
	for _, p := range r.allProjects() {
		if p.Dummy() {
			continue
		}
		out = append(out, p.Tasks(filter)...)
	}
	return out
}

func (r *Registry) todaysTasks() []*models.Task {
	today := r.now()
	return r.ownedTasks(func(t *models.Task) bool { return t.DueOn(today) })
}

func (r *Registry) upcomingTasks() []*models.Task {
	today := r.now()
	tasks := r.ownedTasks(func(t *models.Task) bool { return t.DueOnOrAfter(today) })
	slices.SortStableFunc(tasks, func(a, b *models.Task) int {
		return a.DueDate().Compare(b.DueDate())
	})
	return tasks
}
