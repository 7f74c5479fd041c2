package handlers

import (
	"errors"
	"net/http"
	"time"

	"todo-list-api/internal/models"
	"todo-list-api/internal/storage"
	"todo-list-api/internal/todo"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Handler serves the registry over HTTP.
type Handler struct {
	registry *todo.Registry
	logger   *log.Logger
}

// New returns a Handler for registry.
func New(registry *todo.Registry, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{registry: registry, logger: logger}
}

// TaskResponse is the API representation of a task
type TaskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *string         `json:"dueDate"`
	Priority    models.Priority `json:"priority"`
	Completed   bool            `json:"completed"`
	ProjectID   string          `json:"projectId"`
}

// ProjectResponse is the API representation of a project
type ProjectResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Active    bool           `json:"active"`
	Preserve  bool           `json:"preserve"`
	Dummy     bool           `json:"dummy"`
	TaskCount int            `json:"taskCount"`
	Tasks     []TaskResponse `json:"tasks,omitempty"`
}

// SectionResponse is one named list of projects
type SectionResponse struct {
	Key      string            `json:"key"`
	Title    string            `json:"title"`
	Projects []ProjectResponse `json:"projects"`
}

const dateLayout = "2006-01-02"

func newTaskResponse(t *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority(),
		Completed:   t.Completed(),
	}
	if t.HasDueDate() {
		due := t.DueDate().Format(dateLayout)
		resp.DueDate = &due
	}
	if p := t.Project(); p != nil {
		resp.ProjectID = p.ID()
	}
	return resp
}

func newTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}

func newProjectResponse(p *models.Project, withTasks bool) ProjectResponse {
	resp := ProjectResponse{
		ID:        p.ID(),
		Name:      p.Name(),
		Active:    p.Active(),
		Preserve:  p.Preserved(),
		Dummy:     p.Dummy(),
		TaskCount: p.Len(),
	}
	if withTasks {
		resp.Tasks = newTaskResponses(p.Tasks(nil))
	}
	return resp
}

func newProjectResponses(projects []*models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, newProjectResponse(p, false))
	}
	return out
}

// respondError maps registry and model errors onto HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Failed to persist changes"
	switch {
	case errors.Is(err, todo.ErrProjectNotFound):
		status, msg = http.StatusNotFound, "Project not found"
	case errors.Is(err, todo.ErrTaskNotFound):
		status, msg = http.StatusNotFound, "Task not found"
	case errors.Is(err, todo.ErrProjectPreserved),
		errors.Is(err, todo.ErrUseChangeActive),
		errors.Is(err, todo.ErrFlagsReadOnly),
		errors.Is(err, models.ErrDummyProject):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, models.ErrInvalidPriority),
		errors.Is(err, todo.ErrInvalidTask),
		errors.Is(err, todo.ErrInvalidProject):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, todo.ErrNotReady), errors.Is(err, storage.ErrCorruptSnapshot):
		status, msg = http.StatusServiceUnavailable, "Storage unavailable"
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func parseDateFlexible(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, true
	}
	layouts := []string{
		dateLayout,    // ISO date
		"2 Jan 2006",  // e.g., 30 Oct 2025
		"02 Jan 2006", // zero-padded day
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, dateStr, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Priorities handles GET /api/priorities
func (h *Handler) Priorities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"priorities": models.Priorities()})
}
