package handlers

import (
	"net/http"
	"strconv"
	"time"

	"todo-list-api/internal/models"
	"todo-list-api/internal/todo"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// An empty dueDate clears the due date.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
	ProjectID   *string `json:"projectId"`
}

/*
*
GetTasks handles GET /api/tasks
Returns the tasks of every non-computed project.
Optional query param: completed=true|false.
*/
func (h *Handler) GetTasks(c *gin.Context) {
	var filter func(*models.Task) bool
	if v := c.Query("completed"); v != "" {
		want, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true or false"})
			return
		}
		filter = func(t *models.Task) bool { return t.Completed() == want }
	}

	tasks := newTaskResponses(h.registry.Tasks(filter))
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// GetTodaysTasks handles GET /api/tasks/today
func (h *Handler) GetTodaysTasks(c *gin.Context) {
	tasks := newTaskResponses(h.registry.TodaysTasks())
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

// GetUpcomingTasks handles GET /api/tasks/upcoming
func (h *Handler) GetUpcomingTasks(c *gin.Context) {
	tasks := newTaskResponses(h.registry.UpcomingTasks())
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

// GetTaskByID handles GET /api/tasks/:id
func (h *Handler) GetTaskByID(c *gin.Context) {
	t, ok := h.registry.TaskByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

// CreateTask handles POST /api/projects/:id/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority, err := models.ParsePriority(req.Priority)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var due time.Time
	if req.DueDate != "" {
		var ok bool
		if due, ok = parseDateFlexible(req.DueDate); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate"})
			return
		}
	}

	t, err := h.registry.CreateTask(c.Param("id"), todo.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    priority,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(t))
}

// UpdateTask handles PUT /api/tasks/:id
func (h *Handler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := todo.TaskChanges{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		ProjectID:   req.ProjectID,
	}
	if req.Priority != nil {
		p, err := models.ParsePriority(*req.Priority)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		changes.Priority = &p
	}
	if req.DueDate != nil {
		var due time.Time
		if *req.DueDate != "" {
			var ok bool
			if due, ok = parseDateFlexible(*req.DueDate); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate"})
				return
			}
		}
		changes.DueDate = &due
	}

	t, err := h.registry.UpdateTask(c.Param("id"), changes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

// ToggleTask handles PATCH /api/tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	completed, err := h.registry.ToggleCompleted(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        c.Param("id"),
		"completed": completed,
	})
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	t, err := h.registry.RemoveTask(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      t.ID(),
	})
}
