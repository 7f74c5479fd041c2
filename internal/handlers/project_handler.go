package handlers

import (
	"net/http"

	"todo-list-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name   string `json:"name" binding:"required"`
	Active bool   `json:"active"`
}

// UpdateProjectRequest represents the request payload for renaming a project
type UpdateProjectRequest struct {
	Name *string `json:"name"`
}

// GetSections handles GET /api/sections
func (h *Handler) GetSections(c *gin.Context) {
	sections := h.registry.Sections()
	resp := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		resp = append(resp, SectionResponse{
			Key:      s.Key,
			Title:    s.Title,
			Projects: newProjectResponses(s.Projects),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sections": resp})
}

// GetProjects handles GET /api/projects
func (h *Handler) GetProjects(c *gin.Context) {
	projects := newProjectResponses(h.registry.Projects(nil))
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProjectByID handles GET /api/projects/:id
func (h *Handler) GetProjectByID(c *gin.Context) {
	p, ok := h.registry.ProjectByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(p, true))
}

// GetDefaultProject handles GET /api/projects/default
func (h *Handler) GetDefaultProject(c *gin.Context) {
	p, ok := h.registry.DefaultProject()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(p, true))
}

// GetActiveProject handles GET /api/projects/active
func (h *Handler) GetActiveProject(c *gin.Context) {
	p, ok := h.registry.ActiveProject()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(p, true))
}

// CreateProject handles POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.registry.AddProject(models.NewProject(req.Name, models.ProjectOptions{Active: req.Active}))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProjectResponse(p, false))
}

// UpdateProject handles PUT /api/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.registry.UpdateProject(c.Param("id"), models.ProjectPatch{Name: req.Name})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(p, false))
}

// DeleteProject handles DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	p, err := h.registry.RemoveProject(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      p.ID(),
	})
}

// ActivateProject handles POST /api/projects/:id/activate
func (h *Handler) ActivateProject(c *gin.Context) {
	if err := h.registry.ChangeActiveProject(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	p, _ := h.registry.ActiveProject()
	c.JSON(http.StatusOK, newProjectResponse(p, true))
}
