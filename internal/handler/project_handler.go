package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// ProjectHandler serves project CRUD and the progress recap export.
type ProjectHandler struct {
	svc       *service.ProjectService
	exportSvc *service.ExportService
}

// NewProjectHandler creates the project handler.
func NewProjectHandler(svc *service.ProjectService, exportSvc *service.ExportService) *ProjectHandler {
	return &ProjectHandler{svc: svc, exportSvc: exportSvc}
}

// List returns projects, filterable by status and name keyword.
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
		"status":  c.Query("status"),
	}

	projects, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		InternalError(c, "Failed to list projects", err)
		return
	}

	Success(c, gin.H{"items": projects, "total": len(projects)})
}

// Get returns a project with its work items.
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	project, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "Project not found")
		return
	}

	Success(c, project)
}

// Create registers a project.
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := GetUserID(c)
	project, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		InternalError(c, "Failed to create project", err)
		return
	}

	Created(c, project)
}

// Update overwrites project fields.
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Project not found")
			return
		}
		InternalError(c, "Failed to update project", err)
		return
	}

	Success(c, project)
}

// Delete removes a project; blocked while any dependent row exists.
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, service.ErrHasDependents):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to delete project", err)
		}
		return
	}

	Success(c, nil)
}

// ListWorkItems returns the work-item reference list of a project.
// GET /api/v1/projects/:id/work-items
func (h *ProjectHandler) ListWorkItems(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	items, err := h.svc.ListWorkItems(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Project not found")
			return
		}
		InternalError(c, "Failed to list work items", err)
		return
	}

	Success(c, gin.H{"items": items, "total": len(items)})
}

// DeleteWorkItem removes one work item from a project's reference list.
// DELETE /api/v1/projects/:id/work-items/:itemId
func (h *ProjectHandler) DeleteWorkItem(c *gin.Context) {
	id := c.Param("id")
	itemID := c.Param("itemId")
	if id == "" || itemID == "" {
		BadRequest(c, "Project ID and work item ID are required")
		return
	}

	if err := h.svc.DeleteWorkItem(c.Request.Context(), id, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Work item not found")
			return
		}
		InternalError(c, "Failed to delete work item", err)
		return
	}

	Success(c, nil)
}

// ExportProgress streams the progress recap workbook.
// GET /api/v1/projects/:id/progress-export
func (h *ProjectHandler) ExportProgress(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	f, filename, err := h.exportSvc.ProgressRecap(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Project not found")
			return
		}
		InternalError(c, "Failed to export progress", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
