package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// ProgressHandler serves the weekly progress ledger.
type ProgressHandler struct {
	svc *service.ProgressService
}

// NewProgressHandler creates the progress handler.
func NewProgressHandler(svc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// List returns the ledger of a project, update date descending.
// GET /api/v1/project-progress?id_kegiatan=...
func (h *ProgressHandler) List(c *gin.Context) {
	projectID := c.Query("id_kegiatan")
	if projectID == "" {
		BadRequest(c, "id_kegiatan is required")
		return
	}

	records, err := h.svc.List(c.Request.Context(), projectID)
	if err != nil {
		InternalError(c, "Failed to list progress", err)
		return
	}

	Success(c, gin.H{"items": records, "total": len(records)})
}

// Create appends a ledger row; a duplicate (project, item, week) conflicts.
// POST /api/v1/project-progress
func (h *ProgressHandler) Create(c *gin.Context) {
	var req service.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.Record(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, repository.ErrConflict):
			Conflict(c, err.Error())
		default:
			InternalError(c, "Failed to record progress", err)
		}
		return
	}

	Created(c, record)
}

// Update overwrites a ledger row.
// PUT /api/v1/project-progress/:id
func (h *ProgressHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Progress ID is required")
		return
	}

	var req service.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Progress record not found")
			return
		}
		InternalError(c, "Failed to update progress", err)
		return
	}

	Success(c, record)
}

// Delete removes a ledger row; no dependency check.
// DELETE /api/v1/project-progress/:id
func (h *ProgressHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Progress ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Progress record not found")
			return
		}
		InternalError(c, "Failed to delete progress", err)
		return
	}

	Success(c, nil)
}

// Summary returns the derived project rollup.
// GET /api/v1/projects/:id/progress-summary
func (h *ProgressHandler) Summary(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		InternalError(c, "Failed to compute summary", err)
		return
	}

	Success(c, summary)
}
