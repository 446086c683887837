package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// MethodHandler serves method-of-work reports.
type MethodHandler struct {
	svc *service.MethodService
}

// NewMethodHandler creates the method handler.
func NewMethodHandler(svc *service.MethodService) *MethodHandler {
	return &MethodHandler{svc: svc}
}

// List returns the method reports of a project.
// GET /api/v1/method-reports?id_kegiatan=...
func (h *MethodHandler) List(c *gin.Context) {
	projectID := c.Query("id_kegiatan")
	if projectID == "" {
		BadRequest(c, "id_kegiatan is required")
		return
	}

	reports, err := h.svc.List(c.Request.Context(), projectID)
	if err != nil {
		InternalError(c, "Failed to list method reports", err)
		return
	}

	Success(c, gin.H{"items": reports, "total": len(reports)})
}

// Submit upserts the report for (project, work type).
// POST /api/v1/method-reports
func (h *MethodHandler) Submit(c *gin.Context) {
	var req service.SubmitMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.svc.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, service.ErrInvalidWorkType):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to submit method report", err)
		}
		return
	}

	Success(c, report)
}

// Review records a konsultan or owner verdict on a report.
// PUT /api/v1/method-reports/:id/review
func (h *MethodHandler) Review(c *gin.Context) {
	var req service.ReviewMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.svc.Review(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Method report not found")
		case errors.Is(err, service.ErrInvalidReviewStatus):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to review method report", err)
		}
		return
	}

	Success(c, report)
}
