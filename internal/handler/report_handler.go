package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// ReportHandler serves compaction, lab and trial mix reports.
type ReportHandler struct {
	svc *service.ReportService
}

// NewReportHandler creates the report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ListCompaction returns compaction reports of a project.
// GET /api/v1/compaction-reports?id_kegiatan=...
func (h *ReportHandler) ListCompaction(c *gin.Context) {
	projectID := c.Query("id_kegiatan")
	if projectID == "" {
		BadRequest(c, "id_kegiatan is required")
		return
	}

	reports, err := h.svc.ListCompaction(c.Request.Context(), projectID)
	if err != nil {
		InternalError(c, "Failed to list compaction reports", err)
		return
	}

	Success(c, gin.H{"items": reports, "total": len(reports)})
}

// SubmitCompaction stores a compaction report from a multipart form.
// POST /api/v1/compaction-reports
func (h *ReportHandler) SubmitCompaction(c *gin.Context) {
	passes, _ := strconv.Atoi(c.PostForm("jumlah_lintasan"))
	req := &service.SubmitCompactionRequest{
		ProjectID:    c.PostForm("id_kegiatan"),
		WorkItemCode: c.PostForm("kode_item_pekerjaan"),
		Location:     c.PostForm("lokasi"),
		Passes:       passes,
		Equipment:    c.PostForm("alat"),
		Photo:        formFile(c, "foto"),
		GPS:          c.PostForm("gps"),
		CapturedAt:   c.PostForm("waktu"),
	}
	if req.ProjectID == "" {
		BadRequest(c, "id_kegiatan is required")
		return
	}

	report, err := h.svc.SubmitCompaction(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, service.ErrPhotoRequired):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to create compaction report", err)
		}
		return
	}

	Created(c, report)
}

// DeleteCompaction removes a compaction report.
// DELETE /api/v1/compaction-reports/:id
func (h *ReportHandler) DeleteCompaction(c *gin.Context) {
	if err := h.svc.DeleteCompaction(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Compaction report not found")
			return
		}
		InternalError(c, "Failed to delete compaction report", err)
		return
	}
	Success(c, nil)
}

// ListLab returns lab reports of a project.
// GET /api/v1/lab-reports?id_kegiatan=...
func (h *ReportHandler) ListLab(c *gin.Context) {
	projectID := c.Query("id_kegiatan")
	if projectID == "" {
		BadRequest(c, "id_kegiatan is required")
		return
	}

	reports, err := h.svc.ListLab(c.Request.Context(), projectID)
	if err != nil {
		InternalError(c, "Failed to list lab reports", err)
		return
	}

	Success(c, gin.H{"items": reports, "total": len(reports)})
}

// SubmitLab stores a lab report.
// POST /api/v1/lab-reports
func (h *ReportHandler) SubmitLab(c *gin.Context) {
	var req service.SubmitLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.svc.SubmitLab(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Project not found")
			return
		}
		InternalError(c, "Failed to create lab report", err)
		return
	}

	Created(c, report)
}

// DeleteLab removes a lab report.
// DELETE /api/v1/lab-reports/:id
func (h *ReportHandler) DeleteLab(c *gin.Context) {
	if err := h.svc.DeleteLab(c.Request.Context(), c.Param("id")); err != nil {
		InternalError(c, "Failed to delete lab report", err)
		return
	}
	Success(c, nil)
}

// ListTrialMix returns trial mix reports of a project.
// GET /api/v1/trial-mix-reports?id_kegiatan=...
func (h *ReportHandler) ListTrialMix(c *gin.Context) {
	projectID := c.Query("id_kegiatan")
	if projectID == "" {
		BadRequest(c, "id_kegiatan is required")
		return
	}

	reports, err := h.svc.ListTrialMix(c.Request.Context(), projectID)
	if err != nil {
		InternalError(c, "Failed to list trial mix reports", err)
		return
	}

	Success(c, gin.H{"items": reports, "total": len(reports)})
}

// SubmitTrialMix stores a trial mix report.
// POST /api/v1/trial-mix-reports
func (h *ReportHandler) SubmitTrialMix(c *gin.Context) {
	var req service.SubmitTrialMixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.svc.SubmitTrialMix(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Project not found")
			return
		}
		InternalError(c, "Failed to create trial mix report", err)
		return
	}

	Created(c, report)
}

// DeleteTrialMix removes a trial mix report.
// DELETE /api/v1/trial-mix-reports/:id
func (h *ReportHandler) DeleteTrialMix(c *gin.Context) {
	if err := h.svc.DeleteTrialMix(c.Request.Context(), c.Param("id")); err != nil {
		InternalError(c, "Failed to delete trial mix report", err)
		return
	}
	Success(c, nil)
}
