package handler

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// DimensionHandler serves dimension measurement reports. Submissions and
// updates arrive as multipart forms carrying one photo per axis.
type DimensionHandler struct {
	svc *service.DimensionService
}

// NewDimensionHandler creates the dimension handler.
func NewDimensionHandler(svc *service.DimensionService) *DimensionHandler {
	return &DimensionHandler{svc: svc}
}

// formFloat reads a numeric form field; malformed or missing values become 0.
func formFloat(c *gin.Context, field string) float64 {
	v, err := strconv.ParseFloat(c.PostForm(field), 64)
	if err != nil {
		return 0
	}
	return v
}

// formFile reads an optional file field; a missing file returns nil.
func formFile(c *gin.Context, field string) *multipart.FileHeader {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return file
}

func axisInput(c *gin.Context, valueField, suffix string) service.AxisInput {
	return service.AxisInput{
		Value: formFloat(c, valueField),
		Photo: formFile(c, "foto_"+suffix),
		GPS:   c.PostForm("gps_" + suffix),
		Time:  c.PostForm("waktu_" + suffix),
	}
}

// List returns enriched reports, optionally filtered by exact project name.
// GET /api/v1/dimension-reports?nama_kegiatan=...
func (h *DimensionHandler) List(c *gin.Context) {
	reports, err := h.svc.List(c.Request.Context(), c.Query("nama_kegiatan"))
	if err != nil {
		InternalError(c, "Failed to list dimension reports", err)
		return
	}

	Success(c, gin.H{"items": reports, "total": len(reports)})
}

// Submit stores a measurement report from a multipart form.
// POST /api/v1/dimension-reports
func (h *DimensionHandler) Submit(c *gin.Context) {
	req := &service.SubmitDimensionRequest{
		ProjectID:    c.PostForm("id_kegiatan"),
		ReportID:     c.PostForm("id_laporan_dimensi"),
		WorkItemCode: c.PostForm("kode_item_pekerjaan"),
		Week:         c.PostForm("minggu"),
		Length:       axisInput(c, "panjang", "panjang"),
		Width:        axisInput(c, "lebar", "lebar"),
		Height:       axisInput(c, "tinggi", "tinggi"),
	}
	if req.ProjectID == "" || req.WorkItemCode == "" || req.Week == "" {
		BadRequest(c, "id_kegiatan, kode_item_pekerjaan and minggu are required")
		return
	}

	report, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "Project not found")
		case errors.Is(err, service.ErrNoMatchingProgress):
			BadRequest(c, "No progress record matches the work item and week")
		case errors.Is(err, service.ErrPhotosRequired):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to create dimension report", err)
		}
		return
	}

	Created(c, report)
}

// Update overwrites a report. Photos omitted from the form keep the stored
// filenames.
// PUT /api/v1/dimension-reports/:id
func (h *DimensionHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Dimension report ID is required")
		return
	}

	req := &service.UpdateDimensionRequest{
		ReportID:     c.PostForm("id_laporan_dimensi"),
		WorkItemCode: c.PostForm("kode_item_pekerjaan"),
		Length:       axisInput(c, "panjang", "panjang"),
		Width:        axisInput(c, "lebar", "lebar"),
		Height:       axisInput(c, "tinggi", "tinggi"),
	}

	report, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Dimension report not found")
			return
		}
		InternalError(c, "Failed to update dimension report", err)
		return
	}

	Success(c, report)
}

// Delete removes a report. Stored photos are not reclaimed.
// DELETE /api/v1/dimension-reports/:id
func (h *DimensionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Dimension report ID is required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "Dimension report not found")
			return
		}
		InternalError(c, "Failed to delete dimension report", err)
		return
	}

	Success(c, nil)
}
