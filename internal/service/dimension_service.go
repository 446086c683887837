package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
)

// NoDataPlaceholder fills enriched fields when a report matches no progress
// record; listings degrade instead of failing.
const NoDataPlaceholder = "Tidak ada data"

// ErrNoMatchingProgress rejects a submission whose (project, work item, week)
// triple resolves to no ledger row. The correlation check is authoritative
// here; client-side checks are UX convenience only.
var ErrNoMatchingProgress = errors.New("no matching progress record for work item and week")

// ErrPhotosRequired rejects a submission missing any of the three axis photos.
var ErrPhotosRequired = errors.New("all three photos (panjang, lebar, tinggi) are required")

// DimensionService is the dimension reconciler: it stores measurement events
// and, at read time, correlates each one to its owning project and matching
// progress record to borrow the unit price.
type DimensionService struct {
	dimensionRepo *repository.DimensionRepository
	progressRepo  *repository.ProgressRepository
	projectRepo   *repository.ProjectRepository
	storage       *StorageService
}

// NewDimensionService creates the dimension service.
func NewDimensionService(
	dimensionRepo *repository.DimensionRepository,
	progressRepo *repository.ProgressRepository,
	projectRepo *repository.ProjectRepository,
	storage *StorageService,
) *DimensionService {
	return &DimensionService{
		dimensionRepo: dimensionRepo,
		progressRepo:  progressRepo,
		projectRepo:   projectRepo,
		storage:       storage,
	}
}

// AxisInput is one measurement axis from the multipart form.
type AxisInput struct {
	Value float64
	Photo *multipart.FileHeader
	GPS   string
	Time  string
}

// SubmitDimensionRequest carries a measurement submission. Week correlates
// the submission to the progress ledger and is not persisted.
type SubmitDimensionRequest struct {
	ProjectID    string
	ReportID     string
	WorkItemCode string
	Week         string
	Length       AxisInput
	Width        AxisInput
	Height       AxisInput
}

// Submit stores a measurement event. The (project, work item, week) triple
// must resolve to an existing progress record and all three photos are
// mandatory. Photos are written before the row insert; a failing insert
// leaves orphaned files, which is accepted.
func (s *DimensionService) Submit(ctx context.Context, req *SubmitDimensionRequest) (*entity.DimensionReport, error) {
	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Length.Photo == nil || req.Width.Photo == nil || req.Height.Photo == nil {
		return nil, ErrPhotosRequired
	}

	exists, err := s.progressRepo.ExistsForWeek(ctx, req.ProjectID, req.WorkItemCode, req.Week)
	if err != nil {
		return nil, fmt.Errorf("check progress correlation: %w", err)
	}
	if !exists {
		return nil, ErrNoMatchingProgress
	}

	lengthPhoto, err := s.storage.Store(ctx, "foto_panjang", req.Length.Photo)
	if err != nil {
		return nil, err
	}
	widthPhoto, err := s.storage.Store(ctx, "foto_lebar", req.Width.Photo)
	if err != nil {
		return nil, err
	}
	heightPhoto, err := s.storage.Store(ctx, "foto_tinggi", req.Height.Photo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &entity.DimensionReport{
		ProjectID:      req.ProjectID,
		ContractNumber: project.ContractNumber,
		ReportID:       req.ReportID,
		WorkItemCode:   req.WorkItemCode,
		Length:         req.Length.Value,
		LengthPhoto:    lengthPhoto,
		LengthGPS:      req.Length.GPS,
		LengthTime:     req.Length.Time,
		Width:          req.Width.Value,
		WidthPhoto:     widthPhoto,
		WidthGPS:       req.Width.GPS,
		WidthTime:      req.Width.Time,
		Height:         req.Height.Value,
		HeightPhoto:    heightPhoto,
		HeightGPS:      req.Height.GPS,
		HeightTime:     req.Height.Time,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.dimensionRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create dimension report: %w", err)
	}

	return report, nil
}

// UpdateDimensionRequest carries an update. Any nil photo keeps the filename
// already stored on the row.
type UpdateDimensionRequest struct {
	ReportID     string
	WorkItemCode string
	Length       AxisInput
	Width        AxisInput
	Height       AxisInput
}

// Update overwrites a report. Photos omitted from the form fall back to the
// previous filenames (read-before-write).
func (s *DimensionService) Update(ctx context.Context, id string, req *UpdateDimensionRequest) (*entity.DimensionReport, error) {
	report, err := s.dimensionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ReportID != "" {
		report.ReportID = req.ReportID
	}
	if req.WorkItemCode != "" {
		report.WorkItemCode = req.WorkItemCode
	}

	report.Length = req.Length.Value
	report.LengthGPS = req.Length.GPS
	report.LengthTime = req.Length.Time
	if req.Length.Photo != nil {
		name, err := s.storage.Store(ctx, "foto_panjang", req.Length.Photo)
		if err != nil {
			return nil, err
		}
		report.LengthPhoto = name
	}

	report.Width = req.Width.Value
	report.WidthGPS = req.Width.GPS
	report.WidthTime = req.Width.Time
	if req.Width.Photo != nil {
		name, err := s.storage.Store(ctx, "foto_lebar", req.Width.Photo)
		if err != nil {
			return nil, err
		}
		report.WidthPhoto = name
	}

	report.Height = req.Height.Value
	report.HeightGPS = req.Height.GPS
	report.HeightTime = req.Height.Time
	if req.Height.Photo != nil {
		name, err := s.storage.Store(ctx, "foto_tinggi", req.Height.Photo)
		if err != nil {
			return nil, err
		}
		report.HeightPhoto = name
	}

	if err := s.dimensionRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update dimension report: %w", err)
	}

	return report, nil
}

// Delete removes a report unconditionally.
func (s *DimensionService) Delete(ctx context.Context, id string) error {
	if _, err := s.dimensionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.dimensionRepo.Delete(ctx, id)
}

// EnrichedDimensionReport is a stored report plus the display-only fields
// borrowed from its owning project and matching progress record, and the
// derived volume and monetary value.
type EnrichedDimensionReport struct {
	entity.DimensionReport
	ProjectName  string  `json:"nama_kegiatan"`
	WorkItemName string  `json:"nama_item_pekerjaan"`
	Week         string  `json:"minggu"`
	Volume       float64 `json:"volume"`
	Value        float64 `json:"nilai_pekerjaan"`
}

// List returns enriched reports, optionally filtered by exact project name.
// Each report is correlated on its own: the owning project by id, then the
// progress record by work-item code scoped to that project. A failed lookup
// yields "Tidak ada data" fields and a zero value instead of an error.
func (s *DimensionService) List(ctx context.Context, projectName string) ([]EnrichedDimensionReport, error) {
	var projectIDs []string
	if projectName != "" {
		project, err := s.projectRepo.FindByName(ctx, projectName)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return []EnrichedDimensionReport{}, nil
			}
			return nil, err
		}
		projectIDs = []string{project.ID}
	}

	reports, err := s.dimensionRepo.List(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("list dimension reports: %w", err)
	}

	enriched := make([]EnrichedDimensionReport, 0, len(reports))
	for _, report := range reports {
		row := EnrichedDimensionReport{
			DimensionReport: report,
			ProjectName:     NoDataPlaceholder,
			WorkItemName:    NoDataPlaceholder,
			Week:            NoDataPlaceholder,
			Volume:          report.Volume(),
		}

		if project, err := s.projectRepo.FindByID(ctx, report.ProjectID); err == nil {
			row.ProjectName = project.Name
		}

		if record, err := s.progressRepo.FindByItemCode(ctx, report.ProjectID, report.WorkItemCode); err == nil {
			row.WorkItemName = record.WorkItemName
			row.Week = record.Week
			row.Value = row.Volume * record.UnitPrice
		}

		enriched = append(enriched, row)
	}

	return enriched, nil
}
