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

// ErrPhotoRequired rejects a compaction submission without its photo evidence.
var ErrPhotoRequired = errors.New("photo is required")

// ReportService handles the remaining field-report tables: compaction, lab
// and trial mix. These are plain per-project CRUD without reconciliation.
type ReportService struct {
	compactionRepo *repository.CompactionRepository
	labRepo        *repository.LabRepository
	trialMixRepo   *repository.TrialMixRepository
	projectRepo    *repository.ProjectRepository
	storage        *StorageService
}

// NewReportService creates the report service.
func NewReportService(
	compactionRepo *repository.CompactionRepository,
	labRepo *repository.LabRepository,
	trialMixRepo *repository.TrialMixRepository,
	projectRepo *repository.ProjectRepository,
	storage *StorageService,
) *ReportService {
	return &ReportService{
		compactionRepo: compactionRepo,
		labRepo:        labRepo,
		trialMixRepo:   trialMixRepo,
		projectRepo:    projectRepo,
		storage:        storage,
	}
}

// SubmitCompactionRequest carries a compaction submission from a multipart
// form; the photo is mandatory.
type SubmitCompactionRequest struct {
	ProjectID    string
	WorkItemCode string
	Location     string
	Passes       int
	Equipment    string
	Photo        *multipart.FileHeader
	GPS          string
	CapturedAt   string
}

// SubmitCompaction stores a compaction report with its photo evidence.
func (s *ReportService) SubmitCompaction(ctx context.Context, req *SubmitCompactionRequest) (*entity.CompactionReport, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if req.Photo == nil {
		return nil, ErrPhotoRequired
	}

	photo, err := s.storage.Store(ctx, "foto", req.Photo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &entity.CompactionReport{
		ProjectID:    req.ProjectID,
		WorkItemCode: req.WorkItemCode,
		Location:     req.Location,
		Passes:       req.Passes,
		Equipment:    req.Equipment,
		Photo:        photo,
		GPS:          req.GPS,
		CapturedAt:   req.CapturedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.compactionRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create compaction report: %w", err)
	}
	return report, nil
}

// ListCompaction returns the compaction reports of a project.
func (s *ReportService) ListCompaction(ctx context.Context, projectID string) ([]entity.CompactionReport, error) {
	return s.compactionRepo.ListByProject(ctx, projectID)
}

// DeleteCompaction removes a compaction report unconditionally.
func (s *ReportService) DeleteCompaction(ctx context.Context, id string) error {
	if _, err := s.compactionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.compactionRepo.Delete(ctx, id)
}

// SubmitLabRequest carries a lab test submission. Result is an opaque JSON
// payload stored as text.
type SubmitLabRequest struct {
	ProjectID  string `json:"id_kegiatan" binding:"required"`
	TestType   string `json:"jenis_pengujian" binding:"required"`
	Result     string `json:"hasil"`
	TestDate   string `json:"tanggal_pengujian"`
	Attachment string `json:"lampiran"`
}

// SubmitLab stores a lab report.
func (s *ReportService) SubmitLab(ctx context.Context, req *SubmitLabRequest) (*entity.LabReport, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	report := &entity.LabReport{
		ProjectID:  req.ProjectID,
		TestType:   req.TestType,
		Result:     req.Result,
		TestDate:   parseDate(req.TestDate),
		Attachment: req.Attachment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.labRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create lab report: %w", err)
	}
	return report, nil
}

// ListLab returns the lab reports of a project.
func (s *ReportService) ListLab(ctx context.Context, projectID string) ([]entity.LabReport, error) {
	return s.labRepo.ListByProject(ctx, projectID)
}

// DeleteLab removes a lab report unconditionally.
func (s *ReportService) DeleteLab(ctx context.Context, id string) error {
	return s.labRepo.Delete(ctx, id)
}

// SubmitTrialMixRequest carries a trial mix submission.
type SubmitTrialMixRequest struct {
	ProjectID   string `json:"id_kegiatan" binding:"required"`
	MixCode     string `json:"kode_mix" binding:"required"`
	Proportions string `json:"proporsi"`
	TrialDate   string `json:"tanggal_trial"`
}

// SubmitTrialMix stores a trial mix report.
func (s *ReportService) SubmitTrialMix(ctx context.Context, req *SubmitTrialMixRequest) (*entity.TrialMixReport, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	report := &entity.TrialMixReport{
		ProjectID:   req.ProjectID,
		MixCode:     req.MixCode,
		Proportions: req.Proportions,
		TrialDate:   parseDate(req.TrialDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.trialMixRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create trial mix report: %w", err)
	}
	return report, nil
}

// ListTrialMix returns the trial mix reports of a project.
func (s *ReportService) ListTrialMix(ctx context.Context, projectID string) ([]entity.TrialMixReport, error) {
	return s.trialMixRepo.ListByProject(ctx, projectID)
}

// DeleteTrialMix removes a trial mix report unconditionally.
func (s *ReportService) DeleteTrialMix(ctx context.Context, id string) error {
	return s.trialMixRepo.Delete(ctx, id)
}
