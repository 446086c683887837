package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
)

// ErrInvalidWorkType rejects a submission outside the five method work types.
var ErrInvalidWorkType = errors.New("invalid work type")

// ErrInvalidReviewStatus rejects a review verdict outside the known statuses.
var ErrInvalidReviewStatus = errors.New("invalid review status")

// MethodService upserts method-of-work reports keyed on
// (project, work type).
type MethodService struct {
	methodRepo  *repository.MethodRepository
	projectRepo *repository.ProjectRepository
}

// NewMethodService creates the method service.
func NewMethodService(methodRepo *repository.MethodRepository, projectRepo *repository.ProjectRepository) *MethodService {
	return &MethodService{methodRepo: methodRepo, projectRepo: projectRepo}
}

// SubmitMethodRequest carries a method submission. MethodData and
// ProcessFlow are opaque serialized payloads; no schema is enforced beyond
// the work-type literal.
type SubmitMethodRequest struct {
	ProjectID      string `json:"id_kegiatan" binding:"required"`
	WorkType       string `json:"jenis_pekerjaan" binding:"required"`
	MethodData     string `json:"data_metode"`
	ProcessFlow    string `json:"alur_proses"`
	Status         string `json:"status"`
	ConsultantNote string `json:"catatan_konsultan"`
	OwnerNote      string `json:"catatan_owner"`
}

// Submit upserts the report: an existing (project, work type) row is updated
// in place, otherwise a new row is inserted.
func (s *MethodService) Submit(ctx context.Context, req *SubmitMethodRequest) (*entity.MethodReport, error) {
	if !entity.IsValidWorkType(req.WorkType) {
		return nil, fmt.Errorf("%w %q", ErrInvalidWorkType, req.WorkType)
	}
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()

	existing, err := s.methodRepo.FindByProjectAndType(ctx, req.ProjectID, req.WorkType)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find method report: %w", err)
	}

	if existing != nil {
		existing.MethodData = req.MethodData
		existing.ProcessFlow = req.ProcessFlow
		if req.Status != "" {
			existing.Status = req.Status
		}
		if req.ConsultantNote != "" {
			existing.ConsultantNote = req.ConsultantNote
		}
		if req.OwnerNote != "" {
			existing.OwnerNote = req.OwnerNote
		}
		if err := s.methodRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update method report: %w", err)
		}
		return existing, nil
	}

	status := req.Status
	if status == "" {
		status = entity.MethodStatusPending
	}

	report := &entity.MethodReport{
		ProjectID:      req.ProjectID,
		WorkType:       req.WorkType,
		MethodData:     req.MethodData,
		ProcessFlow:    req.ProcessFlow,
		Status:         status,
		ConsultantNote: req.ConsultantNote,
		OwnerNote:      req.OwnerNote,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.methodRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create method report: %w", err)
	}

	return report, nil
}

// List returns the method reports of a project.
func (s *MethodService) List(ctx context.Context, projectID string) ([]entity.MethodReport, error) {
	return s.methodRepo.ListByProject(ctx, projectID)
}

// ReviewMethodRequest carries a review verdict on a submitted method report.
type ReviewMethodRequest struct {
	Status         string `json:"status" binding:"required"`
	ConsultantNote string `json:"catatan_konsultan"`
	OwnerNote      string `json:"catatan_owner"`
}

// Review records a verdict on a report. Notes omitted from the request keep
// their stored value.
func (s *MethodService) Review(ctx context.Context, id string, req *ReviewMethodRequest) (*entity.MethodReport, error) {
	if !entity.IsValidMethodStatus(req.Status) {
		return nil, fmt.Errorf("%w %q", ErrInvalidReviewStatus, req.Status)
	}

	report, err := s.methodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report.Status = req.Status
	if req.ConsultantNote != "" {
		report.ConsultantNote = req.ConsultantNote
	}
	if req.OwnerNote != "" {
		report.OwnerNote = req.OwnerNote
	}

	if err := s.methodRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("review method report: %w", err)
	}

	return report, nil
}
