package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
)

// ErrHasDependents blocks project deletion while any owned row exists.
var ErrHasDependents = errors.New("project still has dependent records")

// ProjectService manages contracts and their work-item reference data.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
}

// NewProjectService creates the project service.
func NewProjectService(projectRepo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// WorkItemInput is one scope-of-work line on the add-project form.
type WorkItemInput struct {
	Code string `json:"kode_item" binding:"required"`
	Name string `json:"nama_item" binding:"required"`
}

// CreateProjectRequest carries the add-project form.
type CreateProjectRequest struct {
	Name           string          `json:"nama_kegiatan" binding:"required"`
	Location       string          `json:"lokasi"`
	ContractNumber string          `json:"nomor_kontrak" binding:"required"`
	ContractDate   string          `json:"tanggal_kontrak"`
	ContractValue  float64         `json:"nilai_kontrak"`
	Contractor     string          `json:"nama_kontraktor"`
	Consultant     string          `json:"nama_konsultan"`
	StartDate      string          `json:"tanggal_mulai"`
	EndDate        string          `json:"tanggal_selesai"`
	DurationWeeks  int             `json:"lama_pekerjaan"`
	Status         string          `json:"status"`
	WorkItems      []WorkItemInput `json:"item_pekerjaan"`
}

// UpdateProjectRequest carries mutable project fields.
type UpdateProjectRequest struct {
	Name           string  `json:"nama_kegiatan"`
	Location       string  `json:"lokasi"`
	ContractNumber string  `json:"nomor_kontrak"`
	ContractDate   string  `json:"tanggal_kontrak"`
	ContractValue  float64 `json:"nilai_kontrak"`
	Contractor     string  `json:"nama_kontraktor"`
	Consultant     string  `json:"nama_konsultan"`
	StartDate      string  `json:"tanggal_mulai"`
	EndDate        string  `json:"tanggal_selesai"`
	DurationWeeks  int     `json:"lama_pekerjaan"`
	Status         string  `json:"status"`
}

// Create registers a contract together with its major work items.
func (s *ProjectService) Create(ctx context.Context, userID string, req *CreateProjectRequest) (*entity.Project, error) {
	status := req.Status
	if !isValidProjectStatus(status) {
		status = entity.ProjectStatusAktif
	}

	now := time.Now()
	project := &entity.Project{
		Name:           req.Name,
		Location:       req.Location,
		ContractNumber: req.ContractNumber,
		ContractDate:   parseDate(req.ContractDate),
		ContractValue:  req.ContractValue,
		Contractor:     req.Contractor,
		Consultant:     req.Consultant,
		StartDate:      parseDate(req.StartDate),
		EndDate:        parseDate(req.EndDate),
		DurationWeeks:  req.DurationWeeks,
		Status:         status,
		MajorItemCount: len(req.WorkItems),
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for _, item := range req.WorkItems {
		project.WorkItems = append(project.WorkItems, entity.WorkItem{
			Code:      item.Code,
			Name:      item.Name,
			CreatedAt: now,
		})
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return project, nil
}

// Get fetches a project with its work items.
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.projectRepo.FindByID(ctx, id)
}

// List returns projects, optionally filtered by status or name keyword.
func (s *ProjectService) List(ctx context.Context, filters map[string]interface{}) ([]entity.Project, error) {
	return s.projectRepo.List(ctx, filters)
}

// ListWorkItems returns a project's work-item reference list.
func (s *ProjectService) ListWorkItems(ctx context.Context, projectID string) ([]entity.WorkItem, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projectRepo.ListWorkItems(ctx, projectID)
}

// DeleteWorkItem removes one work item from a project's reference list and
// refreshes the major-item count. Progress and measurement rows keep their
// code snapshots; listings referencing the removed item degrade at read time.
func (s *ProjectService) DeleteWorkItem(ctx context.Context, projectID, itemID string) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.DeleteWorkItem(ctx, projectID, itemID); err != nil {
		return err
	}

	items, err := s.projectRepo.ListWorkItems(ctx, projectID)
	if err != nil {
		return fmt.Errorf("recount work items: %w", err)
	}
	project.MajorItemCount = len(items)
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("update major item count: %w", err)
	}

	return nil
}

// Update overwrites project fields; empty strings and zero values leave the
// current value in place.
func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Location != "" {
		project.Location = req.Location
	}
	if req.ContractNumber != "" {
		project.ContractNumber = req.ContractNumber
	}
	if d := parseDate(req.ContractDate); d != nil {
		project.ContractDate = d
	}
	if req.ContractValue != 0 {
		project.ContractValue = req.ContractValue
	}
	if req.Contractor != "" {
		project.Contractor = req.Contractor
	}
	if req.Consultant != "" {
		project.Consultant = req.Consultant
	}
	if d := parseDate(req.StartDate); d != nil {
		project.StartDate = d
	}
	if d := parseDate(req.EndDate); d != nil {
		project.EndDate = d
	}
	if req.DurationWeeks != 0 {
		project.DurationWeeks = req.DurationWeeks
	}
	if isValidProjectStatus(req.Status) {
		project.Status = req.Status
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return project, nil
}

// Delete removes a project. It fails with ErrHasDependents while any row
// exists in any of the seven owned tables; the returned message itemizes the
// blocking tables.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return err
	}

	counts, err := s.projectRepo.DependentCounts(ctx, id)
	if err != nil {
		return fmt.Errorf("check dependents: %w", err)
	}

	var blocking []string
	for name, count := range counts {
		if count > 0 {
			blocking = append(blocking, fmt.Sprintf("%s (%d)", name, count))
		}
	}
	if len(blocking) > 0 {
		sort.Strings(blocking)
		return fmt.Errorf("%w: %s", ErrHasDependents, strings.Join(blocking, ", "))
	}

	return s.projectRepo.Delete(ctx, id)
}

func isValidProjectStatus(status string) bool {
	switch status {
	case entity.ProjectStatusAktif, entity.ProjectStatusSelesai,
		entity.ProjectStatusTertunda, entity.ProjectStatusDibatalkan:
		return true
	}
	return false
}

// parseDate parses a yyyy-mm-dd form value; malformed or empty input maps to
// nil rather than an error.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
