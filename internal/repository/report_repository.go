package repository

import (
	"context"
	"errors"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// CompactionRepository persists compaction reports.
type CompactionRepository struct {
	db *gorm.DB
}

// NewCompactionRepository creates a compaction repository.
func NewCompactionRepository(db *gorm.DB) *CompactionRepository {
	return &CompactionRepository{db: db}
}

func (r *CompactionRepository) FindByID(ctx context.Context, id string) (*entity.CompactionReport, error) {
	var report entity.CompactionReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *CompactionRepository) Create(ctx context.Context, report *entity.CompactionReport) error {
	if report.ID == "" {
		report.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *CompactionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.CompactionReport{}).Error
}

func (r *CompactionRepository) ListByProject(ctx context.Context, projectID string) ([]entity.CompactionReport, error) {
	var reports []entity.CompactionReport
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// LabRepository persists laboratory test reports.
type LabRepository struct {
	db *gorm.DB
}

// NewLabRepository creates a lab repository.
func NewLabRepository(db *gorm.DB) *LabRepository {
	return &LabRepository{db: db}
}

func (r *LabRepository) Create(ctx context.Context, report *entity.LabReport) error {
	if report.ID == "" {
		report.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *LabRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.LabReport{}).Error
}

func (r *LabRepository) ListByProject(ctx context.Context, projectID string) ([]entity.LabReport, error) {
	var reports []entity.LabReport
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// TrialMixRepository persists trial mix reports.
type TrialMixRepository struct {
	db *gorm.DB
}

// NewTrialMixRepository creates a trial-mix repository.
func NewTrialMixRepository(db *gorm.DB) *TrialMixRepository {
	return &TrialMixRepository{db: db}
}

func (r *TrialMixRepository) Create(ctx context.Context, report *entity.TrialMixReport) error {
	if report.ID == "" {
		report.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *TrialMixRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.TrialMixReport{}).Error
}

func (r *TrialMixRepository) ListByProject(ctx context.Context, projectID string) ([]entity.TrialMixReport, error) {
	var reports []entity.TrialMixReport
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}
