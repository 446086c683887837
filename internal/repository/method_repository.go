package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// MethodRepository persists method-of-work reports.
type MethodRepository struct {
	db *gorm.DB
}

// NewMethodRepository creates a method repository.
func NewMethodRepository(db *gorm.DB) *MethodRepository {
	return &MethodRepository{db: db}
}

// FindByProjectAndType looks up the single row for a (project, work type)
// pair; the upsert contract keys on it.
func (r *MethodRepository) FindByProjectAndType(ctx context.Context, projectID, workType string) (*entity.MethodReport, error) {
	var report entity.MethodReport
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND work_type = ?", projectID, workType).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindByID looks up a method report by primary key.
func (r *MethodRepository) FindByID(ctx context.Context, id string) (*entity.MethodReport, error) {
	var report entity.MethodReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// Create inserts a method report row.
func (r *MethodRepository) Create(ctx context.Context, report *entity.MethodReport) error {
	if report.ID == "" {
		report.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

// Update overwrites a method report row.
func (r *MethodRepository) Update(ctx context.Context, report *entity.MethodReport) error {
	report.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(report).Error
}

// ListByProject returns the method reports of a project in work-type order.
func (r *MethodRepository) ListByProject(ctx context.Context, projectID string) ([]entity.MethodReport, error) {
	var reports []entity.MethodReport
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("work_type ASC").
		Find(&reports).Error
	return reports, err
}

// CountByProjectAndType counts rows for a (project, work type) pair.
func (r *MethodRepository) CountByProjectAndType(ctx context.Context, projectID, workType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.MethodReport{}).
		Where("project_id = ? AND work_type = ?", projectID, workType).
		Count(&count).Error
	return count, err
}
