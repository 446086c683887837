package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// DimensionRepository persists dimension measurement reports.
type DimensionRepository struct {
	db *gorm.DB
}

// NewDimensionRepository creates a dimension repository.
func NewDimensionRepository(db *gorm.DB) *DimensionRepository {
	return &DimensionRepository{db: db}
}

// FindByID looks up a dimension report.
func (r *DimensionRepository) FindByID(ctx context.Context, id string) (*entity.DimensionReport, error) {
	var report entity.DimensionReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// Create inserts a report row.
func (r *DimensionRepository) Create(ctx context.Context, report *entity.DimensionReport) error {
	if report.ID == "" {
		report.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

// Update overwrites a report row; last write wins.
func (r *DimensionRepository) Update(ctx context.Context, report *entity.DimensionReport) error {
	report.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(report).Error
}

// Delete removes a report row unconditionally.
func (r *DimensionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DimensionReport{}).Error
}

// List returns dimension reports, newest first, optionally scoped to a set
// of project IDs.
func (r *DimensionRepository) List(ctx context.Context, projectIDs []string) ([]entity.DimensionReport, error) {
	var reports []entity.DimensionReport
	query := r.db.WithContext(ctx).Model(&entity.DimensionReport{})
	if len(projectIDs) > 0 {
		query = query.Where("project_id IN ?", projectIDs)
	}
	err := query.Order("created_at DESC").Find(&reports).Error
	return reports, err
}
