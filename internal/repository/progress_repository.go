package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// ProgressRepository persists the weekly progress ledger.
type ProgressRepository struct {
	db *gorm.DB
}

// NewProgressRepository creates a progress repository.
func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// FindByID looks up a progress record.
func (r *ProgressRepository) FindByID(ctx context.Context, id string) (*entity.ProgressRecord, error) {
	var record entity.ProgressRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Create inserts a new ledger row. A row for the same
// (project, work item, week) already existing is a conflict.
func (r *ProgressRepository) Create(ctx context.Context, record *entity.ProgressRecord) error {
	if record.ID == "" {
		record.ID = generateID()
	}

	exists, err := r.ExistsForWeek(ctx, record.ProjectID, record.WorkItemCode, record.Week)
	if err != nil {
		return err
	}
	if exists {
		return ErrConflict
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		// The composite unique index catches the race the pre-check misses.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// ExistsForWeek reports whether a ledger row exists for the triple.
func (r *ProgressRepository) ExistsForWeek(ctx context.Context, projectID, workItemCode, week string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProgressRecord{}).
		Where("project_id = ? AND work_item_code = ? AND week = ?", projectID, workItemCode, week).
		Count(&count).Error
	return count > 0, err
}

// Update overwrites all mutable fields unconditionally; last write wins.
func (r *ProgressRepository) Update(ctx context.Context, record *entity.ProgressRecord) error {
	record.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes a ledger row without any dependency check.
func (r *ProgressRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ProgressRecord{}).Error
}

// ListByProject returns the ledger of a project, update date descending.
func (r *ProgressRepository) ListByProject(ctx context.Context, projectID string) ([]entity.ProgressRecord, error) {
	var records []entity.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("update_date DESC").
		Find(&records).Error
	return records, err
}

// FindByItemCode returns the first ledger row matching a work-item code
// within a project. Used by the dimension reconciler to borrow the unit
// price.
func (r *ProgressRepository) FindByItemCode(ctx context.Context, projectID, workItemCode string) (*entity.ProgressRecord, error) {
	var record entity.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND work_item_code = ?", projectID, workItemCode).
		Order("update_date DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}
