package repository

import (
	"context"
	"errors"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"gorm.io/gorm"
)

// ProjectRepository persists projects and their work-item reference data.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID looks up a project with its work items.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("WorkItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("code ASC")
		}).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByName looks up a project by exact name.
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create inserts a project together with its work items.
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	if project.ID == "" {
		project.ID = generateID()
	}
	for i := range project.WorkItems {
		if project.WorkItems[i].ID == "" {
			project.WorkItems[i].ID = generateID()
		}
		project.WorkItems[i].ProjectID = project.ID
	}
	return r.db.WithContext(ctx).Create(project).Error
}

// Update saves project fields. Work items are reference data and are not
// touched here.
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Omit("WorkItems").Save(project).Error
}

// Delete removes a project row. The dependency pre-check lives in the
// service; this delete is unconditional.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Project{}).Error
}

// List returns projects ordered newest first, optionally filtered by status
// or a name keyword.
func (r *ProjectRepository) List(ctx context.Context, filters map[string]interface{}) ([]entity.Project, error) {
	var projects []entity.Project

	query := r.db.WithContext(ctx).Model(&entity.Project{})

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	err := query.
		Preload("WorkItems").
		Order("created_at DESC").
		Find(&projects).Error

	return projects, err
}

// ListWorkItems returns the work-item reference list of a project.
func (r *ProjectRepository) ListWorkItems(ctx context.Context, projectID string) ([]entity.WorkItem, error) {
	var items []entity.WorkItem
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("code ASC").
		Find(&items).Error
	return items, err
}

// DeleteWorkItem removes one work-item row of a project.
func (r *ProjectRepository) DeleteWorkItem(ctx context.Context, projectID, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, itemID).
		Delete(&entity.WorkItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DependentCounts counts the rows of every table owned by a project. The
// project may only be deleted when all counts are zero.
func (r *ProjectRepository) DependentCounts(ctx context.Context, projectID string) (map[string]int64, error) {
	counts := make(map[string]int64, 7)

	models := map[string]interface{}{
		"item pekerjaan":    &entity.WorkItem{},
		"laporan kemajuan":  &entity.ProgressRecord{},
		"laporan dimensi":   &entity.DimensionReport{},
		"laporan pemadatan": &entity.CompactionReport{},
		"laporan metode":    &entity.MethodReport{},
		"laporan lab":       &entity.LabReport{},
		"trial mix":         &entity.TrialMixReport{},
	}

	for name, model := range models {
		var count int64
		if err := r.db.WithContext(ctx).Model(model).
			Where("project_id = ?", projectID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		counts[name] = count
	}

	return counts, nil
}
