package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
)

// ProgressService is the weekly progress ledger: per-work-item, per-week
// planned-vs-actual records plus the derived project rollup.
type ProgressService struct {
	progressRepo *repository.ProgressRepository
	projectRepo  *repository.ProjectRepository
}

// NewProgressService creates the progress service.
func NewProgressService(progressRepo *repository.ProgressRepository, projectRepo *repository.ProjectRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo, projectRepo: projectRepo}
}

// RecordProgressRequest carries the weekly progress form. Numeric fields
// arrive as free-form strings and coerce with a default of 0 on parse
// failure; nothing is rejected for being non-numeric.
type RecordProgressRequest struct {
	ProjectID    string `json:"id_kegiatan" binding:"required"`
	WorkItemCode string `json:"kode_item_pekerjaan" binding:"required"`
	WorkItemName string `json:"nama_item_pekerjaan" binding:"required"`
	Volume       string `json:"volume"`
	Unit         string `json:"satuan"`
	UnitPrice    string `json:"harga_satuan"`
	PlannedWeeks string `json:"lama_pekerjaan"`
	Week         string `json:"minggu" binding:"required"`
	ProgressPct  string `json:"progress"`
	UpdateDate   string `json:"tanggal_update"`
}

// Record appends a ledger row. The week label is free text ("Minggu 3") and
// is not validated against the planned-weeks bound; the storage layer is the
// authoritative uniqueness check for (project, work item, week).
func (s *ProgressService) Record(ctx context.Context, req *RecordProgressRequest) (*entity.ProgressRecord, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "m³"
	}

	updateDate := time.Now()
	if d := parseDate(req.UpdateDate); d != nil {
		updateDate = *d
	}

	now := time.Now()
	record := &entity.ProgressRecord{
		ProjectID:    req.ProjectID,
		WorkItemCode: req.WorkItemCode,
		WorkItemName: req.WorkItemName,
		Volume:       coerceFloat(req.Volume),
		Unit:         unit,
		UnitPrice:    coerceFloat(req.UnitPrice),
		PlannedWeeks: coerceInt(req.PlannedWeeks),
		Week:         req.Week,
		ProgressPct:  coerceFloat(req.ProgressPct),
		UpdateDate:   updateDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.progressRepo.Create(ctx, record); err != nil {
		if err == repository.ErrConflict {
			return nil, fmt.Errorf("%w: progress for %s %s already recorded",
				repository.ErrConflict, req.WorkItemCode, req.Week)
		}
		return nil, fmt.Errorf("record progress: %w", err)
	}

	return record, nil
}

// UpdateProgressRequest carries the mutable ledger fields.
type UpdateProgressRequest struct {
	WorkItemName string `json:"nama_item_pekerjaan"`
	Volume       string `json:"volume"`
	Unit         string `json:"satuan"`
	UnitPrice    string `json:"harga_satuan"`
	PlannedWeeks string `json:"lama_pekerjaan"`
	Week         string `json:"minggu"`
	ProgressPct  string `json:"progress"`
	UpdateDate   string `json:"tanggal_update"`
}

// Update overwrites all mutable fields unconditionally. There is no
// optimistic-concurrency check; concurrent writers race and the last write
// wins.
func (s *ProgressService) Update(ctx context.Context, id string, req *UpdateProgressRequest) (*entity.ProgressRecord, error) {
	record, err := s.progressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.WorkItemName != "" {
		record.WorkItemName = req.WorkItemName
	}
	record.Volume = coerceFloat(req.Volume)
	if unit := strings.TrimSpace(req.Unit); unit != "" {
		record.Unit = unit
	}
	record.UnitPrice = coerceFloat(req.UnitPrice)
	record.PlannedWeeks = coerceInt(req.PlannedWeeks)
	if req.Week != "" {
		record.Week = req.Week
	}
	record.ProgressPct = coerceFloat(req.ProgressPct)
	if d := parseDate(req.UpdateDate); d != nil {
		record.UpdateDate = *d
	} else {
		record.UpdateDate = time.Now()
	}

	if err := s.progressRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}

	return record, nil
}

// Delete removes a ledger row. Unlike project deletion there is no
// dependency check; dimension reports that pointed at the row degrade to
// placeholder display values.
func (s *ProgressService) Delete(ctx context.Context, id string) error {
	if _, err := s.progressRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.progressRepo.Delete(ctx, id)
}

// List returns the ledger of a project, update date descending.
func (s *ProgressService) List(ctx context.Context, projectID string) ([]entity.ProgressRecord, error) {
	return s.progressRepo.ListByProject(ctx, projectID)
}

// ProgressSummary is the derived, non-persisted project rollup.
type ProgressSummary struct {
	ProjectID        string                `json:"id_kegiatan"`
	Items            []ProgressSummaryItem `json:"items"`
	TotalValue       float64               `json:"total_nilai"`
	TotalProgressPct float64               `json:"total_progress"`
}

// ProgressSummaryItem is one ledger line with its derived monetary value.
type ProgressSummaryItem struct {
	entity.ProgressRecord
	ItemValue float64 `json:"nilai_item"`
}

// Summary computes the rollup: itemValue = volume × unitPrice per record,
// totalValue their sum, and totalProgressPct the plain sum of the per-item
// percentages across line items — not averaged, not weighted and not capped
// at 100, matching the shipped behavior.
func (s *ProgressService) Summary(ctx context.Context, projectID string) (*ProgressSummary, error) {
	records, err := s.progressRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	summary := &ProgressSummary{ProjectID: projectID, Items: make([]ProgressSummaryItem, 0, len(records))}
	for _, record := range records {
		value := record.ItemValue()
		summary.Items = append(summary.Items, ProgressSummaryItem{
			ProgressRecord: record,
			ItemValue:      value,
		})
		summary.TotalValue += value
		summary.TotalProgressPct += record.ProgressPct
	}

	return summary, nil
}

// coerceFloat parses a decimal string, defaulting to 0 on failure.
func coerceFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// coerceInt parses an integer string, defaulting to 0 on failure.
func coerceInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
