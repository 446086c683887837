package entity

import (
	"time"
)

// ProgressRecord is one weekly planned/actual entry for a work item.
// (project_id, work_item_code, minggu) is unique: the frontend disables
// already-used weeks, but the storage layer is the authoritative check and a
// duplicate insert fails with a conflict.
type ProgressRecord struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID    string    `json:"id_kegiatan" gorm:"size:32;not null;index;uniqueIndex:idx_progress_item_week"`
	WorkItemCode string    `json:"kode_item_pekerjaan" gorm:"size:32;not null;uniqueIndex:idx_progress_item_week"`
	WorkItemName string    `json:"nama_item_pekerjaan" gorm:"size:256;not null"`
	Volume       float64   `json:"volume" gorm:"type:decimal(18,3);default:0"`
	Unit         string    `json:"satuan" gorm:"size:16;not null;default:m³"`
	UnitPrice    float64   `json:"harga_satuan" gorm:"type:decimal(18,2);default:0"`
	PlannedWeeks int       `json:"lama_pekerjaan" gorm:"default:0"`
	Week         string    `json:"minggu" gorm:"size:32;not null;uniqueIndex:idx_progress_item_week"`
	ProgressPct  float64   `json:"progress" gorm:"type:decimal(5,2);default:0"`
	UpdateDate   time.Time `json:"tanggal_update" gorm:"type:date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

// ItemValue is the monetary value of the planned work on this line.
func (p *ProgressRecord) ItemValue() float64 {
	return p.Volume * p.UnitPrice
}
