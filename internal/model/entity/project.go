package entity

import (
	"time"
)

// Project identifies one construction contract. A project owns every report
// table below it; deletion is blocked while any dependent row exists.
type Project struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	Name           string     `json:"nama_kegiatan" gorm:"size:256;not null"`
	Location       string     `json:"lokasi" gorm:"size:256"`
	ContractNumber string     `json:"nomor_kontrak" gorm:"size:64;not null"`
	ContractDate   *time.Time `json:"tanggal_kontrak" gorm:"type:date"`
	ContractValue  float64    `json:"nilai_kontrak" gorm:"type:decimal(18,2);default:0"`
	Contractor     string     `json:"nama_kontraktor" gorm:"size:128"`
	Consultant     string     `json:"nama_konsultan" gorm:"size:128"`
	StartDate      *time.Time `json:"tanggal_mulai" gorm:"type:date"`
	EndDate        *time.Time `json:"tanggal_selesai" gorm:"type:date"`
	DurationWeeks  int        `json:"lama_pekerjaan" gorm:"not null;default:0"`
	Status         string     `json:"status" gorm:"size:16;not null;default:Aktif"`
	MajorItemCount int        `json:"jumlah_item_mayor" gorm:"not null;default:0"`
	CreatedBy      string     `json:"created_by" gorm:"size:32"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	WorkItems []WorkItem `json:"item_pekerjaan,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// WorkItem is a named scope-of-work line of a project, referenced by code
// from progress and dimension records. Read-only after project creation.
type WorkItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID string    `json:"id_kegiatan" gorm:"size:32;not null;index"`
	Code      string    `json:"kode_item" gorm:"size:32;not null"`
	Name      string    `json:"nama_item" gorm:"size:256;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (WorkItem) TableName() string {
	return "work_items"
}

// Project status
const (
	ProjectStatusAktif      = "Aktif"
	ProjectStatusSelesai    = "Selesai"
	ProjectStatusTertunda   = "Tertunda"
	ProjectStatusDibatalkan = "Dibatalkan"
)
