package entity

import (
	"time"
)

// CompactionReport is one field compaction submission with photo evidence.
type CompactionReport struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID    string    `json:"id_kegiatan" gorm:"size:32;not null;index"`
	WorkItemCode string    `json:"kode_item_pekerjaan" gorm:"size:32"`
	Location     string    `json:"lokasi_sta" gorm:"size:128"`
	Passes       int       `json:"jumlah_lintasan" gorm:"default:0"`
	Equipment    string    `json:"jenis_alat" gorm:"size:128"`
	Photo        string    `json:"foto" gorm:"size:256"`
	GPS          string    `json:"gps" gorm:"size:128"`
	CapturedAt   string    `json:"waktu" gorm:"size:64"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CompactionReport) TableName() string {
	return "compaction_reports"
}

// LabReport is one laboratory test result. Result is an opaque JSON payload
// serialized to text.
type LabReport struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	ProjectID  string     `json:"id_kegiatan" gorm:"size:32;not null;index"`
	TestType   string     `json:"jenis_pengujian" gorm:"size:64;not null"`
	Result     string     `json:"hasil" gorm:"type:text"`
	TestDate   *time.Time `json:"tanggal_pengujian" gorm:"type:date"`
	Attachment string     `json:"lampiran" gorm:"size:256"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (LabReport) TableName() string {
	return "lab_reports"
}

// TrialMixReport records a trial mix design for a project. Proportions is an
// opaque JSON payload serialized to text.
type TrialMixReport struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	ProjectID   string     `json:"id_kegiatan" gorm:"size:32;not null;index"`
	MixCode     string     `json:"kode_mix" gorm:"size:64;not null"`
	Proportions string     `json:"proporsi" gorm:"type:text"`
	TrialDate   *time.Time `json:"tanggal_trial" gorm:"type:date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (TrialMixReport) TableName() string {
	return "trial_mix_reports"
}
