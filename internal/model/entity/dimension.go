package entity

import (
	"time"
)

// DimensionReport is one submitted measurement event: three axes, each with
// photo evidence, a GPS string and a capture timestamp. Volume is not stored;
// it is derived as panjang × lebar × tinggi at read time. The week label is
// only used for the submit-time correlation check and is not persisted.
type DimensionReport struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID      string    `json:"id_kegiatan" gorm:"size:32;not null;index"`
	ContractNumber string    `json:"nomor_kontrak" gorm:"size:64"`
	ReportID       string    `json:"id_laporan_dimensi" gorm:"size:64;not null"`
	WorkItemCode   string    `json:"kode_item_pekerjaan" gorm:"size:32;not null"`
	Length         float64   `json:"panjang" gorm:"type:decimal(12,3);default:0"`
	LengthPhoto    string    `json:"foto_panjang" gorm:"size:256"`
	LengthGPS      string    `json:"gps_panjang" gorm:"size:128"`
	LengthTime     string    `json:"waktu_panjang" gorm:"size:64"`
	Width          float64   `json:"lebar" gorm:"type:decimal(12,3);default:0"`
	WidthPhoto     string    `json:"foto_lebar" gorm:"size:256"`
	WidthGPS       string    `json:"gps_lebar" gorm:"size:128"`
	WidthTime      string    `json:"waktu_lebar" gorm:"size:64"`
	Height         float64   `json:"tinggi" gorm:"type:decimal(12,3);default:0"`
	HeightPhoto    string    `json:"foto_tinggi" gorm:"size:256"`
	HeightGPS      string    `json:"gps_tinggi" gorm:"size:128"`
	HeightTime     string    `json:"waktu_tinggi" gorm:"size:64"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DimensionReport) TableName() string {
	return "dimension_reports"
}

// Volume derives the measured volume. Multiplication is commutative, so the
// axis ordering does not matter.
func (d *DimensionReport) Volume() float64 {
	return d.Length * d.Width * d.Height
}
