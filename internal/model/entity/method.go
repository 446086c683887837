package entity

import (
	"time"
)

// MethodReport holds the method-of-work submission for one work type of a
// project. A second submission for the same (project, work type) pair updates
// the existing row. MethodData and ProcessFlow are opaque JSON payloads
// serialized to text at the storage boundary.
type MethodReport struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID      string    `json:"id_kegiatan" gorm:"size:32;not null;uniqueIndex:idx_method_project_type"`
	WorkType       string    `json:"jenis_pekerjaan" gorm:"size:32;not null;uniqueIndex:idx_method_project_type"`
	MethodData     string    `json:"data_metode" gorm:"type:text"`
	ProcessFlow    string    `json:"alur_proses" gorm:"type:text"`
	Status         string    `json:"status" gorm:"size:32;not null;default:Menunggu Review"`
	ConsultantNote string    `json:"catatan_konsultan" gorm:"type:text"`
	OwnerNote      string    `json:"catatan_owner" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MethodReport) TableName() string {
	return "method_reports"
}

// Method report review statuses.
const (
	MethodStatusPending  = "Menunggu Review"
	MethodStatusApproved = "Disetujui"
	MethodStatusRejected = "Ditolak"
	MethodStatusRevision = "Perlu Revisi"
)

// IsValidMethodStatus reports whether s is one of the review statuses.
func IsValidMethodStatus(s string) bool {
	switch s {
	case MethodStatusPending, MethodStatusApproved,
		MethodStatusRejected, MethodStatusRevision:
		return true
	}
	return false
}

// Method work types; the only five accepted literals.
const (
	WorkTypeExcavation       = "excavation"
	WorkTypeEmbankment       = "embankment"
	WorkTypeSubgrade         = "subgrade"
	WorkTypeGranularPavement = "granular_pavement"
	WorkTypeAsphaltPavement  = "asphalt_pavement"
)

// MethodWorkTypes lists the accepted work types in submission order.
var MethodWorkTypes = []string{
	WorkTypeExcavation,
	WorkTypeEmbankment,
	WorkTypeSubgrade,
	WorkTypeGranularPavement,
	WorkTypeAsphaltPavement,
}

// IsValidWorkType reports whether t is one of the five method work types.
func IsValidWorkType(t string) bool {
	for _, wt := range MethodWorkTypes {
		if wt == t {
			return true
		}
	}
	return false
}
