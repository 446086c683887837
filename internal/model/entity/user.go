package entity

import (
	"time"
)

// User is an account of a contractor, consultant or project owner.
// PasswordHash is bcrypt only; the plaintext is never persisted.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Username     string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;size:128;not null"`
	FullName     string     `json:"nama_lengkap" gorm:"size:128"`
	Email        string     `json:"email" gorm:"size:128"`
	Phone        string     `json:"no_telepon" gorm:"size:32"`
	Company      string     `json:"perusahaan" gorm:"size:128"`
	Role         string     `json:"role" gorm:"size:32;not null;default:kontraktor"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// User roles
const (
	UserRoleKontraktor = "kontraktor"
	UserRoleKonsultan  = "konsultan"
	UserRoleOwner      = "owner"
)
