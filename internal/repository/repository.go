package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors mapped to HTTP responses at the handler layer.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// generateID returns a 32-char dashless ID.
func generateID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// Repositories is the repository collection wired once at startup.
type Repositories struct {
	User       *UserRepository
	Project    *ProjectRepository
	Progress   *ProgressRepository
	Dimension  *DimensionRepository
	Method     *MethodRepository
	Compaction *CompactionRepository
	Lab        *LabRepository
	TrialMix   *TrialMixRepository
}

// NewRepositories creates the repository collection.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Project:    NewProjectRepository(db),
		Progress:   NewProgressRepository(db),
		Dimension:  NewDimensionRepository(db),
		Method:     NewMethodRepository(db),
		Compaction: NewCompactionRepository(db),
		Lab:        NewLabRepository(db),
		TrialMix:   NewTrialMixRepository(db),
	}
}
