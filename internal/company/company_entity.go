package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant boundary. Created once at signup; the id never
// changes and every tenant-owned row carries it.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(120);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
