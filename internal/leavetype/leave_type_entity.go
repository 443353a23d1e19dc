package leavetype

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType is company-agnostic reference data. The catalog is seeded once
// and treated as immutable; unpaid types are identified by IsPaid, never by
// a well-known id.
type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(60);not null;uniqueIndex:uq_leave_type_name"`
	IsPaid      bool      `gorm:"not null;default:true"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	NameAnnual   = "Annual Leave"
	NameSick     = "Sick Leave"
	NamePersonal = "Personal Leave"
)
