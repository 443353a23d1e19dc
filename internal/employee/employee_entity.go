package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	FullName  string    `gorm:"type:varchar(120);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`

	// JoiningDate anchors the leave year in the hire year.
	JoiningDate time.Time `gorm:"type:date;not null"`

	// Salary is annual. LeaveBalance is the annual paid-leave entitlement
	// used as the proration basis, not a live counter.
	Salary       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	LeaveBalance int             `gorm:"type:int;not null;default:0"`

	TeamLeadID *uuid.UUID `gorm:"type:uuid"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
