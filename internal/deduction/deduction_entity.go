package deduction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KindFlat    = "FLAT"
	KindPercent = "PERCENT"
)

// FixedDeduction applies to every salary slip generated for its employee
// while active. FLAT amounts are money, PERCENT amounts are a percentage of
// monthly salary. Deactivated rows are kept for history, they never charge.
type FixedDeduction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(120);not null"`
	Kind       string          `gorm:"type:varchar(10);not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsActive   bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
