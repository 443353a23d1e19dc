package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DetailKindAddition  = "ADDITION"
	DetailKindDeduction = "DEDUCTION"
)

// SalarySlip is immutable once generated: a period is paid exactly once per
// employee, enforced by uq_slip_period on top of the service-level exists
// check. Late unpaid leave only flips NeedsRecalculation, it never rewrites
// the slip.
type SalarySlip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_slip_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_slip_period"`
	Year       int       `gorm:"not null;uniqueIndex:uq_slip_period"`

	SlipNumber string `gorm:"type:varchar(40);not null"`

	MonthlySalary decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	WorkingDays   int             `gorm:"not null"`

	// ActualWorkingDays = WorkingDays - UnpaidLeaveDays, floored at zero.
	ActualWorkingDays int `gorm:"not null;default:0"`
	UnpaidLeaveDays   int `gorm:"not null;default:0"`
	LeaveImpact     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAdditions  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	NeedsRecalculation bool      `gorm:"not null;default:false"`
	GeneratedBy        uuid.UUID `gorm:"type:uuid;not null"`

	Details []SalarySlipDetail `gorm:"foreignKey:SlipID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SalarySlipDetail struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SlipID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name   string          `gorm:"type:varchar(120);not null"`
	Kind   string          `gorm:"type:varchar(10);not null"`
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time
}
