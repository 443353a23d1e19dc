package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is the ledger row. The intended key is
// (employee_id, leave_type_id, year) with exactly one row per key, but the
// store carries no uniqueness constraint: the ledger detects and repairs
// duplicates instead of preventing them.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_balance_key"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_balance_key"`
	Year        int       `gorm:"not null;index:idx_balance_key"`

	TotalDays     int `gorm:"not null"`
	UsedDays      int `gorm:"not null;default:0"`
	RemainingDays int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// normalize restores the ledger invariant after any mutation:
// remaining == max(0, total - used), never negative.
func (b *LeaveBalance) normalize() {
	remaining := b.TotalDays - b.UsedDays
	if remaining < 0 {
		remaining = 0
	}
	b.RemainingDays = remaining
}
