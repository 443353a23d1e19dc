package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending            = "PENDING"
	StatusApprovedByTeamLead = "APPROVED_BY_TEAM_LEAD"
	StatusApprovedByHR       = "APPROVED_BY_HR"
	StatusRejected           = "REJECTED"
)

// LeaveRequest moves PENDING -> APPROVED_BY_TEAM_LEAD -> APPROVED_BY_HR, or
// to REJECTED from either pre-terminal stage. The team lead step is optional:
// HR may decide a request the lead never touched. APPROVED_BY_HR and REJECTED
// are terminal.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`

	// TotalDays counts working days only, sized against the company
	// calendar at submission time.
	TotalDays int    `gorm:"not null"`
	Reason    string `gorm:"type:text"`
	Status    string `gorm:"type:varchar(30);not null;default:'PENDING'"`

	// TeamLeadID and HRID are snapshotted from the employee at submission so
	// later reassignments do not reroute an in-flight request.
	TeamLeadID *uuid.UUID `gorm:"type:uuid"`
	HRID       *uuid.UUID `gorm:"type:uuid"`

	LeadDecidedBy *uuid.UUID `gorm:"type:uuid"`
	LeadDecidedAt *time.Time
	HRDecidedBy   *uuid.UUID `gorm:"type:uuid"`
	HRDecidedAt   *time.Time
	Remarks       *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *LeaveRequest) isTerminal() bool {
	return l.Status == StatusApprovedByHR || l.Status == StatusRejected
}
