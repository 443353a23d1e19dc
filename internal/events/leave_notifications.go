package events

import "time"

// Leave lifecycle notifications. Consumers deliver these to people; the
// producing services treat them as fire-and-forget.
const LeaveNotificationTopic = "hr.leave.notifications.v1"

const (
	LeaveRequestSubmittedType = "leave_request.submitted"
	LeaveRequestDecidedType   = "leave_request.decided"
)

type LeaveRequestSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	CompanyID   string    `json:"company_id"`
	EmployeeID  string    `json:"employee_id"`
	TeamLeadID  string    `json:"team_lead_id,omitempty"`
	HRID        string    `json:"hr_id,omitempty"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalDays   int       `json:"total_days"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type LeaveRequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	Remarks    string    `json:"remarks,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
