package leaverequest

type SubmitLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	Remarks  string `json:"remarks"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     int     `json:"total_days"`
	Reason        string  `json:"reason,omitempty"`
	Status        string  `json:"status"`
	TeamLeadID    *string `json:"team_lead_id,omitempty"`
	HRID          *string `json:"hr_id,omitempty"`
	LeadDecidedBy *string `json:"lead_decided_by,omitempty"`
	LeadDecidedAt *string `json:"lead_decided_at,omitempty"`
	HRDecidedBy   *string `json:"hr_decided_by,omitempty"`
	HRDecidedAt   *string `json:"hr_decided_at,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}
