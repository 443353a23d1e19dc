package payroll

type AdjustmentInput struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Kind   string `json:"kind"`
}

type GenerateSlipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required"`
	Year       int    `json:"year" binding:"required"`

	// Adjustments are optional one-off line items. Invalid entries are
	// dropped, they never fail the whole slip.
	Adjustments []AdjustmentInput `json:"adjustments"`
}

type ListFilter struct {
	EmployeeID string
	Month      int
	Year       int
}

type SlipDetailResponse struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
}

type SlipResponse struct {
	ID                 string               `json:"id"`
	SlipNumber         string               `json:"slip_number"`
	EmployeeID         string               `json:"employee_id"`
	Month              int                  `json:"month"`
	Year               int                  `json:"year"`
	MonthlySalary      string               `json:"monthly_salary"`
	WorkingDays        int                  `json:"working_days"`
	ActualWorkingDays  int                  `json:"actual_working_days"`
	UnpaidLeaveDays    int                  `json:"unpaid_leave_days"`
	LeaveImpact        string               `json:"leave_impact"`
	TotalAdditions     string               `json:"total_additions"`
	TotalDeductions    string               `json:"total_deductions"`
	NetSalary          string               `json:"net_salary"`
	NeedsRecalculation bool                 `json:"needs_recalculation"`
	Details            []SlipDetailResponse `json:"details"`
}
