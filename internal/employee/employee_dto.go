package employee

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required,min=2,max=120"`
	Email        string  `json:"email" binding:"required,email"`
	JoiningDate  string  `json:"joining_date" binding:"required"`
	Salary       string  `json:"salary" binding:"required"`
	LeaveBalance int     `json:"leave_balance" binding:"min=0"`
	TeamLeadID   *string `json:"team_lead_id"`
}

type UpdateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required,min=2,max=120"`
	Salary       string  `json:"salary" binding:"required"`
	LeaveBalance int     `json:"leave_balance" binding:"min=0"`
	TeamLeadID   *string `json:"team_lead_id"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	JoiningDate  string  `json:"joining_date"`
	Salary       string  `json:"salary"`
	LeaveBalance int     `json:"leave_balance"`
	TeamLeadID   *string `json:"team_lead_id,omitempty"`
	CreatedBy    string  `json:"created_by"`
}
