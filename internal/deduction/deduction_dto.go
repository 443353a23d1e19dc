package deduction

type CreateDeductionRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Name       string `json:"name" binding:"required,max=120"`
	Kind       string `json:"kind" binding:"required,oneof=FLAT PERCENT"`
	Amount     string `json:"amount" binding:"required"`

	// IsActive defaults to true when omitted.
	IsActive *bool `json:"is_active"`
}

type UpdateDeductionRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Kind     string `json:"kind" binding:"required,oneof=FLAT PERCENT"`
	Amount   string `json:"amount" binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

type DeductionResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	IsActive   bool   `json:"is_active"`
}
