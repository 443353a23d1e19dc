package events

import "time"

const SalarySlipGeneratedTopic = "hr.payroll.payslip.requested.v1"

// SalarySlipGeneratedEvent asks the payslip consumer to render the PDF and
// notify the employee with the computed breakdown.
type SalarySlipGeneratedEvent struct {
	EventType  string    `json:"event_type"`
	SlipID     string    `json:"slip_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	NetSalary  string    `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}
