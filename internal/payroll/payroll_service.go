package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workflowhr/internal/deduction"
	"workflowhr/internal/employee"
	"workflowhr/internal/leaverequest"
	"workflowhr/internal/leavetype"
	"workflowhr/internal/messaging/kafka"
	payrollerrors "workflowhr/internal/payroll/errors"
)

const (
	monthsPerYear = 12

	// The daily rate always divides the monthly salary by 30, whatever the
	// calendar month holds. Long-standing payroll policy; changing it
	// reprices every historical slip.
	salaryDaysPerMonth = 30

	slipCounterType = "salary_slip"
)

// EmployeeSource is the slice of the employee repository payroll reads.
type EmployeeSource interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

// DeductionSource supplies the employee's active recurring deductions.
type DeductionSource interface {
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]deduction.FixedDeduction, error)
}

// UnpaidLeaveSource finds HR-approved unpaid leave touching the pay period.
type UnpaidLeaveSource interface {
	FindApprovedUnpaidOverlapping(ctx context.Context, companyID, employeeID string, unpaidTypeIDs []string, from, to time.Time) ([]leaverequest.LeaveRequest, error)
}

// LeaveTypeSource identifies which catalog entries are unpaid.
type LeaveTypeSource interface {
	FindAll(ctx context.Context) ([]leavetype.LeaveType, error)
}

// DayCounter reads the company working days calendar.
type DayCounter interface {
	WorkingDaysInMonth(ctx context.Context, companyID string, month, year int) int
	WorkingDaysBetween(ctx context.Context, companyID string, start, end time.Time) int
}

// SlipNumberSource allocates sequential slip numbers per company.
type SlipNumberSource interface {
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GenerateSlip(ctx context.Context, companyID, actorID string, req GenerateSlipRequest) (SlipResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]SlipResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SlipResponse, error)
	GeneratePayslipPDF(ctx context.Context, companyID, id string) ([]byte, string, error)

	// FlagRecalculation marks an existing slip as stale after late unpaid
	// leave. Missing slips are ignored.
	FlagRecalculation(ctx context.Context, companyID, employeeID string, month, year int) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeSource
	deductions DeductionSource
	leaves     UnpaidLeaveSource
	leaveTypes LeaveTypeSource
	calendar   DayCounter
	numbers    SlipNumberSource
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeSource,
	deductions DeductionSource,
	leaves UnpaidLeaveSource,
	leaveTypes LeaveTypeSource,
	calendar DayCounter,
	numbers SlipNumberSource,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, deductions, leaves, leaveTypes, calendar, numbers, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees EmployeeSource,
	deductions DeductionSource,
	leaves UnpaidLeaveSource,
	leaveTypes LeaveTypeSource,
	calendar DayCounter,
	numbers SlipNumberSource,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		deductions: deductions,
		leaves:     leaves,
		leaveTypes: leaveTypes,
		calendar:   calendar,
		numbers:    numbers,
		outbox:     outbox,
		logger:     l,
	}
}

func (s *service) GenerateSlip(ctx context.Context, companyID, actorID string, req GenerateSlipRequest) (SlipResponse, error) {
	s.logger.Debug("generate slip requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	if req.Month < 1 || req.Month > 12 || req.Year < 1000 || req.Year > 9999 {
		return SlipResponse{}, payrollerrors.ErrInvalidPeriod
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SlipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SlipResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return SlipResponse{}, err
	}

	// Fast duplicate check. The unique index catches the race the check
	// cannot see.
	exists, err := s.repo.ExistsForPeriod(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return SlipResponse{}, err
	}
	if exists {
		return SlipResponse{}, payrollerrors.ErrSlipAlreadyExists
	}

	monthlySalary := emp.Salary.DivRound(decimal.NewFromInt(monthsPerYear), 2)
	dailyRate := monthlySalary.DivRound(decimal.NewFromInt(salaryDaysPerMonth), 2)
	workingDays := s.calendar.WorkingDaysInMonth(ctx, companyID, req.Month, req.Year)

	unpaidDays, err := s.unpaidLeaveDays(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return SlipResponse{}, err
	}
	leaveImpact := dailyRate.Mul(decimal.NewFromInt(int64(unpaidDays)))

	actualDays := workingDays - unpaidDays
	if actualDays < 0 {
		actualDays = 0
	}

	slip := &SalarySlip{
		ID:                uuid.New(),
		CompanyID:         emp.CompanyID,
		EmployeeID:        emp.ID,
		Month:             req.Month,
		Year:              req.Year,
		MonthlySalary:     monthlySalary,
		WorkingDays:       workingDays,
		ActualWorkingDays: actualDays,
		UnpaidLeaveDays:   unpaidDays,
		LeaveImpact:       leaveImpact,
		GeneratedBy:       actorUUID,
	}

	if unpaidDays > 0 {
		slip.Details = append(slip.Details, SalarySlipDetail{
			ID:     uuid.New(),
			SlipID: slip.ID,
			Name:   "Unpaid Leave",
			Kind:   DetailKindDeduction,
			Amount: leaveImpact,
		})
	}

	additions, adjustmentDeductions := s.applyAdjustments(slip, req.Adjustments)
	fixedDeductions, err := s.applyFixedDeductions(ctx, slip, monthlySalary)
	if err != nil {
		return SlipResponse{}, err
	}

	slip.TotalAdditions = additions
	slip.TotalDeductions = leaveImpact.Add(adjustmentDeductions).Add(fixedDeductions)
	slip.NetSalary = monthlySalary.Add(additions).Sub(slip.TotalDeductions)

	number, err := s.numbers.GetNextValue(ctx, companyID, slipCounterType)
	if err != nil {
		return SlipResponse{}, err
	}
	slip.SlipNumber = fmt.Sprintf("SLIP-%d-%02d-%05d", req.Year, req.Month, number)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, slip); err != nil {
		s.logger.Error("generate slip persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return SlipResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		if err := publishSlipGenerated(ctx, s.outbox.WithTx(tx), slip); err != nil {
			s.logger.Error("generate slip outbox write failed", zap.Error(err))
			return SlipResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SlipResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("salary slip generated",
		zap.String("slip_id", slip.ID.String()),
		zap.String("slip_number", slip.SlipNumber),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("unpaid_leave_days", unpaidDays),
		zap.String("net_salary", slip.NetSalary.String()),
	)
	return mapToResponse(*slip), nil
}

// unpaidLeaveDays counts working days of HR-approved unpaid leave clamped to
// the pay period.
func (s *service) unpaidLeaveDays(ctx context.Context, companyID, employeeID string, month, year int) (int, error) {
	types, err := s.leaveTypes.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	var unpaidTypeIDs []string
	for _, lt := range types {
		if !lt.IsPaid {
			unpaidTypeIDs = append(unpaidTypeIDs, lt.ID.String())
		}
	}
	if len(unpaidTypeIDs) == 0 {
		return 0, nil
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	requests, err := s.leaves.FindApprovedUnpaidOverlapping(ctx, companyID, employeeID, unpaidTypeIDs, first, last)
	if err != nil {
		return 0, err
	}

	days := 0
	for _, l := range requests {
		start := l.StartDate
		if start.Before(first) {
			start = first
		}
		end := l.EndDate
		if end.After(last) {
			end = last
		}
		days += s.calendar.WorkingDaysBetween(ctx, companyID, start, end)
	}
	return days, nil
}

// applyAdjustments folds the request's one-off items into detail rows.
// Invalid items are dropped quietly so one bad entry cannot sink the slip.
func (s *service) applyAdjustments(slip *SalarySlip, items []AdjustmentInput) (additions, deductions decimal.Decimal) {
	additions = decimal.Zero
	deductions = decimal.Zero

	for _, item := range items {
		amount, err := decimal.NewFromString(item.Amount)
		if item.Name == "" || err != nil || !amount.IsPositive() ||
			(item.Kind != DetailKindAddition && item.Kind != DetailKindDeduction) {
			s.logger.Debug("adjustment dropped",
				zap.String("name", item.Name),
				zap.String("kind", item.Kind),
			)
			continue
		}

		slip.Details = append(slip.Details, SalarySlipDetail{
			ID:     uuid.New(),
			SlipID: slip.ID,
			Name:   item.Name,
			Kind:   item.Kind,
			Amount: amount,
		})
		if item.Kind == DetailKindAddition {
			additions = additions.Add(amount)
		} else {
			deductions = deductions.Add(amount)
		}
	}
	return additions, deductions
}

func (s *service) applyFixedDeductions(ctx context.Context, slip *SalarySlip, monthlySalary decimal.Decimal) (decimal.Decimal, error) {
	fixed, err := s.deductions.FindActiveByEmployee(ctx, slip.CompanyID.String(), slip.EmployeeID.String())
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, d := range fixed {
		amount := d.Amount
		if d.Kind == deduction.KindPercent {
			amount = monthlySalary.Mul(d.Amount).DivRound(decimal.NewFromInt(100), 2)
		}

		slip.Details = append(slip.Details, SalarySlipDetail{
			ID:     uuid.New(),
			SlipID: slip.ID,
			Name:   d.Name,
			Kind:   DetailKindDeduction,
			Amount: amount,
		})
		total = total.Add(amount)
	}
	return total, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]SlipResponse, error) {
	slips, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]SlipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapToResponse(slip)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SlipResponse, error) {
	slip, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SlipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*slip), nil
}

func (s *service) GeneratePayslipPDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	slip, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	var employeeName string
	if emp, err := s.employees.FindByIDAndCompany(ctx, companyID, slip.EmployeeID.String()); err == nil {
		employeeName = emp.FullName
	}

	pdf, err := buildSimplePayslipPDF(payslipLines(slip, employeeName))
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payslip_%s.pdf", slip.SlipNumber)
	return pdf, filename, nil
}

func (s *service) FlagRecalculation(ctx context.Context, companyID, employeeID string, month, year int) error {
	if err := s.repo.FlagRecalculation(ctx, companyID, employeeID, month, year); err != nil {
		return err
	}
	s.logger.Info("slip flagged for recalculation",
		zap.String("employee_id", employeeID),
		zap.Int("month", month),
		zap.Int("year", year),
	)
	return nil
}

func mapToResponse(slip SalarySlip) SlipResponse {
	details := make([]SlipDetailResponse, len(slip.Details))
	for i, d := range slip.Details {
		details[i] = SlipDetailResponse{
			Name:   d.Name,
			Kind:   d.Kind,
			Amount: d.Amount.String(),
		}
	}

	return SlipResponse{
		ID:                 slip.ID.String(),
		SlipNumber:         slip.SlipNumber,
		EmployeeID:         slip.EmployeeID.String(),
		Month:              slip.Month,
		Year:               slip.Year,
		MonthlySalary:      slip.MonthlySalary.String(),
		WorkingDays:        slip.WorkingDays,
		ActualWorkingDays:  slip.ActualWorkingDays,
		UnpaidLeaveDays:    slip.UnpaidLeaveDays,
		LeaveImpact:        slip.LeaveImpact.String(),
		TotalAdditions:     slip.TotalAdditions.String(),
		TotalDeductions:    slip.TotalDeductions.String(),
		NetSalary:          slip.NetSalary.String(),
		NeedsRecalculation: slip.NeedsRecalculation,
		Details:            details,
	}
}
