package leavebalance

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workflowhr/internal/employee"
	balanceerrors "workflowhr/internal/leavebalance/errors"
	"workflowhr/internal/leavetype"
	sharedretry "workflowhr/internal/shared/retry"
)

const (
	// Unpaid allocations are fixed and never prorated.
	personalUnpaidDays = 5
	defaultUnpaidDays  = 10

	// Proration always divides by 365, leap years included.
	leaveYearDays = 365

	storeAttempts = 3
	storeBackoff  = 100 * time.Millisecond
)

// EmployeeSource is the slice of the employee repository the ledger needs.
type EmployeeSource interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

// LeaveTypeSource is the slice of the leave type catalog the ledger needs.
type LeaveTypeSource interface {
	FindAll(ctx context.Context) ([]leavetype.LeaveType, error)
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

//go:generate mockgen -source=leave_balance_service.go -destination=mock/leave_balance_service_mock.go -package=mock
type Service interface {
	// GetOrCreateBalances returns one row per leave type for the employee
	// and year, materializing missing rows and repairing duplicates on the
	// way. Calling it twice changes nothing the second time.
	GetOrCreateBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)

	// RecordUsage charges approved leave against the ledger. The row is
	// materialized first if absent, so usage never fails on a missing row.
	RecordUsage(ctx context.Context, companyID, employeeID, leaveTypeID string, year, days int) error

	// Deduplicate collapses duplicate groups for one employee and year,
	// keeping the oldest row of each group. Idempotent.
	Deduplicate(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)

	// GlobalCleanup sweeps the whole ledger for duplicate groups. Run at
	// process start and on demand by admins.
	GlobalCleanup(ctx context.Context) (CleanupResponse, error)
}

type service struct {
	repo       Repository
	employees  EmployeeSource
	leaveTypes LeaveTypeSource
	logger     *zap.Logger
}

// The ledger deliberately runs without transactions or row locks. Concurrent
// writers may race a duplicate row into existence; every read path repairs
// what it finds instead of preventing it.
func NewService(repo Repository, employees EmployeeSource, leaveTypes LeaveTypeSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{
		repo:       repo,
		employees:  employees,
		leaveTypes: leaveTypes,
		logger:     l,
	}
}

func (s *service) GetOrCreateBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	if year < 1000 || year > 9999 {
		return nil, balanceerrors.ErrInvalidYear
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, balanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	types, err := s.leaveTypes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BalanceResponse, 0, len(types))
	for _, lt := range types {
		row, err := s.getOrCreateRow(ctx, emp, lt, year)
		if err != nil {
			return nil, err
		}
		responses = append(responses, mapToBalanceResponse(*row, lt))
	}
	return responses, nil
}

// getOrCreateRow resolves one (employee, type, year) key to its single row.
// Duplicates are repaired before the row is returned; a missing row is
// created after a final re-read narrows the race window.
func (s *service) getOrCreateRow(ctx context.Context, emp *employee.Employee, lt leavetype.LeaveType, year int) (*LeaveBalance, error) {
	rows, err := s.repo.FindByKey(ctx, emp.CompanyID.String(), emp.ID.String(), lt.ID.String(), year)
	if err != nil {
		return nil, err
	}

	if len(rows) > 1 {
		if err := s.repairGroup(ctx, rows); err != nil {
			return nil, err
		}
		rows = rows[:1]
	}
	if len(rows) == 1 {
		return &rows[0], nil
	}

	total := s.allocationFor(emp, lt, year)
	row := LeaveBalance{
		ID:          uuid.New(),
		CompanyID:   emp.CompanyID,
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		Year:        year,
		TotalDays:   total,
	}
	row.normalize()

	// Re-check before insert: a concurrent call may have won the race.
	again, err := s.repo.FindByKey(ctx, emp.CompanyID.String(), emp.ID.String(), lt.ID.String(), year)
	if err != nil {
		return nil, err
	}
	if len(again) > 0 {
		return &again[0], nil
	}

	err = sharedretry.Do(ctx, storeAttempts, storeBackoff, func() error {
		return s.repo.Create(ctx, &row)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("leave balance materialized",
		zap.String("employee_id", emp.ID.String()),
		zap.String("leave_type", lt.Name),
		zap.Int("year", year),
		zap.Int("total_days", total),
	)
	return &row, nil
}

// allocationFor sizes a fresh row. Paid types take the employee entitlement,
// prorated in the hire year. Unpaid types take a fixed allocation.
func (s *service) allocationFor(emp *employee.Employee, lt leavetype.LeaveType, year int) int {
	if !lt.IsPaid {
		if lt.Name == leavetype.NamePersonal {
			return personalUnpaidDays
		}
		return defaultUnpaidDays
	}
	return prorateEntitlement(emp.LeaveBalance, emp.JoiningDate, year)
}

// prorateEntitlement computes ceil(entitlement * daysRemaining / 365) for the
// hire year, full entitlement afterwards. daysRemaining is the count of days
// from the joining date (exclusive) through December 31.
func prorateEntitlement(entitlement int, joiningDate time.Time, year int) int {
	if joiningDate.Year() != year {
		return entitlement
	}

	joined := time.Date(joiningDate.Year(), joiningDate.Month(), joiningDate.Day(), 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	daysRemaining := int(yearEnd.Sub(joined).Hours() / 24)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	return int(math.Ceil(float64(entitlement*daysRemaining) / float64(leaveYearDays)))
}

func (s *service) RecordUsage(ctx context.Context, companyID, employeeID, leaveTypeID string, year, days int) error {
	if days <= 0 {
		return balanceerrors.ErrInvalidDays
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrEmployeeNotFound
		}
		return err
	}

	lt, err := s.leaveTypes.FindByID(ctx, leaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	row, err := s.getOrCreateRow(ctx, emp, *lt, year)
	if err != nil {
		return err
	}

	row.UsedDays += days
	row.normalize()

	err = sharedretry.Do(ctx, storeAttempts, storeBackoff, func() error {
		return s.repo.Update(ctx, row)
	})
	if err != nil {
		return err
	}

	s.logger.Info("leave usage recorded",
		zap.String("employee_id", employeeID),
		zap.String("leave_type", lt.Name),
		zap.Int("days", days),
		zap.Int("remaining_days", row.RemainingDays),
	)
	return nil
}

func (s *service) Deduplicate(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	rows, err := s.repo.FindByEmployeeYear(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}

	// Rows arrive oldest first, so the first row seen per type survives.
	seen := make(map[uuid.UUID]bool)
	var survivors []LeaveBalance
	var doomed []uuid.UUID
	for _, row := range rows {
		if seen[row.LeaveTypeID] {
			doomed = append(doomed, row.ID)
			continue
		}
		seen[row.LeaveTypeID] = true
		survivors = append(survivors, row)
	}

	if len(doomed) > 0 {
		if err := s.repo.DeleteByIDs(ctx, doomed); err != nil {
			return nil, err
		}
		s.logger.Warn("duplicate leave balances repaired",
			zap.String("employee_id", employeeID),
			zap.Int("year", year),
			zap.Int("rows_removed", len(doomed)),
		)
	}

	return survivors, nil
}

func (s *service) repairGroup(ctx context.Context, rows []LeaveBalance) error {
	doomed := make([]uuid.UUID, 0, len(rows)-1)
	for _, row := range rows[1:] {
		doomed = append(doomed, row.ID)
	}
	if err := s.repo.DeleteByIDs(ctx, doomed); err != nil {
		return err
	}
	s.logger.Warn("duplicate leave balance group repaired",
		zap.String("employee_id", rows[0].EmployeeID.String()),
		zap.String("leave_type_id", rows[0].LeaveTypeID.String()),
		zap.Int("year", rows[0].Year),
		zap.Int("rows_removed", len(doomed)),
	)
	return nil
}

func (s *service) GlobalCleanup(ctx context.Context) (CleanupResponse, error) {
	keys, err := s.repo.FindDuplicateKeys(ctx)
	if err != nil {
		return CleanupResponse{}, err
	}

	report := CleanupResponse{}
	for _, key := range keys {
		rows, err := s.repo.FindByGlobalKey(ctx, key)
		if err != nil {
			return report, err
		}
		if len(rows) <= 1 {
			// Another sweep got here first. Fine.
			continue
		}
		if err := s.repairGroup(ctx, rows); err != nil {
			return report, err
		}
		report.DuplicateGroups++
		report.RowsRemoved += len(rows) - 1
	}

	if report.DuplicateGroups > 0 {
		s.logger.Warn("ledger cleanup removed duplicates",
			zap.Int("duplicate_groups", report.DuplicateGroups),
			zap.Int("rows_removed", report.RowsRemoved),
		)
	} else {
		s.logger.Info("ledger cleanup found no duplicates")
	}
	return report, nil
}

func mapToBalanceResponse(row LeaveBalance, lt leavetype.LeaveType) BalanceResponse {
	return BalanceResponse{
		ID:            row.ID.String(),
		EmployeeID:    row.EmployeeID.String(),
		LeaveTypeID:   row.LeaveTypeID.String(),
		LeaveTypeName: lt.Name,
		IsPaid:        lt.IsPaid,
		Year:          row.Year,
		TotalDays:     row.TotalDays,
		UsedDays:      row.UsedDays,
		RemainingDays: row.RemainingDays,
	}
}
