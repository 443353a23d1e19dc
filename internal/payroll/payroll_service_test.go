package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"workflowhr/internal/deduction"
	"workflowhr/internal/employee"
	"workflowhr/internal/leaverequest"
	"workflowhr/internal/leavetype"
	"workflowhr/internal/payroll"
	payrollerrors "workflowhr/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSlipRepository struct {
	createFn             func(ctx context.Context, slip *payroll.SalarySlip) error
	findAllByCompanyFn   func(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.SalarySlip, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*payroll.SalarySlip, error)
	existsForPeriodFn    func(ctx context.Context, companyID, employeeID string, month, year int) (bool, error)
	flagRecalculationFn  func(ctx context.Context, companyID, employeeID string, month, year int) error
}

func (f *fakeSlipRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeSlipRepository) Create(ctx context.Context, slip *payroll.SalarySlip) error {
	if f.createFn != nil {
		return f.createFn(ctx, slip)
	}
	return nil
}

func (f *fakeSlipRepository) FindAllByCompany(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.SalarySlip, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeSlipRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.SalarySlip, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSlipRepository) ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error) {
	if f.existsForPeriodFn != nil {
		return f.existsForPeriodFn(ctx, companyID, employeeID, month, year)
	}
	return false, nil
}

func (f *fakeSlipRepository) FlagRecalculation(ctx context.Context, companyID, employeeID string, month, year int) error {
	if f.flagRecalculationFn != nil {
		return f.flagRecalculationFn(ctx, companyID, employeeID, month, year)
	}
	return nil
}

type fakeEmployeeSource struct {
	emp *employee.Employee
}

func (f *fakeEmployeeSource) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.emp == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.emp, nil
}

type fakeDeductionSource struct {
	deductions []deduction.FixedDeduction
}

func (f *fakeDeductionSource) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]deduction.FixedDeduction, error) {
	var active []deduction.FixedDeduction
	for _, d := range f.deductions {
		if d.EmployeeID.String() == employeeID && d.IsActive {
			active = append(active, d)
		}
	}
	return active, nil
}

type fakeUnpaidLeaveSource struct {
	requests []leaverequest.LeaveRequest
}

func (f *fakeUnpaidLeaveSource) FindApprovedUnpaidOverlapping(ctx context.Context, companyID, employeeID string, unpaidTypeIDs []string, from, to time.Time) ([]leaverequest.LeaveRequest, error) {
	return f.requests, nil
}

type fakeLeaveTypeSource struct {
	types []leavetype.LeaveType
}

func (f *fakeLeaveTypeSource) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	return f.types, nil
}

type fakeDayCounter struct {
	inMonth int
	between int
}

func (f *fakeDayCounter) WorkingDaysInMonth(ctx context.Context, companyID string, month, year int) int {
	return f.inMonth
}

func (f *fakeDayCounter) WorkingDaysBetween(ctx context.Context, companyID string, start, end time.Time) int {
	return f.between
}

type fakeNumberSource struct {
	next int64
}

func (f *fakeNumberSource) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type slipServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    payroll.Service
	repo       *fakeSlipRepository
	employee   *employee.Employee
	deductions *fakeDeductionSource
	leaves     *fakeUnpaidLeaveSource
}

func setupSlipServiceTest(t *testing.T, annualSalary int64, unpaidDaysInMonth int) *slipServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	emp := &employee.Employee{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		FullName:    "Citra Dewi",
		JoiningDate: time.Date(2022, 5, 2, 0, 0, 0, 0, time.UTC),
		Salary:      decimal.NewFromInt(annualSalary),
	}

	unpaidType := leavetype.LeaveType{ID: uuid.New(), Name: leavetype.NamePersonal, IsPaid: false}
	leaves := &fakeUnpaidLeaveSource{}
	if unpaidDaysInMonth > 0 {
		leaves.requests = []leaverequest.LeaveRequest{{
			ID:          uuid.New(),
			CompanyID:   emp.CompanyID,
			EmployeeID:  emp.ID,
			LeaveTypeID: unpaidType.ID,
			StartDate:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			TotalDays:   unpaidDaysInMonth,
			Status:      leaverequest.StatusApprovedByHR,
		}}
	}

	repo := &fakeSlipRepository{}
	deductions := &fakeDeductionSource{}
	svc := payroll.NewService(
		db, repo,
		&fakeEmployeeSource{emp: emp},
		deductions,
		leaves,
		&fakeLeaveTypeSource{types: []leavetype.LeaveType{
			{ID: uuid.New(), Name: leavetype.NameAnnual, IsPaid: true},
			unpaidType,
		}},
		&fakeDayCounter{inMonth: 21, between: unpaidDaysInMonth},
		&fakeNumberSource{},
	)

	return &slipServiceDeps{
		db: db, sqlMock: sqlMock, service: svc,
		repo: repo, employee: emp, deductions: deductions, leaves: leaves,
	}
}

// assertAmount compares money strings numerically so exponent differences
// like "30000" vs "30000.00" do not matter.
func assertAmount(t *testing.T, want, got string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(got)),
		"want %s, got %s", want, got)
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPayrollService_GenerateSlip_UnpaidLeaveImpact(t *testing.T) {
	ctx := context.Background()
	deps := setupSlipServiceTest(t, 360000, 2)
	defer deps.db.Close()

	var created *payroll.SalarySlip
	deps.repo.createFn = func(ctx context.Context, slip *payroll.SalarySlip) error {
		created = slip
		return nil
	}

	expectTx(t, deps.sqlMock, true)
	resp, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
		EmployeeID: deps.employee.ID.String(),
		Month:      3,
		Year:       2024,
	})

	assert.NoError(t, err)
	assertAmount(t, "30000", resp.MonthlySalary)
	assert.Equal(t, 2, resp.UnpaidLeaveDays)
	assertAmount(t, "2000", resp.LeaveImpact)
	assertAmount(t, "28000", resp.NetSalary)
	assert.Equal(t, 21, resp.WorkingDays)
	assert.Equal(t, 19, resp.ActualWorkingDays)
	assert.Equal(t, "SLIP-2024-03-00001", resp.SlipNumber)
	if assert.NotNil(t, created) {
		assert.Len(t, created.Details, 1)
		assert.Equal(t, "Unpaid Leave", created.Details[0].Name)
		assert.Equal(t, payroll.DetailKindDeduction, created.Details[0].Kind)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GenerateSlip_DuplicatePeriodConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("exists check", func(t *testing.T) {
		deps := setupSlipServiceTest(t, 360000, 0)
		defer deps.db.Close()

		deps.repo.existsForPeriodFn = func(ctx context.Context, cid, eid string, month, year int) (bool, error) {
			return true, nil
		}

		_, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
			EmployeeID: deps.employee.ID.String(),
			Month:      3,
			Year:       2024,
		})

		assert.ErrorIs(t, err, payrollerrors.ErrSlipAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unique index race", func(t *testing.T) {
		deps := setupSlipServiceTest(t, 360000, 0)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, slip *payroll.SalarySlip) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_slip_period"}
		}

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
			EmployeeID: deps.employee.ID.String(),
			Month:      3,
			Year:       2024,
		})

		assert.ErrorIs(t, err, payrollerrors.ErrSlipAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_GenerateSlip_AdjustmentsAndDeductions(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid adjustments dropped quietly", func(t *testing.T) {
		deps := setupSlipServiceTest(t, 360000, 0)
		defer deps.db.Close()

		var created *payroll.SalarySlip
		deps.repo.createFn = func(ctx context.Context, slip *payroll.SalarySlip) error {
			created = slip
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
			EmployeeID: deps.employee.ID.String(),
			Month:      3,
			Year:       2024,
			Adjustments: []payroll.AdjustmentInput{
				{Name: "Performance Bonus", Amount: "500", Kind: payroll.DetailKindAddition},
				{Name: "Equipment Damage", Amount: "200", Kind: payroll.DetailKindDeduction},
				{Name: "", Amount: "100", Kind: payroll.DetailKindAddition},
				{Name: "Bad Amount", Amount: "abc", Kind: payroll.DetailKindAddition},
				{Name: "Negative", Amount: "-50", Kind: payroll.DetailKindDeduction},
				{Name: "Zero Bonus", Amount: "0", Kind: payroll.DetailKindAddition},
				{Name: "Bad Kind", Amount: "10", Kind: "BONUS"},
			},
		})

		assert.NoError(t, err)
		assertAmount(t, "500", resp.TotalAdditions)
		assertAmount(t, "200", resp.TotalDeductions)
		assertAmount(t, "30300", resp.NetSalary)
		if assert.NotNil(t, created) {
			assert.Len(t, created.Details, 2)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("percent deduction computed from monthly salary", func(t *testing.T) {
		deps := setupSlipServiceTest(t, 360000, 0)
		defer deps.db.Close()

		deps.deductions.deductions = []deduction.FixedDeduction{
			{ID: uuid.New(), CompanyID: deps.employee.CompanyID, EmployeeID: deps.employee.ID, Name: "Pension", Kind: deduction.KindPercent, Amount: decimal.NewFromInt(10), IsActive: true},
			{ID: uuid.New(), CompanyID: deps.employee.CompanyID, EmployeeID: deps.employee.ID, Name: "Insurance", Kind: deduction.KindFlat, Amount: decimal.NewFromInt(150), IsActive: true},
		}
		deps.repo.createFn = func(ctx context.Context, slip *payroll.SalarySlip) error { return nil }

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
			EmployeeID: deps.employee.ID.String(),
			Month:      3,
			Year:       2024,
		})

		assert.NoError(t, err)
		assertAmount(t, "3150", resp.TotalDeductions)
		assertAmount(t, "26850", resp.NetSalary)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("other employees' and inactive deductions never charge", func(t *testing.T) {
		deps := setupSlipServiceTest(t, 360000, 0)
		defer deps.db.Close()

		deps.deductions.deductions = []deduction.FixedDeduction{
			{ID: uuid.New(), CompanyID: deps.employee.CompanyID, EmployeeID: deps.employee.ID, Name: "Insurance", Kind: deduction.KindFlat, Amount: decimal.NewFromInt(150), IsActive: true},
			{ID: uuid.New(), CompanyID: deps.employee.CompanyID, EmployeeID: uuid.New(), Name: "Colleague Pension", Kind: deduction.KindPercent, Amount: decimal.NewFromInt(10), IsActive: true},
			{ID: uuid.New(), CompanyID: deps.employee.CompanyID, EmployeeID: deps.employee.ID, Name: "Old Loan", Kind: deduction.KindFlat, Amount: decimal.NewFromInt(500), IsActive: false},
		}

		var created *payroll.SalarySlip
		deps.repo.createFn = func(ctx context.Context, slip *payroll.SalarySlip) error {
			created = slip
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
			EmployeeID: deps.employee.ID.String(),
			Month:      3,
			Year:       2024,
		})

		assert.NoError(t, err)
		assertAmount(t, "150", resp.TotalDeductions)
		assertAmount(t, "29850", resp.NetSalary)
		if assert.NotNil(t, created) {
			assert.Len(t, created.Details, 1)
			assert.Equal(t, "Insurance", created.Details[0].Name)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_GenerateSlip_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	deps := setupSlipServiceTest(t, 360000, 0)
	defer deps.db.Close()

	_, err := deps.service.GenerateSlip(ctx, deps.employee.CompanyID.String(), uuid.New().String(), payroll.GenerateSlipRequest{
		EmployeeID: deps.employee.ID.String(),
		Month:      13,
		Year:       2024,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
}

func TestPayrollService_GetByID_CrossCompanyNotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupSlipServiceTest(t, 360000, 0)
	defer deps.db.Close()

	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.SalarySlip, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.GetByID(ctx, uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrSlipNotFound)
}

func TestPayrollService_GeneratePayslipPDF(t *testing.T) {
	ctx := context.Background()
	deps := setupSlipServiceTest(t, 360000, 0)
	defer deps.db.Close()

	slipID := uuid.New()
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.SalarySlip, error) {
		return &payroll.SalarySlip{
			ID:            slipID,
			CompanyID:     deps.employee.CompanyID,
			EmployeeID:    deps.employee.ID,
			Month:         3,
			Year:          2024,
			SlipNumber:    "SLIP-2024-03-00007",
			MonthlySalary: decimal.NewFromInt(30000),
			NetSalary:     decimal.NewFromInt(28000),
		}, nil
	}

	pdf, filename, err := deps.service.GeneratePayslipPDF(ctx, deps.employee.CompanyID.String(), slipID.String())

	assert.NoError(t, err)
	assert.Equal(t, "payslip_SLIP-2024-03-00007.pdf", filename)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF-1.4", string(pdf[:8]))
}
