package leavebalance_test

import (
	"context"
	"testing"
	"time"

	"workflowhr/internal/employee"
	"workflowhr/internal/leavebalance"
	balanceerrors "workflowhr/internal/leavebalance/errors"
	"workflowhr/internal/leavetype"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	createFn            func(ctx context.Context, b *leavebalance.LeaveBalance) error
	updateFn            func(ctx context.Context, b *leavebalance.LeaveBalance) error
	findByEmployeeYear  func(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.LeaveBalance, error)
	findByKeyFn         func(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) ([]leavebalance.LeaveBalance, error)
	findByGlobalKeyFn   func(ctx context.Context, key leavebalance.BalanceKey) ([]leavebalance.LeaveBalance, error)
	deleteByIDsFn       func(ctx context.Context, ids []uuid.UUID) error
	findDuplicateKeysFn func(ctx context.Context) ([]leavebalance.BalanceKey, error)
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.LeaveBalance, error) {
	if f.findByEmployeeYear != nil {
		return f.findByEmployeeYear(ctx, companyID, employeeID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) ([]leavebalance.LeaveBalance, error) {
	if f.findByKeyFn != nil {
		return f.findByKeyFn(ctx, companyID, employeeID, leaveTypeID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindByGlobalKey(ctx context.Context, key leavebalance.BalanceKey) ([]leavebalance.LeaveBalance, error) {
	if f.findByGlobalKeyFn != nil {
		return f.findByGlobalKeyFn(ctx, key)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if f.deleteByIDsFn != nil {
		return f.deleteByIDsFn(ctx, ids)
	}
	return nil
}

func (f *fakeBalanceRepository) FindDuplicateKeys(ctx context.Context) ([]leavebalance.BalanceKey, error) {
	if f.findDuplicateKeysFn != nil {
		return f.findDuplicateKeysFn(ctx)
	}
	return nil, nil
}

type fakeEmployeeSource struct {
	findFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeSource) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findFn != nil {
		return f.findFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeLeaveTypeSource struct {
	findAllFn  func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeSource) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeSource) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func testEmployee(companyID uuid.UUID, joining time.Time, entitlement int) *employee.Employee {
	return &employee.Employee{
		ID:           uuid.New(),
		CompanyID:    companyID,
		FullName:     "Ayu Lestari",
		JoiningDate:  joining,
		LeaveBalance: entitlement,
	}
}

func TestLeaveBalanceService_GetOrCreateBalances_Allocations(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	annual := leavetype.LeaveType{ID: uuid.New(), Name: leavetype.NameAnnual, IsPaid: true}
	personal := leavetype.LeaveType{ID: uuid.New(), Name: leavetype.NamePersonal, IsPaid: false}
	sabbatical := leavetype.LeaveType{ID: uuid.New(), Name: "Sabbatical Leave", IsPaid: false}

	cases := []struct {
		name        string
		joining     time.Time
		entitlement int
		year        int
		types       []leavetype.LeaveType
		wantTotals  []int
	}{
		{
			name:        "mid-year hire prorates annual entitlement",
			joining:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			entitlement: 20,
			year:        2024,
			types:       []leavetype.LeaveType{annual},
			wantTotals:  []int{11},
		},
		{
			name:        "later year grants full entitlement",
			joining:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			entitlement: 20,
			year:        2025,
			types:       []leavetype.LeaveType{annual},
			wantTotals:  []int{20},
		},
		{
			name:        "january first hire keeps full entitlement",
			joining:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			entitlement: 20,
			year:        2024,
			types:       []leavetype.LeaveType{annual},
			wantTotals:  []int{20},
		},
		{
			name:        "unpaid personal gets five days, other unpaid gets ten",
			joining:     time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
			entitlement: 20,
			year:        2024,
			types:       []leavetype.LeaveType{personal, sabbatical},
			wantTotals:  []int{5, 10},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			emp := testEmployee(companyID, tc.joining, tc.entitlement)

			var created []leavebalance.LeaveBalance
			repo := &fakeBalanceRepository{
				createFn: func(ctx context.Context, b *leavebalance.LeaveBalance) error {
					created = append(created, *b)
					return nil
				},
			}
			employees := &fakeEmployeeSource{
				findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
					return emp, nil
				},
			}
			leaveTypes := &fakeLeaveTypeSource{
				findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
					return tc.types, nil
				},
			}

			svc := leavebalance.NewService(repo, employees, leaveTypes)
			balances, err := svc.GetOrCreateBalances(ctx, companyID.String(), emp.ID.String(), tc.year)

			assert.NoError(t, err)
			assert.Len(t, balances, len(tc.types))
			assert.Len(t, created, len(tc.types))
			for i, want := range tc.wantTotals {
				assert.Equal(t, want, balances[i].TotalDays)
				assert.Equal(t, 0, balances[i].UsedDays)
				assert.Equal(t, want, balances[i].RemainingDays)
			}
		})
	}
}

func TestLeaveBalanceService_GetOrCreateBalances_ExistingRowUntouched(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	emp := testEmployee(companyID, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 20)
	annual := leavetype.LeaveType{ID: uuid.New(), Name: leavetype.NameAnnual, IsPaid: true}

	existing := leavebalance.LeaveBalance{
		ID:            uuid.New(),
		CompanyID:     companyID,
		EmployeeID:    emp.ID,
		LeaveTypeID:   annual.ID,
		Year:          2024,
		TotalDays:     11,
		UsedDays:      3,
		RemainingDays: 8,
	}

	createCalls := 0
	repo := &fakeBalanceRepository{
		findByKeyFn: func(ctx context.Context, cid, eid, ltid string, year int) ([]leavebalance.LeaveBalance, error) {
			return []leavebalance.LeaveBalance{existing}, nil
		},
		createFn: func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			createCalls++
			return nil
		},
	}
	employees := &fakeEmployeeSource{
		findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) { return emp, nil },
	}
	leaveTypes := &fakeLeaveTypeSource{
		findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
			return []leavetype.LeaveType{annual}, nil
		},
	}

	svc := leavebalance.NewService(repo, employees, leaveTypes)
	balances, err := svc.GetOrCreateBalances(ctx, companyID.String(), emp.ID.String(), 2024)

	assert.NoError(t, err)
	assert.Equal(t, 0, createCalls)
	assert.Len(t, balances, 1)
	assert.Equal(t, 11, balances[0].TotalDays)
	assert.Equal(t, 3, balances[0].UsedDays)
	assert.Equal(t, 8, balances[0].RemainingDays)
}

func TestLeaveBalanceService_GetOrCreateBalances_CrossCompanyNotFound(t *testing.T) {
	ctx := context.Background()

	employees := &fakeEmployeeSource{
		findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := leavebalance.NewService(&fakeBalanceRepository{}, employees, &fakeLeaveTypeSource{})

	_, err := svc.GetOrCreateBalances(ctx, uuid.New().String(), uuid.New().String(), 2024)

	assert.ErrorIs(t, err, balanceerrors.ErrEmployeeNotFound)
}

func TestLeaveBalanceService_RecordUsage(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	emp := testEmployee(companyID, time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC), 20)
	annual := leavetype.LeaveType{ID: uuid.New(), Name: leavetype.NameAnnual, IsPaid: true}

	t.Run("charges days and recomputes remaining", func(t *testing.T) {
		row := leavebalance.LeaveBalance{
			ID: uuid.New(), CompanyID: companyID, EmployeeID: emp.ID,
			LeaveTypeID: annual.ID, Year: 2024,
			TotalDays: 20, UsedDays: 2, RemainingDays: 18,
		}

		var updated *leavebalance.LeaveBalance
		repo := &fakeBalanceRepository{
			findByKeyFn: func(ctx context.Context, cid, eid, ltid string, year int) ([]leavebalance.LeaveBalance, error) {
				return []leavebalance.LeaveBalance{row}, nil
			},
			updateFn: func(ctx context.Context, b *leavebalance.LeaveBalance) error {
				updated = b
				return nil
			},
		}
		svc := leavebalance.NewService(repo,
			&fakeEmployeeSource{findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) { return emp, nil }},
			&fakeLeaveTypeSource{findByIDFn: func(ctx context.Context, id string) (*leavetype.LeaveType, error) { return &annual, nil }},
		)

		err := svc.RecordUsage(ctx, companyID.String(), emp.ID.String(), annual.ID.String(), 2024, 4)

		assert.NoError(t, err)
		if assert.NotNil(t, updated) {
			assert.Equal(t, 6, updated.UsedDays)
			assert.Equal(t, 14, updated.RemainingDays)
		}
	})

	t.Run("remaining clamps at zero on overdraw", func(t *testing.T) {
		row := leavebalance.LeaveBalance{
			ID: uuid.New(), CompanyID: companyID, EmployeeID: emp.ID,
			LeaveTypeID: annual.ID, Year: 2024,
			TotalDays: 5, UsedDays: 4, RemainingDays: 1,
		}

		var updated *leavebalance.LeaveBalance
		repo := &fakeBalanceRepository{
			findByKeyFn: func(ctx context.Context, cid, eid, ltid string, year int) ([]leavebalance.LeaveBalance, error) {
				return []leavebalance.LeaveBalance{row}, nil
			},
			updateFn: func(ctx context.Context, b *leavebalance.LeaveBalance) error {
				updated = b
				return nil
			},
		}
		svc := leavebalance.NewService(repo,
			&fakeEmployeeSource{findFn: func(ctx context.Context, cid, id string) (*employee.Employee, error) { return emp, nil }},
			&fakeLeaveTypeSource{findByIDFn: func(ctx context.Context, id string) (*leavetype.LeaveType, error) { return &annual, nil }},
		)

		err := svc.RecordUsage(ctx, companyID.String(), emp.ID.String(), annual.ID.String(), 2024, 3)

		assert.NoError(t, err)
		if assert.NotNil(t, updated) {
			assert.Equal(t, 7, updated.UsedDays)
			assert.Equal(t, 0, updated.RemainingDays)
		}
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		svc := leavebalance.NewService(&fakeBalanceRepository{}, &fakeEmployeeSource{}, &fakeLeaveTypeSource{})

		err := svc.RecordUsage(ctx, companyID.String(), emp.ID.String(), annual.ID.String(), 2024, 0)

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidDays)
	})
}

func TestLeaveBalanceService_Deduplicate_OldestWins(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()
	annualID := uuid.New()
	sickID := uuid.New()

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	oldest := leavebalance.LeaveBalance{ID: uuid.New(), CompanyID: companyID, EmployeeID: employeeID, LeaveTypeID: annualID, Year: 2024, TotalDays: 20, CreatedAt: base}
	newer := leavebalance.LeaveBalance{ID: uuid.New(), CompanyID: companyID, EmployeeID: employeeID, LeaveTypeID: annualID, Year: 2024, TotalDays: 20, CreatedAt: base.Add(time.Minute)}
	sick := leavebalance.LeaveBalance{ID: uuid.New(), CompanyID: companyID, EmployeeID: employeeID, LeaveTypeID: sickID, Year: 2024, TotalDays: 10, CreatedAt: base}

	rows := []leavebalance.LeaveBalance{oldest, sick, newer}

	var deleted []uuid.UUID
	repo := &fakeBalanceRepository{
		findByEmployeeYear: func(ctx context.Context, cid, eid string, year int) ([]leavebalance.LeaveBalance, error) {
			return rows, nil
		},
		deleteByIDsFn: func(ctx context.Context, ids []uuid.UUID) error {
			deleted = append(deleted, ids...)
			remaining := rows[:0:0]
			for _, row := range rows {
				keep := true
				for _, id := range ids {
					if row.ID == id {
						keep = false
					}
				}
				if keep {
					remaining = append(remaining, row)
				}
			}
			rows = remaining
			return nil
		},
	}
	svc := leavebalance.NewService(repo, &fakeEmployeeSource{}, &fakeLeaveTypeSource{})

	survivors, err := svc.Deduplicate(ctx, companyID.String(), employeeID.String(), 2024)

	assert.NoError(t, err)
	assert.Len(t, survivors, 2)
	assert.Equal(t, []uuid.UUID{newer.ID}, deleted)
	assert.Equal(t, oldest.ID, survivors[0].ID)

	// Second pass finds nothing left to repair.
	deleted = nil
	survivors, err = svc.Deduplicate(ctx, companyID.String(), employeeID.String(), 2024)
	assert.NoError(t, err)
	assert.Len(t, survivors, 2)
	assert.Empty(t, deleted)
}

func TestLeaveBalanceService_GlobalCleanup(t *testing.T) {
	ctx := context.Background()
	key := leavebalance.BalanceKey{
		CompanyID:   uuid.New(),
		EmployeeID:  uuid.New(),
		LeaveTypeID: uuid.New(),
		Year:        2024,
	}

	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	rows := []leavebalance.LeaveBalance{
		{ID: uuid.New(), CompanyID: key.CompanyID, EmployeeID: key.EmployeeID, LeaveTypeID: key.LeaveTypeID, Year: 2024, CreatedAt: base},
		{ID: uuid.New(), CompanyID: key.CompanyID, EmployeeID: key.EmployeeID, LeaveTypeID: key.LeaveTypeID, Year: 2024, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), CompanyID: key.CompanyID, EmployeeID: key.EmployeeID, LeaveTypeID: key.LeaveTypeID, Year: 2024, CreatedAt: base.Add(2 * time.Hour)},
	}

	var deleted []uuid.UUID
	repo := &fakeBalanceRepository{
		findDuplicateKeysFn: func(ctx context.Context) ([]leavebalance.BalanceKey, error) {
			return []leavebalance.BalanceKey{key}, nil
		},
		findByGlobalKeyFn: func(ctx context.Context, got leavebalance.BalanceKey) ([]leavebalance.LeaveBalance, error) {
			assert.Equal(t, key, got)
			return rows, nil
		},
		deleteByIDsFn: func(ctx context.Context, ids []uuid.UUID) error {
			deleted = append(deleted, ids...)
			return nil
		},
	}
	svc := leavebalance.NewService(repo, &fakeEmployeeSource{}, &fakeLeaveTypeSource{})

	report, err := svc.GlobalCleanup(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.DuplicateGroups)
	assert.Equal(t, 2, report.RowsRemoved)
	assert.Equal(t, []uuid.UUID{rows[1].ID, rows[2].ID}, deleted)
}
