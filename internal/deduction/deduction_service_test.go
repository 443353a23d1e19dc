package deduction_test

import (
	"context"
	"database/sql"
	"testing"

	"workflowhr/internal/deduction"
	deductionerrors "workflowhr/internal/deduction/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDeductionRepository struct {
	createFn func(ctx context.Context, d *deduction.FixedDeduction) error
	findFn   func(ctx context.Context, companyID, id string) (*deduction.FixedDeduction, error)
	updateFn func(ctx context.Context, d *deduction.FixedDeduction) error
}

func (f *fakeDeductionRepository) WithTx(tx *sql.Tx) deduction.Repository { return f }

func (f *fakeDeductionRepository) Create(ctx context.Context, d *deduction.FixedDeduction) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDeductionRepository) FindAllByCompany(ctx context.Context, companyID string) ([]deduction.FixedDeduction, error) {
	return nil, nil
}

func (f *fakeDeductionRepository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]deduction.FixedDeduction, error) {
	return nil, nil
}

func (f *fakeDeductionRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*deduction.FixedDeduction, error) {
	if f.findFn != nil {
		return f.findFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeductionRepository) Update(ctx context.Context, d *deduction.FixedDeduction) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDeductionRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
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

func TestDeductionService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("defaults to active and keeps the employee", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeDeductionRepository{}
		var created *deduction.FixedDeduction
		repo.createFn = func(ctx context.Context, d *deduction.FixedDeduction) error {
			created = d
			return nil
		}
		svc := deduction.NewService(db, repo)

		employeeID := uuid.New().String()
		expectTx(t, sqlMock, true)
		resp, err := svc.Create(ctx, companyID, deduction.CreateDeductionRequest{
			EmployeeID: employeeID,
			Name:       "Pension",
			Kind:       deduction.KindPercent,
			Amount:     "10",
		})

		assert.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Equal(t, employeeID, resp.EmployeeID)
		if assert.NotNil(t, created) {
			assert.True(t, created.IsActive)
			assert.Equal(t, employeeID, created.EmployeeID.String())
		}
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("honors an explicit inactive flag", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeDeductionRepository{}
		svc := deduction.NewService(db, repo)

		inactive := false
		expectTx(t, sqlMock, true)
		resp, err := svc.Create(ctx, companyID, deduction.CreateDeductionRequest{
			EmployeeID: uuid.New().String(),
			Name:       "Old Loan",
			Kind:       deduction.KindFlat,
			Amount:     "500",
			IsActive:   &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects a malformed employee id before touching the db", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := deduction.NewService(db, &fakeDeductionRepository{})

		_, err = svc.Create(ctx, companyID, deduction.CreateDeductionRequest{
			EmployeeID: "not-a-uuid",
			Name:       "Pension",
			Kind:       deduction.KindPercent,
			Amount:     "10",
		})

		assert.ErrorIs(t, err, deductionerrors.ErrInvalidEmployeeID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects percent over one hundred", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := deduction.NewService(db, &fakeDeductionRepository{})

		_, err = svc.Create(ctx, companyID, deduction.CreateDeductionRequest{
			EmployeeID: uuid.New().String(),
			Name:       "Pension",
			Kind:       deduction.KindPercent,
			Amount:     "120",
		})

		assert.ErrorIs(t, err, deductionerrors.ErrInvalidAmount)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestDeductionService_Update_Deactivates(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	deductionID := uuid.New()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeDeductionRepository{}
	repo.findFn = func(ctx context.Context, cid, id string) (*deduction.FixedDeduction, error) {
		return &deduction.FixedDeduction{
			ID:         deductionID,
			CompanyID:  companyID,
			EmployeeID: uuid.New(),
			Name:       "Insurance",
			Kind:       deduction.KindFlat,
			Amount:     decimal.NewFromInt(150),
			IsActive:   true,
		}, nil
	}
	var updated *deduction.FixedDeduction
	repo.updateFn = func(ctx context.Context, d *deduction.FixedDeduction) error {
		updated = d
		return nil
	}
	svc := deduction.NewService(db, repo)

	inactive := false
	expectTx(t, sqlMock, true)
	resp, err := svc.Update(ctx, companyID.String(), deductionID.String(), deduction.UpdateDeductionRequest{
		Name:     "Insurance",
		Kind:     deduction.KindFlat,
		Amount:   "150",
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
	if assert.NotNil(t, updated) {
		assert.False(t, updated.IsActive)
	}
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
