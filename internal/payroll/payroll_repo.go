package payroll

import (
	"context"
	"database/sql"

	"workflowhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *SalarySlip) error
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]SalarySlip, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalarySlip, error)
	ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error)

	// FlagRecalculation marks the period's slip, if one exists. Flagging a
	// missing slip is a no-op.
	FlagRecalculation(ctx context.Context, companyID, employeeID string, month, year int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, slip *SalarySlip) error {
	return r.db.WithContext(ctx).Create(slip).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]SalarySlip, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}

	var slips []SalarySlip
	err := q.Preload("Details").
		Order("year DESC, month DESC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Details").
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, companyID, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SalarySlip{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FlagRecalculation(ctx context.Context, companyID, employeeID string, month, year int) error {
	return r.db.WithContext(ctx).
		Model(&SalarySlip{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Update("needs_recalculation", true).Error
}
