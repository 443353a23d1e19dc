package deduction

import (
	"context"
	"database/sql"

	"workflowhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=deduction_repo.go -destination=mock/deduction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *FixedDeduction) error
	FindAllByCompany(ctx context.Context, companyID string) ([]FixedDeduction, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]FixedDeduction, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*FixedDeduction, error)
	Update(ctx context.Context, d *FixedDeduction) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, d *FixedDeduction) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]FixedDeduction, error) {
	var deductions []FixedDeduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&deductions).Error
	return deductions, err
}

// FindActiveByEmployee returns only the rows payroll may charge: the
// employee's own, still active.
func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]FixedDeduction, error) {
	var deductions []FixedDeduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND is_active", employeeID).
		Order("name ASC").
		Find(&deductions).Error
	return deductions, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*FixedDeduction, error) {
	var d FixedDeduction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *FixedDeduction) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&FixedDeduction{}, "id = ?", id).Error
}
