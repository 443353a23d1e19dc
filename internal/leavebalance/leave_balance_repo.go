package leavebalance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BalanceKey identifies a ledger group. Every key should map to exactly one
// row; FindDuplicateKeys surfaces the ones that do not.
type BalanceKey struct {
	CompanyID   uuid.UUID `gorm:"column:company_id"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id"`
	LeaveTypeID uuid.UUID `gorm:"column:leave_type_id"`
	Year        int       `gorm:"column:year"`
}

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, b *LeaveBalance) error
	Update(ctx context.Context, b *LeaveBalance) error

	// FindByEmployeeYear and FindByKey return rows ordered by created_at
	// then id, so index 0 is always the canonical survivor of a
	// duplicate group.
	FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) ([]LeaveBalance, error)
	FindByGlobalKey(ctx context.Context, key BalanceKey) ([]LeaveBalance, error)

	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	FindDuplicateKeys(ctx context.Context) ([]BalanceKey, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND year = ?", companyID, employeeID, year).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByKey(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND leave_type_id = ? AND year = ?",
			companyID, employeeID, leaveTypeID, year).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByGlobalKey(ctx context.Context, key BalanceKey) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND leave_type_id = ? AND year = ?",
			key.CompanyID, key.EmployeeID, key.LeaveTypeID, key.Year).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Delete(&LeaveBalance{}, "id IN ?", ids).Error
}

func (r *repository) FindDuplicateKeys(ctx context.Context) ([]BalanceKey, error) {
	var keys []BalanceKey
	err := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Select("company_id, employee_id, leave_type_id, year").
		Group("company_id, employee_id, leave_type_id, year").
		Having("COUNT(*) > 1").
		Scan(&keys).Error
	return keys, err
}
