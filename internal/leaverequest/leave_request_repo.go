package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"workflowhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_request_repo.go -destination=mock/leave_request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error

	// FindApprovedUnpaidOverlapping returns HR-approved requests for the
	// named unpaid leave types whose range touches [from, to].
	FindApprovedUnpaidOverlapping(ctx context.Context, companyID, employeeID string, unpaidTypeIDs []string, from, to time.Time) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var requests []LeaveRequest
	err := q.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) FindApprovedUnpaidOverlapping(ctx context.Context, companyID, employeeID string, unpaidTypeIDs []string, from, to time.Time) ([]LeaveRequest, error) {
	if len(unpaidTypeIDs) == 0 {
		return nil, nil
	}

	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApprovedByHR).
		Where("leave_type_id IN ?", unpaidTypeIDs).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}
