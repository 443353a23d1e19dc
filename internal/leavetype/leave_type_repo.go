package leavetype

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_type_repo.go -destination=mock/leave_type_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	Seed(ctx context.Context) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

// Seed inserts the fixed catalog, skipping names that already exist.
func (r *repository) Seed(ctx context.Context) error {
	catalog := []LeaveType{
		{ID: uuid.New(), Name: NameAnnual, IsPaid: true, Description: "Yearly paid leave entitlement"},
		{ID: uuid.New(), Name: NameSick, IsPaid: true, Description: "Paid sick leave"},
		{ID: uuid.New(), Name: NamePersonal, IsPaid: false, Description: "Unpaid personal leave"},
	}

	for _, lt := range catalog {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&LeaveType{}).
			Where("name = ?", lt.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := r.db.WithContext(ctx).Create(&lt).Error; err != nil {
			return err
		}
	}

	return nil
}
