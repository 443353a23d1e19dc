package workcalendar

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workcalendar_repo.go -destination=mock/workcalendar_repo_mock.go -package=mock
type Repository interface {
	FindByCompany(ctx context.Context, companyID string) (*WorkingDaysConfig, error)
	Create(ctx context.Context, cfg *WorkingDaysConfig) error
	Update(ctx context.Context, cfg *WorkingDaysConfig) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*WorkingDaysConfig, error) {
	var cfg WorkingDaysConfig
	err := r.db.WithContext(ctx).First(&cfg, "company_id = ?", companyID).Error
	return &cfg, err
}

func (r *repository) Create(ctx context.Context, cfg *WorkingDaysConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) Update(ctx context.Context, cfg *WorkingDaysConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
