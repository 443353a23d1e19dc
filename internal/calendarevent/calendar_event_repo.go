package calendarevent

import (
	"context"
	"time"

	"workflowhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=calendar_event_repo.go -destination=mock/calendar_event_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *CalendarEvent) error
	FindAllByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]CalendarEvent, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*CalendarEvent, error)
	Update(ctx context.Context, e *CalendarEvent) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *CalendarEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, from, to *time.Time) ([]CalendarEvent, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if from != nil {
		q = q.Where("event_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("event_date <= ?", *to)
	}

	var events []CalendarEvent
	err := q.Order("event_date ASC").Find(&events).Error
	return events, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*CalendarEvent, error) {
	var e CalendarEvent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *CalendarEvent) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&CalendarEvent{}, "id = ?", id).Error
}
