package workcalendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"workflowhr/internal/shared/apperror"
)

//go:generate mockgen -source=workcalendar_service.go -destination=mock/workcalendar_service_mock.go -package=mock
type Service interface {
	// GetConfig never fails: an absent or unreadable config falls back to
	// the Mon-Fri default so calendar reads cannot block leave or payroll.
	GetConfig(ctx context.Context, companyID string) WorkingDaysConfig

	// GetOrCreateConfig persists the default on first read. Callers should
	// know a write may happen behind this read.
	GetOrCreateConfig(ctx context.Context, companyID string) (WorkingDaysConfig, error)

	UpdateConfig(ctx context.Context, companyID string, req UpdateConfigRequest) (WorkingDaysConfig, error)

	WorkingDaysInMonth(ctx context.Context, companyID string, month, year int) int
	WorkingDaysBetween(ctx context.Context, companyID string, start, end time.Time) int
}

type service struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workcalendar.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workcalendar.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetConfig(ctx context.Context, companyID string) WorkingDaysConfig {
	v, err, _ := s.group.Do(companyID, func() (any, error) {
		cfg, err := s.repo.FindByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		return *cfg, nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("working days lookup failed, using default",
				zap.String("company_id", companyID),
				zap.Error(err),
			)
		}
		companyUUID, parseErr := uuid.Parse(companyID)
		if parseErr != nil {
			companyUUID = uuid.Nil
		}
		return DefaultConfig(companyUUID)
	}
	return v.(WorkingDaysConfig)
}

func (s *service) GetOrCreateConfig(ctx context.Context, companyID string) (WorkingDaysConfig, error) {
	cfg, err := s.repo.FindByCompany(ctx, companyID)
	if err == nil {
		return *cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return WorkingDaysConfig{}, err
	}

	companyUUID, parseErr := uuid.Parse(companyID)
	if parseErr != nil {
		return WorkingDaysConfig{}, apperror.ErrInvalidInput
	}

	created := DefaultConfig(companyUUID)
	if err := s.repo.Create(ctx, &created); err != nil {
		// A concurrent first read may have materialized the row already
		if existing, findErr := s.repo.FindByCompany(ctx, companyID); findErr == nil {
			return *existing, nil
		}
		return WorkingDaysConfig{}, err
	}

	s.logger.Info("default working days config materialized",
		zap.String("company_id", companyID),
	)
	return created, nil
}

func (s *service) UpdateConfig(ctx context.Context, companyID string, req UpdateConfigRequest) (WorkingDaysConfig, error) {
	hours, err := decimal.NewFromString(req.WorkingHoursPerDay)
	if err != nil || hours.LessThanOrEqual(decimal.Zero) || hours.GreaterThan(decimal.NewFromInt(24)) {
		return WorkingDaysConfig{}, apperror.New(
			apperror.CodeInvalidInput,
			"working_hours_per_day must be a decimal between 0 and 24",
			http.StatusBadRequest,
		)
	}

	cfg, err := s.GetOrCreateConfig(ctx, companyID)
	if err != nil {
		return WorkingDaysConfig{}, err
	}

	cfg.WorkingHoursPerDay = hours
	cfg.MondayWorking = req.MondayWorking
	cfg.TuesdayWorking = req.TuesdayWorking
	cfg.WednesdayWorking = req.WednesdayWorking
	cfg.ThursdayWorking = req.ThursdayWorking
	cfg.FridayWorking = req.FridayWorking
	cfg.SaturdayWorking = req.SaturdayWorking
	cfg.SundayWorking = req.SundayWorking
	cfg.WorkingDaysPerWeek = cfg.countWorkingDays()

	if err := s.repo.Update(ctx, &cfg); err != nil {
		return WorkingDaysConfig{}, err
	}

	s.logger.Info("working days config updated",
		zap.String("company_id", companyID),
		zap.Int("working_days_per_week", cfg.WorkingDaysPerWeek),
	)
	return cfg, nil
}

func (s *service) WorkingDaysInMonth(ctx context.Context, companyID string, month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.WorkingDaysBetween(ctx, companyID, first, last)
}

// WorkingDaysBetween counts mask-working days over the inclusive range. The
// same count sizes leave requests: leave is only charged against working
// days.
func (s *service) WorkingDaysBetween(ctx context.Context, companyID string, start, end time.Time) int {
	if end.Before(start) {
		return 0
	}

	cfg := s.GetConfig(ctx, companyID)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if cfg.IsWorkingDay(d.Weekday()) {
			count++
		}
	}
	return count
}
