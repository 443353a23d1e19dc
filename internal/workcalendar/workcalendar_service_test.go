package workcalendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workflowhr/internal/workcalendar"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeConfigRepository struct {
	findByCompanyFn func(ctx context.Context, companyID string) (*workcalendar.WorkingDaysConfig, error)
	createFn        func(ctx context.Context, cfg *workcalendar.WorkingDaysConfig) error
	updateFn        func(ctx context.Context, cfg *workcalendar.WorkingDaysConfig) error
}

func (f *fakeConfigRepository) FindByCompany(ctx context.Context, companyID string) (*workcalendar.WorkingDaysConfig, error) {
	if f.findByCompanyFn != nil {
		return f.findByCompanyFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepository) Create(ctx context.Context, cfg *workcalendar.WorkingDaysConfig) error {
	if f.createFn != nil {
		return f.createFn(ctx, cfg)
	}
	return nil
}

func (f *fakeConfigRepository) Update(ctx context.Context, cfg *workcalendar.WorkingDaysConfig) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, cfg)
	}
	return nil
}

func storedConfig(companyID uuid.UUID, mutate func(*workcalendar.WorkingDaysConfig)) *fakeConfigRepository {
	cfg := workcalendar.DefaultConfig(companyID)
	if mutate != nil {
		mutate(&cfg)
	}
	return &fakeConfigRepository{
		findByCompanyFn: func(ctx context.Context, cid string) (*workcalendar.WorkingDaysConfig, error) {
			return &cfg, nil
		},
	}
}

func TestWorkcalendarService_WorkingDaysInMonth(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	cases := []struct {
		name   string
		mutate func(*workcalendar.WorkingDaysConfig)
		month  int
		year   int
		want   int
	}{
		{name: "february 2024 default mask", month: 2, year: 2024, want: 21},
		{name: "february 2025 default mask", month: 2, year: 2025, want: 20},
		{
			name: "saturdays included",
			mutate: func(cfg *workcalendar.WorkingDaysConfig) {
				cfg.SaturdayWorking = true
			},
			month: 2, year: 2024, want: 25,
		},
		{
			name: "nothing working counts zero",
			mutate: func(cfg *workcalendar.WorkingDaysConfig) {
				cfg.MondayWorking = false
				cfg.TuesdayWorking = false
				cfg.WednesdayWorking = false
				cfg.ThursdayWorking = false
				cfg.FridayWorking = false
			},
			month: 2, year: 2024, want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := workcalendar.NewService(storedConfig(companyID, tc.mutate))
			got := svc.WorkingDaysInMonth(ctx, companyID.String(), tc.month, tc.year)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWorkcalendarService_WorkingDaysBetween(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	svc := workcalendar.NewService(storedConfig(companyID, nil))

	t.Run("single work week", func(t *testing.T) {
		start := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 5, svc.WorkingDaysBetween(ctx, companyID.String(), start, end))
	})

	t.Run("weekend only", func(t *testing.T) {
		start := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, svc.WorkingDaysBetween(ctx, companyID.String(), start, end))
	})

	t.Run("inverted range counts zero", func(t *testing.T) {
		start := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, svc.WorkingDaysBetween(ctx, companyID.String(), start, end))
	})
}

func TestWorkcalendarService_GetConfig_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	repo := &fakeConfigRepository{
		findByCompanyFn: func(ctx context.Context, cid string) (*workcalendar.WorkingDaysConfig, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := workcalendar.NewService(repo)

	cfg := svc.GetConfig(ctx, companyID.String())

	assert.Equal(t, 5, cfg.WorkingDaysPerWeek)
	assert.True(t, cfg.MondayWorking)
	assert.False(t, cfg.SaturdayWorking)
}

func TestWorkcalendarService_UpdateConfig_ValidatesHours(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	svc := workcalendar.NewService(storedConfig(companyID, nil))

	for _, hours := range []string{"0", "-1", "25", "abc"} {
		_, err := svc.UpdateConfig(ctx, companyID.String(), workcalendar.UpdateConfigRequest{
			WorkingHoursPerDay: hours,
			MondayWorking:      true,
		})
		assert.Error(t, err, "hours %s should be rejected", hours)
	}
}

func TestWorkcalendarService_UpdateConfig_RecomputesWeeklyCount(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	var saved *workcalendar.WorkingDaysConfig
	repo := storedConfig(companyID, nil)
	repo.updateFn = func(ctx context.Context, cfg *workcalendar.WorkingDaysConfig) error {
		saved = cfg
		return nil
	}
	svc := workcalendar.NewService(repo)

	cfg, err := svc.UpdateConfig(ctx, companyID.String(), workcalendar.UpdateConfigRequest{
		WorkingHoursPerDay: "7.5",
		MondayWorking:      true,
		TuesdayWorking:     true,
		WednesdayWorking:   true,
		ThursdayWorking:    true,
		FridayWorking:      true,
		SaturdayWorking:    true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, cfg.WorkingDaysPerWeek)
	assert.NotNil(t, saved)
}
