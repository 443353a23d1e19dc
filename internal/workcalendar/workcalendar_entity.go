package workcalendar

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkingDaysConfig holds one company's weekly work mask. WorkingDaysPerWeek
// is derived from the mask on every write and is never authoritative on its
// own.
type WorkingDaysConfig struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_working_days_company"`

	WorkingHoursPerDay decimal.Decimal `gorm:"type:numeric(4,2);not null"`

	MondayWorking    bool `gorm:"not null"`
	TuesdayWorking   bool `gorm:"not null"`
	WednesdayWorking bool `gorm:"not null"`
	ThursdayWorking  bool `gorm:"not null"`
	FridayWorking    bool `gorm:"not null"`
	SaturdayWorking  bool `gorm:"not null"`
	SundayWorking    bool `gorm:"not null"`

	WorkingDaysPerWeek int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultConfig is the hardcoded fallback: Mon-Fri, 8 hours per day.
func DefaultConfig(companyID uuid.UUID) WorkingDaysConfig {
	cfg := WorkingDaysConfig{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		WorkingHoursPerDay: decimal.NewFromInt(8),
		MondayWorking:      true,
		TuesdayWorking:     true,
		WednesdayWorking:   true,
		ThursdayWorking:    true,
		FridayWorking:      true,
		SaturdayWorking:    false,
		SundayWorking:      false,
	}
	cfg.WorkingDaysPerWeek = cfg.countWorkingDays()
	return cfg
}

func (c WorkingDaysConfig) IsWorkingDay(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return c.MondayWorking
	case time.Tuesday:
		return c.TuesdayWorking
	case time.Wednesday:
		return c.WednesdayWorking
	case time.Thursday:
		return c.ThursdayWorking
	case time.Friday:
		return c.FridayWorking
	case time.Saturday:
		return c.SaturdayWorking
	default:
		return c.SundayWorking
	}
}

func (c WorkingDaysConfig) countWorkingDays() int {
	count := 0
	for _, working := range []bool{
		c.MondayWorking, c.TuesdayWorking, c.WednesdayWorking,
		c.ThursdayWorking, c.FridayWorking, c.SaturdayWorking, c.SundayWorking,
	} {
		if working {
			count++
		}
	}
	return count
}
