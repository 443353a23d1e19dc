package calendarevent

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEvent is informational company calendar content: holidays, all
// hands, deadlines. Events do not change the working days mask.
type CalendarEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(160);not null"`
	Description string    `gorm:"type:text"`
	EventDate   time.Time `gorm:"type:date;not null;index"`
	IsHoliday   bool      `gorm:"not null;default:false"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
