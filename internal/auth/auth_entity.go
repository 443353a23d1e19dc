package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(20);not null;default:'employee'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
