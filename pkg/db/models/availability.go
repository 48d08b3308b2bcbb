package models

import (
	"time"

	"github.com/google/uuid"
)

// Availability is an owner-defined time range that participants fill in
// against.
type Availability struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;column:owner_id;not null"`
	StartDate time.Time `gorm:"column:start_date;not null"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Availability) TableName() string {
	return "availability"
}
