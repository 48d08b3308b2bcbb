package models

import (
	"time"

	"github.com/google/uuid"
)

// Rota ties a set of venues and positions to one availability window.
type Rota struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;column:owner_id;not null"`
	AvailabilityID uuid.UUID `gorm:"type:uuid;column:availability_id;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
