package models

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a place an owner schedules positions at. Standalone venues carry
// no rota; venues created through a rota replace reference one and disappear
// with it. The index is assigned from submission order, not client input.
type Venue struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;column:owner_id;not null;uniqueIndex:idx_venues_owner_name"`
	RotaID      *uuid.UUID `gorm:"type:uuid;column:rota_id"`
	Name        string     `gorm:"type:text;not null;uniqueIndex:idx_venues_owner_name"`
	DisplayName *string    `gorm:"column:display_name"`
	Index       int        `gorm:"column:index;not null;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
