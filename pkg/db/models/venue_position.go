package models

import (
	"github.com/google/uuid"
)

// VenuePosition is a single assignable slot within a venue. Start and end are
// opaque display strings ("09:00"), not parsed timestamps.
type VenuePosition struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VenueID   uuid.UUID  `gorm:"type:uuid;column:venue_id;not null"`
	RotaID    uuid.UUID  `gorm:"type:uuid;column:rota_id;not null"`
	RoleID    *uuid.UUID `gorm:"type:uuid;column:role_id"`
	Index     int        `gorm:"column:index;not null"`
	StartTime string     `gorm:"column:start_time;type:text;not null;default:''"`
	EndTime   string     `gorm:"column:end_time;type:text;not null;default:''"`
	Notes     string     `gorm:"type:text;not null;default:''"`
}
