package models

import (
	"github.com/google/uuid"
)

// FilledAvailability is one participant's response slot for an availability
// window. Rows are provisioned up front; the public fill endpoint only ever
// updates the payload, never inserts.
type FilledAvailability struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AvailabilityID uuid.UUID `gorm:"type:uuid;column:availability_id;not null"`
	PersonID       uuid.UUID `gorm:"type:uuid;column:person_id;not null"`
	Payload        []byte    `gorm:"column:availability;type:jsonb"`
}

func (FilledAvailability) TableName() string {
	return "filled_availability"
}
