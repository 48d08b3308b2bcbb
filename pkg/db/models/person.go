package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is someone an owner schedules. Emails are unique per owner.
type Person struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;column:owner_id;not null;uniqueIndex:idx_people_owner_email"`
	Name      string     `gorm:"type:text;not null"`
	Email     string     `gorm:"type:text;not null;uniqueIndex:idx_people_owner_email"`
	RoleID    *uuid.UUID `gorm:"type:uuid;column:role_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Person) TableName() string {
	return "people"
}
