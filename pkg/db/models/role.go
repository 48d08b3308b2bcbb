package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is an owner-scoped position label, optionally nested under a parent
// role. Names are unique per owner.
type Role struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;column:owner_id;not null;uniqueIndex:idx_roles_owner_name"`
	Name      string     `gorm:"type:text;not null;uniqueIndex:idx_roles_owner_name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;column:parent_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
