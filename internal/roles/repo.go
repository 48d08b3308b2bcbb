package roles

import (
	"context"

	"github.com/oliverbanks/rotaboard-backend/internal/repo"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes role persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a role repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every role belonging to the owner.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]models.Role, error) {
	var rows []models.Role
	err := r.DB(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new role row.
func (r *Repository) Create(ctx context.Context, role *models.Role) (*models.Role, error) {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Update rewrites the mutable fields of an owner's role. The map form keeps
// a null parent writable. Returns gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, ownerID, roleID uuid.UUID, name string, parentID *uuid.UUID) (*models.Role, error) {
	result := r.DB(ctx).
		Model(&models.Role{}).
		Where("owner_id = ? AND id = ?", ownerID, roleID).
		Updates(map[string]any{"name": name, "parent_id": parentID})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updated models.Role
	if err := r.DB(ctx).Where("owner_id = ? AND id = ?", ownerID, roleID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an owner's role, reporting how many rows went away.
func (r *Repository) Delete(ctx context.Context, ownerID, roleID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("owner_id = ? AND id = ?", ownerID, roleID).
		Delete(&models.Role{})
	return result.RowsAffected, result.Error
}
