package people

import (
	"context"

	"github.com/oliverbanks/rotaboard-backend/internal/repo"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes person persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a person repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every person belonging to the owner.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]models.Person, error) {
	var rows []models.Person
	err := r.DB(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new person row.
func (r *Repository) Create(ctx context.Context, person *models.Person) (*models.Person, error) {
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(person).Error; err != nil {
		return nil, err
	}
	return person, nil
}

// Update rewrites the mutable fields of an owner's person. Returns
// gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, ownerID, personID uuid.UUID, name, email string, roleID *uuid.UUID) (*models.Person, error) {
	result := r.DB(ctx).
		Model(&models.Person{}).
		Where("owner_id = ? AND id = ?", ownerID, personID).
		Updates(map[string]any{"name": name, "email": email, "role_id": roleID})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updated models.Person
	if err := r.DB(ctx).Where("owner_id = ? AND id = ?", ownerID, personID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an owner's person, reporting how many rows went away.
func (r *Repository) Delete(ctx context.Context, ownerID, personID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("owner_id = ? AND id = ?", ownerID, personID).
		Delete(&models.Person{})
	return result.RowsAffected, result.Error
}
