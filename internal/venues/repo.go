package venues

import (
	"context"

	"github.com/oliverbanks/rotaboard-backend/internal/repo"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes venue persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a venue repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns every venue belonging to the owner.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]models.Venue, error) {
	var rows []models.Venue
	err := r.DB(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new venue row.
func (r *Repository) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(venue).Error; err != nil {
		return nil, err
	}
	return venue, nil
}

// Update rewrites an owner's venue name and display name. Returns
// gorm.ErrRecordNotFound when no row matched.
func (r *Repository) Update(ctx context.Context, ownerID, venueID uuid.UUID, name string, displayName *string) (*models.Venue, error) {
	result := r.DB(ctx).
		Model(&models.Venue{}).
		Where("owner_id = ? AND id = ?", ownerID, venueID).
		Updates(map[string]any{"name": name, "display_name": displayName})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updated models.Venue
	if err := r.DB(ctx).Where("owner_id = ? AND id = ?", ownerID, venueID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an owner's venue, reporting how many rows went away.
func (r *Repository) Delete(ctx context.Context, ownerID, venueID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("owner_id = ? AND id = ?", ownerID, venueID).
		Delete(&models.Venue{})
	return result.RowsAffected, result.Error
}
