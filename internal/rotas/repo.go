package rotas

import (
	"context"

	"github.com/oliverbanks/rotaboard-backend/internal/repo"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes rota persistence, including the joined list shapes and
// the transactional tree replace.
type Repository struct {
	repo.Base
}

// NewRepository constructs a rota repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns the owner's rotas joined to their availability window dates.
// Rows come back raw for the row encoder.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]rowjson.Row, error) {
	var rows []map[string]any
	err := r.DB(ctx).
		Table("rotas").
		Select(`rotas.id, rotas.availability_id, availability.start_date AS "start", availability.end_date AS "end"`).
		Joins("LEFT JOIN availability ON availability.id = rotas.availability_id").
		Where("rotas.owner_id = ?", ownerID).
		Order("rotas.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]rowjson.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	return out, nil
}

// Create inserts a new rota row.
func (r *Repository) Create(ctx context.Context, rota *models.Rota) (*models.Rota, error) {
	if rota.ID == uuid.Nil {
		rota.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(rota).Error; err != nil {
		return nil, err
	}
	return rota, nil
}

// Find loads one of the owner's rotas. Returns gorm.ErrRecordNotFound when
// absent or foreign-owned.
func (r *Repository) Find(ctx context.Context, ownerID, rotaID uuid.UUID) (*models.Rota, error) {
	var rota models.Rota
	err := r.DB(ctx).
		Where("owner_id = ? AND id = ?", ownerID, rotaID).
		First(&rota).Error
	if err != nil {
		return nil, err
	}
	return &rota, nil
}

// Venues returns a rota's venues in display order.
func (r *Repository) Venues(ctx context.Context, ownerID, rotaID uuid.UUID) ([]models.Venue, error) {
	var rows []models.Venue
	err := r.DB(ctx).
		Where("owner_id = ? AND rota_id = ?", ownerID, rotaID).
		Order(`"index" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Positions returns every position under a rota in display order, grouped by
// venue so the service can stitch the tree without per-venue queries.
func (r *Repository) Positions(ctx context.Context, rotaID uuid.UUID) ([]models.VenuePosition, error) {
	var rows []models.VenuePosition
	err := r.DB(ctx).
		Where("rota_id = ?", rotaID).
		Order(`venue_id ASC, "index" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// VenueRows returns the flat venue listing for a rota, raw for the row
// encoder.
func (r *Repository) VenueRows(ctx context.Context, ownerID, rotaID uuid.UUID) ([]rowjson.Row, error) {
	var rows []map[string]any
	err := r.DB(ctx).
		Table("venues").
		Select(`venues.id, venues.rota_id, venues.name, venues."index"`).
		Where("owner_id = ? AND rota_id = ?", ownerID, rotaID).
		Order(`"index" ASC`).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]rowjson.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	return out, nil
}

// ReplaceTreeTx rewrites a rota's venue tree inside the caller's transaction.
// Deleting the venues cascades to their positions at the store; the reinserted
// rows get dense indices from submission order.
func (r *Repository) ReplaceTreeTx(ctx context.Context, tx *gorm.DB, ownerID, rotaID uuid.UUID, venues []VenueInput) error {
	err := tx.WithContext(ctx).
		Where("owner_id = ? AND rota_id = ?", ownerID, rotaID).
		Delete(&models.Venue{}).Error
	if err != nil {
		return err
	}

	for venueIdx, input := range venues {
		venue := models.Venue{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			RotaID:      &rotaID,
			Name:        input.Name,
			DisplayName: input.DisplayName,
			Index:       venueIdx,
		}
		if err := tx.WithContext(ctx).Create(&venue).Error; err != nil {
			return err
		}

		for posIdx, pos := range input.Positions {
			position := models.VenuePosition{
				ID:        uuid.New(),
				VenueID:   venue.ID,
				RotaID:    rotaID,
				RoleID:    pos.Role,
				Index:     posIdx,
				StartTime: pos.Start,
				EndTime:   pos.End,
				Notes:     pos.Notes,
			}
			if err := tx.WithContext(ctx).Create(&position).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
