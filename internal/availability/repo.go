package availability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oliverbanks/rotaboard-backend/internal/repo"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes availability window and filled-response persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs an availability repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListWindows returns the owner's availability windows, optionally filtered
// to a single id.
func (r *Repository) ListWindows(ctx context.Context, ownerID uuid.UUID, id *uuid.UUID) ([]models.Availability, error) {
	query := r.DB(ctx).Where("owner_id = ?", ownerID)
	if id != nil {
		query = query.Where("id = ?", *id)
	}

	var rows []models.Availability
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWindow inserts the window and provisions one empty filled_availability
// row per person, all inside one transaction. The filled row ids become the
// fill-link capability tokens.
func (r *Repository) CreateWindow(ctx context.Context, window *models.Availability, personIDs []uuid.UUID) (*models.Availability, error) {
	if window.ID == uuid.Nil {
		window.ID = uuid.New()
	}

	err := r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(window).Error; err != nil {
			return err
		}
		for _, personID := range personIDs {
			filled := models.FilledAvailability{
				ID:             uuid.New(),
				AvailabilityID: window.ID,
				PersonID:       personID,
			}
			if err := tx.Create(&filled).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return window, nil
}

// UpdateWindow rewrites an owner's window dates. Returns
// gorm.ErrRecordNotFound when no row matched.
func (r *Repository) UpdateWindow(ctx context.Context, ownerID, windowID uuid.UUID, start, end time.Time) (*models.Availability, error) {
	result := r.DB(ctx).
		Model(&models.Availability{}).
		Where("owner_id = ? AND id = ?", ownerID, windowID).
		Updates(map[string]any{"start_date": start, "end_date": end})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updated models.Availability
	if err := r.DB(ctx).Where("owner_id = ? AND id = ?", ownerID, windowID).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWindow removes an owner's window, reporting how many rows went away.
// Filled rows and rotas hanging off the window go with it at the store.
func (r *Repository) DeleteWindow(ctx context.Context, ownerID, windowID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("owner_id = ? AND id = ?", ownerID, windowID).
		Delete(&models.Availability{})
	return result.RowsAffected, result.Error
}

// ListFilled returns the filled responses for a window joined to person
// names. Rows come back raw for the row encoder.
func (r *Repository) ListFilled(ctx context.Context, availabilityID uuid.UUID) ([]rowjson.Row, error) {
	var rows []map[string]any
	err := r.DB(ctx).
		Table("filled_availability").
		Select("filled_availability.id, people.name AS person_name, filled_availability.person_id, filled_availability.availability").
		Joins("LEFT JOIN people ON people.id = filled_availability.person_id").
		Where("availability_id = ?", availabilityID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]rowjson.Row, 0, len(rows))
	for _, row := range rows {
		normalizePayload(row, "availability")
		out = append(out, row)
	}
	return out, nil
}

// UpdateFilledPayload overwrites one filled row's payload, reporting how many
// rows matched. Fill never inserts.
func (r *Repository) UpdateFilledPayload(ctx context.Context, filledID uuid.UUID, payload []byte) (int64, error) {
	result := r.DB(ctx).
		Model(&models.FilledAvailability{}).
		Where("id = ?", filledID).
		Update("availability", payload)
	return result.RowsAffected, result.Error
}

// normalizePayload rewrites a scanned jsonb column so it serializes as the
// stored JSON document rather than a base64 blob.
func normalizePayload(row map[string]any, key string) {
	switch v := row[key].(type) {
	case []byte:
		if len(v) == 0 {
			row[key] = nil
			return
		}
		row[key] = json.RawMessage(v)
	case string:
		if v == "" {
			row[key] = nil
			return
		}
		row[key] = json.RawMessage(v)
	}
}
