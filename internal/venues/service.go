package venues

import (
	"context"
	"fmt"
	"strings"

	"github.com/oliverbanks/rotaboard-backend/pkg/db"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type venuesRepository interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Update(ctx context.Context, ownerID, venueID uuid.UUID, name string, displayName *string) (*models.Venue, error)
	Delete(ctx context.Context, ownerID, venueID uuid.UUID) (int64, error)
}

// Service exposes owner-scoped venue semantics.
type Service interface {
	ListVenues(ctx context.Context, ownerID uuid.UUID) ([]models.Venue, error)
	CreateVenue(ctx context.Context, ownerID uuid.UUID, name string, displayName *string) (*models.Venue, error)
	UpdateVenue(ctx context.Context, ownerID, venueID uuid.UUID, name string, displayName *string) (*models.Venue, error)
	DeleteVenue(ctx context.Context, ownerID, venueID uuid.UUID) error
}

type service struct {
	repo venuesRepository
}

// NewService builds a venue service backed by the provided repository.
func NewService(repo venuesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("venues repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListVenues(ctx context.Context, ownerID uuid.UUID) ([]models.Venue, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	rows, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list venues")
	}
	return rows, nil
}

func (s *service) CreateVenue(ctx context.Context, ownerID uuid.UUID, name string, displayName *string) (*models.Venue, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid request - missing keys.")
	}

	venue, err := s.repo.Create(ctx, &models.Venue{OwnerID: ownerID, Name: name, DisplayName: displayName})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Cannot add duplicate name.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create venue")
	}
	return venue, nil
}

func (s *service) UpdateVenue(ctx context.Context, ownerID, venueID uuid.UUID, name string, displayName *string) (*models.Venue, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	venue, err := s.repo.Update(ctx, ownerID, venueID, name, displayName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Venue not found.")
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Cannot add duplicate name.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update venue")
	}
	return venue, nil
}

func (s *service) DeleteVenue(ctx context.Context, ownerID, venueID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	affected, err := s.repo.Delete(ctx, ownerID, venueID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete venue")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Venue not found.")
	}
	return nil
}
