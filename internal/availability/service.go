package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository interface {
	ListWindows(ctx context.Context, ownerID uuid.UUID, id *uuid.UUID) ([]models.Availability, error)
	CreateWindow(ctx context.Context, window *models.Availability, personIDs []uuid.UUID) (*models.Availability, error)
	UpdateWindow(ctx context.Context, ownerID, windowID uuid.UUID, start, end time.Time) (*models.Availability, error)
	DeleteWindow(ctx context.Context, ownerID, windowID uuid.UUID) (int64, error)
	ListFilled(ctx context.Context, availabilityID uuid.UUID) ([]rowjson.Row, error)
	UpdateFilledPayload(ctx context.Context, filledID uuid.UUID, payload []byte) (int64, error)
}

type peopleLister interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Person, error)
}

// Service exposes availability window management and the public fill path.
type Service interface {
	ListWindows(ctx context.Context, ownerID uuid.UUID, id *uuid.UUID) ([]models.Availability, error)
	CreateWindow(ctx context.Context, ownerID uuid.UUID, start, end string) (*models.Availability, error)
	UpdateWindow(ctx context.Context, ownerID, windowID uuid.UUID, start, end string) (*models.Availability, error)
	DeleteWindow(ctx context.Context, ownerID, windowID uuid.UUID) error
	ListFilled(ctx context.Context, availabilityID uuid.UUID) ([]rowjson.Row, error)
	Fill(ctx context.Context, filledID uuid.UUID, payload any) error
}

type service struct {
	repo   availabilityRepository
	people peopleLister
}

// NewService builds an availability service backed by the provided
// repositories.
func NewService(repo availabilityRepository, people peopleLister) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability repository required")
	}
	if people == nil {
		return nil, fmt.Errorf("people repository required")
	}
	return &service{repo: repo, people: people}, nil
}

func (s *service) ListWindows(ctx context.Context, ownerID uuid.UUID, id *uuid.UUID) ([]models.Availability, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	rows, err := s.repo.ListWindows(ctx, ownerID, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list availability")
	}
	return rows, nil
}

func (s *service) CreateWindow(ctx context.Context, ownerID uuid.UUID, start, end string) (*models.Availability, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	startDate, err := rowjson.ParseTime(start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to read JSON in request.")
	}
	endDate, err := rowjson.ParseTime(end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to read JSON in request.")
	}

	persons, err := s.people.List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list people for fill rows")
	}
	personIDs := make([]uuid.UUID, 0, len(persons))
	for _, p := range persons {
		personIDs = append(personIDs, p.ID)
	}

	window := &models.Availability{OwnerID: ownerID, StartDate: startDate, EndDate: endDate}
	created, err := s.repo.CreateWindow(ctx, window, personIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create availability")
	}
	return created, nil
}

func (s *service) UpdateWindow(ctx context.Context, ownerID, windowID uuid.UUID, start, end string) (*models.Availability, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	startDate, err := rowjson.ParseTime(start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to read JSON in request.")
	}
	endDate, err := rowjson.ParseTime(end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Failed to read JSON in request.")
	}

	updated, err := s.repo.UpdateWindow(ctx, ownerID, windowID, startDate, endDate)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Availability not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update availability")
	}
	return updated, nil
}

func (s *service) DeleteWindow(ctx context.Context, ownerID, windowID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	affected, err := s.repo.DeleteWindow(ctx, ownerID, windowID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete availability")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Availability not found.")
	}
	return nil
}

func (s *service) ListFilled(ctx context.Context, availabilityID uuid.UUID) ([]rowjson.Row, error) {
	rows, err := s.repo.ListFilled(ctx, availabilityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list filled availability")
	}
	return rows, nil
}

// Fill overwrites one filled row's payload. A missing row reports the same
// "Invalid ID." as a malformed one; the link id is the only capability check.
func (s *service) Fill(ctx context.Context, filledID uuid.UUID, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid ID.")
	}

	affected, err := s.repo.UpdateFilledPayload(ctx, filledID, raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update filled availability")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid ID.")
	}
	return nil
}
