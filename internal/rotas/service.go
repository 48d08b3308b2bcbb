package rotas

import (
	"context"
	"fmt"

	"github.com/oliverbanks/rotaboard-backend/pkg/db"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PositionInput is one submitted slot in a rota replace.
type PositionInput struct {
	Role  *uuid.UUID
	Start string
	End   string
	Notes string
}

// VenueInput is one submitted venue in a rota replace, positions in
// submission order.
type VenueInput struct {
	Name        string
	DisplayName *string
	Positions   []PositionInput
}

type rotasRepository interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]rowjson.Row, error)
	Create(ctx context.Context, rota *models.Rota) (*models.Rota, error)
	Find(ctx context.Context, ownerID, rotaID uuid.UUID) (*models.Rota, error)
	Venues(ctx context.Context, ownerID, rotaID uuid.UUID) ([]models.Venue, error)
	Positions(ctx context.Context, rotaID uuid.UUID) ([]models.VenuePosition, error)
	VenueRows(ctx context.Context, ownerID, rotaID uuid.UUID) ([]rowjson.Row, error)
	ReplaceTreeTx(ctx context.Context, tx *gorm.DB, ownerID, rotaID uuid.UUID, venues []VenueInput) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes rota listing, creation, the nested tree view, and the
// wholesale tree replace.
type Service interface {
	ListRotas(ctx context.Context, ownerID uuid.UUID) ([]rowjson.Row, error)
	CreateRota(ctx context.Context, ownerID, availabilityID uuid.UUID) (*models.Rota, error)
	GetRotaTree(ctx context.Context, ownerID, rotaID uuid.UUID) (rowjson.Row, error)
	ListRotaVenues(ctx context.Context, ownerID, rotaID uuid.UUID) ([]rowjson.Row, error)
	ReplaceRotaTree(ctx context.Context, ownerID, rotaID uuid.UUID, venues []VenueInput) error
}

type service struct {
	repo rotasRepository
	tx   transactor
}

// NewService builds a rota service backed by the provided repository and
// transaction runner.
func NewService(repo rotasRepository, tx transactor) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rotas repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) ListRotas(ctx context.Context, ownerID uuid.UUID) ([]rowjson.Row, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	rows, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rotas")
	}
	return rows, nil
}

func (s *service) CreateRota(ctx context.Context, ownerID, availabilityID uuid.UUID) (*models.Rota, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	rota, err := s.repo.Create(ctx, &models.Rota{OwnerID: ownerID, AvailabilityID: availabilityID})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid availability ID.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rota")
	}
	return rota, nil
}

// GetRotaTree assembles the nested rota view. Venues and their positions are
// ordered by index; role_id surfaces as "role".
func (s *service) GetRotaTree(ctx context.Context, ownerID, rotaID uuid.UUID) (rowjson.Row, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	rota, err := s.repo.Find(ctx, ownerID, rotaID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Rota not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find rota")
	}

	venues, err := s.repo.Venues(ctx, ownerID, rotaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rota venues")
	}
	positions, err := s.repo.Positions(ctx, rotaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rota positions")
	}

	byVenue := make(map[uuid.UUID][]rowjson.Row, len(venues))
	for _, pos := range positions {
		byVenue[pos.VenueID] = append(byVenue[pos.VenueID], rowjson.Row{
			"id":    pos.ID,
			"role":  pos.RoleID,
			"index": pos.Index,
			"start": pos.StartTime,
			"end":   pos.EndTime,
			"notes": pos.Notes,
		})
	}

	venueRows := make([]rowjson.Row, 0, len(venues))
	for _, venue := range venues {
		posRows := byVenue[venue.ID]
		if posRows == nil {
			posRows = []rowjson.Row{}
		}
		venueRows = append(venueRows, rowjson.Row{
			"id":           venue.ID,
			"name":         venue.Name,
			"display_name": venue.DisplayName,
			"index":        venue.Index,
			"positions":    posRows,
		})
	}

	return rowjson.Row{
		"id":           rota.ID,
		"availability": rota.AvailabilityID,
		"venues":       venueRows,
	}, nil
}

func (s *service) ListRotaVenues(ctx context.Context, ownerID, rotaID uuid.UUID) ([]rowjson.Row, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	rows, err := s.repo.VenueRows(ctx, ownerID, rotaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rota venues")
	}
	return rows, nil
}

// ReplaceRotaTree swaps a rota's whole venue tree for the submitted one in a
// single transaction. The old tree survives any failure untouched.
func (s *service) ReplaceRotaTree(ctx context.Context, ownerID, rotaID uuid.UUID, venues []VenueInput) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	if _, err := s.repo.Find(ctx, ownerID, rotaID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Rota not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find rota")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.ReplaceTreeTx(ctx, tx, ownerID, rotaID, venues)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Cannot add duplicate name.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace rota tree")
	}
	return nil
}
