package people

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

type peopleRepository interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Person, error)
	Create(ctx context.Context, person *models.Person) (*models.Person, error)
	Update(ctx context.Context, ownerID, personID uuid.UUID, name, email string, roleID *uuid.UUID) (*models.Person, error)
	Delete(ctx context.Context, ownerID, personID uuid.UUID) (int64, error)
}

// Service exposes owner-scoped person semantics.
type Service interface {
	ListPeople(ctx context.Context, ownerID uuid.UUID) ([]models.Person, error)
	CreatePerson(ctx context.Context, ownerID uuid.UUID, name, email string, roleID *uuid.UUID) (*models.Person, error)
	UpdatePerson(ctx context.Context, ownerID, personID uuid.UUID, name, email string, roleID *uuid.UUID) (*models.Person, error)
	DeletePerson(ctx context.Context, ownerID, personID uuid.UUID) error
}

type service struct {
	repo peopleRepository
}

// NewService builds a person service backed by the provided repository.
func NewService(repo peopleRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("people repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPeople(ctx context.Context, ownerID uuid.UUID) ([]models.Person, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	rows, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list people")
	}
	return rows, nil
}

func (s *service) CreatePerson(ctx context.Context, ownerID uuid.UUID, name, email string, roleID *uuid.UUID) (*models.Person, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid request - missing keys.")
	}

	person, err := s.repo.Create(ctx, &models.Person{OwnerID: ownerID, Name: name, Email: email, RoleID: roleID})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, "Cannot add duplicate email.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create person")
	}
	return person, nil
}

func (s *service) UpdatePerson(ctx context.Context, ownerID, personID uuid.UUID, name, email string, roleID *uuid.UUID) (*models.Person, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	person, err := s.repo.Update(ctx, ownerID, personID, name, email, roleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "User not found.")
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, "Cannot add duplicate email.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update person")
	}
	return person, nil
}

func (s *service) DeletePerson(ctx context.Context, ownerID, personID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	affected, err := s.repo.Delete(ctx, ownerID, personID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete person")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
	}
	return nil
}
