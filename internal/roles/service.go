package roles

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

type rolesRepository interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Role, error)
	Create(ctx context.Context, role *models.Role) (*models.Role, error)
	Update(ctx context.Context, ownerID, roleID uuid.UUID, name string, parentID *uuid.UUID) (*models.Role, error)
	Delete(ctx context.Context, ownerID, roleID uuid.UUID) (int64, error)
}

// Service exposes owner-scoped role semantics.
type Service interface {
	ListRoles(ctx context.Context, ownerID uuid.UUID) ([]models.Role, error)
	CreateRole(ctx context.Context, ownerID uuid.UUID, name string, parentID *uuid.UUID) (*models.Role, error)
	UpdateRole(ctx context.Context, ownerID, roleID uuid.UUID, name string, parentID *uuid.UUID) (*models.Role, error)
	DeleteRole(ctx context.Context, ownerID, roleID uuid.UUID) error
}

type service struct {
	repo rolesRepository
}

// NewService builds a role service backed by the provided repository.
func NewService(repo rolesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("roles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListRoles(ctx context.Context, ownerID uuid.UUID) ([]models.Role, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	rows, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list roles")
	}
	return rows, nil
}

func (s *service) CreateRole(ctx context.Context, ownerID uuid.UUID, name string, parentID *uuid.UUID) (*models.Role, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid request - missing keys.")
	}

	role, err := s.repo.Create(ctx, &models.Role{OwnerID: ownerID, Name: name, ParentID: parentID})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, "Cannot add duplicate name.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create role")
	}
	return role, nil
}

func (s *service) UpdateRole(ctx context.Context, ownerID, roleID uuid.UUID, name string, parentID *uuid.UUID) (*models.Role, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	role, err := s.repo.Update(ctx, ownerID, roleID, name, parentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Role does not exist.")
		}
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, "Cannot add duplicate name.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
	}
	return role, nil
}

func (s *service) DeleteRole(ctx context.Context, ownerID, roleID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Not logged in.")
	}

	affected, err := s.repo.Delete(ctx, ownerID, roleID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete role")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Role not found.")
	}
	return nil
}
