package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oliverbanks/rotaboard-backend/pkg/config"
	"github.com/oliverbanks/rotaboard-backend/pkg/db"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/security"
	"gorm.io/gorm"
)

type usersRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type sessionManager interface {
	Create(ctx context.Context, ownerID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// Service exposes owner registration, login, and logout semantics. Both
// register and login hand back a fresh session id for the cookie.
type Service interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	users     usersRepository
	sessions  sessionManager
	passwords config.PasswordConfig
}

// NewService builds an auth service backed by the provided repository and
// session manager.
func NewService(users usersRepository, sessions sessionManager, passwords config.PasswordConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
	}, nil
}

func (s *service) Register(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid request - missing keys.")
	}

	hash, err := security.HashPassword(password, s.passwords)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Cannot add duplicate email.")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	sessionID, err := s.sessions.Create(ctx, user.ID.String())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return sessionID, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid login.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid login.")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid login.")
	}

	sessionID, err := s.sessions.Create(ctx, user.ID.String())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return sessionID, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
