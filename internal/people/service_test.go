package people

import (
	"context"
	"testing"

	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Role{}, &models.Person{}))

	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, uuid.New()
}

func TestCreateAndListPeople(t *testing.T) {
	svc, owner := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePerson(ctx, owner, "Kae", "kae@example.com", nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	_, err = svc.CreatePerson(ctx, uuid.New(), "Other", "kae@example.com", nil)
	require.NoError(t, err, "same email under a different owner must succeed")

	rows, err := svc.ListPeople(ctx, owner)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "kae@example.com", rows[0].Email)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, owner := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePerson(ctx, owner, "Kae", "kae@example.com", nil)
	require.NoError(t, err)

	_, err = svc.CreatePerson(ctx, owner, "Kae Again", "kae@example.com", nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDuplicate, typed.Code())
	assert.Equal(t, "Cannot add duplicate email.", typed.Message())
}

func TestUpdatePersonRoleAssignment(t *testing.T) {
	svc, owner := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePerson(ctx, owner, "Kae", "kae@example.com", nil)
	require.NoError(t, err)

	roleID := uuid.New()
	updated, err := svc.UpdatePerson(ctx, owner, created.ID, "Kae", "kae@example.com", &roleID)
	require.NoError(t, err)
	require.NotNil(t, updated.RoleID)
	assert.Equal(t, roleID, *updated.RoleID)

	updated, err = svc.UpdatePerson(ctx, owner, created.ID, "Kae", "kae@example.com", nil)
	require.NoError(t, err)
	assert.Nil(t, updated.RoleID, "role must be clearable back to null")
}

func TestUpdateAndDeleteMissingPerson(t *testing.T) {
	svc, owner := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdatePerson(ctx, owner, uuid.New(), "X", "x@example.com", nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "User not found.", typed.Message())

	err = svc.DeletePerson(ctx, owner, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "User not found.", typed.Message())
}

func TestDeleteForeignOwnedPerson(t *testing.T) {
	svc, owner := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePerson(ctx, owner, "Kae", "kae@example.com", nil)
	require.NoError(t, err)

	err = svc.DeletePerson(ctx, uuid.New(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	rows, err := svc.ListPeople(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "foreign delete must not remove the row")
}
