package roles

import (
	"context"
	"testing"

	"github.com/oliverbanks/rotaboard-backend/pkg/db"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Role{}))
	return NewRepository(conn)
}

func TestCreateAndListScopedByOwner(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	ownerA, ownerB := uuid.New(), uuid.New()

	_, err := r.Create(ctx, &models.Role{OwnerID: ownerA, Name: "Bar"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Role{OwnerID: ownerB, Name: "Bar"})
	require.NoError(t, err)

	rows, err := r.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ownerA, rows[0].OwnerID)
	assert.NotEqual(t, uuid.Nil, rows[0].ID)
}

func TestCreateDuplicateNameSameOwner(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := r.Create(ctx, &models.Role{OwnerID: owner, Name: "Bar"})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.Role{OwnerID: owner, Name: "Bar"})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
}

func TestUpdateRewritesFieldsAndClearsParent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	owner := uuid.New()

	parent, err := r.Create(ctx, &models.Role{OwnerID: owner, Name: "Managers"})
	require.NoError(t, err)
	child, err := r.Create(ctx, &models.Role{OwnerID: owner, Name: "Bar", ParentID: &parent.ID})
	require.NoError(t, err)

	updated, err := r.Update(ctx, owner, child.ID, "Bar Staff", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bar Staff", updated.Name)
	assert.Nil(t, updated.ParentID)
}

func TestUpdateForeignOwnerNotFound(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	role, err := r.Create(ctx, &models.Role{OwnerID: uuid.New(), Name: "Bar"})
	require.NoError(t, err)

	_, err = r.Update(ctx, uuid.New(), role.ID, "Stolen", nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteReportsAffectedRows(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	owner := uuid.New()

	role, err := r.Create(ctx, &models.Role{OwnerID: owner, Name: "Bar"})
	require.NoError(t, err)

	affected, err := r.Delete(ctx, owner, role.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = r.Delete(ctx, owner, role.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}
