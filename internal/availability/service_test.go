package availability

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/oliverbanks/rotaboard-backend/internal/people"
	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	svc    Service
	people *people.Repository
	owner  uuid.UUID
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Person{}, &models.Availability{}, &models.FilledAvailability{}))

	peopleRepo := people.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), peopleRepo)
	require.NoError(t, err)

	return &fixture{svc: svc, people: peopleRepo, owner: uuid.New(), db: conn}
}

func (f *fixture) addPerson(t *testing.T, name, email string) *models.Person {
	t.Helper()
	p, err := f.people.Create(context.Background(), &models.Person{OwnerID: f.owner, Name: name, Email: email})
	require.NoError(t, err)
	return p
}

func TestCreateWindowParsesTimestamps(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateWindow(context.Background(), f.owner, "2024-01-01T00:00:00Z", "2024-01-02T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), created.StartDate)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), created.EndDate)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateWindowRejectsBadTimestamp(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWindow(context.Background(), f.owner, "01/01/2024", "2024-01-02T00:00:00")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateWindowProvisionsFilledRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addPerson(t, "Kae", "kae@example.com")
	f.addPerson(t, "Rowan", "rowan@example.com")

	created, err := f.svc.CreateWindow(ctx, f.owner, "2024-01-01T00:00:00", "2024-01-02T00:00:00")
	require.NoError(t, err)

	rows, err := f.svc.ListFilled(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	names := map[any]bool{}
	for _, row := range rows {
		names[row["person_name"]] = true
		assert.Nil(t, row["availability"], "provisioned rows start empty")
	}
	assert.True(t, names["Kae"])
	assert.True(t, names["Rowan"])
}

func TestFillUpdatesProvisionedRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addPerson(t, "Kae", "kae@example.com")

	created, err := f.svc.CreateWindow(ctx, f.owner, "2024-01-01T00:00:00", "2024-01-02T00:00:00")
	require.NoError(t, err)

	rows, err := f.svc.ListFilled(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	filledID, err := uuid.Parse(rows[0]["id"].(string))
	require.NoError(t, err)

	payload := map[string]any{"monday": "9-5", "tuesday": ""}
	require.NoError(t, f.svc.Fill(ctx, filledID, payload))

	rows, err = f.svc.ListFilled(ctx, created.ID)
	require.NoError(t, err)
	raw, ok := rows[0]["availability"].(json.RawMessage)
	require.True(t, ok, "payload should surface as raw JSON, got %T", rows[0]["availability"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "9-5", decoded["monday"])
}

func TestFillUnknownIDFails(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Fill(context.Background(), uuid.New(), map[string]any{"a": 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Invalid ID.", typed.Message())
}

func TestUpdateWindowRewritesDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateWindow(ctx, f.owner, "2024-01-01T00:00:00", "2024-01-02T00:00:00")
	require.NoError(t, err)

	updated, err := f.svc.UpdateWindow(ctx, f.owner, created.ID, "2024-03-01T09:00:00Z", "2024-03-01T17:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), updated.StartDate)
	assert.Equal(t, time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC), updated.EndDate)

	_, err = f.svc.UpdateWindow(ctx, uuid.New(), created.ID, "2024-03-01T09:00:00", "2024-03-01T17:00:00")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Availability not found.", typed.Message())
}

func TestDeleteWindowScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateWindow(ctx, f.owner, "2024-01-01T00:00:00", "2024-01-02T00:00:00")
	require.NoError(t, err)

	err = f.svc.DeleteWindow(ctx, uuid.New(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, f.svc.DeleteWindow(ctx, f.owner, created.ID))

	rows, err := f.svc.ListWindows(ctx, f.owner, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListWindowsFiltersByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateWindow(ctx, f.owner, "2024-01-01T00:00:00", "2024-01-02T00:00:00")
	require.NoError(t, err)
	_, err = f.svc.CreateWindow(ctx, f.owner, "2024-02-01T00:00:00", "2024-02-02T00:00:00")
	require.NoError(t, err)

	rows, err := f.svc.ListWindows(ctx, f.owner, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.svc.ListWindows(ctx, f.owner, &first.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)

	rows, err = f.svc.ListWindows(ctx, uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows, "windows are owner-scoped")
}
