package rotas

import (
	"context"
	"testing"
	"time"

	"github.com/oliverbanks/rotaboard-backend/pkg/db/models"
	pkgerrors "github.com/oliverbanks/rotaboard-backend/pkg/errors"
	"github.com/oliverbanks/rotaboard-backend/pkg/rowjson"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The replace path leans on ON DELETE CASCADE, so the schema is created with
// real foreign keys instead of AutoMigrate and the DSN switches enforcement on.
var schemaDDL = []string{
	`CREATE TABLE availability (
		id uuid PRIMARY KEY,
		owner_id uuid NOT NULL,
		start_date datetime NOT NULL,
		end_date datetime NOT NULL,
		created_at datetime
	)`,
	`CREATE TABLE rotas (
		id uuid PRIMARY KEY,
		owner_id uuid NOT NULL,
		availability_id uuid NOT NULL REFERENCES availability (id) ON DELETE CASCADE,
		created_at datetime
	)`,
	`CREATE TABLE venues (
		id uuid PRIMARY KEY,
		owner_id uuid NOT NULL,
		rota_id uuid REFERENCES rotas (id) ON DELETE CASCADE,
		name text NOT NULL,
		display_name text,
		"index" integer NOT NULL DEFAULT 0,
		created_at datetime
	)`,
	`CREATE UNIQUE INDEX idx_venues_owner_name ON venues (owner_id, name)`,
	`CREATE TABLE venue_positions (
		id uuid PRIMARY KEY,
		venue_id uuid NOT NULL REFERENCES venues (id) ON DELETE CASCADE,
		rota_id uuid NOT NULL,
		role_id uuid,
		"index" integer NOT NULL,
		start_time text NOT NULL DEFAULT '',
		end_time text NOT NULL DEFAULT '',
		notes text NOT NULL DEFAULT ''
	)`,
}

type testTransactor struct {
	conn *gorm.DB
}

func (t testTransactor) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.conn.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB, uuid.UUID) {
	t.Helper()
	dsn := "file:rotas_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	for _, ddl := range schemaDDL {
		require.NoError(t, conn.Exec(ddl).Error)
	}

	svc, err := NewService(NewRepository(conn), testTransactor{conn: conn})
	require.NoError(t, err)
	return svc, conn, uuid.New()
}

func seedWindow(t *testing.T, conn *gorm.DB, owner uuid.UUID) models.Availability {
	t.Helper()
	window := models.Availability{
		ID:        uuid.New(),
		OwnerID:   owner,
		StartDate: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC),
	}
	require.NoError(t, conn.Create(&window).Error)
	return window
}

func TestCreateAndListRotas(t *testing.T) {
	svc, conn, owner := newTestService(t)
	ctx := context.Background()
	window := seedWindow(t, conn, owner)

	rota, err := svc.CreateRota(ctx, owner, window.ID)
	require.NoError(t, err)
	assert.Equal(t, window.ID, rota.AvailabilityID)

	rows, err := svc.ListRotas(ctx, owner)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	encoded := rowjson.EncodeRows(rows, map[string]string{"availability_id": "availability"})
	assert.Equal(t, rota.ID.String(), encoded[0]["id"])
	assert.Equal(t, window.ID.String(), encoded[0]["availability"])
	assert.Equal(t, "2024-01-01T09:00:00", encoded[0]["start"])
	assert.Equal(t, "2024-01-02T17:00:00", encoded[0]["end"])

	foreign, err := svc.ListRotas(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, foreign)
}

func TestCreateRotaInvalidAvailability(t *testing.T) {
	svc, _, owner := newTestService(t)

	_, err := svc.CreateRota(context.Background(), owner, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "Invalid availability ID.", typed.Message())
}

func TestReplaceRotaTreeBuildsOrderedTree(t *testing.T) {
	svc, conn, owner := newTestService(t)
	ctx := context.Background()
	window := seedWindow(t, conn, owner)
	rota, err := svc.CreateRota(ctx, owner, window.ID)
	require.NoError(t, err)

	role := uuid.New()
	input := []VenueInput{
		{
			Name: "Hall",
			Positions: []PositionInput{
				{Role: &role, Start: "09:00", End: "12:00", Notes: "setup"},
				{Start: "12:00", End: "17:00"},
			},
		},
		{Name: "Bar"},
	}
	require.NoError(t, svc.ReplaceRotaTree(ctx, owner, rota.ID, input))

	tree, err := svc.GetRotaTree(ctx, owner, rota.ID)
	require.NoError(t, err)
	encoded := rowjson.EncodeRow(tree, nil)
	assert.Equal(t, rota.ID.String(), encoded["id"])
	assert.Equal(t, window.ID.String(), encoded["availability"])

	venues := encoded["venues"].([]rowjson.Row)
	require.Len(t, venues, 2)
	assert.Equal(t, "Hall", venues[0]["name"])
	assert.Equal(t, 0, venues[0]["index"])
	assert.Equal(t, "Bar", venues[1]["name"])
	assert.Equal(t, 1, venues[1]["index"])

	positions := venues[0]["positions"].([]rowjson.Row)
	require.Len(t, positions, 2)
	assert.Equal(t, role.String(), positions[0]["role"])
	assert.Equal(t, "09:00", positions[0]["start"])
	assert.Equal(t, "12:00", positions[0]["end"])
	assert.Equal(t, "setup", positions[0]["notes"])
	assert.Nil(t, positions[1]["role"])
	assert.Equal(t, 1, positions[1]["index"])

	assert.Empty(t, venues[1]["positions"])
}

func TestReplaceRotaTreeTwiceKeepsSameShape(t *testing.T) {
	svc, conn, owner := newTestService(t)
	ctx := context.Background()
	window := seedWindow(t, conn, owner)
	rota, err := svc.CreateRota(ctx, owner, window.ID)
	require.NoError(t, err)

	input := []VenueInput{
		{Name: "Hall", Positions: []PositionInput{
			{Start: "09:00", End: "12:00"},
			{Start: "12:00", End: "17:00", Notes: "close up"},
		}},
	}
	require.NoError(t, svc.ReplaceRotaTree(ctx, owner, rota.ID, input))
	first, err := svc.GetRotaTree(ctx, owner, rota.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceRotaTree(ctx, owner, rota.ID, input))
	second, err := svc.GetRotaTree(ctx, owner, rota.ID)
	require.NoError(t, err)

	stripIDs := func(tree rowjson.Row) []rowjson.Row {
		venues := tree["venues"].([]rowjson.Row)
		out := make([]rowjson.Row, 0, len(venues))
		for _, venue := range venues {
			positions := venue["positions"].([]rowjson.Row)
			posOut := make([]rowjson.Row, 0, len(positions))
			for _, pos := range positions {
				posOut = append(posOut, rowjson.Row{
					"role": pos["role"], "index": pos["index"],
					"start": pos["start"], "end": pos["end"], "notes": pos["notes"],
				})
			}
			out = append(out, rowjson.Row{
				"name": venue["name"], "index": venue["index"], "positions": posOut,
			})
		}
		return out
	}
	assert.Equal(t, stripIDs(first), stripIDs(second))

	var positionCount int64
	require.NoError(t, conn.Model(&models.VenuePosition{}).Count(&positionCount).Error)
	assert.EqualValues(t, 2, positionCount, "old positions must cascade away")
}

func TestReplaceRotaTreeAbortsWholeTree(t *testing.T) {
	svc, conn, owner := newTestService(t)
	ctx := context.Background()
	window := seedWindow(t, conn, owner)
	rota, err := svc.CreateRota(ctx, owner, window.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceRotaTree(ctx, owner, rota.ID, []VenueInput{
		{Name: "Hall", Positions: []PositionInput{{Start: "09:00", End: "12:00"}}},
	}))

	standalone := models.Venue{ID: uuid.New(), OwnerID: owner, Name: "Stage"}
	require.NoError(t, conn.Create(&standalone).Error)

	err = svc.ReplaceRotaTree(ctx, owner, rota.ID, []VenueInput{
		{Name: "Bar"},
		{Name: "Stage"},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	tree, err := svc.GetRotaTree(ctx, owner, rota.ID)
	require.NoError(t, err)
	venues := tree["venues"].([]rowjson.Row)
	require.Len(t, venues, 1)
	assert.Equal(t, "Hall", venues[0]["name"])
	assert.Len(t, venues[0]["positions"], 1)
}

func TestReplaceRotaTreeMissingRota(t *testing.T) {
	svc, _, owner := newTestService(t)

	err := svc.ReplaceRotaTree(context.Background(), owner, uuid.New(), nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Rota not found.", typed.Message())
}

func TestGetRotaTreeForeignOwner(t *testing.T) {
	svc, conn, owner := newTestService(t)
	ctx := context.Background()
	window := seedWindow(t, conn, owner)
	rota, err := svc.CreateRota(ctx, owner, window.ID)
	require.NoError(t, err)

	_, err = svc.GetRotaTree(ctx, uuid.New(), rota.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListRotaVenuesRenamesRota(t *testing.T) {
	svc, conn, owner := newTestService(t)
	ctx := context.Background()
	window := seedWindow(t, conn, owner)
	rota, err := svc.CreateRota(ctx, owner, window.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ReplaceRotaTree(ctx, owner, rota.ID, []VenueInput{
		{Name: "Hall"},
		{Name: "Bar"},
	}))

	rows, err := svc.ListRotaVenues(ctx, owner, rota.ID)
	require.NoError(t, err)
	encoded := rowjson.EncodeRows(rows, map[string]string{"rota_id": "rota"})
	require.Len(t, encoded, 2)
	assert.Equal(t, rota.ID.String(), encoded[0]["rota"])
	assert.Equal(t, "Hall", encoded[0]["name"])
	assert.Equal(t, "Bar", encoded[1]["name"])
}
