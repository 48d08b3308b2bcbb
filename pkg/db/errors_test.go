package db

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true},
		{"pq unique", &pq.Error{Code: "23505"}, true},
		{"pgx other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite unique", fmt.Errorf("UNIQUE constraint failed: roles.name"), true},
		{"plain", fmt.Errorf("connection reset"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pgx fk", &pgconn.PgError{Code: "23503"}, true},
		{"pq fk", &pq.Error{Code: "23503"}, true},
		{"wrapped pgx fk", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"sqlite fk", fmt.Errorf("FOREIGN KEY constraint failed"), true},
		{"unique is not fk", &pgconn.PgError{Code: "23505"}, false},
	}
	for _, tc := range cases {
		if got := IsForeignKeyViolation(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}
