package db

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation_DriverErrors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503"}, false},
		{"mysql dup entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql other", &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, false},
		{"wrapped pg", fmt.Errorf("create org: %w", &pgconn.PgError{Code: "23505"}), true},
		{"wrapped mysql", fmt.Errorf("add user: %w", &mysql.MySQLError{Number: 1062}), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgs.db")
	conn, dialect, err := Open("sqlite", path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := EnsureSchema(ctx, conn, dialect); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	if _, err := conn.ExecContext(ctx,
		"INSERT INTO OrgUser (org_id, email, is_staff) VALUES (1, 'a@x.com', 0)"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = conn.ExecContext(ctx,
		"INSERT INTO OrgUser (org_id, email, is_staff) VALUES (1, 'a@x.com', 1)")
	if err == nil {
		t.Fatal("duplicate insert should fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("sqlite duplicate insert should be a unique violation, got %v", err)
	}

	_, err = conn.ExecContext(ctx, "INSERT INTO NoSuchTable VALUES (1)")
	if err == nil {
		t.Fatal("insert into a missing table should fail")
	}
	if IsUniqueViolation(err) {
		t.Errorf("a missing-table error is not a unique violation: %v", err)
	}
}
