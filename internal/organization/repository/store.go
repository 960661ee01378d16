package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"org-control-plane/backend/internal/db"
	"org-control-plane/backend/internal/organization/domain"
)

// Store implements Repository over a database connection in any of the
// supported dialects. It is stateless and safe for concurrent use; the
// database provides durability and row-level locking.
type Store struct {
	conn    *sql.DB
	dialect db.Dialect
}

// NewStore returns an organization store that uses the given connection for persistence.
func NewStore(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{conn: conn, dialect: dialect}
}

// q rewrites ? placeholders for the store's dialect.
func (s *Store) q(query string) string {
	return s.dialect.Rebind(query)
}

// CreateOrg inserts an organization with ctime set to the current time and
// records creator as its first staff member, in a single transaction. On any
// failure the whole creation rolls back. A duplicate url_prefix surfaces as a
// uniqueness-violation error from the driver. Returns the new org id.
func (s *Store) CreateOrg(ctx context.Context, name, urlPrefix, creator string) (int64, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, s.q(
		"INSERT INTO Organization (org_name, url_prefix, creator, ctime) VALUES (?, ?, ?, ?)"),
		name, urlPrefix, creator, time.Now().Unix())
	if err != nil {
		return 0, err
	}

	var orgID int64
	err = tx.QueryRowContext(ctx, s.q(
		"SELECT org_id FROM Organization WHERE url_prefix = ?"), urlPrefix).Scan(&orgID)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, s.q(
		"INSERT INTO OrgUser (org_id, email, is_staff) VALUES (?, ?, ?)"),
		orgID, creator, 1)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orgID, nil
}

// RemoveOrg deletes the organization and all of its user and group
// associations in a single transaction; either all rows go or none do.
func (s *Store) RemoveOrg(ctx context.Context, orgID int64) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		"DELETE FROM Organization WHERE org_id = ?",
		"DELETE FROM OrgUser WHERE org_id = ?",
		"DELETE FROM OrgGroup WHERE org_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, s.q(stmt), orgID); err != nil {
			return fmt.Errorf("remove org %d: %w", orgID, err)
		}
	}
	return tx.Commit()
}

// GetOrgByURLPrefix returns the organization with the given url prefix, or
// nil if not found. It returns an error only for database failures, not for
// missing rows.
func (s *Store) GetOrgByURLPrefix(ctx context.Context, urlPrefix string) (*domain.Org, error) {
	row := s.conn.QueryRowContext(ctx, s.q(
		"SELECT org_id, org_name, url_prefix, creator, ctime FROM Organization WHERE url_prefix = ?"),
		urlPrefix)
	return scanOrg(row)
}

// GetOrgByID returns the organization for org id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (s *Store) GetOrgByID(ctx context.Context, orgID int64) (*domain.Org, error) {
	row := s.conn.QueryRowContext(ctx, s.q(
		"SELECT org_id, org_name, url_prefix, creator, ctime FROM Organization WHERE org_id = ?"),
		orgID)
	return scanOrg(row)
}

// GetAllOrgs returns organizations ordered by org id ascending. start == -1
// and limit == -1 returns everything; otherwise OFFSET start LIMIT limit.
func (s *Store) GetAllOrgs(ctx context.Context, start, limit int) ([]domain.Org, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if start == -1 && limit == -1 {
		rows, err = s.conn.QueryContext(ctx, s.q(
			"SELECT org_id, org_name, url_prefix, creator, ctime FROM Organization ORDER BY org_id"))
	} else {
		rows, err = s.conn.QueryContext(ctx, s.q(
			"SELECT org_id, org_name, url_prefix, creator, ctime FROM Organization ORDER BY org_id LIMIT ? OFFSET ?"),
			limit, start)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Org
	for rows.Next() {
		var o domain.Org
		if err := rows.Scan(&o.ID, &o.Name, &o.URLPrefix, &o.Creator, &o.CreatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// GetURLPrefixByOrgID returns the url prefix for org id, or "" if not found.
func (s *Store) GetURLPrefixByOrgID(ctx context.Context, orgID int64) (string, error) {
	var prefix string
	err := s.conn.QueryRowContext(ctx, s.q(
		"SELECT url_prefix FROM Organization WHERE org_id = ?"), orgID).Scan(&prefix)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return prefix, nil
}

func scanOrg(row *sql.Row) (*domain.Org, error) {
	var o domain.Org
	err := row.Scan(&o.ID, &o.Name, &o.URLPrefix, &o.Creator, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

var _ Repository = (*Store)(nil)
