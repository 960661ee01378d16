package repository

import (
	"context"
	"database/sql"
	"errors"

	"org-control-plane/backend/internal/organization/domain"
)

// AddOrgUser inserts one (org_id, email) association. A duplicate pair
// surfaces as a uniqueness-violation error from the driver.
func (s *Store) AddOrgUser(ctx context.Context, orgID int64, email string, isStaff bool) error {
	staff := 0
	if isStaff {
		staff = 1
	}
	_, err := s.conn.ExecContext(ctx, s.q(
		"INSERT INTO OrgUser (org_id, email, is_staff) VALUES (?, ?, ?)"),
		orgID, email, staff)
	return err
}

// RemoveOrgUser deletes the matching association. Deleting a non-existent
// pair affects zero rows and is not an error.
func (s *Store) RemoveOrgUser(ctx context.Context, orgID int64, email string) error {
	_, err := s.conn.ExecContext(ctx, s.q(
		"DELETE FROM OrgUser WHERE org_id = ? AND email = ?"), orgID, email)
	return err
}

// OrgUserExists reports whether email is associated with the organization.
func (s *Store) OrgUserExists(ctx context.Context, orgID int64, email string) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx, s.q(
		"SELECT 1 FROM OrgUser WHERE org_id = ? AND email = ?"), orgID, email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsOrgStaff reports whether email is a staff member of the organization.
// A user who is not a member at all reports false.
func (s *Store) IsOrgStaff(ctx context.Context, orgID int64, email string) (bool, error) {
	var staff bool
	err := s.conn.QueryRowContext(ctx, s.q(
		"SELECT is_staff FROM OrgUser WHERE org_id = ? AND email = ?"), orgID, email).Scan(&staff)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return staff, nil
}

// SetOrgStaff marks the member as staff. No-op when no tuple matches.
func (s *Store) SetOrgStaff(ctx context.Context, orgID int64, email string) error {
	return s.setStaff(ctx, orgID, email, 1)
}

// UnsetOrgStaff clears the member's staff flag. No-op when no tuple matches.
func (s *Store) UnsetOrgStaff(ctx context.Context, orgID int64, email string) error {
	return s.setStaff(ctx, orgID, email, 0)
}

func (s *Store) setStaff(ctx context.Context, orgID int64, email string, staff int) error {
	_, err := s.conn.ExecContext(ctx, s.q(
		"UPDATE OrgUser SET is_staff = ? WHERE org_id = ? AND email = ?"),
		staff, orgID, email)
	return err
}

// GetOrgsByUser returns every organization the user belongs to together with
// the user's staff flag, ordered by org id ascending.
func (s *Store) GetOrgsByUser(ctx context.Context, email string) ([]domain.OrgMembership, error) {
	rows, err := s.conn.QueryContext(ctx, s.q(
		"SELECT t2.org_id, t1.email, t1.is_staff, t2.org_name, t2.url_prefix, t2.creator, t2.ctime"+
			" FROM OrgUser t1, Organization t2"+
			" WHERE t1.org_id = t2.org_id AND t1.email = ? ORDER BY t2.org_id"),
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.OrgMembership
	for rows.Next() {
		var m domain.OrgMembership
		if err := rows.Scan(&m.Org.ID, &m.Email, &m.IsStaff,
			&m.Org.Name, &m.Org.URLPrefix, &m.Org.Creator, &m.Org.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetOrgEmailUsers returns member emails of the organization with the given
// url prefix, ordered alphabetically, with the same pagination convention as
// GetAllOrgs.
func (s *Store) GetOrgEmailUsers(ctx context.Context, urlPrefix string, start, limit int) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if start == -1 && limit == -1 {
		rows, err = s.conn.QueryContext(ctx, s.q(
			"SELECT email FROM OrgUser WHERE org_id ="+
				" (SELECT org_id FROM Organization WHERE url_prefix = ?)"+
				" ORDER BY email"), urlPrefix)
	} else {
		rows, err = s.conn.QueryContext(ctx, s.q(
			"SELECT email FROM OrgUser WHERE org_id ="+
				" (SELECT org_id FROM Organization WHERE url_prefix = ?)"+
				" ORDER BY email LIMIT ? OFFSET ?"), urlPrefix, limit, start)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
