package repository

import (
	"context"
	"database/sql"
	"errors"
)

// AddOrgGroup associates a group with the organization. A duplicate pair
// surfaces as a uniqueness-violation error from the driver.
func (s *Store) AddOrgGroup(ctx context.Context, orgID, groupID int64) error {
	_, err := s.conn.ExecContext(ctx, s.q(
		"INSERT INTO OrgGroup (org_id, group_id) VALUES (?, ?)"), orgID, groupID)
	return err
}

// RemoveOrgGroup deletes the matching association. Deleting a non-existent
// pair affects zero rows and is not an error.
func (s *Store) RemoveOrgGroup(ctx context.Context, orgID, groupID int64) error {
	_, err := s.conn.ExecContext(ctx, s.q(
		"DELETE FROM OrgGroup WHERE org_id = ? AND group_id = ?"), orgID, groupID)
	return err
}

// IsOrgGroup reports whether the group belongs to any organization.
func (s *Store) IsOrgGroup(ctx context.Context, groupID int64) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx, s.q(
		"SELECT 1 FROM OrgGroup WHERE group_id = ?"), groupID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetOrgIDByGroup returns the id of the organization the group belongs to, or
// 0 if the group is not associated with any organization. A group is expected
// to belong to at most one organization; should it ever appear under several,
// the lowest org id wins.
func (s *Store) GetOrgIDByGroup(ctx context.Context, groupID int64) (int64, error) {
	var orgID int64
	err := s.conn.QueryRowContext(ctx, s.q(
		"SELECT org_id FROM OrgGroup WHERE group_id = ? ORDER BY org_id LIMIT 1"),
		groupID).Scan(&orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return orgID, nil
}

// GetOrgGroups returns the group ids associated with the organization,
// ordered by group id ascending. limit == -1 returns everything; otherwise
// OFFSET start LIMIT limit.
func (s *Store) GetOrgGroups(ctx context.Context, orgID int64, start, limit int) ([]int64, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit == -1 {
		rows, err = s.conn.QueryContext(ctx, s.q(
			"SELECT group_id FROM OrgGroup WHERE org_id = ? ORDER BY group_id"), orgID)
	} else {
		rows, err = s.conn.QueryContext(ctx, s.q(
			"SELECT group_id FROM OrgGroup WHERE org_id = ? ORDER BY group_id LIMIT ? OFFSET ?"),
			orgID, limit, start)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []int64
	for rows.Next() {
		var groupID int64
		if err := rows.Scan(&groupID); err != nil {
			return nil, err
		}
		groups = append(groups, groupID)
	}
	return groups, rows.Err()
}
