package db

import "testing"

func TestRebind(t *testing.T) {
	testCases := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite keeps ?", DialectSQLite, "SELECT 1 FROM OrgUser WHERE org_id = ? AND email = ?",
			"SELECT 1 FROM OrgUser WHERE org_id = ? AND email = ?"},
		{"mysql keeps ?", DialectMySQL, "DELETE FROM OrgGroup WHERE org_id = ?",
			"DELETE FROM OrgGroup WHERE org_id = ?"},
		{"postgres numbers placeholders", DialectPostgres,
			"INSERT INTO OrgUser (org_id, email, is_staff) VALUES (?, ?, ?)",
			"INSERT INTO OrgUser (org_id, email, is_staff) VALUES ($1, $2, $3)"},
		{"postgres no placeholders", DialectPostgres,
			"SELECT org_id FROM Organization ORDER BY org_id",
			"SELECT org_id FROM Organization ORDER BY org_id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.dialect.Rebind(tc.query); got != tc.want {
				t.Errorf("Rebind(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}
