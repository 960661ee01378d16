package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ddl is one provisioning statement. IndexName is set only for Postgres
// secondary indexes, whose creation must be guarded by an existence probe
// because the dialect has no "create index if not exists".
type ddl struct {
	SQL       string
	IndexName string
}

// schemaFor maps each dialect to the ordered DDL that provisions the
// Organization, OrgUser, and OrgGroup tables. Every statement is idempotent:
// either through IF NOT EXISTS or through the index probe.
var schemaFor = map[Dialect][]ddl{
	DialectMySQL: {
		{SQL: "CREATE TABLE IF NOT EXISTS Organization (org_id INTEGER" +
			" PRIMARY KEY AUTO_INCREMENT, org_name VARCHAR(255)," +
			" url_prefix VARCHAR(255), creator VARCHAR(255), ctime BIGINT," +
			" UNIQUE INDEX (url_prefix)) ENGINE=INNODB"},
		{SQL: "CREATE TABLE IF NOT EXISTS OrgUser (org_id INTEGER," +
			" email VARCHAR(255), is_staff BOOL NOT NULL," +
			" INDEX (email), UNIQUE INDEX (org_id, email)) ENGINE=INNODB"},
		{SQL: "CREATE TABLE IF NOT EXISTS OrgGroup (org_id INTEGER," +
			" group_id INTEGER, INDEX (group_id)," +
			" UNIQUE INDEX (org_id, group_id)) ENGINE=INNODB"},
	},
	DialectSQLite: {
		{SQL: "CREATE TABLE IF NOT EXISTS Organization (org_id INTEGER" +
			" PRIMARY KEY AUTOINCREMENT, org_name VARCHAR(255)," +
			" url_prefix VARCHAR(255), creator VARCHAR(255), ctime BIGINT)"},
		{SQL: "CREATE UNIQUE INDEX IF NOT EXISTS url_prefix_indx ON Organization (url_prefix)"},
		{SQL: "CREATE TABLE IF NOT EXISTS OrgUser (org_id INTEGER," +
			" email TEXT, is_staff BOOL NOT NULL)"},
		{SQL: "CREATE INDEX IF NOT EXISTS email_indx ON OrgUser (email)"},
		{SQL: "CREATE UNIQUE INDEX IF NOT EXISTS orgid_email_indx ON OrgUser (org_id, email)"},
		{SQL: "CREATE TABLE IF NOT EXISTS OrgGroup (org_id INTEGER, group_id INTEGER)"},
		{SQL: "CREATE INDEX IF NOT EXISTS groupid_indx ON OrgGroup (group_id)"},
		{SQL: "CREATE UNIQUE INDEX IF NOT EXISTS org_group_indx ON OrgGroup (org_id, group_id)"},
	},
	DialectPostgres: {
		{SQL: "CREATE TABLE IF NOT EXISTS Organization (org_id SERIAL" +
			" PRIMARY KEY, org_name VARCHAR(255)," +
			" url_prefix VARCHAR(255), creator VARCHAR(255), ctime BIGINT," +
			" UNIQUE (url_prefix))"},
		{SQL: "CREATE TABLE IF NOT EXISTS OrgUser (org_id INTEGER," +
			" email VARCHAR(255), is_staff INTEGER NOT NULL," +
			" UNIQUE (org_id, email))"},
		{SQL: "CREATE INDEX orguser_email_idx ON OrgUser (email)",
			IndexName: "orguser_email_idx"},
		{SQL: "CREATE TABLE IF NOT EXISTS OrgGroup (org_id INTEGER," +
			" group_id INTEGER, UNIQUE (org_id, group_id))"},
		{SQL: "CREATE INDEX orggroup_groupid_idx ON OrgGroup (group_id)",
			IndexName: "orggroup_groupid_idx"},
	},
}

// EnsureSchema provisions the organization tables and indexes for the given
// dialect. Safe to run on every startup; the first DDL failure aborts and is
// returned to the caller, with no automatic retry.
func EnsureSchema(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	stmts, ok := schemaFor[dialect]
	if !ok {
		return fmt.Errorf("unknown dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if stmt.IndexName != "" {
			exists, err := pgIndexExists(ctx, conn, stmt.IndexName)
			if err != nil {
				return fmt.Errorf("check index %s: %w", stmt.IndexName, err)
			}
			if exists {
				continue
			}
		}
		if _, err := conn.ExecContext(ctx, stmt.SQL); err != nil {
			return fmt.Errorf("provision schema: %w", err)
		}
	}
	return nil
}

// pgIndexExists reports whether a Postgres index with the given name exists.
func pgIndexExists(ctx context.Context, conn *sql.DB, name string) (bool, error) {
	var one int
	err := conn.QueryRowContext(ctx,
		"SELECT 1 FROM pg_indexes WHERE indexname = $1", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
