// provision ensures the organization tables and indexes exist for the
// configured backend; safe to run on every startup. Use with go run ./cmd/provision.
package main

import (
	"context"
	"fmt"
	"os"

	"org-control-plane/backend/internal/config"
	"org-control-plane/backend/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	conn, dialect, err := db.Open(cfg.DBBackend, cfg.DSN())
	if err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.EnsureSchema(context.Background(), conn, dialect); err != nil {
		fmt.Fprintln(os.Stderr, "provision:", err)
		os.Exit(1)
	}
}
