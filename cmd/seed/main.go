// seed inserts development sample data for local testing. Run via go run ./cmd/seed.
// Idempotent: skips inserts if the dev organization (url prefix "acme-dev") already exists.
package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"org-control-plane/backend/internal/config"
	"org-control-plane/backend/internal/db"
	"org-control-plane/backend/internal/organization/repository"
)

const (
	devOrgName   = "Acme Dev"
	devOrgPrefix = "acme-dev"
	devAdmin     = "dev@example.com"
	devMember    = "member@example.com"
	devGroupID   = 1001
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	conn, dialect, err := db.Open(cfg.DBBackend, cfg.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
		log.Fatalf("provision: %v", err)
	}

	store := repository.NewStore(conn, dialect)

	existing, err := store.GetOrgByURLPrefix(ctx, devOrgPrefix)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (acme-dev exists). Skipping.")
		os.Exit(0)
	}

	orgID, err := store.CreateOrg(ctx, devOrgName, devOrgPrefix, devAdmin)
	if err != nil {
		log.Fatalf("create dev org: %v", err)
	}
	if err := store.AddOrgUser(ctx, orgID, devMember, false); err != nil {
		log.Fatalf("add member: %v", err)
	}
	if err := store.AddOrgGroup(ctx, orgID, devGroupID); err != nil {
		log.Fatalf("add group: %v", err)
	}

	// A couple of throwaway tenants so list pagination has something to page over.
	for _, name := range []string{"Globex", "Initech"} {
		prefix := "seed-" + uuid.NewString()[:8]
		if _, err := store.CreateOrg(ctx, name, prefix, devAdmin); err != nil {
			log.Fatalf("create %s: %v", name, err)
		}
	}

	log.Printf("Seed complete: org %d (%s)", orgID, devOrgPrefix)
}
