// orgctl is an admin CLI over the organization store: create and remove
// organizations, manage their users and groups, and run membership lookups.
//
// Usage: orgctl <command> [flags], e.g.
//
//	orgctl create-org -name "Acme" -prefix acme -creator alice@example.com
//	orgctl add-user -org 1 -email bob@example.com
//	orgctl list-users -prefix acme
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"org-control-plane/backend/internal/config"
	"org-control-plane/backend/internal/db"
	"org-control-plane/backend/internal/events"
	"org-control-plane/backend/internal/organization/repository"
	"org-control-plane/backend/internal/organization/service"
	"org-control-plane/backend/internal/telemetry/otel"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "orgctl", false)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()
	defer func() { _ = providers.Shutdown(ctx) }()

	conn, dialect, err := db.Open(cfg.DBBackend, cfg.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
		log.Fatalf("provision: %v", err)
	}

	var producer events.Producer
	if kp := events.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.EventsKafkaTopic); kp != nil {
		producer = kp
		defer kp.Close()
	}

	svc := service.NewOrgService(repository.NewStore(conn, dialect), producer)

	if err := run(ctx, svc, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(ctx context.Context, svc *service.OrgService, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	var (
		name    = fs.String("name", "", "organization display name")
		prefix  = fs.String("prefix", "", "organization url prefix")
		creator = fs.String("creator", "", "creator email")
		email   = fs.String("email", "", "user email")
		org     = fs.Int64("org", 0, "organization id")
		group   = fs.Int64("group", 0, "group id")
		staff   = fs.Bool("staff", false, "add the user as staff")
		start   = fs.Int("start", -1, "pagination offset (-1 for all)")
		limit   = fs.Int("limit", -1, "pagination limit (-1 for all)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch command {
	case "create-org":
		orgID, err := svc.CreateOrg(ctx, *name, *prefix, *creator)
		if err != nil {
			return err
		}
		fmt.Println(orgID)
		return nil
	case "remove-org":
		return svc.RemoveOrg(ctx, *org)
	case "list-orgs":
		orgs, err := svc.GetAllOrgs(ctx, *start, *limit)
		if err != nil {
			return err
		}
		for _, o := range orgs {
			fmt.Printf("%d\t%s\t%s\t%s\n", o.ID, o.URLPrefix, o.Name, o.Creator)
		}
		return nil
	case "add-user":
		return svc.AddOrgUser(ctx, *org, *email, *staff)
	case "remove-user":
		return svc.RemoveOrgUser(ctx, *org, *email)
	case "set-staff":
		return svc.SetOrgStaff(ctx, *org, *email)
	case "unset-staff":
		return svc.UnsetOrgStaff(ctx, *org, *email)
	case "list-users":
		emails, err := svc.GetOrgEmailUsers(ctx, *prefix, *start, *limit)
		if err != nil {
			return err
		}
		for _, e := range emails {
			fmt.Println(e)
		}
		return nil
	case "user-orgs":
		members, err := svc.GetOrgsByUser(ctx, *email)
		if err != nil {
			return err
		}
		for _, m := range members {
			staffMark := ""
			if m.IsStaff {
				staffMark = "\tstaff"
			}
			fmt.Printf("%d\t%s\t%s%s\n", m.Org.ID, m.Org.URLPrefix, m.Org.Name, staffMark)
		}
		return nil
	case "add-group":
		return svc.AddOrgGroup(ctx, *org, *group)
	case "remove-group":
		return svc.RemoveOrgGroup(ctx, *org, *group)
	case "list-groups":
		groups, err := svc.GetOrgGroups(ctx, *org, *start, *limit)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Println(g)
		}
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: orgctl <command> [flags]

commands:
  create-org   -name NAME -prefix PREFIX -creator EMAIL
  remove-org   -org ID
  list-orgs    [-start N -limit N]
  add-user     -org ID -email EMAIL [-staff]
  remove-user  -org ID -email EMAIL
  set-staff    -org ID -email EMAIL
  unset-staff  -org ID -email EMAIL
  list-users   -prefix PREFIX [-start N -limit N]
  user-orgs    -email EMAIL
  add-group    -org ID -group ID
  remove-group -org ID -group ID
  list-groups  -org ID [-start N -limit N]`)
}
