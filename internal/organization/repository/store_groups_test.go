package repository

import (
	"context"
	"testing"

	"org-control-plane/backend/internal/db"
)

func TestAddOrgGroup_Duplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	orgID, err := store.CreateOrg(ctx, "Acme", "acme", "alice@x.com")
	if err != nil {
		t.Fatalf("CreateOrg: %v", err)
	}

	if err := store.AddOrgGroup(ctx, orgID, 42); err != nil {
		t.Fatalf("AddOrgGroup: %v", err)
	}
	err = store.AddOrgGroup(ctx, orgID, 42)
	if err == nil {
		t.Fatal("AddOrgGroup with an existing (org, group) pair should fail")
	}
	if !db.IsUniqueViolation(err) {
		t.Errorf("error should be a unique violation, got %v", err)
	}
}

func TestRemoveOrgGroup_AbsentIsNotAnError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	orgID, err := store.CreateOrg(ctx, "Acme", "acme", "alice@x.com")
	if err != nil {
		t.Fatalf("CreateOrg: %v", err)
	}

	if err := store.RemoveOrgGroup(ctx, orgID, 42); err != nil {
		t.Errorf("RemoveOrgGroup on an absent pair should succeed, got %v", err)
	}
}

func TestGetOrgIDByGroup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	orgID, err := store.CreateOrg(ctx, "Acme", "acme", "alice@x.com")
	if err != nil {
		t.Fatalf("CreateOrg: %v", err)
	}
	if err := store.AddOrgGroup(ctx, orgID, 42); err != nil {
		t.Fatalf("AddOrgGroup: %v", err)
	}

	owner, err := store.GetOrgIDByGroup(ctx, 42)
	if err != nil {
		t.Fatalf("GetOrgIDByGroup: %v", err)
	}
	if owner != orgID {
		t.Errorf("GetOrgIDByGroup(42) = %d, want %d", owner, orgID)
	}

	owner, err = store.GetOrgIDByGroup(ctx, 77)
	if err != nil {
		t.Fatalf("GetOrgIDByGroup missing: %v", err)
	}
	if owner != 0 {
		t.Errorf("GetOrgIDByGroup for an unassociated group = %d, want 0", owner)
	}
}

func TestGetOrgIDByGroup_TwoOrgsLowestWins(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	firstID, err := store.CreateOrg(ctx, "First", "first", "alice@x.com")
	if err != nil {
		t.Fatalf("CreateOrg first: %v", err)
	}
	secondID, err := store.CreateOrg(ctx, "Second", "second", "bob@x.com")
	if err != nil {
		t.Fatalf("CreateOrg second: %v", err)
	}

	if err := store.AddOrgGroup(ctx, secondID, 42); err != nil {
		t.Fatalf("AddOrgGroup second: %v", err)
	}
	if err := store.AddOrgGroup(ctx, firstID, 42); err != nil {
		t.Fatalf("AddOrgGroup first: %v", err)
	}

	owner, err := store.GetOrgIDByGroup(ctx, 42)
	if err != nil {
		t.Fatalf("GetOrgIDByGroup: %v", err)
	}
	if owner != firstID {
		t.Errorf("GetOrgIDByGroup(42) = %d, want the lowest org id %d", owner, firstID)
	}
}

func TestGetOrgGroups_Pagination(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	orgID, err := store.CreateOrg(ctx, "Acme", "acme", "alice@x.com")
	if err != nil {
		t.Fatalf("CreateOrg: %v", err)
	}
	for _, groupID := range []int64{30, 10, 20, 40} {
		if err := store.AddOrgGroup(ctx, orgID, groupID); err != nil {
			t.Fatalf("AddOrgGroup %d: %v", groupID, err)
		}
	}

	all, err := store.GetOrgGroups(ctx, orgID, -1, -1)
	if err != nil {
		t.Fatalf("GetOrgGroups all: %v", err)
	}
	want := []int64{10, 20, 30, 40}
	if len(all) != len(want) {
		t.Fatalf("groups = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("groups[%d] = %d, want %d", i, all[i], want[i])
		}
	}

	page, err := store.GetOrgGroups(ctx, orgID, 1, 2)
	if err != nil {
		t.Fatalf("GetOrgGroups page: %v", err)
	}
	if len(page) != 2 || page[0] != 20 || page[1] != 30 {
		t.Errorf("page = %v, want [20 30]", page)
	}
}
