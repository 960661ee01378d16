package repository

import (
	"context"

	"org-control-plane/backend/internal/organization/domain"
)

// Repository defines persistence for organizations and their user and group
// associations.
type Repository interface {
	CreateOrg(ctx context.Context, name, urlPrefix, creator string) (int64, error)
	RemoveOrg(ctx context.Context, orgID int64) error
	GetOrgByURLPrefix(ctx context.Context, urlPrefix string) (*domain.Org, error)
	GetOrgByID(ctx context.Context, orgID int64) (*domain.Org, error)
	GetAllOrgs(ctx context.Context, start, limit int) ([]domain.Org, error)
	GetURLPrefixByOrgID(ctx context.Context, orgID int64) (string, error)

	AddOrgUser(ctx context.Context, orgID int64, email string, isStaff bool) error
	RemoveOrgUser(ctx context.Context, orgID int64, email string) error
	OrgUserExists(ctx context.Context, orgID int64, email string) (bool, error)
	IsOrgStaff(ctx context.Context, orgID int64, email string) (bool, error)
	SetOrgStaff(ctx context.Context, orgID int64, email string) error
	UnsetOrgStaff(ctx context.Context, orgID int64, email string) error
	GetOrgsByUser(ctx context.Context, email string) ([]domain.OrgMembership, error)
	GetOrgEmailUsers(ctx context.Context, urlPrefix string, start, limit int) ([]string, error)

	AddOrgGroup(ctx context.Context, orgID, groupID int64) error
	RemoveOrgGroup(ctx context.Context, orgID, groupID int64) error
	IsOrgGroup(ctx context.Context, groupID int64) (bool, error)
	GetOrgIDByGroup(ctx context.Context, groupID int64) (int64, error)
	GetOrgGroups(ctx context.Context, orgID int64, start, limit int) ([]int64, error)
}
