// Package service implements organization management over the store:
// input validation, a sentinel-error surface for callers, tracing, and
// best-effort lifecycle events.
package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"org-control-plane/backend/internal/db"
	"org-control-plane/backend/internal/events"
	"org-control-plane/backend/internal/organization/domain"
	"org-control-plane/backend/internal/organization/repository"
)

// Sentinel errors for the organization service; callers map them to their
// transport's codes.
var (
	ErrInvalidURLPrefix  = errors.New("url prefix must be lowercase letters, digits, and dashes")
	ErrURLPrefixTaken    = errors.New("url prefix already in use")
	ErrOrgNotFound       = errors.New("organization not found")
	ErrAlreadyMember     = errors.New("user is already a member of the organization")
	ErrGroupAlreadyInOrg = errors.New("group is already associated with the organization")
)

var urlPrefixRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// OrgService wraps the organization repository with validation, lifecycle
// events, and tracing.
type OrgService struct {
	repo     repository.Repository
	producer events.Producer
	tracer   trace.Tracer
}

// NewOrgService returns an OrgService with the given dependencies.
// producer may be nil, which disables lifecycle events.
func NewOrgService(repo repository.Repository, producer events.Producer) *OrgService {
	return &OrgService{
		repo:     repo,
		producer: producer,
		tracer:   otel.Tracer("org-control-plane/organization"),
	}
}

// CreateOrg creates an organization with creator as its first staff member.
// The url prefix is lowercased and must match [a-z0-9][a-z0-9-]*. Returns
// ErrURLPrefixTaken when the prefix is already in use.
func (s *OrgService) CreateOrg(ctx context.Context, name, urlPrefix, creator string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "CreateOrg")
	defer span.End()

	urlPrefix = strings.ToLower(strings.TrimSpace(urlPrefix))
	org := domain.Org{Name: strings.TrimSpace(name), URLPrefix: urlPrefix, Creator: strings.TrimSpace(creator)}
	if err := org.Validate(); err != nil {
		return 0, err
	}
	if !urlPrefixRe.MatchString(urlPrefix) {
		return 0, ErrInvalidURLPrefix
	}

	orgID, err := s.repo.CreateOrg(ctx, org.Name, org.URLPrefix, org.Creator)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrURLPrefixTaken
		}
		return 0, err
	}
	span.SetAttributes(attribute.Int64("org.id", orgID))

	s.emit(ctx, events.Event{Type: events.TypeOrgCreated, OrgID: orgID, URLPrefix: urlPrefix, Email: org.Creator})
	return orgID, nil
}

// RemoveOrg deletes the organization and its user and group associations.
// Returns ErrOrgNotFound when no organization has the given id.
func (s *OrgService) RemoveOrg(ctx context.Context, orgID int64) error {
	ctx, span := s.tracer.Start(ctx, "RemoveOrg")
	defer span.End()

	urlPrefix, err := s.repo.GetURLPrefixByOrgID(ctx, orgID)
	if err != nil {
		return err
	}
	if urlPrefix == "" {
		return ErrOrgNotFound
	}
	if err := s.repo.RemoveOrg(ctx, orgID); err != nil {
		return err
	}

	s.emit(ctx, events.Event{Type: events.TypeOrgRemoved, OrgID: orgID, URLPrefix: urlPrefix})
	return nil
}

// GetOrgByURLPrefix returns the organization with the given url prefix, or
// nil if not found.
func (s *OrgService) GetOrgByURLPrefix(ctx context.Context, urlPrefix string) (*domain.Org, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrgByURLPrefix")
	defer span.End()
	return s.repo.GetOrgByURLPrefix(ctx, strings.ToLower(strings.TrimSpace(urlPrefix)))
}

// GetOrgByID returns the organization for org id, or nil if not found.
func (s *OrgService) GetOrgByID(ctx context.Context, orgID int64) (*domain.Org, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrgByID")
	defer span.End()
	return s.repo.GetOrgByID(ctx, orgID)
}

// GetAllOrgs returns organizations ordered by org id ascending; start == -1
// and limit == -1 returns everything.
func (s *OrgService) GetAllOrgs(ctx context.Context, start, limit int) ([]domain.Org, error) {
	ctx, span := s.tracer.Start(ctx, "GetAllOrgs")
	defer span.End()
	return s.repo.GetAllOrgs(ctx, start, limit)
}

// AddOrgUser associates email with the organization. Returns ErrAlreadyMember
// when the pair already exists.
func (s *OrgService) AddOrgUser(ctx context.Context, orgID int64, email string, isStaff bool) error {
	ctx, span := s.tracer.Start(ctx, "AddOrgUser")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return errors.New("email is required")
	}
	if err := s.repo.AddOrgUser(ctx, orgID, email, isStaff); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyMember
		}
		return err
	}

	s.emit(ctx, events.Event{Type: events.TypeUserAdded, OrgID: orgID, Email: email})
	return nil
}

// RemoveOrgUser removes the association; removing a non-member succeeds.
func (s *OrgService) RemoveOrgUser(ctx context.Context, orgID int64, email string) error {
	ctx, span := s.tracer.Start(ctx, "RemoveOrgUser")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if err := s.repo.RemoveOrgUser(ctx, orgID, email); err != nil {
		return err
	}

	s.emit(ctx, events.Event{Type: events.TypeUserRemoved, OrgID: orgID, Email: email})
	return nil
}

// OrgUserExists reports whether email is associated with the organization.
func (s *OrgService) OrgUserExists(ctx context.Context, orgID int64, email string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "OrgUserExists")
	defer span.End()
	return s.repo.OrgUserExists(ctx, orgID, strings.TrimSpace(strings.ToLower(email)))
}

// IsOrgStaff reports whether email is a staff member; a non-member is not staff.
func (s *OrgService) IsOrgStaff(ctx context.Context, orgID int64, email string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "IsOrgStaff")
	defer span.End()
	return s.repo.IsOrgStaff(ctx, orgID, strings.TrimSpace(strings.ToLower(email)))
}

// SetOrgStaff marks the member as staff; no-op for a non-member.
func (s *OrgService) SetOrgStaff(ctx context.Context, orgID int64, email string) error {
	ctx, span := s.tracer.Start(ctx, "SetOrgStaff")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if err := s.repo.SetOrgStaff(ctx, orgID, email); err != nil {
		return err
	}
	s.emit(ctx, events.Event{Type: events.TypeStaffSet, OrgID: orgID, Email: email})
	return nil
}

// UnsetOrgStaff clears the member's staff flag; no-op for a non-member.
func (s *OrgService) UnsetOrgStaff(ctx context.Context, orgID int64, email string) error {
	ctx, span := s.tracer.Start(ctx, "UnsetOrgStaff")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if err := s.repo.UnsetOrgStaff(ctx, orgID, email); err != nil {
		return err
	}
	s.emit(ctx, events.Event{Type: events.TypeStaffUnset, OrgID: orgID, Email: email})
	return nil
}

// GetOrgsByUser returns the organizations the user belongs to, with the
// user's staff flag, ordered by org id ascending.
func (s *OrgService) GetOrgsByUser(ctx context.Context, email string) ([]domain.OrgMembership, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrgsByUser")
	defer span.End()
	return s.repo.GetOrgsByUser(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// GetOrgEmailUsers returns member emails for the organization with the given
// url prefix, ordered alphabetically.
func (s *OrgService) GetOrgEmailUsers(ctx context.Context, urlPrefix string, start, limit int) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrgEmailUsers")
	defer span.End()
	return s.repo.GetOrgEmailUsers(ctx, strings.ToLower(strings.TrimSpace(urlPrefix)), start, limit)
}

// AddOrgGroup associates the group with the organization. Returns
// ErrGroupAlreadyInOrg when the pair already exists.
func (s *OrgService) AddOrgGroup(ctx context.Context, orgID, groupID int64) error {
	ctx, span := s.tracer.Start(ctx, "AddOrgGroup")
	defer span.End()

	if err := s.repo.AddOrgGroup(ctx, orgID, groupID); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrGroupAlreadyInOrg
		}
		return err
	}
	s.emit(ctx, events.Event{Type: events.TypeGroupAdded, OrgID: orgID, GroupID: groupID})
	return nil
}

// RemoveOrgGroup removes the association; removing an absent pair succeeds.
func (s *OrgService) RemoveOrgGroup(ctx context.Context, orgID, groupID int64) error {
	ctx, span := s.tracer.Start(ctx, "RemoveOrgGroup")
	defer span.End()

	if err := s.repo.RemoveOrgGroup(ctx, orgID, groupID); err != nil {
		return err
	}
	s.emit(ctx, events.Event{Type: events.TypeGroupRemoved, OrgID: orgID, GroupID: groupID})
	return nil
}

// IsOrgGroup reports whether the group belongs to any organization.
func (s *OrgService) IsOrgGroup(ctx context.Context, groupID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "IsOrgGroup")
	defer span.End()
	return s.repo.IsOrgGroup(ctx, groupID)
}

// GetOrgIDByGroup returns the id of the organization the group belongs to,
// or 0 when the group is unassociated.
func (s *OrgService) GetOrgIDByGroup(ctx context.Context, groupID int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrgIDByGroup")
	defer span.End()
	return s.repo.GetOrgIDByGroup(ctx, groupID)
}

// GetOrgGroups returns group ids for the organization; limit == -1 returns everything.
func (s *OrgService) GetOrgGroups(ctx context.Context, orgID int64, start, limit int) ([]int64, error) {
	ctx, span := s.tracer.Start(ctx, "GetOrgGroups")
	defer span.End()
	return s.repo.GetOrgGroups(ctx, orgID, start, limit)
}

// emit sends a lifecycle event best-effort; failures are logged, never returned.
func (s *OrgService) emit(ctx context.Context, event events.Event) {
	if s.producer == nil {
		return
	}
	event.At = time.Now().Unix()
	if err := s.producer.Emit(ctx, event); err != nil {
		log.Printf("organization: emit %s failed: %v", event.Type, err)
	}
}
