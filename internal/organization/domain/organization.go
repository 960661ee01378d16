package domain

import (
	"errors"
)

// Org represents an organization/tenant. URLPrefix is the unique
// external-facing identifier; ID is assigned by the store.
type Org struct {
	ID        int64
	Name      string
	URLPrefix string
	Creator   string
	// CreatedAt is a unix timestamp in seconds, set at creation, immutable.
	CreatedAt int64
}

// Validate validates the organization for persistence. Returns an error describing the first validation failure.
func (o *Org) Validate() error {
	if o.Name == "" {
		return errors.New("org name is required")
	}
	if o.URLPrefix == "" {
		return errors.New("url prefix is required")
	}
	if o.Creator == "" {
		return errors.New("creator is required")
	}
	return nil
}

// OrgMembership pairs an organization with one member's staff flag,
// as returned by the by-user lookup.
type OrgMembership struct {
	Org     Org
	Email   string
	IsStaff bool
}
