// Package events defines the interface for emitting organization lifecycle events (e.g. to Kafka).
package events

import (
	"context"
)

// Type names an organization lifecycle event.
type Type string

const (
	TypeOrgCreated   Type = "org.created"
	TypeOrgRemoved   Type = "org.removed"
	TypeUserAdded    Type = "org.user_added"
	TypeUserRemoved  Type = "org.user_removed"
	TypeStaffSet     Type = "org.staff_set"
	TypeStaffUnset   Type = "org.staff_unset"
	TypeGroupAdded   Type = "org.group_added"
	TypeGroupRemoved Type = "org.group_removed"
)

// Event is one organization lifecycle event. Email and GroupID are set only
// for user and group association events respectively.
type Event struct {
	Type      Type   `json:"type"`
	OrgID     int64  `json:"org_id"`
	URLPrefix string `json:"url_prefix,omitempty"`
	Email     string `json:"email,omitempty"`
	GroupID   int64  `json:"group_id,omitempty"`
	At        int64  `json:"at"`
}

// Producer emits lifecycle events. Callers use it best-effort: log and ignore errors.
type Producer interface {
	// Emit sends a single event. Implementations may block briefly; call from a goroutine if needed.
	// Returns an error only on write failure; callers typically log and ignore.
	Emit(ctx context.Context, event Event) error
	// Close releases resources (e.g. Kafka writer). Safe to call if already closed.
	Close() error
}
