package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =====================================================
// Role Enum (Type Safety)
// =====================================================

// Role ranks a user's authority inside a workspace or project.
// The numeric values come from the server and are totally ordered, so
// "at least Member" comparisons are valid.
type Role int

const (
	// RoleGuest has read-only access to resources shared with them
	RoleGuest Role = 5

	// RoleMember can create, read and update work items
	RoleMember Role = 15

	// RoleAdmin has full access including member management
	RoleAdmin Role = 20
)

// ErrUnknownRole is returned when a service response carries a role value
// outside the closed enum. Responses are parsed, never cast: an
// unrecognized rank must surface as a decode error, not propagate silently.
var ErrUnknownRole = fmt.Errorf("unknown role value")

// ParseRole validates a raw numeric rank from a service response.
func ParseRole(raw int) (Role, error) {
	switch Role(raw) {
	case RoleGuest, RoleMember, RoleAdmin:
		return Role(raw), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownRole, raw)
	}
}

// RoleFromName resolves a human-facing role name (CLI flags, config).
func RoleFromName(name string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "guest":
		return RoleGuest, nil
	case "member":
		return RoleMember, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
}

// String returns the canonical lowercase name of the Role
func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// IsValid checks if the role is one of the defined constants
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

// AtLeast reports whether the role ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}

// UnmarshalJSON enforces the closed enum at the decode boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode role: %w", err)
	}

	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}

// MarshalJSON emits the numeric rank the server understands.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return json.Marshal(int(r))
}
