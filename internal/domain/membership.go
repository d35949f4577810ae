package domain

import (
	"time"
)

// =====================================================
// Membership Entities (mirrored from service responses)
// =====================================================
// These records are ephemeral client-side state: they are rebuilt from
// server responses and never persisted locally. Absence of a record means
// "unknown", not "no permission"; callers must keep the two apart.

// WorkspaceMembership is the caller's membership record in one workspace.
type WorkspaceMembership struct {
	ID            string `json:"id" validate:"required"`
	UserID        string `json:"user_id" validate:"required"`
	WorkspaceSlug string `json:"workspace_slug" validate:"required"`
	Role          Role   `json:"role"`

	// User display fields carried alongside the role
	UserEmail       string `json:"user_email,omitempty"`
	UserDisplayName string `json:"user_display_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectMembership is the caller's membership record in one project,
// nested one level below the workspace.
type ProjectMembership struct {
	ID            string `json:"id" validate:"required"`
	UserID        string `json:"user_id" validate:"required"`
	WorkspaceSlug string `json:"workspace_slug" validate:"required"`
	ProjectID     string `json:"project_id" validate:"required"`
	Role          Role   `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
