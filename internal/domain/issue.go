package domain

import (
	"time"
)

// =====================================================
// Issue Entities (spreadsheet view data)
// =====================================================

// IssuePriority is the server-side priority label for an issue
type IssuePriority string

const (
	PriorityUrgent IssuePriority = "urgent"
	PriorityHigh   IssuePriority = "high"
	PriorityMedium IssuePriority = "medium"
	PriorityLow    IssuePriority = "low"
	PriorityNone   IssuePriority = "none"
)

// Issue is one row of the spreadsheet layout. The client never mutates
// issues locally; edits go through the service and the cache is refreshed
// from the response.
type Issue struct {
	ID         string `json:"id" validate:"required"`
	SequenceID int    `json:"sequence_id"`

	// Scope fields may be omitted by list serializers; only detail
	// responses are guaranteed to carry them.
	WorkspaceSlug string `json:"workspace_slug,omitempty"`
	ProjectID     string `json:"project_id,omitempty"`

	Name     string        `json:"name"`
	State    string        `json:"state"`
	Priority IssuePriority `json:"priority"`

	// EstimatePointID references the estimate point assigned to this issue,
	// empty when unestimated.
	EstimatePointID string `json:"estimate_point,omitempty"`

	AssigneeIDs []string   `json:"assignee_ids,omitempty"`
	TargetDate  *time.Time `json:"target_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IssuePage is one cursor window of a project's issue list.
type IssuePage struct {
	Issues []Issue `json:"results" validate:"dive"`

	TotalCount  int    `json:"total_count"`
	NextCursor  string `json:"next_cursor"`
	PrevCursor  string `json:"prev_cursor"`
	HasNextPage bool   `json:"next_page_results"`
	HasPrevPage bool   `json:"prev_page_results"`
}
