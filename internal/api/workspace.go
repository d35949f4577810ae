package api

import (
	"context"
	"fmt"
	"net/url"

	"driftboard-client/internal/domain"
)

// WorkspaceService exposes the workspace-scoped endpoints the permission
// store depends on.
type WorkspaceService struct {
	client *Client
}

// NewWorkspaceService creates a WorkspaceService on the shared client.
func NewWorkspaceService(client *Client) *WorkspaceService {
	return &WorkspaceService{client: client}
}

// CurrentMembership retrieves the caller's membership record in the given
// workspace. A 404 maps to ErrNotMember: the caller has no record there.
func (s *WorkspaceService) CurrentMembership(ctx context.Context, workspaceSlug string) (*domain.WorkspaceMembership, error) {
	path := fmt.Sprintf("/api/workspaces/%s/members/me/", url.PathEscape(workspaceSlug))

	membership := &domain.WorkspaceMembership{}
	if err := s.client.get(ctx, path, membership); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("workspace %s: %w", workspaceSlug, ErrNotMember)
		}
		return nil, fmt.Errorf("get workspace membership: %w", err)
	}

	return membership, nil
}

// ProjectRoles retrieves the caller's role in every project of the
// workspace in one round trip (projectID → role).
func (s *WorkspaceService) ProjectRoles(ctx context.Context, workspaceSlug string) (map[string]domain.Role, error) {
	path := fmt.Sprintf("/api/users/me/workspaces/%s/project-roles/", url.PathEscape(workspaceSlug))

	roles := map[string]domain.Role{}
	if err := s.client.get(ctx, path, &roles); err != nil {
		return nil, fmt.Errorf("get project roles: %w", err)
	}

	return roles, nil
}
