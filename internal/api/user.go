package api

import (
	"context"
	"fmt"
	"net/url"

	"driftboard-client/internal/domain"
)

// UserService exposes the current-user mutations: joining and leaving
// workspaces and projects.
type UserService struct {
	client *Client
}

// NewUserService creates a UserService on the shared client.
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// LeaveWorkspace relinquishes the caller's membership in a workspace.
func (s *UserService) LeaveWorkspace(ctx context.Context, workspaceSlug string) error {
	path := fmt.Sprintf("/api/users/me/workspaces/%s/leave/", url.PathEscape(workspaceSlug))

	if err := s.client.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("leave workspace: %w", err)
	}
	return nil
}

// LeaveProject relinquishes the caller's membership in a project.
func (s *UserService) LeaveProject(ctx context.Context, workspaceSlug, projectID string) error {
	path := fmt.Sprintf("/api/users/me/workspaces/%s/projects/%s/leave/",
		url.PathEscape(workspaceSlug), url.PathEscape(projectID))

	if err := s.client.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("leave project: %w", err)
	}
	return nil
}

// JoinProject adds the caller to a project and returns the assigned role.
// The endpoint accepts a batch of project IDs; the store only ever joins
// one at a time.
func (s *UserService) JoinProject(ctx context.Context, workspaceSlug, projectID string) (domain.Role, error) {
	path := fmt.Sprintf("/api/users/me/workspaces/%s/projects/join/", url.PathEscape(workspaceSlug))

	body := map[string][]string{"project_ids": {projectID}}

	var result struct {
		Role domain.Role `json:"role"`
	}
	if err := s.client.post(ctx, path, body, &result); err != nil {
		return 0, fmt.Errorf("join project: %w", err)
	}

	return result.Role, nil
}
