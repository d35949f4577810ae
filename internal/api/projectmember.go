package api

import (
	"context"
	"fmt"
	"net/url"

	"driftboard-client/internal/domain"
)

// ProjectMemberService exposes the project-member endpoints.
type ProjectMemberService struct {
	client *Client
}

// NewProjectMemberService creates a ProjectMemberService on the shared client.
func NewProjectMemberService(client *Client) *ProjectMemberService {
	return &ProjectMemberService{client: client}
}

// CurrentMembership retrieves the caller's membership record in one
// project. A 404 maps to ErrNotMember.
func (s *ProjectMemberService) CurrentMembership(ctx context.Context, workspaceSlug, projectID string) (*domain.ProjectMembership, error) {
	path := fmt.Sprintf("/api/workspaces/%s/projects/%s/members/me/",
		url.PathEscape(workspaceSlug), url.PathEscape(projectID))

	membership := &domain.ProjectMembership{}
	if err := s.client.get(ctx, path, membership); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("project %s/%s: %w", workspaceSlug, projectID, ErrNotMember)
		}
		return nil, fmt.Errorf("get project membership: %w", err)
	}

	return membership, nil
}
