package api

import (
	"context"
	"fmt"
	"net/url"

	"driftboard-client/internal/domain"
)

// DefaultPerPage is the page size used when the caller does not ask for a
// specific window.
const DefaultPerPage = 50

// IssueService exposes the issue and estimate endpoints consumed by the
// spreadsheet view.
type IssueService struct {
	client *Client
}

// NewIssueService creates an IssueService on the shared client.
func NewIssueService(client *Client) *IssueService {
	return &IssueService{client: client}
}

// List retrieves one cursor window of a project's issues. An empty cursor
// requests the first page; perPage <= 0 falls back to DefaultPerPage.
func (s *IssueService) List(ctx context.Context, workspaceSlug, projectID, cursor string, perPage int) (*domain.IssuePage, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	query := url.Values{}
	query.Set("per_page", fmt.Sprintf("%d", perPage))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	path := fmt.Sprintf("/api/workspaces/%s/projects/%s/issues/?%s",
		url.PathEscape(workspaceSlug), url.PathEscape(projectID), query.Encode())

	page := &domain.IssuePage{}
	if err := s.client.get(ctx, path, page); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	return page, nil
}

// Estimate retrieves a project's estimate scale with its points.
func (s *IssueService) Estimate(ctx context.Context, workspaceSlug, projectID, estimateID string) (*domain.Estimate, error) {
	path := fmt.Sprintf("/api/workspaces/%s/projects/%s/estimates/%s/",
		url.PathEscape(workspaceSlug), url.PathEscape(projectID), url.PathEscape(estimateID))

	estimate := &domain.Estimate{}
	if err := s.client.get(ctx, path, estimate); err != nil {
		return nil, fmt.Errorf("get estimate: %w", err)
	}

	return estimate, nil
}

// UpdateEstimatePoint changes the display value of one estimate point and
// returns the updated record.
func (s *IssueService) UpdateEstimatePoint(ctx context.Context, workspaceSlug, projectID, pointID, value string) (*domain.EstimatePoint, error) {
	path := fmt.Sprintf("/api/workspaces/%s/projects/%s/estimate-points/%s/",
		url.PathEscape(workspaceSlug), url.PathEscape(projectID), url.PathEscape(pointID))

	body := map[string]string{"value": value}

	point := &domain.EstimatePoint{}
	if err := s.client.patch(ctx, path, body, point); err != nil {
		return nil, fmt.Errorf("update estimate point: %w", err)
	}

	return point, nil
}
