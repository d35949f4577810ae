package issue

import (
	"context"
	"fmt"
	"sync"

	"driftboard-client/internal/domain"
	"driftboard-client/internal/observability/logger"

	"go.uber.org/zap"
)

// defaultPerPage is the window size used when the caller does not ask for
// a specific one.
const defaultPerPage = 50

// API is the slice of the issue service the store consumes.
type API interface {
	List(ctx context.Context, workspaceSlug, projectID, cursor string, perPage int) (*domain.IssuePage, error)
	Estimate(ctx context.Context, workspaceSlug, projectID, estimateID string) (*domain.Estimate, error)
	UpdateEstimatePoint(ctx context.Context, workspaceSlug, projectID, pointID, value string) (*domain.EstimatePoint, error)
}

type projectKey struct {
	workspaceSlug string
	projectID     string
}

// projectIssues is the cached window state for one project's issue list.
type projectIssues struct {
	issues      []domain.Issue
	totalCount  int
	nextCursor  string
	hasNextPage bool
}

// Store caches issue pages and estimate points per project. Like the
// permission store it is keyed by stable identifiers, mutated only on
// remote success, and tolerates late responses overwriting newer state
// (last response wins).
type Store struct {
	api API
	log *logger.Logger

	mu        sync.RWMutex
	projects  map[projectKey]*projectIssues
	estimates map[projectKey]map[string]domain.EstimatePoint
}

// NewStore creates an empty issue Store.
func NewStore(api API, log *logger.Logger) *Store {
	return &Store{
		api:       api,
		log:       log,
		projects:  make(map[projectKey]*projectIssues),
		estimates: make(map[projectKey]map[string]domain.EstimatePoint),
	}
}

// FetchIssues loads one window of a project's issues. An empty cursor
// restarts the list with a first-page cursor; a non-empty cursor is decoded,
// rejected when malformed, and appends the window to the cached rows
// (spreadsheet "load more"). Failures leave the cache untouched.
func (s *Store) FetchIssues(ctx context.Context, workspaceSlug, projectID, cursor string, perPage int) (*domain.IssuePage, error) {
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	var cur Cursor
	if cursor == "" {
		cur = FirstPage(perPage)
	} else {
		var err error
		cur, err = ParseCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("fetch issues: %w", err)
		}
	}

	page, err := s.api.List(ctx, workspaceSlug, projectID, cur.String(), perPage)
	if err != nil {
		s.log.Error(ctx, "failed to fetch issues",
			logger.Module("issue"),
			logger.Action("fetch_issues"),
			zap.String("workspace_slug", workspaceSlug),
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch issues: %w", err)
	}

	key := projectKey{workspaceSlug: workspaceSlug, projectID: projectID}

	s.mu.Lock()
	cached, ok := s.projects[key]
	if !ok || cursor == "" {
		cached = &projectIssues{}
		s.projects[key] = cached
	}
	cached.issues = append(cached.issues, page.Issues...)
	cached.totalCount = page.TotalCount
	cached.nextCursor = page.NextCursor
	cached.hasNextPage = page.HasNextPage
	// Some list serializers report next_page_results without a cursor;
	// advance the requested window locally so "load more" still works.
	if page.HasNextPage && page.NextCursor == "" {
		cached.nextCursor = cur.Next().String()
	}
	s.mu.Unlock()

	return page, nil
}

// Issues returns a copy of the cached rows for a project; nil when the
// project has not been fetched.
func (s *Store) Issues(workspaceSlug, projectID string) []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.projects[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}]
	if !ok {
		return nil
	}

	issues := make([]domain.Issue, len(cached.issues))
	copy(issues, cached.issues)
	return issues
}

// NextCursor returns the continuation cursor for a project's list and
// whether more rows remain.
func (s *Store) NextCursor(workspaceSlug, projectID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.projects[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}]
	if !ok {
		return "", false
	}
	return cached.nextCursor, cached.hasNextPage
}

// TotalCount returns the server-reported row count for a project's list.
func (s *Store) TotalCount(workspaceSlug, projectID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.projects[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}]
	if !ok {
		return 0
	}
	return cached.totalCount
}

// FetchEstimate loads a project's estimate scale and caches its points.
func (s *Store) FetchEstimate(ctx context.Context, workspaceSlug, projectID, estimateID string) (*domain.Estimate, error) {
	estimate, err := s.api.Estimate(ctx, workspaceSlug, projectID, estimateID)
	if err != nil {
		s.log.Error(ctx, "failed to fetch estimate",
			logger.Module("issue"),
			logger.Action("fetch_estimate"),
			zap.String("workspace_slug", workspaceSlug),
			zap.String("project_id", projectID),
			zap.String("estimate_id", estimateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch estimate: %w", err)
	}

	key := projectKey{workspaceSlug: workspaceSlug, projectID: projectID}

	s.mu.Lock()
	points := make(map[string]domain.EstimatePoint, len(estimate.Points))
	for _, point := range estimate.Points {
		points[point.ID] = point
	}
	s.estimates[key] = points
	s.mu.Unlock()

	return estimate, nil
}

// EstimatePoint returns one cached estimate point.
func (s *Store) EstimatePoint(workspaceSlug, projectID, pointID string) (domain.EstimatePoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.estimates[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}]
	if !ok {
		return domain.EstimatePoint{}, false
	}
	point, ok := points[pointID]
	return point, ok
}

// SetEstimatePointValue commits an inline edit: remote update first, cache
// upsert only on success.
func (s *Store) SetEstimatePointValue(ctx context.Context, workspaceSlug, projectID, pointID, value string) (*domain.EstimatePoint, error) {
	point, err := s.api.UpdateEstimatePoint(ctx, workspaceSlug, projectID, pointID, value)
	if err != nil {
		s.log.Error(ctx, "failed to update estimate point",
			logger.Module("issue"),
			logger.Action("set_estimate_point"),
			zap.String("workspace_slug", workspaceSlug),
			zap.String("project_id", projectID),
			zap.String("point_id", pointID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("set estimate point: %w", err)
	}

	key := projectKey{workspaceSlug: workspaceSlug, projectID: projectID}

	s.mu.Lock()
	points, ok := s.estimates[key]
	if !ok {
		points = make(map[string]domain.EstimatePoint)
		s.estimates[key] = points
	}
	points[point.ID] = *point
	s.mu.Unlock()

	result := *point
	return &result, nil
}

// Reset drops every cached page and estimate (sign-out).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make(map[projectKey]*projectIssues)
	s.estimates = make(map[projectKey]map[string]domain.EstimatePoint)
}
