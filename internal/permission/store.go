package permission

import (
	"context"
	"fmt"
	"sync"

	"driftboard-client/internal/domain"
	"driftboard-client/internal/observability/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Level selects which scope a permission check evaluates against.
type Level int

const (
	LevelWorkspace Level = iota
	LevelProject
)

// String returns the lowercase level name
func (l Level) String() string {
	switch l {
	case LevelWorkspace:
		return "workspace"
	case LevelProject:
		return "project"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// WorkspaceAPI is the slice of the workspace service the store consumes.
type WorkspaceAPI interface {
	CurrentMembership(ctx context.Context, workspaceSlug string) (*domain.WorkspaceMembership, error)
	ProjectRoles(ctx context.Context, workspaceSlug string) (map[string]domain.Role, error)
}

// ProjectMemberAPI is the slice of the project-member service the store consumes.
type ProjectMemberAPI interface {
	CurrentMembership(ctx context.Context, workspaceSlug, projectID string) (*domain.ProjectMembership, error)
}

// UserAPI is the slice of the user service the store consumes.
type UserAPI interface {
	LeaveWorkspace(ctx context.Context, workspaceSlug string) error
	LeaveProject(ctx context.Context, workspaceSlug, projectID string) error
	JoinProject(ctx context.Context, workspaceSlug, projectID string) (domain.Role, error)
}

// IsAbsence reports whether a fetch error means "no membership record",
// which the store represents as absence rather than failure.
type IsAbsence func(err error) bool

// projectKey addresses project-scoped entries: one workspace slug, one
// project ID. Keys are opaque identifier strings.
type projectKey struct {
	workspaceSlug string
	projectID     string
}

// Store is the session-scoped cache of the current user's role assignments.
//
// Three maps, all owned exclusively by the store: workspace memberships by
// slug, project memberships by (slug, project), and the denormalized
// project-role index by (slug, project). The role index is fetched in bulk
// per workspace and independently of per-project memberships, so the two
// may diverge transiently between round trips; each write path keeps its
// own slice consistent.
//
// Concurrency: one RWMutex guards all three maps. Remote calls run outside
// the lock; each operation commits its whole cache update in one critical
// section, so removal across maps is atomic from the caller's perspective.
// Concurrent fetches for the same key are NOT deduplicated: responses race
// and the last one wins. That is an accepted property, not a bug.
type Store struct {
	workspaces     WorkspaceAPI
	projectMembers ProjectMemberAPI
	users          UserAPI
	isAbsence      IsAbsence
	scope          ScopeResolver
	log            *logger.Logger
	metrics        *Metrics

	mu                   sync.RWMutex
	version              uint64
	workspaceMemberships map[string]domain.WorkspaceMembership
	projectMemberships   map[projectKey]domain.ProjectMembership
	projectRoles         map[projectKey]domain.Role

	memo *lru.Cache[memoKey, memoValue]
}

// Options carries the optional collaborators of a Store.
type Options struct {
	// Scope resolves the default workspace/project for Check when the
	// caller passes empty identifiers. Defaults to an empty scope.
	Scope ScopeResolver

	// IsAbsence classifies fetch errors that mean "no membership record".
	// Defaults to classifying nothing, i.e. every error propagates.
	IsAbsence IsAbsence

	// Metrics defaults to unregistered counters.
	Metrics *Metrics
}

// NewStore creates an empty Store. All maps start empty and are populated
// lazily by the fetch operations; the zero state answers every lookup with
// "unknown".
func NewStore(workspaces WorkspaceAPI, projectMembers ProjectMemberAPI, users UserAPI, log *logger.Logger, opts Options) *Store {
	scope := opts.Scope
	if scope == nil {
		scope = emptyScope{}
	}
	isAbsence := opts.IsAbsence
	if isAbsence == nil {
		isAbsence = func(error) bool { return false }
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Store{
		workspaces:           workspaces,
		projectMembers:       projectMembers,
		users:                users,
		isAbsence:            isAbsence,
		scope:                scope,
		log:                  log,
		metrics:              metrics,
		workspaceMemberships: make(map[string]domain.WorkspaceMembership),
		projectMemberships:   make(map[projectKey]domain.ProjectMembership),
		projectRoles:         make(map[projectKey]domain.Role),
		memo:                 newMemo(),
	}
}

// =====================================================
// Fetch / mutation operations
// =====================================================

// FetchWorkspaceInfo retrieves and caches the caller's membership in a
// workspace. A missing membership is recorded as absence and returns
// (nil, nil); any other failure leaves the cache untouched and propagates.
// Not re-entrant-safe against itself for the same key by design: concurrent
// calls race and the last response wins.
func (s *Store) FetchWorkspaceInfo(ctx context.Context, workspaceSlug string) (*domain.WorkspaceMembership, error) {
	membership, err := s.workspaces.CurrentMembership(ctx, workspaceSlug)
	if err != nil {
		if s.isAbsence(err) {
			s.metrics.fetch("fetch_workspace_info", outcomeAbsent)
			s.mu.Lock()
			delete(s.workspaceMemberships, workspaceSlug)
			s.bumpLocked()
			s.mu.Unlock()
			return nil, nil
		}

		s.metrics.fetch("fetch_workspace_info", outcomeError)
		s.log.Error(ctx, "failed to fetch workspace membership",
			logger.Module("permission"),
			logger.Action("fetch_workspace_info"),
			zap.String("workspace_slug", workspaceSlug),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch workspace info: %w", err)
	}

	s.metrics.fetch("fetch_workspace_info", outcomeSuccess)

	s.mu.Lock()
	s.workspaceMemberships[workspaceSlug] = *membership
	s.bumpLocked()
	s.mu.Unlock()

	result := *membership
	return &result, nil
}

// LeaveWorkspace relinquishes membership remotely, then removes the
// workspace's entries from all three maps in one critical section. On
// remote failure the cache is left untouched and the error propagates.
func (s *Store) LeaveWorkspace(ctx context.Context, workspaceSlug string) error {
	if err := s.users.LeaveWorkspace(ctx, workspaceSlug); err != nil {
		s.metrics.fetch("leave_workspace", outcomeError)
		s.log.Error(ctx, "failed to leave workspace",
			logger.Module("permission"),
			logger.Action("leave_workspace"),
			zap.String("workspace_slug", workspaceSlug),
			zap.Error(err),
		)
		return fmt.Errorf("leave workspace: %w", err)
	}

	s.metrics.fetch("leave_workspace", outcomeSuccess)

	s.mu.Lock()
	delete(s.workspaceMemberships, workspaceSlug)
	for key := range s.projectMemberships {
		if key.workspaceSlug == workspaceSlug {
			delete(s.projectMemberships, key)
		}
	}
	for key := range s.projectRoles {
		if key.workspaceSlug == workspaceSlug {
			delete(s.projectRoles, key)
		}
	}
	s.bumpLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "left workspace",
		logger.Module("permission"),
		logger.Action("leave_workspace"),
		zap.String("workspace_slug", workspaceSlug),
	)
	return nil
}

// FetchProjectInfo retrieves and caches the caller's membership in one
// project, keeping the denormalized role index in sync for this write path.
func (s *Store) FetchProjectInfo(ctx context.Context, workspaceSlug, projectID string) (*domain.ProjectMembership, error) {
	membership, err := s.projectMembers.CurrentMembership(ctx, workspaceSlug, projectID)
	if err != nil {
		key := projectKey{workspaceSlug: workspaceSlug, projectID: projectID}

		if s.isAbsence(err) {
			s.metrics.fetch("fetch_project_info", outcomeAbsent)
			s.mu.Lock()
			delete(s.projectMemberships, key)
			delete(s.projectRoles, key)
			s.bumpLocked()
			s.mu.Unlock()
			return nil, nil
		}

		s.metrics.fetch("fetch_project_info", outcomeError)
		s.log.Error(ctx, "failed to fetch project membership",
			logger.Module("permission"),
			logger.Action("fetch_project_info"),
			zap.String("workspace_slug", workspaceSlug),
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch project info: %w", err)
	}

	s.metrics.fetch("fetch_project_info", outcomeSuccess)

	key := projectKey{workspaceSlug: workspaceSlug, projectID: projectID}

	s.mu.Lock()
	s.projectMemberships[key] = *membership
	s.projectRoles[key] = membership.Role
	s.bumpLocked()
	s.mu.Unlock()

	result := *membership
	return &result, nil
}

// FetchProjectRoles retrieves the caller's role in every project of the
// workspace and REPLACES the workspace's whole role-index slice: projects
// absent from the response disappear, previously unseen ones appear fresh.
func (s *Store) FetchProjectRoles(ctx context.Context, workspaceSlug string) (map[string]domain.Role, error) {
	roles, err := s.workspaces.ProjectRoles(ctx, workspaceSlug)
	if err != nil {
		s.metrics.fetch("fetch_project_roles", outcomeError)
		s.log.Error(ctx, "failed to fetch project roles",
			logger.Module("permission"),
			logger.Action("fetch_project_roles"),
			zap.String("workspace_slug", workspaceSlug),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch project roles: %w", err)
	}

	s.metrics.fetch("fetch_project_roles", outcomeSuccess)

	s.mu.Lock()
	for key := range s.projectRoles {
		if key.workspaceSlug == workspaceSlug {
			delete(s.projectRoles, key)
		}
	}
	for projectID, role := range roles {
		s.projectRoles[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}] = role
	}
	s.bumpLocked()
	s.mu.Unlock()

	return roles, nil
}

// JoinProject adds the caller to a project and records the assigned role
// in the role index.
func (s *Store) JoinProject(ctx context.Context, workspaceSlug, projectID string) (domain.Role, error) {
	role, err := s.users.JoinProject(ctx, workspaceSlug, projectID)
	if err != nil {
		s.metrics.fetch("join_project", outcomeError)
		s.log.Error(ctx, "failed to join project",
			logger.Module("permission"),
			logger.Action("join_project"),
			zap.String("workspace_slug", workspaceSlug),
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("join project: %w", err)
	}

	s.metrics.fetch("join_project", outcomeSuccess)

	s.mu.Lock()
	s.projectRoles[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}] = role
	s.bumpLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "joined project",
		logger.Module("permission"),
		logger.Action("join_project"),
		zap.String("workspace_slug", workspaceSlug),
		zap.String("project_id", projectID),
		zap.String("role", role.String()),
	)
	return role, nil
}

// LeaveProject relinquishes membership remotely, then removes BOTH the
// role-index entry and the project membership. Clearing only the role index
// would leave a stale membership record answering lookups for a project the
// user already left.
func (s *Store) LeaveProject(ctx context.Context, workspaceSlug, projectID string) error {
	if err := s.users.LeaveProject(ctx, workspaceSlug, projectID); err != nil {
		s.metrics.fetch("leave_project", outcomeError)
		s.log.Error(ctx, "failed to leave project",
			logger.Module("permission"),
			logger.Action("leave_project"),
			zap.String("workspace_slug", workspaceSlug),
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return fmt.Errorf("leave project: %w", err)
	}

	s.metrics.fetch("leave_project", outcomeSuccess)

	key := projectKey{workspaceSlug: workspaceSlug, projectID: projectID}

	s.mu.Lock()
	delete(s.projectRoles, key)
	delete(s.projectMemberships, key)
	s.bumpLocked()
	s.mu.Unlock()

	return nil
}

// Reset clears all three maps and invalidates every memoized lookup.
// Invoked on sign-out so no role assignment leaks across sessions.
func (s *Store) Reset() {
	s.mu.Lock()
	s.workspaceMemberships = make(map[string]domain.WorkspaceMembership)
	s.projectMemberships = make(map[projectKey]domain.ProjectMembership)
	s.projectRoles = make(map[projectKey]domain.Role)
	s.bumpLocked()
	s.mu.Unlock()

	s.memo.Purge()
}

// bumpLocked advances the cache version. Callers must hold the write lock.
func (s *Store) bumpLocked() {
	s.version++
}

func (s *Store) currentVersion() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// =====================================================
// Pure lookups (memoized, no side effects)
// =====================================================

// WorkspaceInfo returns the cached workspace membership, or nil when the
// workspace has not been fetched ("unknown", distinct from "no permission").
// Memoized per (version, slug); safe to call on every evaluation.
func (s *Store) WorkspaceInfo(workspaceSlug string) *domain.WorkspaceMembership {
	key := memoKey{
		version:       s.currentVersion(),
		kind:          kindWorkspaceInfo,
		workspaceSlug: workspaceSlug,
	}

	if value, ok := s.memo.Get(key); ok {
		s.metrics.LookupHits.WithLabelValues(lookupWorkspaceInfo).Inc()
		return value.membershipCopy()
	}
	s.metrics.LookupMisses.WithLabelValues(lookupWorkspaceInfo).Inc()

	s.mu.RLock()
	membership, known := s.workspaceMemberships[workspaceSlug]
	s.mu.RUnlock()

	value := memoValue{known: known}
	if known {
		copied := membership
		value.membership = &copied
		value.role = membership.Role
	}
	s.memo.Add(key, value)

	return value.membershipCopy()
}

// ProjectMembershipInfo returns the cached project membership record, or
// nil when unknown. Reads the membership map, not the role index.
func (s *Store) ProjectMembershipInfo(workspaceSlug, projectID string) *domain.ProjectMembership {
	s.mu.RLock()
	membership, known := s.projectMemberships[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}]
	s.mu.RUnlock()

	if !known {
		return nil
	}
	copied := membership
	return &copied
}

// ProjectRole returns the caller's role in a project from the role index.
// known=false means the pair has not been fetched; callers must not read
// it as "no permission". Memoized per (version, slug, project).
func (s *Store) ProjectRole(workspaceSlug, projectID string) (domain.Role, bool) {
	key := memoKey{
		version:       s.currentVersion(),
		kind:          kindProjectRole,
		workspaceSlug: workspaceSlug,
		projectID:     projectID,
	}

	if value, ok := s.memo.Get(key); ok {
		s.metrics.LookupHits.WithLabelValues(lookupProjectRole).Inc()
		return value.role, value.known
	}
	s.metrics.LookupMisses.WithLabelValues(lookupProjectRole).Inc()

	s.mu.RLock()
	role, known := s.projectRoles[projectKey{workspaceSlug: workspaceSlug, projectID: projectID}]
	s.mu.RUnlock()

	s.memo.Add(key, memoValue{role: role, known: known})

	return role, known
}

// =====================================================
// Permission check
// =====================================================

// Check decides whether the current user's role at the requested level
// satisfies the allowed set. Empty workspaceSlug/projectID resolve from the
// navigation scope. Unknown roles fail closed: no role record means false,
// never an error. When the role qualifies and onAllowed is supplied, the
// result is onAllowed()'s verdict, not an unconditional true.
//
// Check has no side effects and is safe to call on every evaluation; the
// underlying lookups are memoized per distinct input tuple.
func (s *Store) Check(allowed []domain.Role, level Level, onAllowed func() bool, workspaceSlug, projectID string) bool {
	scope := s.scope.CurrentScope()
	if workspaceSlug == "" {
		workspaceSlug = scope.WorkspaceSlug
	}
	if projectID == "" {
		projectID = scope.ProjectID
	}

	if workspaceSlug == "" {
		return false
	}

	var (
		role  domain.Role
		known bool
	)
	switch level {
	case LevelWorkspace:
		if membership := s.WorkspaceInfo(workspaceSlug); membership != nil {
			role, known = membership.Role, true
		}
	case LevelProject:
		if projectID == "" {
			return false
		}
		role, known = s.ProjectRole(workspaceSlug, projectID)
	default:
		return false
	}

	if !known {
		return false
	}

	qualifies := false
	for _, candidate := range allowed {
		if role == candidate {
			qualifies = true
			break
		}
	}
	if !qualifies {
		return false
	}

	if onAllowed != nil {
		return onAllowed()
	}
	return true
}
