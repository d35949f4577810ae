package permission_test

import (
	"context"
	"errors"
	"testing"

	"driftboard-client/internal/domain"
	"driftboard-client/internal/observability/logger"
	"driftboard-client/internal/permission"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_TrackLookupsAndFetches(t *testing.T) {
	log, err := logger.New("permission-test", "error")
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	metrics := permission.NewMetrics(registry)

	workspaces := &fakeWorkspaceAPI{
		currentMembership: func(ctx context.Context, slug string) (*domain.WorkspaceMembership, error) {
			return workspaceMembership(slug, domain.RoleAdmin), nil
		},
		projectRoles: func(ctx context.Context, slug string) (map[string]domain.Role, error) {
			return nil, errors.New("boom")
		},
	}
	projectMembers := &fakeProjectMemberAPI{
		currentMembership: func(ctx context.Context, slug, projectID string) (*domain.ProjectMembership, error) {
			return nil, errNoRecord
		},
	}
	users := &fakeUserAPI{
		leaveWorkspace: func(ctx context.Context, slug string) error { return nil },
		leaveProject:   func(ctx context.Context, slug, projectID string) error { return nil },
		joinProject: func(ctx context.Context, slug, projectID string) (domain.Role, error) {
			return domain.RoleMember, nil
		},
	}

	store := permission.NewStore(workspaces, projectMembers, users, log, permission.Options{
		Metrics: metrics,
	})

	ctx := context.Background()
	_, err = store.FetchWorkspaceInfo(ctx, "ws1")
	require.NoError(t, err)

	store.WorkspaceInfo("ws1") // miss
	store.WorkspaceInfo("ws1") // hit

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LookupMisses.WithLabelValues("workspace_info")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LookupHits.WithLabelValues("workspace_info")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fetches.WithLabelValues("fetch_workspace_info", "success")))

	_, err = store.FetchProjectRoles(ctx, "ws1")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Fetches.WithLabelValues("fetch_project_roles", "error")))
}
