package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"driftboard-client/internal/api"
	"driftboard-client/internal/domain"
	"driftboard-client/internal/observability/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "token-abc"

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	log, err := logger.New("api-test", "error")
	require.NoError(t, err)

	return api.NewClient(ts.URL, testToken, 5*time.Second, log)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestWorkspaceService_CurrentMembership(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/workspaces/{slug}/members/me/", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer "+testToken, req.Header.Get("Authorization"))
		assert.Equal(t, "ws1", chi.URLParam(req, "slug"))
		writeJSON(w, http.StatusOK,
			`{"id":"m1","user_id":"u1","workspace_slug":"ws1","role":20}`)
	})

	svc := api.NewWorkspaceService(newTestClient(t, r))

	membership, err := svc.CurrentMembership(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Equal(t, "ws1", membership.WorkspaceSlug)
	assert.Equal(t, domain.RoleAdmin, membership.Role)
}

func TestWorkspaceService_CurrentMembership_NotMember(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/workspaces/{slug}/members/me/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound,
			`{"ok":false,"error":{"code":"NOT_FOUND","message":"no membership"}}`)
	})

	svc := api.NewWorkspaceService(newTestClient(t, r))

	_, err := svc.CurrentMembership(context.Background(), "ws1")
	assert.ErrorIs(t, err, api.ErrNotMember)
}

func TestWorkspaceService_CurrentMembership_UnknownRole(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/workspaces/{slug}/members/me/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK,
			`{"id":"m1","user_id":"u1","workspace_slug":"ws1","role":42}`)
	})

	svc := api.NewWorkspaceService(newTestClient(t, r))

	_, err := svc.CurrentMembership(context.Background(), "ws1")
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestWorkspaceService_CurrentMembership_MissingFields(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/workspaces/{slug}/members/me/", func(w http.ResponseWriter, req *http.Request) {
		// No id/user_id: must fail boundary validation, not pass through
		writeJSON(w, http.StatusOK, `{"workspace_slug":"ws1","role":15}`)
	})

	svc := api.NewWorkspaceService(newTestClient(t, r))

	_, err := svc.CurrentMembership(context.Background(), "ws1")
	assert.Error(t, err)
}

func TestWorkspaceService_ProjectRoles(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/users/me/workspaces/{slug}/project-roles/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"p1":15,"p2":20}`)
	})

	svc := api.NewWorkspaceService(newTestClient(t, r))

	roles, err := svc.ProjectRoles(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Role{
		"p1": domain.RoleMember,
		"p2": domain.RoleAdmin,
	}, roles)
}

func TestProjectMemberService_CurrentMembership(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/workspaces/{slug}/projects/{projectID}/members/me/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK,
			`{"id":"pm1","user_id":"u1","workspace_slug":"ws1","project_id":"p1","role":15}`)
	})

	svc := api.NewProjectMemberService(newTestClient(t, r))

	membership, err := svc.CurrentMembership(context.Background(), "ws1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", membership.ProjectID)
	assert.Equal(t, domain.RoleMember, membership.Role)
}

func TestUserService_JoinProject(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/users/me/workspaces/{slug}/projects/join/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"role":15}`)
	})

	svc := api.NewUserService(newTestClient(t, r))

	role, err := svc.JoinProject(context.Background(), "ws1", "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, role)
}

func TestUserService_LeaveWorkspace_Forbidden(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/users/me/workspaces/{slug}/leave/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusForbidden,
			`{"ok":false,"error":{"code":"FORBIDDEN","message":"sole admin cannot leave"}}`)
	})

	svc := api.NewUserService(newTestClient(t, r))

	err := svc.LeaveWorkspace(context.Background(), "ws1")
	require.Error(t, err)
	assert.True(t, api.IsAuthFailure(err))
	assert.Contains(t, err.Error(), "sole admin cannot leave")
}

func TestUserService_LeaveProject(t *testing.T) {
	called := false
	r := chi.NewRouter()
	r.Post("/api/users/me/workspaces/{slug}/projects/{projectID}/leave/", func(w http.ResponseWriter, req *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	svc := api.NewUserService(newTestClient(t, r))

	require.NoError(t, svc.LeaveProject(context.Background(), "ws1", "p1"))
	assert.True(t, called)
}

func TestIssueService_List(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/workspaces/{slug}/projects/{projectID}/issues/", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "25", req.URL.Query().Get("per_page"))
		assert.Equal(t, "50:1:0", req.URL.Query().Get("cursor"))
		writeJSON(w, http.StatusOK, `{
			"results":[
				{"id":"i1","sequence_id":101,"name":"First issue","state":"backlog","priority":"high"},
				{"id":"i2","sequence_id":102,"name":"Second issue","state":"started","priority":"none"}
			],
			"total_count":120,
			"next_cursor":"25:2:0",
			"prev_cursor":"25:0:1",
			"next_page_results":true,
			"prev_page_results":true
		}`)
	})

	svc := api.NewIssueService(newTestClient(t, r))

	page, err := svc.List(context.Background(), "ws1", "p1", "50:1:0", 25)
	require.NoError(t, err)
	require.Len(t, page.Issues, 2)
	assert.Equal(t, "First issue", page.Issues[0].Name)
	assert.Equal(t, 120, page.TotalCount)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, "25:2:0", page.NextCursor)
}

func TestIssueService_UpdateEstimatePoint(t *testing.T) {
	r := chi.NewRouter()
	r.Patch("/api/workspaces/{slug}/projects/{projectID}/estimate-points/{pointID}/", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK,
			`{"id":"ep1","estimate":"e1","project_id":"p1","key":2,"value":"8"}`)
	})

	svc := api.NewIssueService(newTestClient(t, r))

	point, err := svc.UpdateEstimatePoint(context.Background(), "ws1", "p1", "ep1", "8")
	require.NoError(t, err)
	assert.Equal(t, "8", point.Value)
	assert.Equal(t, 2, point.Key)
}
