package main

import (
	"fmt"

	"driftboard-client/internal/domain"
	"driftboard-client/internal/permission"
	"driftboard-client/internal/view"

	"github.com/spf13/cobra"
)

var (
	issuesPerPage    int
	issuesAll        bool
	issuesEstimateID string
)

var issuesCmd = &cobra.Command{
	Use:   "issues <slug> <project-id>",
	Short: "Show a project's issues in the spreadsheet layout",
	Long: `Fetches the project's issues page by page and renders the spreadsheet
layout. The editable/read-only affordance reflects your project role, the
same check the web client runs before enabling inline editors.`,
	Args: cobra.ExactArgs(2),
	RunE: runIssues,
}

func init() {
	issuesCmd.Flags().IntVar(&issuesPerPage, "per-page", 0, "rows per page (default 50)")
	issuesCmd.Flags().BoolVar(&issuesAll, "all", false, "follow cursors until the whole list is loaded")
	issuesCmd.Flags().StringVar(&issuesEstimateID, "estimate", "", "estimate scale id used to resolve estimate columns")
	rootCmd.AddCommand(issuesCmd)
}

// editorRoles gate mutating affordances: guests browse, members and admins
// edit.
var editorRoles = []domain.Role{domain.RoleAdmin, domain.RoleMember}

func runIssues(cmd *cobra.Command, args []string) error {
	slug, projectID := args[0], args[1]
	ctx := scopedContext(commandContext(), slug, projectID)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.nav.SetScope(permission.Scope{WorkspaceSlug: slug, ProjectID: projectID})

	// Fetch membership before rendering; absence renders read-only.
	if _, err := a.perms.FetchProjectInfo(ctx, slug, projectID); err != nil {
		return err
	}
	editable := a.perms.Check(editorRoles, permission.LevelProject, nil, slug, projectID)

	if _, err := a.issues.FetchIssues(ctx, slug, projectID, "", issuesPerPage); err != nil {
		return err
	}
	for issuesAll {
		cursor, hasNext := a.issues.NextCursor(slug, projectID)
		if !hasNext {
			break
		}
		if _, err := a.issues.FetchIssues(ctx, slug, projectID, cursor, issuesPerPage); err != nil {
			return err
		}
	}

	points := map[string]string{}
	if issuesEstimateID != "" {
		estimate, err := a.issues.FetchEstimate(ctx, slug, projectID, issuesEstimateID)
		if err != nil {
			return err
		}
		for _, point := range estimate.Points {
			points[point.ID] = point.Value
		}
	}

	rows := a.issues.Issues(slug, projectID)
	fmt.Println(view.NewSpreadsheet(editable).Render(rows, points))
	fmt.Printf("%d of %d issues loaded\n", len(rows), a.issues.TotalCount(slug, projectID))
	return nil
}
