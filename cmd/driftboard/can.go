package main

import (
	"fmt"
	"strings"

	"driftboard-client/internal/domain"
	"driftboard-client/internal/permission"

	"github.com/spf13/cobra"
)

var (
	canWorkspace string
	canProject   string
	canLevel     string
)

var canCmd = &cobra.Command{
	Use:   "can <role>...",
	Short: "Check whether your role at a scope is in the allowed set",
	Long: `Fetches your membership for the requested scope, then evaluates the same
permission check the UI uses to gate actions. Prints "allowed" or "denied".

Scope defaults come from DRIFTBOARD_WORKSPACE / DRIFTBOARD_PROJECT.`,
	Example: `  driftboard can admin member --workspace acme
  driftboard can member --level project --workspace acme --project 7f3a`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCan,
}

func init() {
	canCmd.Flags().StringVar(&canWorkspace, "workspace", "", "workspace slug (defaults to navigation scope)")
	canCmd.Flags().StringVar(&canProject, "project", "", "project id (defaults to navigation scope)")
	canCmd.Flags().StringVar(&canLevel, "level", "workspace", `scope level: "workspace" or "project"`)
	rootCmd.AddCommand(canCmd)
}

func runCan(cmd *cobra.Command, args []string) error {
	ctx := commandContext()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	allowed := make([]domain.Role, 0, len(args))
	for _, name := range args {
		role, err := domain.RoleFromName(name)
		if err != nil {
			return err
		}
		allowed = append(allowed, role)
	}

	var level permission.Level
	switch strings.ToLower(canLevel) {
	case "workspace":
		level = permission.LevelWorkspace
	case "project":
		level = permission.LevelProject
	default:
		return fmt.Errorf("invalid level %q: want workspace or project", canLevel)
	}

	scope := a.nav.CurrentScope()
	slug := canWorkspace
	if slug == "" {
		slug = scope.WorkspaceSlug
	}
	projectID := canProject
	if projectID == "" {
		projectID = scope.ProjectID
	}
	if slug == "" {
		return fmt.Errorf("no workspace in scope: pass --workspace or set DRIFTBOARD_WORKSPACE")
	}
	ctx = scopedContext(ctx, slug, projectID)

	// The cache starts empty every invocation; fetch before checking,
	// exactly as a view fetches before rendering.
	switch level {
	case permission.LevelWorkspace:
		if _, err := a.perms.FetchWorkspaceInfo(ctx, slug); err != nil {
			return err
		}
	case permission.LevelProject:
		if projectID == "" {
			return fmt.Errorf("no project in scope: pass --project or set DRIFTBOARD_PROJECT")
		}
		if _, err := a.perms.FetchProjectInfo(ctx, slug, projectID); err != nil {
			return err
		}
	}

	if a.perms.Check(allowed, level, nil, slug, projectID) {
		fmt.Println("allowed")
	} else {
		fmt.Println("denied")
	}
	return nil
}
