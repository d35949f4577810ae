package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Inspect and manage your workspace membership",
}

var workspaceInfoCmd = &cobra.Command{
	Use:   "info <slug>",
	Short: "Show your membership and role in a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceInfo,
}

var workspaceRolesCmd = &cobra.Command{
	Use:   "roles <slug>",
	Short: "Show your role in every project of a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceRoles,
}

var workspaceLeaveCmd = &cobra.Command{
	Use:   "leave <slug>",
	Short: "Leave a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkspaceLeave,
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
	workspaceCmd.AddCommand(workspaceInfoCmd)
	workspaceCmd.AddCommand(workspaceRolesCmd)
	workspaceCmd.AddCommand(workspaceLeaveCmd)
}

func runWorkspaceInfo(cmd *cobra.Command, args []string) error {
	slug := args[0]
	ctx := scopedContext(commandContext(), slug, "")
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	membership, err := a.perms.FetchWorkspaceInfo(ctx, slug)
	if err != nil {
		return err
	}
	if membership == nil {
		fmt.Printf("no membership in workspace %q\n", slug)
		return nil
	}

	fmt.Printf("workspace: %s\nuser:      %s\nrole:      %s\n",
		membership.WorkspaceSlug, membership.UserID, membership.Role)
	return nil
}

func runWorkspaceRoles(cmd *cobra.Command, args []string) error {
	slug := args[0]
	ctx := scopedContext(commandContext(), slug, "")
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	roles, err := a.perms.FetchProjectRoles(ctx, slug)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		fmt.Printf("no project roles in workspace %q\n", slug)
		return nil
	}

	projectIDs := make([]string, 0, len(roles))
	for projectID := range roles {
		projectIDs = append(projectIDs, projectID)
	}
	sort.Strings(projectIDs)

	for _, projectID := range projectIDs {
		fmt.Printf("%-36s %s\n", projectID, roles[projectID])
	}
	return nil
}

func runWorkspaceLeave(cmd *cobra.Command, args []string) error {
	slug := args[0]
	ctx := scopedContext(commandContext(), slug, "")
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.perms.LeaveWorkspace(ctx, slug); err != nil {
		return err
	}

	fmt.Printf("left workspace %q\n", slug)
	return nil
}
