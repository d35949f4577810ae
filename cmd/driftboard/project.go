package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect and manage your project membership",
}

var projectInfoCmd = &cobra.Command{
	Use:   "info <slug> <project-id>",
	Short: "Show your membership and role in a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectInfo,
}

var projectJoinCmd = &cobra.Command{
	Use:   "join <slug> <project-id>",
	Short: "Join a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectJoin,
}

var projectLeaveCmd = &cobra.Command{
	Use:   "leave <slug> <project-id>",
	Short: "Leave a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectLeave,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectInfoCmd)
	projectCmd.AddCommand(projectJoinCmd)
	projectCmd.AddCommand(projectLeaveCmd)
}

func runProjectInfo(cmd *cobra.Command, args []string) error {
	slug, projectID := args[0], args[1]
	ctx := scopedContext(commandContext(), slug, projectID)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	membership, err := a.perms.FetchProjectInfo(ctx, slug, projectID)
	if err != nil {
		return err
	}
	if membership == nil {
		fmt.Printf("no membership in project %s/%s\n", slug, projectID)
		return nil
	}

	fmt.Printf("workspace: %s\nproject:   %s\nuser:      %s\nrole:      %s\n",
		membership.WorkspaceSlug, membership.ProjectID, membership.UserID, membership.Role)
	return nil
}

func runProjectJoin(cmd *cobra.Command, args []string) error {
	slug, projectID := args[0], args[1]
	ctx := scopedContext(commandContext(), slug, projectID)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	role, err := a.perms.JoinProject(ctx, slug, projectID)
	if err != nil {
		return err
	}

	fmt.Printf("joined project %s/%s as %s\n", slug, projectID, role)
	return nil
}

func runProjectLeave(cmd *cobra.Command, args []string) error {
	slug, projectID := args[0], args[1]
	ctx := scopedContext(commandContext(), slug, projectID)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.perms.LeaveProject(ctx, slug, projectID); err != nil {
		return err
	}

	fmt.Printf("left project %s/%s\n", slug, projectID)
	return nil
}
