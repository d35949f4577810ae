package main

import (
	"fmt"

	"driftboard-client/internal/permission"
	"driftboard-client/internal/view"

	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Inspect and edit a project's estimate scale",
}

var estimateShowCmd = &cobra.Command{
	Use:   "show <slug> <project-id> <estimate-id>",
	Short: "Show an estimate scale and its points",
	Args:  cobra.ExactArgs(3),
	RunE:  runEstimateShow,
}

var estimateSetCmd = &cobra.Command{
	Use:   "set <slug> <project-id> <point-id> <value>",
	Short: "Change the display value of one estimate point",
	Args:  cobra.ExactArgs(4),
	RunE:  runEstimateSet,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.AddCommand(estimateShowCmd)
	estimateCmd.AddCommand(estimateSetCmd)
}

func runEstimateShow(cmd *cobra.Command, args []string) error {
	slug, projectID, estimateID := args[0], args[1], args[2]
	ctx := scopedContext(commandContext(), slug, projectID)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	estimate, err := a.issues.FetchEstimate(ctx, slug, projectID, estimateID)
	if err != nil {
		return err
	}

	fmt.Print(view.NewEstimateList().Render(estimate))
	return nil
}

func runEstimateSet(cmd *cobra.Command, args []string) error {
	slug, projectID, pointID, value := args[0], args[1], args[2], args[3]
	ctx := scopedContext(commandContext(), slug, projectID)
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	// Same gate the inline editor uses: fetch membership, then check.
	if _, err := a.perms.FetchProjectInfo(ctx, slug, projectID); err != nil {
		return err
	}
	if !a.perms.Check(editorRoles, permission.LevelProject, nil, slug, projectID) {
		return fmt.Errorf("your role in project %s/%s cannot edit estimates", slug, projectID)
	}

	point, err := a.issues.SetEstimatePointValue(ctx, slug, projectID, pointID, value)
	if err != nil {
		return err
	}

	fmt.Printf("estimate point %s is now %q\n", point.ID, point.Value)
	return nil
}
