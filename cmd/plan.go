package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"attune/internal/cli"
	"attune/internal/config"
	"attune/internal/extensions"
	"attune/internal/offline"
	"attune/pkg/logging"
)

// planOptions holds the flag values of the plan command.
type planOptions struct {
	projectDir    string
	snapshotPath  string
	projectID     string
	projectNumber string
	aliases       []string
	emulator      bool
	output        string
	watch         bool
}

// newPlanCmd creates the Cobra command that computes the desired and
// installed extension instance lists for a project.
func newPlanCmd() *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the desired and installed extension instances",
		Long: `Plan loads the project manifest, resolves every declared extension
reference to a concrete version with fully substituted parameters (the
"want" list), lists what is currently installed (the "have" list), and
prints both so a deploy workflow can diff them.

The environment is read from a snapshot file; see the offline package
for its format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(opts.output); err != nil {
				return err
			}
			if opts.watch {
				return runPlanWatch(cmd.Context(), cmd, opts)
			}
			return runPlan(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectDir, "project-dir", ".", "Directory containing the project manifest")
	cmd.Flags().StringVar(&opts.snapshotPath, "snapshot", "", "Environment snapshot file (required)")
	cmd.Flags().StringVar(&opts.projectID, "project", "", "Target project id (defaults to the manifest's project)")
	cmd.Flags().StringVar(&opts.projectNumber, "project-number", "", "Target project number")
	cmd.Flags().StringSliceVar(&opts.aliases, "alias", nil, "Project alias (repeatable)")
	cmd.Flags().BoolVar(&opts.emulator, "emulator", false, "Plan against the emulator, enabling local param overrides")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-plan whenever the manifest changes")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

// runPlan executes one planning pass and prints the result.
func runPlan(ctx context.Context, cmd *cobra.Command, opts *planOptions) error {
	manifest, err := config.LoadManifest(opts.projectDir)
	if err != nil {
		return err
	}

	projectID := opts.projectID
	if projectID == "" {
		projectID = manifest.Project
	}
	if projectID == "" {
		return fmt.Errorf("no target project: set --project or the manifest's project field")
	}

	backend, err := offline.Load(opts.snapshotPath)
	if err != nil {
		return err
	}

	params, err := config.NewManifestParamSource(opts.projectDir, manifest)
	if err != nil {
		return err
	}
	params.ProjectNumber = opts.projectNumber

	planner := extensions.NewPlanner(backend, params)
	quiet := opts.output != string(cli.OutputFormatTable)

	var want, have []extensions.InstanceSpec
	err = cli.WithSpinner(quiet, "Planning extension instances...", func() error {
		want, err = planner.Want(ctx, extensions.WantArgs{
			ProjectID:     projectID,
			ProjectNumber: opts.projectNumber,
			Aliases:       opts.aliases,
			ProjectDir:    opts.projectDir,
			Instances:     manifest.Entries(),
			EmulatorMode:  opts.emulator,
		})
		if err != nil {
			return err
		}
		have, err = planner.Have(ctx, projectID)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := cli.OutputFormat(opts.output)
	if err := cli.WriteInstances(out, "want", want, format); err != nil {
		return err
	}
	return cli.WriteInstances(out, "have", have, format)
}

// runPlanWatch plans once, then re-plans on every manifest change until
// interrupted.
func runPlanWatch(ctx context.Context, cmd *cobra.Command, opts *planOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := runPlan(ctx, cmd, opts); err != nil {
		// In watch mode a broken manifest is not fatal; the next edit may
		// fix it.
		logging.Error("Planner", err, "Planning failed")
	}

	changes := make(chan config.ChangeEvent, 8)
	watcher := config.NewWatcher(opts.projectDir, 0)
	if err := watcher.Start(ctx, changes); err != nil {
		return err
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := runPlan(ctx, cmd, opts); err != nil {
				logging.Error("Planner", err, "Planning failed")
			}
		}
	}
}
