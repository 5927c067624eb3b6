package cmd

import (
	"github.com/spf13/cobra"

	"attune/internal/cli"
	"attune/internal/offline"
	"attune/internal/secrets"
)

// newPruneSecretsCmd creates the Cobra command that reports which secret
// versions no deployed endpoint references.
func newPruneSecretsCmd() *cobra.Command {
	var (
		snapshotPath string
		projectID    string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "prune-secrets",
		Short: "Report secret versions referenced by no deployed function",
		Long: `Prune-secrets diffs every secret version of a project against the
versions the deployed endpoints' secret environment variables resolve
to, including symbolic "latest" bindings, and prints the versions that
are safe to delete. Nothing is deleted; this is a report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}

			backend, err := offline.Load(snapshotPath)
			if err != nil {
				return err
			}
			project := projectID
			if project == "" {
				project = backend.Project()
			}

			pruner := secrets.NewPruner(backend)
			quiet := output != string(cli.OutputFormatTable)

			var prunable []secrets.SecretVersion
			err = cli.WithSpinner(quiet, "Checking secret versions...", func() error {
				prunable, err = pruner.Prune(cmd.Context(), project, backend.Endpoints())
				return err
			})
			if err != nil {
				return err
			}

			return cli.WriteSecretVersions(cmd.OutOrStdout(), prunable, cli.OutputFormat(output))
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Environment snapshot file (required)")
	cmd.Flags().StringVar(&projectID, "project", "", "Target project id (defaults to the snapshot's project)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}
