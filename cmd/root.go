package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"attune/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

var debugLogging bool

// rootCmd represents the base command for the attune application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "attune",
	Short: "Keep a project's extensions and secrets in tune with its manifest",
	Long: `attune reconciles the extension instances declared in a project's
manifest against what is actually installed, and reports which secret
versions are no longer referenced by any deployed function.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debugLogging {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is called from the main package to inject the application
// version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles
// subcommands and flags. This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "attune version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newPruneSecretsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
