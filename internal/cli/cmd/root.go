// Package cmd provides Cobra CLI commands for tabgroups.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tabgroups/internal/cli"
	"github.com/bnema/tabgroups/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info

	stripFlag   string
	configFlag  string
	verboseFlag bool

	rootCmd = &cobra.Command{
		Use:   "tabgroups",
		Short: "Manage tab strips and the groups inside them",
		Long: `tabgroups keeps tab strips and their tab groups in a local SQLite store.

A strip is an ordered list of tabs. Adjacent tabs can be merged into groups,
moved as a block, titled and coloured. Group identity survives restarts in
either the legacy root-id scheme or the stable token scheme.

Use 'tabgroups browse' for the interactive strip browser, or the tabs and
groups subcommands for scripting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigFile: configFlag,
				Verbose:    verboseFlag,
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&stripFlag, "strip", "s", "", "strip to operate on (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/tabgroups/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging to stderr")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("tabgroups %s (commit %s, built %s, %s)\n",
			buildInfo.Version, buildInfo.Commit, buildInfo.BuildDate, buildInfo.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
