package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/flugzeug/internal/config"
	"github.com/simonhull/firebird-suite/flugzeug/internal/logging"
	"github.com/simonhull/firebird-suite/flugzeug/internal/output"
	"github.com/simonhull/firebird-suite/flugzeug/internal/version"
)

// RootCmd creates and returns the root command for the Flugzeug CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "flugzeug",
		Short: "Generator for Flugzeug TypeScript applications",
		Long: `Flugzeug scaffolds TypeScript web applications.

It asks a few questions and then:
• Copies the application skeleton into the target directory
• Renders package.json, README, server and config modules
• Writes .env files with a freshly generated JWT secret
• Installs dependencies with npm`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetWriter(cmd.OutOrStdout())
			output.SetVerbose(verbose)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return logging.Setup(logging.Options{
				Level:   cfg.Log.Level,
				Verbose: verbose,
				Out:     cmd.ErrOrStderr(),
				File:    cfg.Log.File,
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	flags.String("config", "", "Config file (default "+config.DefaultPath()+")")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	flags.String("log-file", "", "Also append logs to this file")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}
