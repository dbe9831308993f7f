package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/flugzeug/internal/output"
	"github.com/simonhull/firebird-suite/flugzeug/internal/project"
	"github.com/simonhull/firebird-suite/flugzeug/internal/settings"
)

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [directory]",
		Short: "Create a new Flugzeug project",
		Long: `Creates a new Flugzeug project in the given directory (default: current directory).

You are asked for the project name, author, database name and whether to
include websockets. The author is remembered for the next run.

With --templates, files ending in .template are rendered with Go's
text/template and may use these helpers besides the answers:
  kebabCase pascalCase camelCase snakeCase title
  quote json envValue upper lower trim replace dict default

Example:
  flugzeug new my-app
  flugzeug new --skip-install
  flugzeug new my-app --templates ./my-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var templates fs.FS
			if cfg.Templates != "" {
				templates, err = templateDir(cfg.Templates)
				if err != nil {
					return err
				}
				output.Verbose(fmt.Sprintf("Using templates from %s", cfg.Templates))
			}

			store := settings.NewFileStore(cfg.SettingsFile)
			output.Verbose(fmt.Sprintf("Remembered answers: %s", store.Path()))

			scaffolder := project.NewScaffolder(project.Options{
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
				Store:       store,
				Templates:   templates,
				SkipInstall: cfg.SkipInstall,
				Force:       cfg.Force,
				DryRun:      cfg.DryRun,
			})
			if err := scaffolder.Scaffold(cmd.Context(), dir); err != nil {
				return err
			}

			if cfg.DryRun {
				output.Info("Dry run complete, nothing was written")
				return nil
			}

			output.Success(fmt.Sprintf("Created Flugzeug project in %s", dir))
			output.Info("Next steps:")
			if dir != "." {
				output.Step(fmt.Sprintf("cd %s", dir))
			}
			if cfg.SkipInstall {
				output.Step("npm install")
			}
			output.Step("npm run dev")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Bool("skip-install", false, "Do not run npm install")
	flags.Bool("force", false, "Overwrite existing files")
	flags.Bool("dry-run", false, "Show what would be written without writing")
	flags.String("templates", "", "Directory to read templates from instead of the built-in set")
	flags.String("settings-file", "", "File for remembered answers (default "+settings.DefaultPath()+")")

	return cmd
}

// templateDir opens a template root on disk read-only.
func templateDir(dir string) (fs.FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	osFs := afero.NewOsFs()
	ok, err := afero.DirExists(osFs, abs)
	if err != nil {
		return nil, fmt.Errorf("cannot read templates %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("templates directory %s does not exist", dir)
	}
	return afero.NewIOFS(afero.NewReadOnlyFs(afero.NewBasePathFs(osFs, abs))), nil
}
