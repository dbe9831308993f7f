// Package project generates a new Flugzeug application: it asks the
// questions, writes the template tree and installs dependencies.
package project

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/firebird-suite/flugzeug/internal/generator"
	"github.com/simonhull/firebird-suite/flugzeug/internal/install"
	"github.com/simonhull/firebird-suite/flugzeug/internal/logging"
	"github.com/simonhull/firebird-suite/flugzeug/internal/materialize"
	"github.com/simonhull/firebird-suite/flugzeug/internal/output"
	"github.com/simonhull/firebird-suite/flugzeug/internal/prompt"
	"github.com/simonhull/firebird-suite/flugzeug/internal/secret"
	"github.com/simonhull/firebird-suite/flugzeug/internal/settings"
)

// Installer installs the generated project's dependencies.
type Installer interface {
	Install(ctx context.Context, opts install.Options) error
}

// Options configures a Scaffolder. Zero values select the real terminal,
// filesystem, randomness and package managers.
type Options struct {
	In  io.Reader // answers, defaults to os.Stdin
	Out io.Writer // prompts and progress, defaults to output.Writer()

	Store     settings.Store // remembered answers, may be nil
	Templates fs.FS          // template root, defaults to the embedded tree

	// DestFs returns the filesystem rooted at the project directory.
	DestFs func(dir string) afero.Fs
	// Secret generates the JWT secret.
	Secret func() (string, error)
	// NewInstaller returns the installer for the project directory.
	NewInstaller func(dir string) Installer

	SkipInstall bool
	Force       bool
	DryRun      bool
}

// Scaffolder creates new Flugzeug projects
type Scaffolder struct {
	opts Options
	log  zerolog.Logger
}

// NewScaffolder creates a new project scaffolder
func NewScaffolder(opts Options) *Scaffolder {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = output.Writer()
	}
	if opts.Templates == nil {
		opts.Templates = materialize.Embedded()
	}
	if opts.DestFs == nil {
		opts.DestFs = func(dir string) afero.Fs {
			return afero.NewBasePathFs(afero.NewOsFs(), dir)
		}
	}
	if opts.Secret == nil {
		opts.Secret = secret.Generate
	}
	if opts.NewInstaller == nil {
		opts.NewInstaller = func(dir string) Installer {
			return install.New(dir, nil)
		}
	}
	return &Scaffolder{opts: opts, log: logging.For("project")}
}

// Scaffold asks for the project settings and generates the project in dir.
//
// The secret is generated while the files that do not need it are written.
// Both finish before the secret files are rendered, and dependencies are
// installed last. A secret failure is returned as *SecretError.
func (s *Scaffolder) Scaffold(ctx context.Context, dir string) error {
	output.Banner()

	collector := prompt.NewCollector(s.opts.In, s.opts.Out, s.opts.Store)
	result, err := collector.Collect(ctx, QuestionsFor(dir))
	if err != nil {
		return fmt.Errorf("collecting answers: %w", err)
	}
	answers := AnswersFrom(result)
	s.log.Info().
		Str("name", answers.Name).
		Str("dbname", answers.DBName).
		Bool("websockets", answers.Websockets).
		Str("dir", dir).
		Msg("Generating project")

	m := materialize.New(s.opts.Templates, s.opts.DestFs(dir))
	if err := m.Preflight(answers, s.opts.Force); err != nil {
		return fmt.Errorf("cannot generate into %s: %w", dir, err)
	}

	execOpts := generator.ExecuteOptions{
		DryRun: s.opts.DryRun,
		Force:  s.opts.Force,
		Writer: s.opts.Out,
	}

	jwtSecret, err := s.writeWhileGenerating(ctx, m, answers, execOpts)
	if err != nil {
		return err
	}

	secretOps, err := m.SecretOperations(answers, jwtSecret)
	if err != nil {
		return fmt.Errorf("rendering secret files: %w", err)
	}
	if err := generator.Execute(ctx, secretOps, execOpts); err != nil {
		return fmt.Errorf("writing secret files: %w", err)
	}

	if s.opts.SkipInstall || s.opts.DryRun {
		s.log.Debug().Bool("skip_install", s.opts.SkipInstall).Bool("dry_run", s.opts.DryRun).Msg("Skipping dependency install")
		return nil
	}

	if err := s.opts.NewInstaller(dir).Install(ctx, install.Options{NPM: true}); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}
	return nil
}

// writeWhileGenerating generates the secret concurrently with writing the
// static and secret-independent files and waits for both.
func (s *Scaffolder) writeWhileGenerating(ctx context.Context, m *materialize.Materializer, answers Answers, execOpts generator.ExecuteOptions) (string, error) {
	var (
		g         errgroup.Group
		jwtSecret string
		secretErr error
	)

	g.Go(func() error {
		jwtSecret, secretErr = s.opts.Secret()
		if secretErr != nil {
			secretErr = &SecretError{Err: secretErr}
		}
		return secretErr
	})

	g.Go(func() error {
		static, err := m.StaticOperations()
		if err != nil {
			return err
		}
		rendered, err := m.RenderOperations(answers)
		if err != nil {
			return err
		}
		if err := generator.Execute(ctx, append(static, rendered...), execOpts); err != nil {
			return fmt.Errorf("writing project files: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if secretErr != nil {
		s.log.Error().Err(secretErr).Msg("Error generating JWT secret")
		return "", secretErr
	}
	if err != nil {
		return "", err
	}
	return jwtSecret, nil
}
