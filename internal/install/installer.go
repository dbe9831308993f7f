package install

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simonhull/firebird-suite/flugzeug/internal/logging"
)

// Options selects the package managers to run.
type Options struct {
	NPM   bool
	Yarn  bool
	Bower bool
}

// Managers returns the selected manager names in run order.
func (o Options) Managers() []string {
	var names []string
	if o.NPM {
		names = append(names, NPM.Tool)
	}
	if o.Yarn {
		names = append(names, Yarn.Tool)
	}
	if o.Bower {
		names = append(names, Bower.Tool)
	}
	return names
}

// Installer runs package managers in a project directory.
type Installer struct {
	executor *Executor
	registry *Registry
	log      zerolog.Logger
}

// New creates an installer for dir using the default registry.
// opts may be nil; its Dir is replaced by dir.
func New(dir string, opts *ExecOptions) *Installer {
	o := ExecOptions{}
	if opts != nil {
		o = *opts
	}
	o.Dir = dir
	return NewWith(NewExecutor(&o), DefaultRegistry())
}

// NewWith creates an installer from an executor and registry.
func NewWith(executor *Executor, registry *Registry) *Installer {
	return &Installer{
		executor: executor,
		registry: registry,
		log:      logging.For("install"),
	}
}

// Install runs every selected manager in order and stops at the first failure.
func (i *Installer) Install(ctx context.Context, opts Options) error {
	names := opts.Managers()
	if len(names) == 0 {
		i.log.Debug().Msg("No package managers selected")
		return nil
	}

	for _, name := range names {
		i.log.Info().Str("manager", name).Str("dir", i.executor.Dir()).Msg("Installing dependencies")
		if err := i.registry.Execute(ctx, name, i.executor); err != nil {
			i.log.Error().Err(err).Str("manager", name).Msg("Install failed")
			return fmt.Errorf("%s install: %w", name, err)
		}
	}
	return nil
}
