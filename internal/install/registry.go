package install

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Manager installs a project's dependencies with one package manager.
type Manager interface {
	// Name returns the manager name for registry lookup
	Name() string
	// Description returns what Execute does, shown next to the spinner
	Description() string
	// Execute runs the install with the given context and executor
	Execute(ctx context.Context, exec *Executor) error
}

// Command is a Manager that runs a fixed command line.
type Command struct {
	Tool string
	Args []string
	Desc string
}

func (c Command) Name() string { return c.Tool }

func (c Command) Description() string {
	if c.Desc != "" {
		return c.Desc
	}
	return "Running " + c.String()
}

func (c Command) Execute(ctx context.Context, exec *Executor) error {
	return exec.RunStep(ctx, c.Description(), c.Tool, c.Args...)
}

// String returns the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Tool}, c.Args...), " ")
}

// Built-in managers.
var (
	NPM   = Command{Tool: "npm", Args: []string{"install"}, Desc: "Installing dependencies with npm"}
	Yarn  = Command{Tool: "yarn", Args: []string{"install"}, Desc: "Installing dependencies with yarn"}
	Bower = Command{Tool: "bower", Args: []string{"install"}, Desc: "Installing dependencies with bower"}
)

// Registry maps manager names to managers.
type Registry struct {
	mu       sync.RWMutex
	managers map[string]Manager
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{managers: make(map[string]Manager)}
}

// DefaultRegistry returns a registry holding npm, yarn and bower.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, m := range []Manager{NPM, Yarn, Bower} {
		_ = r.Register(m)
	}
	return r
}

// Register adds a manager to the registry
func (r *Registry) Register(m Manager) error {
	if m == nil {
		return fmt.Errorf("cannot register nil manager")
	}

	name := m.Name()
	if name == "" {
		return fmt.Errorf("cannot register manager with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.managers[name]; exists {
		return fmt.Errorf("manager '%s' is already registered", name)
	}

	r.managers[name] = m
	return nil
}

// Replace registers m, overwriting any manager with the same name.
func (r *Registry) Replace(m Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.managers[m.Name()] = m
}

// Get retrieves a manager by name
func (r *Registry) Get(name string) (Manager, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.managers[name]
	return m, ok
}

// List returns all registered manager names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.managers))
	for name := range r.managers {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Execute runs a manager by name if it exists
func (r *Registry) Execute(ctx context.Context, name string, exec *Executor) error {
	m, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("manager '%s' not found in registry", name)
	}
	return m.Execute(ctx, exec)
}
