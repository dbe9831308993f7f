package install

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrCommandNotFound marks a command whose executable is not on PATH.
var ErrCommandNotFound = errors.New("command not found")

// Executor runs external commands in a working directory.
type Executor struct {
	stdout  io.Writer
	stderr  io.Writer
	env     []string
	dir     string
	spinner bool

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// ExecOptions configures command execution.
type ExecOptions struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Additional environment variables
	Dir    string   // Working directory
	// Spinner shows a progress spinner instead of streaming output. nil
	// enables it when Stderr is a terminal.
	Spinner *bool
}

// NewExecutor creates an executor. Nil options write to os.Stdout/os.Stderr.
func NewExecutor(opts *ExecOptions) *Executor {
	if opts == nil {
		opts = &ExecOptions{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	spin := IsTerminal(opts.Stderr)
	if opts.Spinner != nil {
		spin = *opts.Spinner
	}

	return &Executor{
		stdout:      opts.Stdout,
		stderr:      opts.Stderr,
		env:         opts.Env,
		dir:         opts.Dir,
		spinner:     spin,
		commandFunc: exec.Command,
	}
}

// Dir returns the working directory commands run in.
func (e *Executor) Dir() string {
	return e.dir
}

// Run executes a command, connecting its output to the executor's writers.
// Cancelling ctx kills the process.
func (e *Executor) Run(ctx context.Context, name string, args ...string) error {
	return e.run(ctx, e.stdout, e.stderr, name, args...)
}

func (e *Executor) run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s cancelled: %w", name, err)
	}

	cmd := e.commandFunc(name, args...)
	if e.dir != "" {
		cmd.Dir = e.dir
	}
	if len(e.env) > 0 {
		base := cmd.Env
		if base == nil {
			base = os.Environ()
		}
		cmd.Env = append(base, e.env...)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if isCommandNotFound(err) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			if isCommandNotFound(err) {
				return enhanceError(err, name)
			}
			return fmt.Errorf("%s failed: %w", name, err)
		}
		return nil
	}
}

// RunStep runs a command as one visible step: with a spinner on terminals,
// otherwise with every output line prefixed by the command name.
func (e *Executor) RunStep(ctx context.Context, message, name string, args ...string) error {
	if e.spinner {
		return e.RunWithSpinner(ctx, message, name, args...)
	}

	fmt.Fprintf(e.stdout, "%s...\n", message)
	prefix := stepPrefixStyle.Render(name+" │") + " "
	stdout := NewPrefixWriter(e.stdout, prefix)
	stderr := NewPrefixWriter(e.stderr, prefix)
	err := e.run(ctx, stdout, stderr, name, args...)
	_ = stdout.Flush()
	_ = stderr.Flush()
	return err
}

// RunWithSpinner runs a command behind a progress spinner. Output is
// captured and replayed on stderr only if the command fails.
func (e *Executor) RunWithSpinner(ctx context.Context, message, name string, args ...string) error {
	var captured lockedBuffer

	done := make(chan error, 1)
	go func() {
		done <- e.run(ctx, &captured, &captured, name, args...)
	}()

	p := tea.NewProgram(newSpinnerModel(message),
		tea.WithOutput(e.stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// Spinner failures only affect presentation.
		_, _ = p.Run()
	}()

	err := <-done
	p.Send(spinnerDoneMsg{err: err})
	<-finished

	if err != nil && captured.Len() > 0 {
		_, _ = io.Copy(e.stderr, &captured)
	}
	return err
}

var stepPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

// lockedBuffer is a bytes.Buffer shared by a command's stdout and stderr.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Read(p)
}

func (b *lockedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	// Shells report a missing program with exit status 127.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 127 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "command not found")
}

// enhanceError adds helpful message for missing commands
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w: %w\n💡 Command '%s' not found. Please install it and try again", ErrCommandNotFound, err, cmd)
}
