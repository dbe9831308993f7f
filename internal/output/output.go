// Package output provides styled terminal output for the generator.
//
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	logoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	brandStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

const logo = `
  _____ _
 |   __| |_ _ ___ ___ ___ _ _ ___
 |   __| | | | . |- _| -_| | | . |
 |__|  |_|___|_  |___|___|___|_  |
             |___|           |___|
`

// SetWriter redirects all output. Passing nil restores os.Stdout.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Writer returns the current output destination.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Banner prints the generator logo and welcome line.
func Banner() {
	emit(logoStyle.Render(logo) + "\nWelcome to the " + brandStyle.Render("Flugzeug") + " generator\n")
}

// Success prints a success message with ✈️ emoji and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: my-app")
func Success(msg string) {
	emit(successStyle.Render("✈️  " + msg))
}

// Error prints an error message with ❌ emoji and red color.
// Use this for failures that need user attention.
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn prints a warning in yellow.
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
//
// Example:
//
//	output.Info("Next steps:")
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd my-app")
//	output.Step("npm run dev")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	enabled := verboseMode
	mu.Unlock()
	if enabled {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
