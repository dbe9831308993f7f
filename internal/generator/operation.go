package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrFileExists is returned by Validate when a destination already exists
// and force is off.
var ErrFileExists = errors.New("file already exists")

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it and has
// no side effects. force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create app/main.ts (234 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates a file with content on Fs.
//
// Validation behavior:
//   - Checks for file conflicts unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Creates parent directories if needed
//   - Writes the file with the specified Mode
type WriteFileOp struct {
	Fs      afero.Fs    // Destination filesystem
	Path    string      // File path relative to Fs
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Fs == nil {
		return fmt.Errorf("no filesystem for file: %s", op.Path)
	}

	if !force {
		exists, err := afero.Exists(op.Fs, op.Path)
		if err != nil {
			return fmt.Errorf("cannot stat %s: %w", op.Path, err)
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrFileExists, op.Path)
		}
	}

	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := op.Fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(op.Fs, op.Path, op.Content, op.Mode); err != nil {
		return fmt.Errorf("cannot write %s: %w", op.Path, err)
	}
	return nil
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}
