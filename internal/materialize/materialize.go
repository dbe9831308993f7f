// Package materialize turns the project template tree into file operations
// on the destination filesystem.
//
// Files ending in ".template" are rendered with text/template under the
// context listed for them in the variant's file set; every other file is
// copied verbatim, dotfiles included. Files that need the JWT secret are
// produced separately by SecretOperations so callers can write everything
// else while the secret is still being generated.
package materialize

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/simonhull/firebird-suite/flugzeug/internal/generator"
	"github.com/simonhull/firebird-suite/flugzeug/internal/logging"
)

// TemplateExt marks files that are rendered rather than copied.
const TemplateExt = ".template"

//go:embed all:templates
var embedded embed.FS

// Embedded returns the built-in template root.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err) // fixed path inside the binary
	}
	return sub
}

// Answers are the values collected from the user.
type Answers struct {
	Name       string
	Author     string
	DBName     string
	Websockets bool
}

// Materializer builds operations that reproduce the template tree in Dst.
type Materializer struct {
	src      fs.FS
	dst      afero.Fs
	renderer *generator.Renderer
	log      zerolog.Logger
}

// New creates a materializer reading templates from src and writing to dst.
// dst is normally an afero.BasePathFs rooted at the project directory.
func New(src fs.FS, dst afero.Fs) *Materializer {
	return &Materializer{
		src:      src,
		dst:      dst,
		renderer: generator.NewRenderer(),
		log:      logging.For("materialize"),
	}
}

// StaticOperations copies every non-template file verbatim.
func (m *Materializer) StaticOperations() ([]generator.Operation, error) {
	files, err := m.staticFiles()
	if err != nil {
		return nil, err
	}

	ops := make([]generator.Operation, 0, len(files))
	for _, name := range files {
		content, err := fs.ReadFile(m.src, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if content == nil {
			content = []byte{}
		}
		ops = append(ops, &generator.WriteFileOp{
			Fs:      m.dst,
			Path:    name,
			Content: content,
			Mode:    m.modeOf(name),
		})
	}

	m.log.Debug().Int("files", len(ops)).Msg("Static operations prepared")
	return ops, nil
}

// RenderOperations renders the templates that do not depend on the secret.
func (m *Materializer) RenderOperations(a Answers) ([]generator.Operation, error) {
	return m.renderAll(VariantFor(a).RenderFiles(), a, "")
}

// SecretOperations renders the templates that embed the JWT secret.
func (m *Materializer) SecretOperations(a Answers, secret string) ([]generator.Operation, error) {
	if secret == "" {
		return nil, errors.New("secret is empty")
	}
	return m.renderAll(SecretFiles(), a, secret)
}

func (m *Materializer) renderAll(files []File, a Answers, secret string) ([]generator.Operation, error) {
	ops := make([]generator.Operation, 0, len(files))
	for _, f := range files {
		content, err := m.renderer.RenderFS(m.src, f.Source, f.Context(a, secret))
		if err != nil {
			return nil, err
		}
		ops = append(ops, &generator.WriteFileOp{
			Fs:      m.dst,
			Path:    f.Dest,
			Content: content,
			Mode:    f.mode(),
		})
		m.log.Debug().Str("template", f.Source).Str("dest", f.Dest).Msg("Rendered")
	}
	return ops, nil
}

// Paths lists every destination path a run with these answers writes, sorted.
// It fails if two sources would produce the same destination.
func (m *Materializer) Paths(a Answers) ([]string, error) {
	static, err := m.staticFiles()
	if err != nil {
		return nil, err
	}

	owners := make(map[string]string)
	add := func(dest, source string) error {
		if prev, ok := owners[dest]; ok {
			return fmt.Errorf("%s is produced by both %s and %s", dest, prev, source)
		}
		owners[dest] = source
		return nil
	}

	for _, name := range static {
		if err := add(name, name); err != nil {
			return nil, err
		}
	}
	for _, f := range append(VariantFor(a).RenderFiles(), SecretFiles()...) {
		if err := add(f.Dest, f.Source); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(owners))
	for p := range owners {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// Preflight checks that nothing this run would write already exists, so a
// project is never partially overwritten. force disables the check.
func (m *Materializer) Preflight(a Answers, force bool) error {
	paths, err := m.Paths(a)
	if err != nil {
		return err
	}

	// Rendered sources must exist even when forcing.
	for _, f := range append(VariantFor(a).RenderFiles(), SecretFiles()...) {
		if _, err := fs.Stat(m.src, f.Source); err != nil {
			return fmt.Errorf("missing template %s: %w", f.Source, err)
		}
	}

	if force {
		return nil
	}

	var conflicts []error
	for _, p := range paths {
		exists, err := afero.Exists(m.dst, p)
		if err != nil {
			return fmt.Errorf("cannot stat %s: %w", p, err)
		}
		if exists {
			conflicts = append(conflicts, fmt.Errorf("%w: %s", generator.ErrFileExists, p))
		}
	}
	if len(conflicts) > 0 {
		m.log.Warn().Int("conflicts", len(conflicts)).Msg("Destination already contains project files")
	}
	return errors.Join(conflicts...)
}

func (m *Materializer) staticFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(m.src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, TemplateExt) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk templates: %w", err)
	}
	return files, nil
}

// modeOf keeps the executable bit of on-disk templates; everything else is 0644.
func (m *Materializer) modeOf(name string) fs.FileMode {
	info, err := fs.Stat(m.src, name)
	if err == nil && info.Mode().Perm()&0o111 != 0 {
		return 0o755
	}
	return 0o644
}

// File maps one template source to its destination.
type File struct {
	Source  string
	Dest    string
	Private bool // written 0600
	Context func(a Answers, secret string) any
}

func (f File) mode() fs.FileMode {
	if f.Private {
		return 0o600
	}
	return 0o644
}

func tmpl(dest string) string {
	return path.Clean(dest) + TemplateExt
}
