package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/simonhull/firebird-suite/flugzeug/internal/naming"
)

// Renderer handles template parsing and rendering with caching.
// Cache entries are keyed by name, so one Renderer should read from one fs.FS.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderFS renders a template read from fsys (embedded or on disk).
// Parsed templates are cached by path.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	// Check cache with read lock
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()
	if ok {
		return r.executeTemplate(tmpl, data)
	}

	templateBytes, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template from fs '%s': %w", path, err)
	}

	tmpl, err = template.New(path).Funcs(r.funcMap).Option("missingkey=error").Parse(string(templateBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", path, err)
	}

	// Cache with write lock
	r.mu.Lock()
	r.cache[path] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// executeTemplate executes a parsed template with the given data
func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"kebabCase":  naming.Kebab, // My App → my-app
		"pascalCase": PascalCase,   // my-app → MyApp
		"camelCase":  CamelCase,    // my-app → myApp
		"snakeCase":  SnakeCase,    // my-app → my_app
		"title":      Title,        // my-app → My App

		// String manipulation
		"quote":    Quote,    // test → "test"
		"json":     JSON,     // Jane "JJ" → "Jane \"JJ\""
		"envValue": EnvValue, // my db → 'my db'
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"replace":  strings.ReplaceAll,

		// Utilities
		"dict":    Dict,    // Create map for passing multiple values
		"default": Default, // Provide default value if nil/empty
	}
}

// PascalCase joins the words of s with each word capitalized.
// Examples: my-app → MyApp, user_name → UserName, flugzeug project → FlugzeugProject
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range naming.Words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// CamelCase is PascalCase with a lowercase first word.
// Examples: my-app → myApp, UserName → userName
func CamelCase(s string) string {
	words := naming.Words(s)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// SnakeCase joins the lowercase words of s with underscores.
// Examples: MyApp → my_app, my-app → my_app, HTTPServer → http_server
func SnakeCase(s string) string {
	return strings.Join(naming.Words(s), "_")
}

// Title joins the capitalized words of s with spaces.
// Examples: my-app → My App, HELLO WORLD → Hello World
func Title(s string) string {
	words := naming.Words(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// EnvValue formats s as the value of a .env line that reads back as s in
// both godotenv and Node's dotenv. Plain values are written bare, others are
// single-quoted, or double-quoted when they contain a single quote. Values
// with double quotes, backslashes or control characters are rejected since
// the two parsers escape them differently.
func EnvValue(s string) (string, error) {
	for _, r := range s {
		if r == '"' || r == '\\' || unicode.IsControl(r) {
			return "", fmt.Errorf("%q cannot be written to a .env file: double quotes, backslashes and control characters are not allowed", s)
		}
	}

	switch {
	case s != "" && strings.IndexFunc(s, needsQuotes) < 0:
		return s, nil
	case !strings.ContainsRune(s, '\''):
		return "'" + s + "'", nil
	case !strings.ContainsRune(s, '$'):
		return `"` + s + `"`, nil
	}
	return "", fmt.Errorf("%q cannot be written to a .env file: it mixes single quotes and $", s)
}

func needsQuotes(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_.,:/@+", r):
		return false
	}
	return true
}

// JSON encodes v as a JSON literal without HTML escaping, for embedding
// values in package.json and similar files.
func JSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns the default value if the given value is nil or empty
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}

	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}

	switch v := val.(type) {
	case []any:
		if len(v) == 0 {
			return defaultVal
		}
	case map[string]any:
		if len(v) == 0 {
			return defaultVal
		}
	}

	// Numeric zero is a valid value and is returned as-is
	return val
}
