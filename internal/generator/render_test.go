package generator

import (
	"fmt"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS = fstest.MapFS{
	"simple.tmpl":         {Data: []byte("Hello, {{ .Name }}!")},
	"invalid_syntax.tmpl": {Data: []byte("{{ .Name }")},
	"missing_key.tmpl":    {Data: []byte("{{ .absent }}")},
	"manifest.tmpl":       {Data: []byte(`{"name": {{ json .Name }}, "author": {{ json .Author }}}`)},
	"helpers.tmpl":        {Data: []byte(`{{ title .Name }} {{ pascalCase .Name }} {{ snakeCase .Name }}`)},
	"env.tmpl":            {Data: []byte("DB_NAME={{ envValue .DBName }}\n")},
	"static.tmpl":         {Data: []byte("Hello World")},
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer()
	assert.NotNil(t, r)
	assert.NotNil(t, r.funcMap)
	assert.NotNil(t, r.cache)
	assert.Empty(t, r.cache)
}

func TestRenderFS(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		path        string
		data        any
		expected    string
		wantErr     bool
		errContains string
	}{
		{
			name:     "simple template",
			path:     "simple.tmpl",
			data:     struct{ Name string }{Name: "Bob"},
			expected: "Hello, Bob!",
		},
		{
			name:     "json escaping",
			path:     "manifest.tmpl",
			data:     map[string]string{"Name": "my-app", "Author": `Jane "JJ" <jane@x.io>`},
			expected: `{"name": "my-app", "author": "Jane \"JJ\" <jane@x.io>"}`,
		},
		{
			name:     "no actions",
			path:     "static.tmpl",
			data:     nil,
			expected: "Hello World",
		},
		{
			name:     "map data",
			path:     "simple.tmpl",
			data:     map[string]any{"Name": 42},
			expected: "Hello, 42!",
		},
		{
			name:     "case helpers",
			path:     "helpers.tmpl",
			data:     struct{ Name string }{Name: "my-app"},
			expected: "My App MyApp my_app",
		},
		{
			name:     "env value",
			path:     "env.tmpl",
			data:     struct{ DBName string }{DBName: "my db"},
			expected: "DB_NAME='my db'\n",
		},
		{
			name:        "env value rejected",
			path:        "env.tmpl",
			data:        struct{ DBName string }{DBName: `my"db`},
			wantErr:     true,
			errContains: "failed to render template",
		},
		{
			name:        "missing field",
			path:        "simple.tmpl",
			data:        struct{}{},
			wantErr:     true,
			errContains: "failed to render template",
		},
		{
			name:        "non-existent template",
			path:        "nonexistent.tmpl",
			data:        nil,
			wantErr:     true,
			errContains: "failed to read template from fs",
		},
		{
			name:        "invalid syntax template",
			path:        "invalid_syntax.tmpl",
			data:        nil,
			wantErr:     true,
			errContains: "failed to parse template",
		},
		{
			name:        "missing map key",
			path:        "missing_key.tmpl",
			data:        map[string]any{},
			wantErr:     true,
			errContains: "failed to render template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := r.RenderFS(testFS, tt.path, tt.data)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, string(output))
			}
		})
	}
}

func TestRenderer_CachesParsedTemplates(t *testing.T) {
	r := NewRenderer()

	for i, db := range []string{"first", "second"} {
		out, err := r.RenderFS(testFS, "simple.tmpl", struct{ Name string }{Name: db})
		require.NoError(t, err)
		assert.Equal(t, "Hello, "+db+"!", string(out), "render %d", i)
		assert.Len(t, r.cache, 1)
	}

	_, err := r.RenderFS(testFS, "static.tmpl", nil)
	require.NoError(t, err)
	assert.Len(t, r.cache, 2)

	_, err = r.RenderFS(testFS, "invalid_syntax.tmpl", nil)
	require.Error(t, err)
	assert.Len(t, r.cache, 2, "templates that fail to parse are not cached")
}

func TestRenderer_Concurrent(t *testing.T) {
	r := NewRenderer()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			out, err := r.RenderFS(testFS, "simple.tmpl", struct{ Name string }{Name: fmt.Sprint(n)})
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("Hello, %d!", n), string(out))
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.cache, 1)
}

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		input                       string
		pascal, camel, snake, title string
	}{
		{"", "", "", "", ""},
		{"my-app", "MyApp", "myApp", "my_app", "My App"},
		{"user_name", "UserName", "userName", "user_name", "User Name"},
		{"UserName", "UserName", "userName", "user_name", "User Name"},
		{"HTTP_SERVER", "HttpServer", "httpServer", "http_server", "Http Server"},
		{"XMLHttpRequest", "XmlHttpRequest", "xmlHttpRequest", "xml_http_request", "Xml Http Request"},
		{"flugzeug   project", "FlugzeugProject", "flugzeugProject", "flugzeug_project", "Flugzeug Project"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.input), "pascal")
			assert.Equal(t, tt.camel, CamelCase(tt.input), "camel")
			assert.Equal(t, tt.snake, SnakeCase(tt.input), "snake")
			assert.Equal(t, tt.title, Title(tt.input), "title")
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"test"`, Quote("test"))
	assert.Equal(t, `""`, Quote(""))
	assert.Equal(t, `"with \"quotes\""`, Quote(`with "quotes"`))
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"flugzeug-project", "flugzeug-project"},
		{"db_1.test", "db_1.test"},
		{"user@host:3306/db", "user@host:3306/db"},
		{"my db", "'my db'"},
		{"café", "'café'"},
		{"a#b", "'a#b'"},
		{"$HOME", "'$HOME'"},
		{"it's", `"it's"`},
		{"", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := EnvValue(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			env, err := godotenv.Unmarshal("DB_NAME=" + got + "\n")
			require.NoError(t, err)
			assert.Equal(t, tt.input, env["DB_NAME"])
		})
	}
}

func TestEnvValue_Rejects(t *testing.T) {
	for _, input := range []string{`my"db`, `my\db`, "my\ndb", "tab\there", "bell\a", "it's $HOME"} {
		_, err := EnvValue(input)
		assert.Error(t, err, "%q", input)
	}
}

func TestJSON(t *testing.T) {
	got, err := JSON("Me <me@example.com>")
	require.NoError(t, err)
	assert.Equal(t, `"Me <me@example.com>"`, got)

	got, err = JSON(true)
	require.NoError(t, err)
	assert.Equal(t, "true", got)

	_, err = JSON(func() {})
	assert.Error(t, err)
}

func TestDict(t *testing.T) {
	m, err := Dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = Dict("odd")
	assert.Error(t, err)

	_, err = Dict(1, 2)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "fallback", Default("fallback", nil))
	assert.Equal(t, "fallback", Default("fallback", ""))
	assert.Equal(t, "fallback", Default("fallback", []any{}))
	assert.Equal(t, "value", Default("fallback", "value"))
	assert.Equal(t, 0, Default(5, 0))
}
