package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.WarnLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" INFO ", zerolog.InfoLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup_WritesToConsole(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(Options{Level: "info", Out: &buf}))

	log.Info().Msg("hello from test")
	log.Debug().Msg("should be filtered")

	assert.Contains(t, buf.String(), "hello from test")
	assert.NotContains(t, buf.String(), "should be filtered")
}

func TestSetup_VerboseForcesDebug(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	require.NoError(t, Setup(Options{Level: "error", Verbose: true, Out: &buf}))

	l := For("test")
	l.Debug().Msg("debug visible")
	assert.Contains(t, buf.String(), "debug visible")
	assert.Contains(t, buf.String(), "component=test")
}

func TestSetup_InvalidLevel(t *testing.T) {
	err := Setup(Options{Level: "chatty", Out: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestSetup_LogFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	path := filepath.Join(t.TempDir(), "logs", "flugzeug.log")
	require.NoError(t, Setup(Options{Level: "info", Out: &bytes.Buffer{}, File: path}))

	log.Info().Msg("persisted line")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "persisted line")
}

func TestClose_ReleasesLogFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	var console bytes.Buffer
	require.NoError(t, Setup(Options{Level: "info", Out: &console, File: first}))
	f := logFile
	require.NotNil(t, f)

	// A new Setup closes the previous file.
	require.NoError(t, Setup(Options{Level: "info", Out: &console, File: second}))
	assert.ErrorIs(t, f.Close(), os.ErrClosed)

	require.NoError(t, Close())
	assert.Nil(t, logFile)
	require.NoError(t, Close())

	log.Info().Msg("after close")
	assert.Contains(t, console.String(), "after close")

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after close")
}
