// Package config loads generator settings from the config file, FLUGZEUG_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appDir   = "flugzeug"
	fileName = "config"
	fileType = "yml"

	// EnvPrefix is prepended to every environment override, e.g. FLUGZEUG_SKIP_INSTALL.
	EnvPrefix = "FLUGZEUG"
)

// Config holds the resolved settings for one run.
type Config struct {
	Templates    string    `mapstructure:"templates"`
	SkipInstall  bool      `mapstructure:"skip_install"`
	Force        bool      `mapstructure:"force"`
	DryRun       bool      `mapstructure:"dry_run"`
	SettingsFile string    `mapstructure:"settings_file"`
	Log          LogConfig `mapstructure:"log"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"templates":     "templates",
	"skip-install":  "skip_install",
	"force":         "force",
	"dry-run":       "dry_run",
	"log-level":     "log.level",
	"log-file":      "log.file",
	"settings-file": "settings_file",
}

// DefaultPath returns $XDG_CONFIG_HOME/flugzeug/config.yml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appDir, fileName+"."+fileType)
}

// Load reads configuration from the OS filesystem. An empty path selects
// DefaultPath. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path, flags)
}

// LoadFs is Load on an arbitrary filesystem. A missing config file is not
// an error; a malformed one is.
func LoadFs(fsys afero.Fs, path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("templates", "")
	v.SetDefault("skip_install", false)
	v.SetDefault("force", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("settings_file", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return cfg, nil
}
