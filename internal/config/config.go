package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"

	DefaultBackend  = BackendSQLite
	DefaultProfile  = "default"
	DefaultDebounce = 150 * time.Millisecond
	DefaultLogLevel = "info"
)

// Config holds the settings shared by every front end
type Config struct {
	Backend    string
	StorePath  string
	Profile    string
	LogLevel   string
	Debounce   time.Duration
	Extensions []string
	// Editor overrides $VISUAL and $EDITOR for the TUI
	Editor string
	// File is the config file that was read, empty when none was found
	File string
}

// StorePath returns the store location from the JOURNEY_STORE_PATH env var,
// falling back to an empty path (the backend default).
func StorePath() string {
	return os.Getenv("JOURNEY_STORE_PATH")
}

// Load reads ~/.journey.yaml (or cfgFile when set) and JOURNEY_* env vars
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("store.backend", DefaultBackend)
	v.SetDefault("store.path", StorePath())
	v.SetDefault("store.profile", DefaultProfile)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("similar.debounce", DefaultDebounce.String())
	v.SetDefault("files.extensions", []string{"md", "txt"})
	v.SetDefault("editor.command", "")

	if cfgFile != "" {
		expanded, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", cfgFile, err)
		}
		v.SetConfigFile(expanded)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(".journey")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("JOURNEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Backend:    strings.ToLower(v.GetString("store.backend")),
		StorePath:  v.GetString("store.path"),
		Profile:    v.GetString("store.profile"),
		LogLevel:   v.GetString("log.level"),
		Debounce:   v.GetDuration("similar.debounce"),
		Extensions: v.GetStringSlice("files.extensions"),
		Editor:     v.GetString("editor.command"),
		File:       v.ConfigFileUsed(),
	}

	if cfg.StorePath != "" {
		expanded, err := homedir.Expand(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", cfg.StorePath, err)
		}
		cfg.StorePath = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendDiskv:
	default:
		return fmt.Errorf("invalid store.backend %q: expected %s or %s", c.Backend, BackendSQLite, BackendDiskv)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("invalid similar.debounce %s: must be positive", c.Debounce)
	}
	if strings.TrimSpace(c.Profile) == "" {
		return fmt.Errorf("invalid store.profile: must not be empty")
	}
	return nil
}

// DiskvPath returns the diskv directory, defaulting under the XDG data
// directory
func (c *Config) DiskvPath() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := homedir.Dir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "journey", c.Profile)
}
