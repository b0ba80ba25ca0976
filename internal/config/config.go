// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hy4ri/daycal/internal/task"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRemote = "remote"
	BackendMemory = "memory"
)

const appName = "daycal"

// Config represents the application configuration.
type Config struct {
	Store     StoreConfig    `yaml:"store"`
	Calendar  CalendarConfig `yaml:"calendar"`
	Reminders ReminderConfig `yaml:"reminders"`
	UI        UIConfig       `yaml:"ui"`
	Log       LogConfig      `yaml:"log"`
}

// StoreConfig selects and configures the task store.
type StoreConfig struct {
	// Backend is one of "sqlite", "remote" or "memory".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file (defaults to the data directory).
	Path string `yaml:"path,omitempty"`

	// BaseURL is the remote task service URL.
	BaseURL string `yaml:"base_url,omitempty"`

	// Owner scopes local records; defaults to the OS user name.
	Owner string `yaml:"owner,omitempty"`

	PollInterval     time.Duration `yaml:"poll_interval,omitempty"`
	OperationTimeout time.Duration `yaml:"operation_timeout,omitempty"`
}

// CalendarConfig holds calendar behaviour settings.
type CalendarConfig struct {
	BlockPastDays bool `yaml:"block_past_days"`
}

// ReminderConfig holds reminder settings.
type ReminderConfig struct {
	// Options are the offsets offered in the task form.
	Options []string `yaml:"options,omitempty"`

	// AllDayDayBefore replaces the reminders of all-day tasks with a single
	// day-before reminder.
	AllDayDayBefore bool `yaml:"all_day_day_before"`

	// Notify sends desktop notifications when a reminder comes up.
	Notify bool `yaml:"notify"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode bool `yaml:"vim_mode"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:          BackendSQLite,
			PollInterval:     15 * time.Second,
			OperationTimeout: 10 * time.Second,
		},
		Calendar: CalendarConfig{
			BlockPastDays: true,
		},
		Reminders: ReminderConfig{
			Options:         append([]string(nil), task.DefaultReminderOptions...),
			AllDayDayBefore: true,
		},
		UI: UIConfig{
			VimMode: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the default config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path.
// If the file doesn't exist, returns a default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the selected backend is usable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRemote:
		if c.Store.BaseURL == "" {
			return fmt.Errorf("store.base_url is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want sqlite, remote or memory)", c.Store.Backend)
	}

	for _, o := range c.Reminders.Options {
		if _, err := task.ParseOffset(o); err != nil {
			return fmt.Errorf("reminders.options: %w", err)
		}
	}
	return nil
}

// applyDefaults fills derived settings left empty in the file.
func (c *Config) applyDefaults() error {
	if c.Store.Backend == "" {
		c.Store.Backend = BackendSQLite
	}
	if c.Store.PollInterval <= 0 {
		c.Store.PollInterval = 15 * time.Second
	}
	if c.Store.OperationTimeout <= 0 {
		c.Store.OperationTimeout = 10 * time.Second
	}
	if c.Store.Owner == "" {
		c.Store.Owner = defaultOwner()
	}
	if len(c.Reminders.Options) == 0 {
		c.Reminders.Options = append([]string(nil), task.DefaultReminderOptions...)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Store.Backend == BackendSQLite && c.Store.Path == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		c.Store.Path = filepath.Join(dir, "tasks.db")
	}
	if c.Log.File == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		c.Log.File = filepath.Join(dir, appName+".log")
	}
	return nil
}

func defaultOwner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}
