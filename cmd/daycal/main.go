// Package main is the entry point for the daycal calendar application.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hy4ri/daycal/internal/config"
	"github.com/hy4ri/daycal/internal/logging"
	"github.com/hy4ri/daycal/internal/reminder"
	"github.com/hy4ri/daycal/internal/store"
	"github.com/hy4ri/daycal/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const configTemplate = `# daycal configuration
# Location: ~/.config/daycal/config.yaml

store:
  # sqlite (local file), remote (task service) or memory (nothing is saved)
  backend: sqlite
  # path: ~/.local/share/daycal/tasks.db

  # Remote task service. Run 'daycal login' to store the access token.
  # base_url: "https://tasks.example.com/api/v1"
  # poll_interval: 15s
  # operation_timeout: 10s

calendar:
  # Refuse selecting past days or adding tasks to them
  block_past_days: true

reminders:
  # Offsets in minutes relative to the task start, offered in the task form
  options: ["-5", "-10", "-15", "-30", "-60", "-120", "-1440"]
  # All-day tasks get a single reminder the day before
  all_day_day_before: true
  # Send desktop notifications while the calendar is open
  notify: true

ui:
  # Enable Vim-style keybindings (default: true)
  vim_mode: true

log:
  level: info
`

// flags shared by every command
var (
	configPath string
	backend    string
)

var rootCmd = &cobra.Command{
	Use:   "daycal",
	Short: "A terminal calendar with day tasks and reminders",
	Long: `daycal shows a month calendar with the tasks of the selected day,
a sidebar of unplanned tasks and reminders for upcoming tasks.

Run 'daycal init' to create a config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/daycal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backend, "store", "", "store backend: sqlite, remote or memory")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if backend != "" {
		cfg.Store.Backend = backend
	}
	if cfg.Store.Backend == config.BackendSQLite && cfg.Store.Path == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, err
		}
		cfg.Store.Path = filepath.Join(dir, "tasks.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// runApp starts the main TUI application.
func runApp() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	st, err := store.Open(cfg.Store, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	opts := tui.Options{Config: cfg, Log: log}
	if cfg.Reminders.Notify {
		opts.Dispatcher = reminder.NewDispatcher(reminder.Desktop, log)
	}

	app := tui.NewApp(st, opts)
	defer app.Close()

	log.Infow("starting", "version", version, "backend", cfg.Store.Backend)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a template config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createConfigTemplate(cmd)
	},
}

// createConfigTemplate writes the config template, asking before it
// replaces an existing file.
func createConfigTemplate(cmd *cobra.Command) error {
	path := configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Config file already exists: %s\n", path)
		fmt.Fprint(out, "Overwrite? [y/N]: ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Config file created: %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Pick a store backend in the config file")
	fmt.Fprintln(out, "  2. For the remote backend, run 'daycal login'")
	fmt.Fprintln(out, "  3. Run 'daycal' to start")
	return nil
}

// consoleLogger builds the stderr logger of the foreground commands.
func consoleLogger(cfg *config.Config) (*zap.SugaredLogger, func(), error) {
	logger, err := logging.NewConsole(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger.Sugar(), func() { _ = logger.Sync() }, nil
}
