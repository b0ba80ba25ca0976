package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/hy4ri/daycal/internal/calendar"
	"github.com/hy4ri/daycal/internal/config"
	"github.com/hy4ri/daycal/internal/reminder"
	"github.com/hy4ri/daycal/internal/store"
	"github.com/hy4ri/daycal/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the tasks of a day",
	Long:    "List the tasks of a day (today by default) or the unplanned tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("date")
		unplanned, _ := cmd.Flags().GetBool("unplanned")
		if day != "" && unplanned {
			return errors.New("--date and --unplanned cannot be combined")
		}
		if day == "" {
			day = calendar.Today(time.Now())
		} else if _, err := calendar.ParseDate(day, time.Local); err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", day)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, sync, err := consoleLogger(cfg)
		if err != nil {
			return err
		}
		defer sync()

		st, err := store.Open(cfg.Store, log)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Store.OperationTimeout)
		defer cancel()

		snap, err := firstSnapshot(ctx, st)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if unplanned {
			printTasks(out, "Unplanned", task.UnplannedTasks(snap.Tasks))
			return nil
		}
		printTasks(out, day, task.DayTasks(snap.Tasks, day))
		return nil
	},
}

// firstSnapshot waits for the snapshot a new subscription starts with.
func firstSnapshot(ctx context.Context, st store.Store) (store.Snapshot, error) {
	ch := make(chan store.Snapshot, 1)
	sub, err := st.Subscribe(ctx, func(snap store.Snapshot) {
		select {
		case ch <- snap:
		default:
		}
	})
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer sub.Unsubscribe()

	select {
	case snap := <-ch:
		return snap, nil
	case <-ctx.Done():
		return store.Snapshot{}, fmt.Errorf("failed to load tasks: %w", ctx.Err())
	}
}

func printTasks(w io.Writer, heading string, tasks []task.Task) {
	fmt.Fprintf(w, "%s (%d)\n", heading, len(tasks))
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  No tasks.")
		return
	}

	for _, t := range tasks {
		status := "[ ]"
		if t.Completed {
			status = "[x]"
		}
		title := runewidth.Truncate(t.Title, 40, "...")
		line := fmt.Sprintf("  %s %-13s %s", status, t.TimeRange(), runewidth.FillRight(title, 40))
		if t.Priority != "" {
			line += " " + t.Priority
		}
		if len(t.ReminderTimes) > 0 {
			labels := make([]string, 0, len(t.ReminderTimes))
			for _, o := range t.ReminderTimes {
				labels = append(labels, task.OffsetLabel(o))
			}
			line += " (" + strings.Join(labels, ", ") + ")"
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send desktop notifications for upcoming tasks",
	Long: `Run in the foreground and check the task reminders every minute,
sending a desktop notification when one comes up. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, sync, err := consoleLogger(cfg)
		if err != nil {
			return err
		}
		defer sync()

		st, err := store.Open(cfg.Store, log)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		dispatcher := reminder.NewDispatcher(reminder.Desktop, log)
		return reminder.NewScheduler(st, dispatcher, time.Local, log).Run(ctx)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store the access token of the remote task service",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Fprint(cmd.OutOrStdout(), "Access token: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = line
		}

		if err := config.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearToken(); err != nil {
			return fmt.Errorf("failed to sign out: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "daycal version %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	listCmd.Flags().String("date", "", "day to list (YYYY-MM-DD, default today)")
	listCmd.Flags().Bool("unplanned", false, "list the unplanned tasks")
}
