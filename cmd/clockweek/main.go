package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clockweek/internal/clockify"
	"clockweek/internal/config"
	"clockweek/internal/store"
	"clockweek/internal/timesheet"
	"clockweek/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "clockweek",
	Short: "Weekly Clockify time sheet in the terminal",
	Long:  "clockweek shows a Monday-to-Sunday week of logged hours for a Clockify project, lets you edit the day totals, and submits the difference back.",
	RunE:  runWeek,
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List Clockify projects",
	RunE:  runProjects,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a week's logged hours without entering the TUI",
	RunE:  runReport,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently submitted changes",
	RunE:  runHistory,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	reportCmd.Flags().IntP("week", "w", 0, "Week offset relative to the current week")
	reportCmd.Flags().StringP("project", "p", "", "Project ID (defaults to the saved default project)")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of submissions to show")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Clockify.APIKey == "" {
		return nil, fmt.Errorf("clockify API key not configured — run 'clockweek config' to set it up")
	}
	return cfg, nil
}

// buildLogger writes to the configured log file so log lines never tear the
// TUI. Without a file it discards everything.
func buildLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.Log.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "error":
		level = slog.LevelError
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func newClockifyClient(cfg *config.Config, logger *slog.Logger) *clockify.Client {
	return clockify.NewClient(cfg.Clockify.APIKey, cfg.Clockify.BaseURL, 1*time.Hour, logger)
}

func resolveWorkspaceID(cfg *config.Config, user *clockify.User) string {
	if cfg.Clockify.WorkspaceID != "" {
		return cfg.Clockify.WorkspaceID
	}
	if user.ActiveWorkspace != "" {
		return user.ActiveWorkspace
	}
	return user.DefaultWorkspace
}

func runWeek(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLogger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	client := newClockifyClient(cfg, logger)
	ctx := context.Background()

	user, err := client.GetUser(ctx)
	if err != nil {
		return fmt.Errorf("getting user info: %w", err)
	}
	workspaceID := resolveWorkspaceID(cfg, user)

	projects, err := client.GetProjects(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}

	defaultID, _, err := db.DefaultProject()
	if err != nil {
		return fmt.Errorf("reading default project: %w", err)
	}

	engine := timesheet.NewReconciler(client, workspaceID, user.ID, logger)
	app := tui.NewApp(projects, engine, db, defaultID, cfg.Notifications.Enabled, logger)

	if _, err := tea.NewProgram(app).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLogger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	client := newClockifyClient(cfg, logger)
	ctx := context.Background()

	user, err := client.GetUser(ctx)
	if err != nil {
		return fmt.Errorf("getting user info: %w", err)
	}

	projects, err := client.GetProjects(ctx, resolveWorkspaceID(cfg, user))
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Printf("Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Printf("  %s  %s\n", p.ID, p.DisplayName())
	}

	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	offset, _ := cmd.Flags().GetInt("week")
	projectID, _ := cmd.Flags().GetString("project")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLogger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	projectName := projectID
	if projectID == "" {
		db, err := store.Open()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		projectID, projectName, err = db.DefaultProject()
		db.Close()
		if err != nil {
			return fmt.Errorf("reading default project: %w", err)
		}
		if projectID == "" {
			return fmt.Errorf("no project given and no default project saved — pass --project or set one with Ctrl+D in the TUI")
		}
	}

	client := newClockifyClient(cfg, logger)
	ctx := context.Background()

	user, err := client.GetUser(ctx)
	if err != nil {
		return fmt.Errorf("getting user info: %w", err)
	}

	engine := timesheet.NewReconciler(client, resolveWorkspaceID(cfg, user), user.ID, logger)
	week := timesheet.WeekDates(offset)
	baseline, err := engine.WeekBaseline(ctx, projectID, week)
	if err != nil {
		return fmt.Errorf("fetching week: %w", err)
	}

	fmt.Printf("%s — week of %s\n\n", projectName, week[0].Format("Jan 02 2006"))
	total := 0
	for _, date := range week {
		minutes := baseline[date]
		total += minutes
		hours := timesheet.FormatMinutes(minutes)
		if hours == "" {
			hours = "-"
		}
		fmt.Printf("  %s %s  %s\n", date.Format("Mon"), date.Format("02.01"), hours)
	}
	fmt.Printf("\nTotal: %dh %dmin\n", total/60, total%60)

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	subs, err := db.RecentSubmissions(limit)
	if err != nil {
		return fmt.Errorf("fetching submissions: %w", err)
	}

	if len(subs) == 0 {
		fmt.Println("No submissions recorded yet.")
		return nil
	}

	fmt.Println("Recent submissions:")
	fmt.Println()
	for _, s := range subs {
		detail := "cleared"
		if s.Action == "booked" {
			detail = fmt.Sprintf("%dmin", s.Minutes)
		}
		fmt.Printf("  %s  %-20s  %s  %s\n", s.Day, s.ProjectName, s.Action, detail)
	}

	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[clockify]
api_key = "%s"
workspace_id = "%s"

[notifications]
enabled = %t

[log]
level = "%s"
file = ""
`,
			cfg.Clockify.APIKey,
			cfg.Clockify.WorkspaceID,
			cfg.Notifications.Enabled,
			cfg.Log.Level,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}
