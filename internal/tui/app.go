package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clockweek/internal/clockify"
	"clockweek/internal/notify"
	"clockweek/internal/store"
	"clockweek/internal/timesheet"
)

type viewState int

const (
	pickerView viewState = iota
	loadingView
	weekView
	submittingView
)

type baselineMsg struct {
	week     []time.Time
	baseline map[time.Time]int
	err      error
}

type submitMsg struct {
	applied []timesheet.ChangeOp
	err     error
}

// App drives the picker and week views. Submits are serialized: while one is
// in flight the model sits in submittingView and ignores edit and navigation
// keys until the terminal state is reached.
type App struct {
	state   viewState
	picker  projectPickerModel
	week    weekModel
	spinner spinner.Model
	status  string

	projects []clockify.Project
	project  *clockify.Project
	offset   int

	engine        *timesheet.Reconciler
	db            *store.DB
	notifyEnabled bool
	logger        *slog.Logger
}

func NewApp(
	projects []clockify.Project,
	engine *timesheet.Reconciler,
	db *store.DB,
	defaultProjectID string,
	notifyEnabled bool,
	logger *slog.Logger,
) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &App{
		state:         pickerView,
		picker:        newProjectPicker(projects),
		spinner:       s,
		projects:      projects,
		engine:        engine,
		db:            db,
		notifyEnabled: notifyEnabled,
		logger:        logger,
	}

	if defaultProjectID != "" {
		for i := range projects {
			if projects[i].ID == defaultProjectID {
				a.project = &projects[i]
				a.state = loadingView
				break
			}
		}
	}

	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, textinput.Blink}
	if a.state == loadingView {
		cmds = append(cmds, a.loadBaseline())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case baselineMsg:
		return a.handleBaseline(msg)
	case submitMsg:
		return a.handleSubmit(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	switch a.state {
	case pickerView:
		return a.updatePicker(msg)
	case weekView:
		return a.updateWeek(msg)
	}

	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case pickerView:
		body = a.picker.View()
	case loadingView:
		body = a.spinner.View() + " Loading week..."
	case weekView:
		body = a.week.View() + "\n" +
			helpStyle.Render("Ctrl+S: submit — Ctrl+←/→: week — Ctrl+D: default — Esc: projects")
	case submittingView:
		body = a.week.View() + "\n" + a.spinner.View() + " Submitting..."
	}

	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)

	if a.picker.choice >= 0 {
		a.project = &a.projects[a.picker.choice]
		a.offset = 0
		a.status = ""
		a.state = loadingView
		return a, tea.Batch(a.spinner.Tick, a.loadBaseline())
	}

	return a, cmd
}

func (a *App) updateWeek(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+s":
			a.status = ""
			a.state = submittingView
			return a, tea.Batch(a.spinner.Tick, a.submit())
		case "ctrl+left":
			return a.navigateWeek(-1)
		case "ctrl+right":
			return a.navigateWeek(1)
		case "ctrl+d":
			return a.saveDefault()
		case "esc":
			a.picker = newProjectPicker(a.projects)
			a.status = ""
			a.state = pickerView
			return a, a.picker.Init()
		}
	}

	var cmd tea.Cmd
	a.week, cmd = a.week.Update(msg)
	return a, cmd
}

func (a *App) navigateWeek(delta int) (tea.Model, tea.Cmd) {
	a.offset += delta
	a.status = ""
	a.state = loadingView
	return a, tea.Batch(a.spinner.Tick, a.loadBaseline())
}

func (a *App) saveDefault() (tea.Model, tea.Cmd) {
	if a.db == nil || a.project == nil {
		return a, nil
	}
	if err := a.db.SetDefaultProject(a.project.ID, a.project.DisplayName()); err != nil {
		a.status = errorStyle.Render("Error: ") + err.Error()
		return a, nil
	}
	a.status = successStyle.Render("Default project saved")
	return a, nil
}

func (a *App) handleBaseline(msg baselineMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("loading baseline failed", "error", msg.err)
		a.picker = newProjectPicker(a.projects)
		a.status = errorStyle.Render("Error: ") + msg.err.Error()
		a.state = pickerView
		return a, a.picker.Init()
	}

	a.week = newWeekModel(*a.project, msg.week, msg.baseline)
	a.state = weekView
	return a, nil
}

func (a *App) handleSubmit(msg submitMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.logger.Error("submit failed", "error", msg.err)
		// Earlier days may already be applied, so reload either way.
		a.status = errorStyle.Render("Error: ") + msg.err.Error()
		a.state = loadingView
		return a, tea.Batch(a.spinner.Tick, a.loadBaseline())
	}

	if len(msg.applied) == 0 {
		a.status = dimStyle.Render("No changes to submit")
		a.state = weekView
		return a, nil
	}

	if a.notifyEnabled {
		notify.Send("clockweek", "Hours submitted successfully")
	}
	a.status = successStyle.Render("Hours submitted successfully")
	a.state = loadingView
	return a, tea.Batch(a.spinner.Tick, a.loadBaseline())
}

func (a *App) loadBaseline() tea.Cmd {
	projectID := a.project.ID
	offset := a.offset
	engine := a.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		week := timesheet.WeekDates(offset)
		baseline, err := engine.WeekBaseline(ctx, projectID, week)
		return baselineMsg{week: week, baseline: baseline, err: err}
	}
}

func (a *App) submit() tea.Cmd {
	project := *a.project
	week := a.week.week
	baseline := a.week.baseline
	edits := a.week.EditSet()
	engine := a.engine
	db := a.db

	return func() tea.Msg {
		ops := timesheet.ComputeChanges(week, baseline, edits)
		if len(ops) == 0 {
			return submitMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := engine.Apply(ctx, project.ID, baseline, ops); err != nil {
			return submitMsg{err: err}
		}

		if db != nil {
			for _, op := range ops {
				action := "cleared"
				if op.Kind == timesheet.OpCreate {
					action = "booked"
				}
				db.InsertSubmission(&store.Submission{
					ProjectID:   project.ID,
					ProjectName: project.DisplayName(),
					Day:         op.Date.Format("2006-01-02"),
					Action:      action,
					Minutes:     op.Minutes,
				})
			}
		}

		return submitMsg{applied: ops}
	}
}
