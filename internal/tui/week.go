package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clockweek/internal/clockify"
	"clockweek/internal/timesheet"
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// weekModel renders one project-week as seven hour inputs. It is rebuilt
// from scratch on every baseline load, so no state survives navigation.
type weekModel struct {
	project  clockify.Project
	week     []time.Time
	baseline map[time.Time]int
	inputs   []textinput.Model
	locked   []bool
	focus    int
}

func newWeekModel(project clockify.Project, week []time.Time, baseline map[time.Time]int) weekModel {
	m := weekModel{
		project:  project,
		week:     week,
		baseline: baseline,
		inputs:   make([]textinput.Model, len(week)),
		locked:   make([]bool, len(week)),
		focus:    -1,
	}

	for i, date := range week {
		ti := textinput.New()
		ti.Placeholder = dayNames[i]
		ti.CharLimit = 6
		ti.Width = 6
		ti.SetValue(timesheet.FormatMinutes(baseline[date]))
		m.inputs[i] = ti
		m.locked[i] = timesheet.Locked(date)
	}

	for i := range m.inputs {
		if !m.locked[i] {
			m.focus = i
			m.inputs[i].Focus()
			break
		}
	}

	return m
}

func (m weekModel) Update(msg tea.Msg) (weekModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "right", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "left", "up":
			m.moveFocus(-1)
			return m, nil
		}
	}

	if m.focus < 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *weekModel) moveFocus(dir int) {
	if m.focus < 0 {
		return
	}
	next := m.focus
	for i := 0; i < len(m.inputs); i++ {
		next = (next + dir + len(m.inputs)) % len(m.inputs)
		if !m.locked[next] {
			break
		}
	}
	if m.locked[next] {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = next
	m.inputs[m.focus].Focus()
}

// EditSet returns the raw text per unlocked day. Locked days never appear,
// so they can never produce a change op.
func (m weekModel) EditSet() map[time.Time]string {
	edits := make(map[time.Time]string, len(m.week))
	for i, date := range m.week {
		if m.locked[i] {
			continue
		}
		edits[date] = m.inputs[i].Value()
	}
	return edits
}

func (m weekModel) weekLabel() string {
	return fmt.Sprintf("%s — Week %s – %s",
		m.project.DisplayName(),
		m.week[0].Format("Jan 02"),
		m.week[len(m.week)-1].Format("Jan 02"),
	)
}

func (m weekModel) totalMinutes() int {
	total := 0
	for i, date := range m.week {
		if m.locked[i] {
			total += m.baseline[date]
			continue
		}
		total += timesheet.ParseHours(m.inputs[i].Value())
	}
	return total
}

func (m weekModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("clockweek"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.weekLabel()))
	b.WriteString("\n")

	cols := make([]string, len(m.week))
	for i, date := range m.week {
		caption := fmt.Sprintf("%s %s", dayNames[i], date.Format("02.01"))
		style := dayStyle
		switch {
		case m.locked[i]:
			style = lockedDayStyle
			caption += " *"
		case i == m.focus:
			style = focusedDayStyle
		}
		cols[i] = style.Render(caption + "\n" + m.inputs[i].View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	hours := timesheet.FormatMinutes(m.totalMinutes())
	if hours == "" {
		hours = "0"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("Total: %sh", hours)))

	return boxStyle.Render(b.String())
}
