package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clockweek/internal/clockify"
)

const pickerVisible = 15

// projectPickerModel is a filterable single-select list of projects.
type projectPickerModel struct {
	projects []clockify.Project
	filtered []int // indices into projects
	cursor   int
	filter   textinput.Model
	choice   int // index into projects, -1 until chosen
}

func newProjectPicker(projects []clockify.Project) projectPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter projects..."
	ti.Focus()

	filtered := make([]int, len(projects))
	for i := range projects {
		filtered[i] = i
	}

	return projectPickerModel{
		projects: projects,
		filtered: filtered,
		filter:   ti,
		choice:   -1,
	}
}

func (m projectPickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m projectPickerModel) Update(msg tea.Msg) (projectPickerModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.cursor]
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	prevFilter := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)

	if m.filter.Value() != prevFilter {
		m.applyFilter()
	}

	return m, cmd
}

func (m *projectPickerModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.filtered = m.filtered[:0]
	for i, p := range m.projects {
		if query == "" ||
			strings.Contains(strings.ToLower(p.DisplayName()), query) ||
			strings.Contains(strings.ToLower(p.Name), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m projectPickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select Project"))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No projects match filter"))
		b.WriteString("\n")
	} else {
		start := 0
		if m.cursor >= pickerVisible {
			start = m.cursor - pickerVisible + 1
		}
		end := min(start+pickerVisible, len(m.filtered))

		for vi := start; vi < end; vi++ {
			p := m.projects[m.filtered[vi]]

			cursor := "  "
			if vi == m.cursor {
				cursor = "> "
			}

			line := fmt.Sprintf("%s%s", cursor, p.DisplayName())
			if vi == m.cursor {
				line = highlightStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("\nEnter: open week — Esc: quit"))

	return b.String()
}
