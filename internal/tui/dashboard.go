// Package tui implements a read-only terminal dashboard over the
// organization registries. It only calls coordinator and registry read
// operations; all mutation happens through the CLI.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viosson/agentorg/internal/catalog"
	"github.com/viosson/agentorg/internal/org"
	"github.com/viosson/agentorg/internal/unit"
)

type viewMode int

const (
	viewDepartments viewMode = iota
	viewUnits
)

type tickMsg time.Time

// Model is the bubbletea model for the dashboard.
type Model struct {
	coord   *org.Coordinator
	refresh time.Duration

	mode   viewMode
	cursor int
	width  int
	height int

	status org.Status
	depts  []catalog.Department
	units  []unit.Unit

	styles Styles
}

// New creates a dashboard over the given coordinator that reloads every
// refresh interval.
func New(coord *org.Coordinator, refresh time.Duration) Model {
	m := Model{
		coord:   coord,
		refresh: refresh,
		styles:  DefaultStyles(),
	}
	m.reload()
	return m
}

// Run starts the dashboard in the alternate screen until the user quits.
func Run(coord *org.Coordinator, refresh time.Duration) error {
	_, err := tea.NewProgram(New(coord, refresh), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) reload() {
	m.status = m.coord.Status()
	m.depts = m.coord.Departments().Departments()
	m.units = m.coord.Units().Units()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.reload()
		m.clampCursor()
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "v":
			if m.mode == viewDepartments {
				m.mode = viewUnits
			} else {
				m.mode = viewDepartments
			}
			m.cursor = 0
		case "j", "down":
			m.cursor++
			m.clampCursor()
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			m.reload()
			m.clampCursor()
		}
	}
	return m, nil
}

func (m *Model) clampCursor() {
	max := len(m.depts)
	if m.mode == viewUnits {
		max = len(m.units)
	}
	if m.cursor >= max && m.cursor > 0 {
		m.cursor = max - 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("agentorg | %d departments, %d agents (%d available), %d units, %.0f%% utilization",
		m.status.Departments.Departments,
		m.status.Departments.TotalAgents,
		m.status.Departments.AvailableAgents,
		m.status.Units.Units,
		m.status.UtilizationRate*100)
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	if m.mode == viewDepartments {
		b.WriteString(m.departmentsView())
	} else {
		b.WriteString(m.unitsView())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  tab: switch view │ j/k: move │ r: refresh │ q: quit"))

	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 100
	}
	return m.styles.Border.Width(maxWidth).Render(b.String())
}

func (m Model) departmentsView() string {
	var b strings.Builder
	if len(m.depts) == 0 {
		b.WriteString(m.styles.Dim.Render("  No departments. Run 'agentorg seed' to create the defaults."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-16s %-12s %-20s %-10s %-10s", "ID", "Type", "Lead", "Agents", "Available")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")
	for i, d := range m.depts {
		row := fmt.Sprintf("  %-16s %-12s %-20s %-10d %-10d",
			truncate(d.ID, 16), d.Type, truncate(d.LeadName, 20), d.AgentCount(), d.AvailableCount())
		if i == m.cursor {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	// Agent detail for the selected department
	if m.cursor < len(m.depts) {
		d := m.depts[m.cursor]
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  ── " + d.Name + " ──"))
		b.WriteString("\n")
		for _, pg := range d.Positions {
			b.WriteString(fmt.Sprintf("  %s (%d/%d)\n", pg.Position.Name, len(pg.Agents), pg.Position.MaxAgents))
			for _, a := range pg.Agents {
				state := m.styles.Available.Render("available")
				if !a.Available {
					state = m.styles.Assigned.Render("→ " + a.AssignedUnitID)
				}
				b.WriteString(fmt.Sprintf("    %-12s %-20s %s\n", a.ID, truncate(a.Name, 20), state))
			}
		}
	}
	return b.String()
}

func (m Model) unitsView() string {
	var b strings.Builder
	if len(m.units) == 0 {
		b.WriteString(m.styles.Dim.Render("  No units."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-12s %-24s %-12s %-9s %-8s %-6s", "ID", "Name", "Status", "Priority", "Members", "Tasks")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")
	for i, u := range m.units {
		status := m.styledStatus(u.Status)
		// Pad styled status to 12 visual characters (fmt %-12s counts
		// bytes which breaks with ANSI escape codes from lipgloss).
		if w := lipgloss.Width(status); w < 12 {
			status += strings.Repeat(" ", 12-w)
		}
		row := fmt.Sprintf("  %-12s %-24s %s %-9d %-8d %-6d",
			truncate(u.ID, 12), truncate(u.Name, 24), status, u.Priority, u.MemberCount().Total, len(u.Tasks))
		if i == m.cursor {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if m.cursor < len(m.units) {
		u := m.units[m.cursor]
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  ── " + u.Name + " ──"))
		b.WriteString("\n")
		for _, mem := range u.Members() {
			b.WriteString(fmt.Sprintf("    %-10s %-12s %-20s %s\n",
				mem.Role, mem.AgentID, truncate(mem.AgentName, 20), mem.Responsibilities))
		}
	}
	return b.String()
}

func (m Model) styledStatus(s unit.Status) string {
	switch s {
	case unit.StatusForming:
		return m.styles.Forming.Render(string(s))
	case unit.StatusActive:
		return m.styles.Active.Render(string(s))
	case unit.StatusPaused:
		return m.styles.Paused.Render(string(s))
	default:
		return m.styles.Terminal.Render(string(s))
	}
}

func truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
