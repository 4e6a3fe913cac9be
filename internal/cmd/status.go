package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/viosson/agentorg/internal/unit"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("62")).
				Padding(0, 2)

	statusSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginTop(1)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	statusValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	statusBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print an organization-wide status report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		s := app.Coordinator.Status()
		var b strings.Builder

		b.WriteString(statusTitleStyle.Render("Organization Status | "+s.Timestamp.Format("2006-01-02 15:04:05")) + "\n")

		b.WriteString(statusSectionStyle.Render("Departments") + "\n")
		b.WriteString(row("total", fmt.Sprintf("%d", s.Departments.Departments)))
		for _, d := range s.Departments.PerDepartment {
			b.WriteString(row(d.Name+" ("+string(d.Type)+")",
				fmt.Sprintf("%d agents, %d available", d.TotalAgents, d.AvailableAgents)))
		}

		b.WriteString(statusSectionStyle.Render("Personnel") + "\n")
		b.WriteString(row("total agents", fmt.Sprintf("%d", s.Departments.TotalAgents)))
		b.WriteString(row("available", fmt.Sprintf("%d", s.Departments.AvailableAgents)))
		b.WriteString(row("assigned", fmt.Sprintf("%d", s.Departments.AssignedAgents)))
		b.WriteString(row("utilization", fmt.Sprintf("%.1f%%", s.UtilizationRate*100)))

		b.WriteString(statusSectionStyle.Render("Units") + "\n")
		b.WriteString(row("total", fmt.Sprintf("%d", s.Units.Units)))
		b.WriteString(row("members", fmt.Sprintf("%d", s.Units.TotalMembers)))
		b.WriteString(row("tasks", fmt.Sprintf("%d", s.Units.TotalTasks)))
		for _, st := range unit.AllStatuses {
			b.WriteString(row(string(st), fmt.Sprintf("%d", s.Units.ByStatus[st])))
		}

		fmt.Println(statusBoxStyle.Render(b.String()))
		return nil
	},
}

func row(label, value string) string {
	return fmt.Sprintf("  %s %s\n",
		statusLabelStyle.Render(fmt.Sprintf("%-28s", label)),
		statusValueStyle.Render(value))
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
