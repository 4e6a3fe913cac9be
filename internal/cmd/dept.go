package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viosson/agentorg/internal/catalog"
)

var deptCmd = &cobra.Command{
	Use:   "dept",
	Short: "Manage departments, positions, and their agents",
}

var deptCreateCmd = &cobra.Command{
	Use:   "create <id> <name>",
	Short: "Create a department",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		dtype, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")
		leadID, _ := cmd.Flags().GetString("lead-id")
		leadName, _ := cmd.Flags().GetString("lead-name")
		positions, _ := cmd.Flags().GetStringSlice("positions")

		d, err := app.Coordinator.CreateDepartmentWithPositions(
			args[0], args[1], catalog.DeptType(dtype), description, leadID, leadName, positions)
		if err != nil {
			return err
		}

		fmt.Printf("Created department %s (%s) with %d positions\n", d.ID, d.Type, len(d.Positions))
		return nil
	},
}

var deptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		typeFilter, _ := cmd.Flags().GetString("type")
		for _, d := range app.Coordinator.Departments().Departments() {
			if typeFilter != "" && string(d.Type) != typeFilter {
				continue
			}
			names := make([]string, 0, len(d.Positions))
			for _, pg := range d.Positions {
				names = append(names, pg.Position.Name)
			}
			fmt.Printf("%-16s %-12s lead=%s agents=%d/%d available  positions: %s\n",
				d.ID, d.Type, d.LeadName, d.AgentCount(), d.AvailableCount(), strings.Join(names, ", "))
		}
		return nil
	},
}

var deptAddPositionCmd = &cobra.Command{
	Use:   "add-position <dept-id> <name>",
	Short: "Register a position in a department",
	Long: `Registers a position in a department's catalog. With --preset the
definition comes from the predefined catalog for the department's type;
otherwise --level and --max-agents describe it explicitly.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		deptID, name := args[0], args[1]
		preset, _ := cmd.Flags().GetBool("preset")

		var pos catalog.Position
		if preset {
			d, err := app.Coordinator.Departments().Department(deptID)
			if err != nil {
				return err
			}
			p, ok := catalog.PredefinedPosition(d.Type, name)
			if !ok {
				return fmt.Errorf("no predefined position %q for department type %s", name, d.Type)
			}
			pos = p
		} else {
			level, _ := cmd.Flags().GetString("level")
			description, _ := cmd.Flags().GetString("description")
			skills, _ := cmd.Flags().GetStringSlice("skills")
			maxAgents, _ := cmd.Flags().GetInt("max-agents")
			pos = catalog.Position{
				Name:           name,
				Level:          catalog.Level(level),
				Description:    description,
				RequiredSkills: skills,
				MaxAgents:      maxAgents,
			}
		}

		if err := app.Coordinator.Departments().AddPosition(deptID, pos); err != nil {
			return err
		}
		fmt.Printf("Added position %q to %s\n", pos.Name, deptID)
		return nil
	},
}

var deptAddAgentCmd = &cobra.Command{
	Use:   "add-agent <dept-id> <agent-id> <agent-name>",
	Short: "Place an agent into a department position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		position, _ := cmd.Flags().GetString("position")
		skills, _ := cmd.Flags().GetStringSlice("skills")

		a, err := app.Coordinator.AddAgent(args[0], catalog.Agent{
			ID:       args[1],
			Name:     args[2],
			Position: catalog.Position{Name: position},
			Skills:   skills,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s) to %s as %s\n", a.ID, a.Name, args[0], a.Position.Name)
		return nil
	},
}

func init() {
	deptCreateCmd.Flags().String("type", "", "department type (management, technology, data, product, operations)")
	deptCreateCmd.Flags().String("description", "", "department description")
	deptCreateCmd.Flags().String("lead-id", "", "department lead agent id")
	deptCreateCmd.Flags().String("lead-name", "", "department lead name")
	deptCreateCmd.Flags().StringSlice("positions", nil, "predefined positions to register (by name)")
	_ = deptCreateCmd.MarkFlagRequired("type")

	deptListCmd.Flags().String("type", "", "only departments of this type")

	deptAddPositionCmd.Flags().Bool("preset", false, "use the predefined position for the department's type")
	deptAddPositionCmd.Flags().String("level", "", "position level (intern, junior, senior, lead, manager)")
	deptAddPositionCmd.Flags().String("description", "", "position description")
	deptAddPositionCmd.Flags().StringSlice("skills", nil, "required skills")
	deptAddPositionCmd.Flags().Int("max-agents", 1, "maximum agents in this position")

	deptAddAgentCmd.Flags().String("position", "", "position name the agent will hold")
	deptAddAgentCmd.Flags().StringSlice("skills", nil, "agent skills")
	_ = deptAddAgentCmd.MarkFlagRequired("position")

	deptCmd.AddCommand(deptCreateCmd, deptListCmd, deptAddPositionCmd, deptAddAgentCmd)
	rootCmd.AddCommand(deptCmd)
}
