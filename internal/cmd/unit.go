package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viosson/agentorg/internal/unit"
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Manage project units and their lifecycle",
}

var unitCreateCmd = &cobra.Command{
	Use:   "create <id> <name>",
	Short: "Create a unit led by an existing agent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		description, _ := cmd.Flags().GetString("description")
		leadID, _ := cmd.Flags().GetString("lead")
		projectID, _ := cmd.Flags().GetString("project")
		priority, _ := cmd.Flags().GetInt("priority")

		u, err := app.Coordinator.CreateUnitFromAgent(args[0], args[1], description, leadID, projectID, priority)
		if err != nil {
			return err
		}
		fmt.Printf("Created unit %s led by %s (%s)\n", u.ID, u.Lead.AgentName, u.Lead.AgentID)
		return nil
	},
}

var unitAddExecutorCmd = &cobra.Command{
	Use:   "add-executor <unit-id> <agent-id>",
	Short: "Add an available agent to a unit as executor",
	Args:  cobra.ExactArgs(2),
	RunE: runAddMember(func(app *App, unitID, agentID, resp string) error {
		return app.Coordinator.AddExecutor(unitID, agentID, resp)
	}),
}

var unitAddSupporterCmd = &cobra.Command{
	Use:   "add-supporter <unit-id> <agent-id>",
	Short: "Add an available agent to a unit as supporter",
	Args:  cobra.ExactArgs(2),
	RunE: runAddMember(func(app *App, unitID, agentID, resp string) error {
		return app.Coordinator.AddSupporter(unitID, agentID, resp)
	}),
}

func runAddMember(add func(app *App, unitID, agentID, responsibilities string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		responsibilities, _ := cmd.Flags().GetString("responsibilities")
		if err := add(app, args[0], args[1], responsibilities); err != nil {
			return err
		}
		fmt.Printf("Added %s to unit %s\n", args[1], args[0])
		return nil
	}
}

var unitLifecycleCmds = []*cobra.Command{
	{
		Use: "activate <unit-id>", Short: "Move a forming unit to active", Args: cobra.ExactArgs(1),
		RunE: runTransition(func(app *App, id string) error { return app.Coordinator.Units().Activate(id) }),
	},
	{
		Use: "pause <unit-id>", Short: "Pause an active unit", Args: cobra.ExactArgs(1),
		RunE: runTransition(func(app *App, id string) error { return app.Coordinator.Units().Pause(id) }),
	},
	{
		Use: "resume <unit-id>", Short: "Resume a paused unit", Args: cobra.ExactArgs(1),
		RunE: runTransition(func(app *App, id string) error { return app.Coordinator.Units().Resume(id) }),
	},
	{
		Use: "complete <unit-id>", Short: "Complete a unit and release its members", Args: cobra.ExactArgs(1),
		RunE: runTransition(func(app *App, id string) error { return app.Coordinator.CompleteUnit(id) }),
	},
	{
		Use: "disband <unit-id>", Short: "Disband a unit and release its members", Args: cobra.ExactArgs(1),
		RunE: runTransition(func(app *App, id string) error { return app.Coordinator.DisbandUnit(id) }),
	},
}

func runTransition(op func(app *App, unitID string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := op(app, args[0]); err != nil {
			return err
		}
		u, err := app.Coordinator.Units().Unit(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Unit %s is now %s\n", u.ID, u.Status)
		return nil
	}
}

var unitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List units",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		name, _ := cmd.Flags().GetString("name")
		status, _ := cmd.Flags().GetString("status")
		project, _ := cmd.Flags().GetString("project")

		units := app.Coordinator.Units().Search(unit.Filter{
			Name:      name,
			Status:    unit.Status(status),
			ProjectID: project,
		})
		for _, u := range units {
			mc := u.MemberCount()
			fmt.Printf("%-12s %-24s %-10s priority=%-2d members=%d tasks=%d\n",
				u.ID, u.Name, u.Status, u.Priority, mc.Total, len(u.Tasks))
		}
		return nil
	},
}

var unitShowCmd = &cobra.Command{
	Use:   "show <unit-id>",
	Short: "Show one unit in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		u, err := app.Coordinator.Units().Unit(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Unit %s: %s [%s] priority=%d\n", u.ID, u.Name, u.Status, u.Priority)
		if u.Description != "" {
			fmt.Printf("  %s\n", u.Description)
		}
		if u.ProjectID != "" {
			fmt.Printf("  project: %s\n", u.ProjectID)
		}
		if u.Lead != nil {
			fmt.Printf("  lead: %s (%s) from %s/%s\n", u.Lead.AgentName, u.Lead.AgentID, u.Lead.DepartmentID, u.Lead.PositionName)
		}
		for _, m := range u.Executors {
			fmt.Printf("  executor: %s (%s) %s\n", m.AgentName, m.AgentID, m.Responsibilities)
		}
		for _, m := range u.Supporters {
			fmt.Printf("  supporter: %s (%s) %s\n", m.AgentName, m.AgentID, m.Responsibilities)
		}
		for _, task := range u.Tasks {
			fmt.Printf("  task %s: %s [%s] priority=%d\n", task.ID, task.Name, task.Status, task.Priority)
		}
		return nil
	},
}

var unitAssignTaskCmd = &cobra.Command{
	Use:   "assign-task <unit-id> <name>",
	Short: "Assign a work item to a unit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		description, _ := cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetInt("priority")

		task, err := app.Coordinator.AssignTask(args[0], unit.Task{
			Name:        args[1],
			Description: description,
			Priority:    priority,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Assigned task %s to unit %s\n", task.ID, args[0])
		return nil
	},
}

func init() {
	unitCreateCmd.Flags().String("description", "", "unit description")
	unitCreateCmd.Flags().String("lead", "", "agent id of the unit lead")
	unitCreateCmd.Flags().String("project", "", "project id")
	unitCreateCmd.Flags().Int("priority", 0, "unit priority (0-10)")
	_ = unitCreateCmd.MarkFlagRequired("lead")

	unitAddExecutorCmd.Flags().String("responsibilities", "", "member responsibilities")
	unitAddSupporterCmd.Flags().String("responsibilities", "", "member responsibilities")

	unitListCmd.Flags().String("name", "", "case-insensitive name substring")
	unitListCmd.Flags().String("status", "", "unit status filter")
	unitListCmd.Flags().String("project", "", "project id filter")

	unitAssignTaskCmd.Flags().String("description", "", "task description")
	unitAssignTaskCmd.Flags().Int("priority", 0, "task priority")

	unitCmd.AddCommand(unitCreateCmd, unitAddExecutorCmd, unitAddSupporterCmd, unitListCmd, unitShowCmd, unitAssignTaskCmd)
	unitCmd.AddCommand(unitLifecycleCmds...)
	rootCmd.AddCommand(unitCmd)
}
