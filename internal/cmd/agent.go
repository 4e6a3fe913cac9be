package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Inspect and manage individual agents",
}

var agentShowCmd = &cobra.Command{
	Use:   "show <agent-id>",
	Short: "Show an agent's position and assignment state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		a, err := app.Coordinator.Departments().Agent(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Agent %s: %s\n", a.ID, a.Name)
		fmt.Printf("  department: %s\n", a.DepartmentID)
		fmt.Printf("  position:   %s (%s)\n", a.Position.Name, a.Position.Level)
		fmt.Printf("  skills:     %s\n", strings.Join(a.Skills, ", "))
		if a.Available {
			fmt.Println("  status:     available")
		} else {
			fmt.Printf("  status:     assigned to unit %s\n", a.AssignedUnitID)
		}
		fmt.Printf("  joined:     %s\n", a.JoinedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var agentReleaseCmd = &cobra.Command{
	Use:   "release <agent-id>",
	Short: "Release an agent from its unit back to its department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Coordinator.ReleaseAgent(args[0]); err != nil {
			return err
		}
		fmt.Printf("Released %s\n", args[0])
		return nil
	},
}

var agentRemoveCmd = &cobra.Command{
	Use:   "remove <dept-id> <agent-id> <position>",
	Short: "Remove an agent from a department position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Coordinator.Departments().RemoveAgent(args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Removed %s from %s/%s\n", args[1], args[0], args[2])
		return nil
	},
}

func init() {
	agentCmd.AddCommand(agentShowCmd, agentReleaseCmd, agentRemoveCmd)
	rootCmd.AddCommand(agentCmd)
}
