package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viosson/agentorg/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find agents available to staff a unit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		skills, _ := cmd.Flags().GetStringSlice("skills")
		level, _ := cmd.Flags().GetString("level")
		deptType, _ := cmd.Flags().GetString("dept-type")
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		filter := catalog.Filter{
			Skills:   skills,
			Level:    catalog.Level(level),
			DeptType: catalog.DeptType(deptType),
		}

		var agents []catalog.Agent
		if all {
			agents = app.Coordinator.Departments().Search(filter)
			if limit > 0 && len(agents) > limit {
				agents = agents[:limit]
			}
		} else {
			agents = app.Coordinator.FindAgentsForUnit(filter, limit)
		}

		if len(agents) == 0 {
			fmt.Println("No matching agents")
			return nil
		}
		for _, a := range agents {
			state := "available"
			if !a.Available {
				state = "assigned to " + a.AssignedUnitID
			}
			fmt.Printf("%-12s %-20s %-18s %-8s %-24s %s\n",
				a.ID, a.Name, a.Position.Name, a.Position.Level, strings.Join(a.Skills, ","), state)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSlice("skills", nil, "match agents holding any of these skills")
	searchCmd.Flags().String("level", "", "position level filter")
	searchCmd.Flags().String("dept-type", "", "department type filter")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = unlimited)")
	searchCmd.Flags().Bool("all", false, "include agents already assigned to units")
	rootCmd.AddCommand(searchCmd)
}
