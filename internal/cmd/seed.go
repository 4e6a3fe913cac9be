package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viosson/agentorg/internal/catalog"
	"github.com/viosson/agentorg/internal/org"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default organization structure",
	Long: `Creates the standard three-department organization: project management,
technology, and data, each with its predefined positions. Existing
departments are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := SeedDefaultOrganization(app.Coordinator); err != nil {
			return err
		}
		fmt.Println("Default organization created")
		return nil
	},
}

// SeedDefaultOrganization builds the standard department layout on the
// given coordinator.
func SeedDefaultOrganization(c *org.Coordinator) error {
	departments := []struct {
		id, name    string
		dtype       catalog.DeptType
		description string
		leadID      string
		leadName    string
		positions   []string
	}{
		{
			id: "pm_dept", name: "Project Management", dtype: catalog.DeptManagement,
			description: "Plans and manages all projects",
			leadID:      "pm_lead_001", leadName: "Head of Project Management",
			positions: []string{"Senior PM", "PM Lead"},
		},
		{
			id: "tech_dept", name: "Technology", dtype: catalog.DeptTechnology,
			description: "Builds and operates the systems",
			leadID:      "tech_lead_001", leadName: "Head of Engineering",
			positions: []string{"Senior Developer", "Junior Developer", "Tech Lead"},
		},
		{
			id: "data_dept", name: "Data", dtype: catalog.DeptData,
			description: "Analysis and business insight",
			leadID:      "data_lead_001", leadName: "Head of Data",
			positions: []string{"Senior Analyst", "Junior Analyst", "Data Lead"},
		},
	}

	for _, d := range departments {
		_, err := c.CreateDepartmentWithPositions(d.id, d.name, d.dtype, d.description, d.leadID, d.leadName, d.positions)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
