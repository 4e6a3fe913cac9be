// Package testutil provides testing utilities for agentorg tests.
package testutil

import (
	"testing"

	"github.com/viosson/agentorg/internal/catalog"
	"github.com/viosson/agentorg/internal/org"
)

// AgentSpec describes one agent for SeedOrganization.
type AgentSpec struct {
	ID       string
	Name     string
	Dept     string
	Position string
	Skills   []string
}

// DefaultAgents is a small staffing that covers every seeded department.
var DefaultAgents = []AgentSpec{
	{ID: "pm_001", Name: "Alex Kim", Dept: "pm_dept", Position: "Senior PM", Skills: []string{"project_management", "leadership"}},
	{ID: "dev_001", Name: "Sam Reyes", Dept: "tech_dept", Position: "Senior Developer", Skills: []string{"programming", "system_design"}},
	{ID: "dev_002", Name: "Jo Park", Dept: "tech_dept", Position: "Junior Developer", Skills: []string{"programming", "testing"}},
	{ID: "analyst_001", Name: "Min Cho", Dept: "data_dept", Position: "Senior Analyst", Skills: []string{"data_analysis", "sql", "statistics"}},
}

// SeedOrganization builds a coordinator with the standard three-department
// layout and the given agents. Passing no agents staffs DefaultAgents.
func SeedOrganization(t *testing.T, agents ...AgentSpec) *org.Coordinator {
	t.Helper()

	c := org.NewCoordinator(org.Config{})
	departments := []struct {
		id, name  string
		dtype     catalog.DeptType
		positions []string
	}{
		{"pm_dept", "Project Management", catalog.DeptManagement, []string{"Senior PM", "PM Lead"}},
		{"tech_dept", "Technology", catalog.DeptTechnology, []string{"Senior Developer", "Junior Developer", "Tech Lead"}},
		{"data_dept", "Data", catalog.DeptData, []string{"Senior Analyst", "Junior Analyst", "Data Lead"}},
	}
	for _, d := range departments {
		if _, err := c.CreateDepartmentWithPositions(d.id, d.name, d.dtype, "", d.id+"_lead", d.name+" Lead", d.positions); err != nil {
			t.Fatalf("failed to seed department %s: %v", d.id, err)
		}
	}

	if len(agents) == 0 {
		agents = DefaultAgents
	}
	for _, a := range agents {
		if _, err := c.AddAgent(a.Dept, catalog.Agent{
			ID:       a.ID,
			Name:     a.Name,
			Position: catalog.Position{Name: a.Position},
			Skills:   a.Skills,
		}); err != nil {
			t.Fatalf("failed to seed agent %s: %v", a.ID, err)
		}
	}
	return c
}
