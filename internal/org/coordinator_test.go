package org

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/viosson/agentorg/internal/catalog"
	"github.com/viosson/agentorg/internal/errors"
	"github.com/viosson/agentorg/internal/event"
	"github.com/viosson/agentorg/internal/unit"
)

// newTestOrg builds a coordinator with a seeded tech department:
// pm_001 (Tech Lead), dev_001 and dev_002 (Senior Developer).
func newTestOrg(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator(Config{})

	_, err := c.CreateDepartmentWithPositions("tech_dept", "Technology", catalog.DeptTechnology,
		"builds the product", "pm_001", "Alex Kim",
		[]string{"Senior Developer", "Tech Lead"})
	if err != nil {
		t.Fatalf("CreateDepartmentWithPositions failed: %v", err)
	}

	add := func(id, name, position string, skills []string) {
		t.Helper()
		_, err := c.AddAgent("tech_dept", catalog.Agent{
			ID:       id,
			Name:     name,
			Position: catalog.Position{Name: position},
			Skills:   skills,
		})
		if err != nil {
			t.Fatalf("AddAgent(%s) failed: %v", id, err)
		}
	}
	add("pm_001", "Alex Kim", "Tech Lead", []string{"programming", "leadership"})
	add("dev_001", "Sam Reyes", "Senior Developer", []string{"programming", "system_design"})
	add("dev_002", "Jo Park", "Senior Developer", []string{"programming", "testing"})
	return c
}

func mustAvailability(t *testing.T, c *Coordinator, agentID string, want bool) {
	t.Helper()
	ag, err := c.Departments().Agent(agentID)
	if err != nil {
		t.Fatalf("Agent(%s) failed: %v", agentID, err)
	}
	if ag.Available != want {
		t.Errorf("agent %s available = %v, want %v (assigned to %q)", agentID, ag.Available, want, ag.AssignedUnitID)
	}
}

func TestCoordinator_CreateUnitFromAgent(t *testing.T) {
	c := newTestOrg(t)

	u, err := c.CreateUnitFromAgent("u1", "Payments", "payment flows", "pm_001", "proj_1", 5)
	if err != nil {
		t.Fatalf("CreateUnitFromAgent failed: %v", err)
	}
	if u.Lead == nil || u.Lead.AgentID != "pm_001" {
		t.Fatalf("unit lead = %+v", u.Lead)
	}
	if u.Lead.PositionName != "Tech Lead" || u.Lead.DepartmentID != "tech_dept" {
		t.Errorf("lead snapshot = %+v, want position and department from the catalog", u.Lead)
	}

	mustAvailability(t, c, "pm_001", false)
	ag, _ := c.Departments().Agent("pm_001")
	if ag.AssignedUnitID != "u1" {
		t.Errorf("assigned unit = %q, want u1", ag.AssignedUnitID)
	}
}

func TestCoordinator_CreateUnitFromAgent_Failures(t *testing.T) {
	c := newTestOrg(t)

	if _, err := c.CreateUnitFromAgent("u1", "X", "", "ghost", "", 5); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown lead: got %v, want not found", err)
	}

	if _, err := c.CreateUnitFromAgent("u1", "X", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}

	// Duplicate unit id must not change dev_001's availability.
	if _, err := c.CreateUnitFromAgent("u1", "Y", "", "dev_001", "", 5); !errors.Is(err, errors.ErrAlreadyExists) {
		t.Errorf("duplicate unit id: got %v, want already exists", err)
	}
	mustAvailability(t, c, "dev_001", true)

	// A committed agent cannot lead a second unit.
	if _, err := c.CreateUnitFromAgent("u2", "Z", "", "pm_001", "", 5); !errors.Is(err, errors.ErrAgentUnavailable) {
		t.Errorf("busy lead: got %v, want agent unavailable", err)
	}
}

func TestCoordinator_AddExecutorAndSupporter(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}

	if err := c.AddExecutor("u1", "dev_001", "implements the flows"); err != nil {
		t.Fatalf("AddExecutor failed: %v", err)
	}
	if err := c.AddSupporter("u1", "dev_002", "reviews"); err != nil {
		t.Fatalf("AddSupporter failed: %v", err)
	}

	mustAvailability(t, c, "dev_001", false)
	mustAvailability(t, c, "dev_002", false)

	u, _ := c.Units().Unit("u1")
	if len(u.Executors) != 1 || u.Executors[0].Responsibilities != "implements the flows" {
		t.Errorf("executors = %+v", u.Executors)
	}
	if len(u.Supporters) != 1 {
		t.Errorf("supporters = %+v", u.Supporters)
	}

	// A committed agent cannot join another unit.
	if err := c.AddExecutor("u1", "dev_001", ""); !errors.Is(err, errors.ErrAgentUnavailable) {
		t.Errorf("re-adding committed agent: got %v, want agent unavailable", err)
	}
}

func TestCoordinator_AddExecutor_FailFast(t *testing.T) {
	c := newTestOrg(t)

	// No such unit: the agent must stay available.
	if err := c.AddExecutor("ghost", "dev_001", ""); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown unit: got %v, want not found", err)
	}
	mustAvailability(t, c, "dev_001", true)

	if err := c.AddExecutor("ghost", "nobody", ""); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown agent: got %v, want not found", err)
	}
}

func TestCoordinator_ReleaseAgent(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}
	if err := c.AddExecutor("u1", "dev_001", ""); err != nil {
		t.Fatal(err)
	}

	if err := c.ReleaseAgent("dev_001"); err != nil {
		t.Fatalf("ReleaseAgent failed: %v", err)
	}
	mustAvailability(t, c, "dev_001", true)

	// The unit keeps historical membership.
	u, _ := c.Units().Unit("u1")
	if !u.HasMember("dev_001") {
		t.Error("release must not edit the unit's member list")
	}

	// Releasing an available agent is a no-op success.
	if err := c.ReleaseAgent("dev_001"); err != nil {
		t.Errorf("double release: got %v, want nil", err)
	}
	if err := c.ReleaseAgent("ghost"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown agent: got %v, want not found", err)
	}
}

func TestCoordinator_DisbandUnit(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}
	if err := c.AddExecutor("u1", "dev_001", ""); err != nil {
		t.Fatal(err)
	}

	var released int
	c.Bus().Subscribe("agent.released", func(event.Event) { released++ })

	if err := c.DisbandUnit("u1"); err != nil {
		t.Fatalf("DisbandUnit failed: %v", err)
	}

	mustAvailability(t, c, "pm_001", true)
	mustAvailability(t, c, "dev_001", true)
	u, _ := c.Units().Unit("u1")
	if u.Status != unit.StatusDisbanded {
		t.Errorf("status = %s, want disbanded", u.Status)
	}
	if released != 2 {
		t.Errorf("released %d agents, want 2", released)
	}

	// Re-disband is rejected by the state machine, availability untouched.
	if err := c.DisbandUnit("u1"); !errors.Is(err, errors.ErrInvalidTransition) {
		t.Errorf("re-disband: got %v, want transition error", err)
	}
	mustAvailability(t, c, "pm_001", true)
}

func TestCoordinator_DisbandSkipsReassignedAgents(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "One", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}
	if err := c.AddExecutor("u1", "dev_001", ""); err != nil {
		t.Fatal(err)
	}

	// dev_001 leaves u1 and joins u2; disbanding u1 must not release it.
	if err := c.ReleaseAgent("dev_001"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CreateUnitFromAgent("u2", "Two", "", "dev_001", "", 5); err != nil {
		t.Fatal(err)
	}

	if err := c.DisbandUnit("u1"); err != nil {
		t.Fatalf("DisbandUnit failed: %v", err)
	}
	mustAvailability(t, c, "dev_001", false)
	ag, _ := c.Departments().Agent("dev_001")
	if ag.AssignedUnitID != "u2" {
		t.Errorf("dev_001 assigned to %q, want u2", ag.AssignedUnitID)
	}
}

func TestCoordinator_CompleteUnitReleasesMembers(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}
	if err := c.AddExecutor("u1", "dev_001", ""); err != nil {
		t.Fatal(err)
	}
	if err := c.Units().Activate("u1"); err != nil {
		t.Fatal(err)
	}

	if err := c.CompleteUnit("u1"); err != nil {
		t.Fatalf("CompleteUnit failed: %v", err)
	}
	mustAvailability(t, c, "pm_001", true)
	mustAvailability(t, c, "dev_001", true)
	u, _ := c.Units().Unit("u1")
	if u.Status != unit.StatusCompleted {
		t.Errorf("status = %s, want completed", u.Status)
	}
}

func TestCoordinator_FindAgentsForUnit(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "dev_001", "", 5); err != nil {
		t.Fatal(err)
	}

	// Pre-biased toward available agents: dev_001 must never show up.
	agents := c.FindAgentsForUnit(catalog.Filter{Skills: []string{"programming"}}, 0)
	for _, a := range agents {
		if a.ID == "dev_001" {
			t.Error("search returned a committed agent")
		}
		if !a.Available {
			t.Errorf("search returned unavailable agent %s", a.ID)
		}
	}
	if len(agents) != 2 {
		t.Errorf("found %d agents, want 2", len(agents))
	}

	if got := c.FindAgentsForUnit(catalog.Filter{Skills: []string{"programming"}}, 1); len(got) != 1 {
		t.Errorf("limit 1 returned %d agents", len(got))
	}
}

func TestCoordinator_Status(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}
	if err := c.AddExecutor("u1", "dev_001", ""); err != nil {
		t.Fatal(err)
	}

	s := c.Status()
	if s.Departments.TotalAgents != 3 {
		t.Errorf("TotalAgents = %d, want 3", s.Departments.TotalAgents)
	}
	if s.Units.TotalMembers != 2 {
		t.Errorf("TotalMembers = %d, want 2", s.Units.TotalMembers)
	}
	want := 2.0 / 3.0
	if s.UtilizationRate < want-1e-9 || s.UtilizationRate > want+1e-9 {
		t.Errorf("UtilizationRate = %f, want %f", s.UtilizationRate, want)
	}

	// Empty org never divides by zero.
	empty := NewCoordinator(Config{})
	if got := empty.Status().UtilizationRate; got != 0 {
		t.Errorf("empty utilization = %f, want 0", got)
	}
}

func TestCoordinator_AssignTaskPublishesEvent(t *testing.T) {
	c := newTestOrg(t)
	if _, err := c.CreateUnitFromAgent("u1", "Payments", "", "pm_001", "", 5); err != nil {
		t.Fatal(err)
	}

	var got event.Event
	c.Bus().Subscribe("task.assigned", func(e event.Event) { got = e })

	task, err := c.AssignTask("u1", unit.Task{Name: "ship it"})
	if err != nil {
		t.Fatalf("AssignTask failed: %v", err)
	}
	te, ok := got.(event.TaskAssignedEvent)
	if !ok {
		t.Fatalf("event = %T, want TaskAssignedEvent", got)
	}
	if te.TaskID != task.ID || te.UnitID != "u1" {
		t.Errorf("event = %+v", te)
	}
}

// TestCoordinator_AvailabilityInvariant drives a random operation sequence
// and checks after every step that an agent is unavailable exactly when it
// is committed to a non-terminal unit.
func TestCoordinator_AvailabilityInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := NewCoordinator(Config{})

	if _, err := c.CreateDepartmentWithPositions("tech_dept", "Technology", catalog.DeptTechnology,
		"", "lead_001", "Lead", []string{"Senior Developer", "Junior Developer"}); err != nil {
		t.Fatal(err)
	}
	var agentIDs []string
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("agent_%03d", i)
		pos := "Senior Developer"
		if i%2 == 1 {
			pos = "Junior Developer"
		}
		if _, err := c.AddAgent("tech_dept", catalog.Agent{
			ID: id, Name: id, Position: catalog.Position{Name: pos},
			Skills: []string{"programming"},
		}); err != nil {
			t.Fatal(err)
		}
		agentIDs = append(agentIDs, id)
	}

	var unitIDs []string
	nextUnit := 0

	checkInvariant := func(step int) {
		t.Helper()
		// committed[agentID] = id of the non-terminal unit holding it
		committed := make(map[string]string)
		for _, u := range c.Units().Units() {
			if u.Status.IsTerminal() {
				continue
			}
			for _, m := range u.Members() {
				ag, err := c.Departments().Agent(m.AgentID)
				if err != nil {
					continue
				}
				// historical members released earlier don't count
				if !ag.Available && ag.AssignedUnitID == u.ID {
					committed[m.AgentID] = u.ID
				}
			}
		}
		for _, id := range agentIDs {
			ag, err := c.Departments().Agent(id)
			if err != nil {
				t.Fatalf("step %d: %v", step, err)
			}
			unitID, isCommitted := committed[id]
			if ag.Available == isCommitted {
				t.Fatalf("step %d: agent %s available=%v but committed=%v", step, id, ag.Available, isCommitted)
			}
			if !ag.Available && ag.AssignedUnitID != unitID {
				t.Fatalf("step %d: agent %s assigned to %q, committed unit %q", step, id, ag.AssignedUnitID, unitID)
			}
		}
	}

	for step := 0; step < 500; step++ {
		agentID := agentIDs[rng.Intn(len(agentIDs))]
		switch op := rng.Intn(5); op {
		case 0: // create a unit led by a random agent
			id := fmt.Sprintf("u%d", nextUnit)
			if _, err := c.CreateUnitFromAgent(id, "Unit "+id, "", agentID, "", rng.Intn(11)); err == nil {
				unitIDs = append(unitIDs, id)
				nextUnit++
			}
		case 1: // add a random agent to a random unit
			if len(unitIDs) > 0 {
				unitID := unitIDs[rng.Intn(len(unitIDs))]
				if rng.Intn(2) == 0 {
					_ = c.AddExecutor(unitID, agentID, "")
				} else {
					_ = c.AddSupporter(unitID, agentID, "")
				}
			}
		case 2: // release a random agent
			_ = c.ReleaseAgent(agentID)
		case 3: // disband a random unit
			if len(unitIDs) > 0 {
				_ = c.DisbandUnit(unitIDs[rng.Intn(len(unitIDs))])
			}
		case 4: // complete a random unit (activate first if needed)
			if len(unitIDs) > 0 {
				unitID := unitIDs[rng.Intn(len(unitIDs))]
				_ = c.Units().Activate(unitID)
				_ = c.CompleteUnit(unitID)
			}
		}
		checkInvariant(step)
	}
}
