package catalog

import (
	"testing"

	"github.com/viosson/agentorg/internal/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if _, err := r.CreateDepartment("tech_dept", "Technology", DeptTechnology, "builds things", "tech_lead_001", "CTO"); err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	if err := r.AddPosition("tech_dept", Position{
		Name: "Senior Developer", Level: LevelSenior, MaxAgents: 1,
		RequiredSkills: []string{"programming"},
	}); err != nil {
		t.Fatalf("AddPosition: %v", err)
	}
	return r
}

func addTestAgent(t *testing.T, r *Registry, deptID, id, position string, skills ...string) Agent {
	t.Helper()
	a, err := r.AddAgent(deptID, Agent{
		ID:       id,
		Name:     "Agent " + id,
		Position: Position{Name: position},
		Skills:   skills,
	})
	if err != nil {
		t.Fatalf("AddAgent(%s): %v", id, err)
	}
	return a
}

func TestRegistry_CreateDepartment_Duplicate(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateDepartment("tech_dept", "Other", DeptData, "", "x", "X")
	if !errors.Is(err, errors.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want ErrAlreadyExists", err)
	}

	// The failed create must not have mutated the existing department.
	d, err := r.Department("tech_dept")
	if err != nil {
		t.Fatalf("Department: %v", err)
	}
	if d.Name != "Technology" || d.Type != DeptTechnology {
		t.Errorf("department mutated by failed create: %+v", d)
	}
}

func TestRegistry_CreateDepartment_Validation(t *testing.T) {
	r := NewRegistry()
	if _, err := r.CreateDepartment("", "X", DeptData, "", "l", "L"); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("empty id error = %v, want ErrInvalidInput", err)
	}
	if _, err := r.CreateDepartment("d1", "X", "finance", "", "l", "L"); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("bad type error = %v, want ErrInvalidInput", err)
	}
}

func TestRegistry_AddPosition_Idempotent(t *testing.T) {
	r := newTestRegistry(t)

	// Re-adding the same position name is a no-op success.
	err := r.AddPosition("tech_dept", Position{Name: "Senior Developer", Level: LevelSenior, MaxAgents: 99})
	if err != nil {
		t.Fatalf("re-adding position: %v", err)
	}

	// And the original definition wins.
	d, _ := r.Department("tech_dept")
	if d.Positions[0].Position.MaxAgents != 1 {
		t.Errorf("re-add overwrote position definition: MaxAgents = %d, want 1", d.Positions[0].Position.MaxAgents)
	}

	if err := r.AddPosition("ghost", Position{Name: "X", Level: LevelJunior, MaxAgents: 1}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown department error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_AddAgent_CapacityExceeded(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer", "programming")

	_, err := r.AddAgent("tech_dept", Agent{
		ID: "dev_002", Name: "Dev Two",
		Position: Position{Name: "Senior Developer"},
	})
	if !errors.Is(err, errors.ErrCapacityExceeded) {
		t.Fatalf("over-capacity error = %v, want ErrCapacityExceeded", err)
	}

	// dev_002 must not be present anywhere.
	if _, err := r.Agent("dev_002"); !errors.Is(err, errors.ErrNotFound) {
		t.Error("rejected agent should not be registered")
	}
	d, _ := r.Department("tech_dept")
	if d.AgentCount() != 1 {
		t.Errorf("AgentCount() = %d, want 1", d.AgentCount())
	}
}

func TestRegistry_AddAgent_UnknownPosition(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.AddAgent("tech_dept", Agent{ID: "a1", Position: Position{Name: "Staff Engineer"}})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown position error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_AddAgent_GloballyUniqueID(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer")

	if _, err := r.CreateDepartment("data_dept", "Data", DeptData, "", "data_lead_001", "Head of Data"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddPosition("data_dept", Position{Name: "Senior Analyst", Level: LevelSenior, MaxAgents: 3}); err != nil {
		t.Fatal(err)
	}

	// Same id in another department is rejected.
	_, err := r.AddAgent("data_dept", Agent{ID: "dev_001", Position: Position{Name: "Senior Analyst"}})
	if !errors.Is(err, errors.ErrAlreadyExists) {
		t.Errorf("duplicate agent error = %v, want ErrAlreadyExists", err)
	}
}

func TestRegistry_AddAgent_UsesCatalogPosition(t *testing.T) {
	r := newTestRegistry(t)

	// The caller's embedded position definition is ignored; the catalog wins.
	a, err := r.AddAgent("tech_dept", Agent{
		ID:       "dev_001",
		Position: Position{Name: "Senior Developer", Level: LevelIntern, MaxAgents: 1000},
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.Position.Level != LevelSenior {
		t.Errorf("Position.Level = %s, want senior from the catalog", a.Position.Level)
	}
	if !a.Available {
		t.Error("new agents start available")
	}
	if a.JoinedAt.IsZero() {
		t.Error("JoinedAt should be stamped")
	}
}

func TestRegistry_RemoveAgent_Idempotent(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer")

	if err := r.RemoveAgent("tech_dept", "dev_001", "Senior Developer"); err != nil {
		t.Fatalf("RemoveAgent: %v", err)
	}
	// Removing a non-member succeeds silently.
	if err := r.RemoveAgent("tech_dept", "dev_001", "Senior Developer"); err != nil {
		t.Fatalf("second RemoveAgent: %v", err)
	}
	if _, err := r.Agent("dev_001"); !errors.Is(err, errors.ErrNotFound) {
		t.Error("removed agent should be gone from the global index")
	}

	if err := r.RemoveAgent("ghost", "dev_001", "Senior Developer"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown department error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_Search(t *testing.T) {
	r := NewRegistry()
	r.CreateDepartment("tech_dept", "Tech", DeptTechnology, "", "l1", "L1")
	r.AddPosition("tech_dept", Position{Name: "Senior Developer", Level: LevelSenior, MaxAgents: 5})
	r.AddPosition("tech_dept", Position{Name: "Junior Developer", Level: LevelJunior, MaxAgents: 5})
	r.CreateDepartment("data_dept", "Data", DeptData, "", "l2", "L2")
	r.AddPosition("data_dept", Position{Name: "Senior Analyst", Level: LevelSenior, MaxAgents: 5})

	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer", "programming", "system_design")
	addTestAgent(t, r, "tech_dept", "dev_002", "Junior Developer", "programming")
	addTestAgent(t, r, "data_dept", "ana_001", "Senior Analyst", "data_analysis", "sql")

	r.SetAvailability("dev_002", false, "u1")

	t.Run("skills are OR-combined within the filter", func(t *testing.T) {
		got := r.Search(Filter{Skills: []string{"sql", "system_design"}})
		if len(got) != 2 {
			t.Fatalf("got %d agents, want 2", len(got))
		}
		// Department insertion order: tech first.
		if got[0].ID != "dev_001" || got[1].ID != "ana_001" {
			t.Errorf("got order %s, %s; want dev_001, ana_001", got[0].ID, got[1].ID)
		}
	})

	t.Run("filters AND-combine", func(t *testing.T) {
		got := r.Search(Filter{Skills: []string{"programming"}, Level: LevelSenior})
		if len(got) != 1 || got[0].ID != "dev_001" {
			t.Errorf("got %v, want only dev_001", got)
		}
	})

	t.Run("available only", func(t *testing.T) {
		got := r.Search(Filter{AvailableOnly: true})
		for _, a := range got {
			if !a.Available {
				t.Errorf("agent %s is unavailable but was returned", a.ID)
			}
		}
		if len(got) != 2 {
			t.Errorf("got %d available agents, want 2", len(got))
		}
	})

	t.Run("department type", func(t *testing.T) {
		got := r.Search(Filter{DeptType: DeptData})
		if len(got) != 1 || got[0].ID != "ana_001" {
			t.Errorf("got %v, want only ana_001", got)
		}
	})

	t.Run("empty filter returns everyone", func(t *testing.T) {
		if got := r.Search(Filter{}); len(got) != 3 {
			t.Errorf("got %d agents, want 3", len(got))
		}
	})
}

func TestRegistry_SetAvailability(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer")

	if err := r.SetAvailability("dev_001", false, "u1"); err != nil {
		t.Fatal(err)
	}
	a, _ := r.Agent("dev_001")
	if a.Available || a.AssignedUnitID != "u1" {
		t.Errorf("agent = %+v, want unavailable and assigned to u1", a)
	}

	if err := r.SetAvailability("dev_001", true, ""); err != nil {
		t.Fatal(err)
	}
	a, _ = r.Agent("dev_001")
	if !a.Available || a.AssignedUnitID != "" {
		t.Errorf("agent = %+v, want available with cleared unit", a)
	}

	if err := r.SetAvailability("ghost", false, "u1"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("unknown agent error = %v, want ErrNotFound", err)
	}
}

func TestRegistry_SnapshotsAreCopies(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer", "programming")

	d, _ := r.Department("tech_dept")
	d.Positions[0].Agents[0].Skills[0] = "tampered"
	d.Positions[0].Agents[0].Available = false

	fresh, _ := r.Agent("dev_001")
	if fresh.Skills[0] != "programming" || !fresh.Available {
		t.Error("mutating a snapshot must not affect registry state")
	}
}

func TestRegistry_Stats(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer")
	r.SetAvailability("dev_001", false, "u1")

	s := r.Stats()
	if s.Departments != 1 || s.TotalAgents != 1 || s.AvailableAgents != 0 || s.AssignedAgents != 1 {
		t.Errorf("Stats() = %+v", s)
	}
	if len(s.PerDepartment) != 1 || s.PerDepartment[0].ID != "tech_dept" {
		t.Errorf("PerDepartment = %+v", s.PerDepartment)
	}
}

func TestRegistry_Restore(t *testing.T) {
	r := newTestRegistry(t)
	addTestAgent(t, r, "tech_dept", "dev_001", "Senior Developer", "programming")
	r.SetAvailability("dev_001", false, "u1")

	snaps := r.Departments()

	fresh := NewRegistry()
	if err := fresh.Restore(snaps); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	a, err := fresh.Agent("dev_001")
	if err != nil {
		t.Fatalf("Agent after restore: %v", err)
	}
	if a.Available || a.AssignedUnitID != "u1" {
		t.Errorf("restored agent = %+v, want unavailable/u1", a)
	}

	// Duplicate agent ids across departments are rejected.
	bad := append(snaps, Department{
		ID: "other", Type: DeptData,
		Positions: []PositionGroup{{
			Position: Position{Name: "Senior Analyst", Level: LevelSenior, MaxAgents: 3},
			Agents:   []Agent{{ID: "dev_001"}},
		}},
	})
	if err := NewRegistry().Restore(bad); !errors.Is(err, errors.ErrAlreadyExists) {
		t.Errorf("duplicate restore error = %v, want ErrAlreadyExists", err)
	}
}

type failingSaver struct{ calls int }

func (f *failingSaver) SaveDepartments([]Department) error {
	f.calls++
	return errors.New("disk full")
}

func TestRegistry_PersistenceFailureDoesNotRollBack(t *testing.T) {
	saver := &failingSaver{}
	r := NewRegistry(WithSaver(saver))

	if _, err := r.CreateDepartment("tech_dept", "Tech", DeptTechnology, "", "l", "L"); err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	if saver.calls == 0 {
		t.Error("saver should have been invoked")
	}
	// The mutation stands despite the failed save.
	if _, err := r.Department("tech_dept"); err != nil {
		t.Errorf("department should exist despite persistence failure: %v", err)
	}
}
