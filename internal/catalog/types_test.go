package catalog

import "testing"

func TestLevel_Before(t *testing.T) {
	ordered := []Level{LevelIntern, LevelJunior, LevelSenior, LevelLead, LevelManager}
	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Before(ordered[i+1]) {
			t.Errorf("%s should be before %s", ordered[i], ordered[i+1])
		}
		if ordered[i+1].Before(ordered[i]) {
			t.Errorf("%s should not be before %s", ordered[i+1], ordered[i])
		}
	}
	if LevelSenior.Before(LevelSenior) {
		t.Error("a level should not be before itself")
	}
}

func TestLevel_IsValid(t *testing.T) {
	if !LevelLead.IsValid() {
		t.Error("lead should be valid")
	}
	if Level("principal").IsValid() {
		t.Error("principal should not be valid")
	}
}

func TestDeptType_IsValid(t *testing.T) {
	for _, dt := range []DeptType{DeptManagement, DeptTechnology, DeptData, DeptProduct, DeptOperations} {
		if !dt.IsValid() {
			t.Errorf("%s should be valid", dt)
		}
	}
	if DeptType("finance").IsValid() {
		t.Error("finance should not be valid")
	}
}

func TestPosition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pos     Position
		wantErr bool
	}{
		{"valid", Position{Name: "Senior Developer", Level: LevelSenior, MaxAgents: 5}, false},
		{"missing name", Position{Level: LevelSenior, MaxAgents: 5}, true},
		{"bad level", Position{Name: "X", Level: "wizard", MaxAgents: 5}, true},
		{"zero capacity", Position{Name: "X", Level: LevelJunior, MaxAgents: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pos.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAgent_HasAnySkill(t *testing.T) {
	a := Agent{Skills: []string{"programming", "testing"}}

	if !a.HasAnySkill([]string{"sql", "testing"}) {
		t.Error("should match on any requested skill")
	}
	if a.HasAnySkill([]string{"sql", "statistics"}) {
		t.Error("should not match when no skill overlaps")
	}
	if a.HasAnySkill(nil) {
		t.Error("empty query should match nothing")
	}
}

func TestDepartment_Counts(t *testing.T) {
	d := Department{
		Positions: []PositionGroup{
			{Agents: []Agent{{ID: "a1", Available: true}, {ID: "a2", Available: false}}},
			{Agents: []Agent{{ID: "a3", Available: true}}},
		},
	}

	if d.AgentCount() != 3 {
		t.Errorf("AgentCount() = %d, want 3", d.AgentCount())
	}
	if d.AvailableCount() != 2 {
		t.Errorf("AvailableCount() = %d, want 2", d.AvailableCount())
	}
	if len(d.Agents()) != 3 {
		t.Errorf("Agents() returned %d agents, want 3", len(d.Agents()))
	}
}

func TestPredefinedPosition(t *testing.T) {
	pos, ok := PredefinedPosition(DeptTechnology, "Tech Lead")
	if !ok {
		t.Fatal("Tech Lead preset should exist")
	}
	if pos.Level != LevelLead || pos.MaxAgents != 1 {
		t.Errorf("preset = %+v, want lead level with capacity 1", pos)
	}

	if _, ok := PredefinedPosition(DeptOperations, "SRE"); ok {
		t.Error("unknown preset should report !ok")
	}
}
