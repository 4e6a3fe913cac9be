// Package catalog defines the permanent organizational structure: departments,
// the positions they offer, and the agents holding those positions. The
// Registry in this package is the department registry; ad-hoc project teams
// live in the unit package and are tied together by the org coordinator.
package catalog

import (
	"time"

	"github.com/viosson/agentorg/internal/errors"
)

// Level is the seniority of a position. Levels are ordered:
// intern < junior < senior < lead < manager.
type Level string

const (
	LevelIntern  Level = "intern"
	LevelJunior  Level = "junior"
	LevelSenior  Level = "senior"
	LevelLead    Level = "lead"
	LevelManager Level = "manager"
)

var levelRank = map[Level]int{
	LevelIntern:  0,
	LevelJunior:  1,
	LevelSenior:  2,
	LevelLead:    3,
	LevelManager: 4,
}

// String returns the string representation of the level.
func (l Level) String() string { return string(l) }

// IsValid returns true if this is a recognized level value.
func (l Level) IsValid() bool {
	_, ok := levelRank[l]
	return ok
}

// Before reports whether l is strictly junior to other. Unknown levels
// compare as most junior.
func (l Level) Before(other Level) bool {
	return levelRank[l] < levelRank[other]
}

// DeptType categorizes a department.
type DeptType string

const (
	DeptManagement DeptType = "management"
	DeptTechnology DeptType = "technology"
	DeptData       DeptType = "data"
	DeptProduct    DeptType = "product"
	DeptOperations DeptType = "operations"
)

// String returns the string representation of the department type.
func (t DeptType) String() string { return string(t) }

// IsValid returns true if this is a recognized department type.
func (t DeptType) IsValid() bool {
	switch t {
	case DeptManagement, DeptTechnology, DeptData, DeptProduct, DeptOperations:
		return true
	default:
		return false
	}
}

// Position is a named job slot with a capacity and skill requirements,
// scoped to a department. Immutable once agents reference it except via
// explicit catalog update.
type Position struct {
	Name           string   `json:"name"`
	Level          Level    `json:"level"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	MaxAgents      int      `json:"max_agents"`
}

// Validate checks that the position definition is well formed.
func (p Position) Validate() error {
	if p.Name == "" {
		return errors.NewValidationError("position name is required").WithField("name")
	}
	if !p.Level.IsValid() {
		return errors.NewValidationError("unknown position level").WithField("level")
	}
	if p.MaxAgents <= 0 {
		return errors.NewValidationError("max_agents must be positive").WithField("max_agents")
	}
	return nil
}

func (p Position) clone() Position {
	p.RequiredSkills = cloneStrings(p.RequiredSkills)
	return p
}

// Agent is one worker holding one position in one department. An agent id is
// globally unique; an agent is owned by exactly one department.
//
// The JSON tags match the persisted department file format: each agent record
// embeds its full position definition.
type Agent struct {
	ID             string    `json:"agent_id"`
	Name           string    `json:"agent_name"`
	Position       Position  `json:"position"`
	DepartmentID   string    `json:"department_id"`
	Skills         []string  `json:"skills"`
	Available      bool      `json:"availability"`
	AssignedUnitID string    `json:"assigned_unit_id,omitempty"`
	JoinedAt       time.Time `json:"joined_at"`
}

// HasSkill reports whether the agent lists the given skill.
func (a Agent) HasSkill(skill string) bool {
	for _, s := range a.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// HasAnySkill reports whether the agent lists at least one of the given
// skills. An empty query matches nothing.
func (a Agent) HasAnySkill(skills []string) bool {
	for _, s := range skills {
		if a.HasSkill(s) {
			return true
		}
	}
	return false
}

func (a Agent) clone() Agent {
	a.Position = a.Position.clone()
	a.Skills = cloneStrings(a.Skills)
	return a
}

// PositionGroup is a snapshot of one position and the agents holding it,
// in insertion order.
type PositionGroup struct {
	Position Position
	Agents   []Agent
}

// Department is a read-only snapshot of a department. Registries never hand
// out their internal state; mutating a snapshot has no effect on the registry.
type Department struct {
	ID          string
	Name        string
	Type        DeptType
	Description string
	LeadID      string
	LeadName    string
	Positions   []PositionGroup // position insertion order
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AgentCount returns the number of agents across all positions.
func (d Department) AgentCount() int {
	n := 0
	for _, pg := range d.Positions {
		n += len(pg.Agents)
	}
	return n
}

// AvailableCount returns the number of agents not committed to a unit.
func (d Department) AvailableCount() int {
	n := 0
	for _, pg := range d.Positions {
		for _, a := range pg.Agents {
			if a.Available {
				n++
			}
		}
	}
	return n
}

// Agents returns all agents of the department in position insertion order.
func (d Department) Agents() []Agent {
	var out []Agent
	for _, pg := range d.Positions {
		out = append(out, pg.Agents...)
	}
	return out
}

// Filter selects agents in Registry.Search. All supplied criteria are
// AND-combined; a zero field disables that criterion. Skills match if the
// agent holds any of the requested skills.
type Filter struct {
	Skills        []string
	Level         Level
	AvailableOnly bool
	DeptType      DeptType
}

// DepartmentStats is the per-department breakdown in Stats.
type DepartmentStats struct {
	ID              string
	Name            string
	Type            DeptType
	TotalAgents     int
	AvailableAgents int
}

// Stats summarizes the department registry.
type Stats struct {
	Departments     int
	TotalAgents     int
	AvailableAgents int
	AssignedAgents  int
	PerDepartment   []DepartmentStats
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
