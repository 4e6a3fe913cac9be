// Package unit manages ad-hoc project teams drawn from the department
// catalog. A unit has exactly one lead, any number of executors and
// supporters, and a lifecycle driven by an explicit transition table.
package unit

import (
	"time"
)

// Status is the lifecycle state of a unit.
//
// The full state machine:
//
//	forming --activate--> active
//	active  --pause-----> paused
//	paused  --resume----> active
//	active|paused --complete--> completed   (terminal)
//	any non-terminal --disband--> disbanded (terminal)
type Status string

const (
	StatusForming   Status = "forming"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusDisbanded Status = "disbanded"
)

// AllStatuses lists every status, used for exhaustive stats breakdowns.
var AllStatuses = []Status{StatusForming, StatusActive, StatusPaused, StatusCompleted, StatusDisbanded}

// transitions is the exhaustive table of allowed lifecycle moves.
var transitions = map[Status]map[Status]bool{
	StatusForming:   {StatusActive: true, StatusDisbanded: true},
	StatusActive:    {StatusPaused: true, StatusCompleted: true, StatusDisbanded: true},
	StatusPaused:    {StatusActive: true, StatusCompleted: true, StatusDisbanded: true},
	StatusCompleted: {},
	StatusDisbanded: {},
}

// String returns the string representation of the status.
func (s Status) String() string { return string(s) }

// IsValid returns true if this is a recognized status value.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal returns true once a unit can never change state again.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDisbanded
}

// CanTransition reports whether the table allows moving from s to next.
func (s Status) CanTransition(next Status) bool {
	return transitions[s][next]
}

// Role is a member's function within a unit.
type Role string

const (
	RoleLead      Role = "lead"
	RoleExecutor  Role = "executor"
	RoleSupporter Role = "supporter"
)

// String returns the string representation of the role.
func (r Role) String() string { return string(r) }

// IsValid returns true if this is a recognized role value.
func (r Role) IsValid() bool {
	switch r {
	case RoleLead, RoleExecutor, RoleSupporter:
		return true
	default:
		return false
	}
}

// Member is the projection of a department agent into a unit: a snapshot of
// who they were (department, position, skills) when they joined, plus their
// unit role and responsibilities.
//
// The JSON tags match the persisted unit file format.
type Member struct {
	AgentID          string    `json:"agent_id"`
	AgentName        string    `json:"agent_name"`
	Role             Role      `json:"role"`
	DepartmentID     string    `json:"department_id"`
	PositionName     string    `json:"position_name"`
	Skills           []string  `json:"skills"`
	Responsibilities string    `json:"responsibilities"`
	AddedAt          time.Time `json:"added_at"`
}

func (m Member) clone() Member {
	if m.Skills != nil {
		skills := make([]string, len(m.Skills))
		copy(skills, m.Skills)
		m.Skills = skills
	}
	return m
}

// Task is an opaque work item assigned to a unit. The registry records it
// without validating uniqueness; execution happens elsewhere.
type Task struct {
	ID          string    `json:"task_id"`
	Name        string    `json:"task_name"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Status      string    `json:"status"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// MemberCount is a breakdown of a unit's membership.
type MemberCount struct {
	Lead       int
	Executors  int
	Supporters int
	Total      int
}

// Unit is a bounded team with one required lead. The registry stores units
// internally and hands out deep copies; mutating a returned Unit has no
// effect on registry state.
type Unit struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	Lead        *Member
	Executors   []Member
	Supporters  []Member
	Status      Status
	Priority    int // 0-10
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	Tasks       []Task
}

// Members returns lead, executors, then supporters.
func (u Unit) Members() []Member {
	var out []Member
	if u.Lead != nil {
		out = append(out, *u.Lead)
	}
	out = append(out, u.Executors...)
	out = append(out, u.Supporters...)
	return out
}

// HasMember reports whether the agent id appears anywhere in the unit.
func (u Unit) HasMember(agentID string) bool {
	if u.Lead != nil && u.Lead.AgentID == agentID {
		return true
	}
	for _, m := range u.Executors {
		if m.AgentID == agentID {
			return true
		}
	}
	for _, m := range u.Supporters {
		if m.AgentID == agentID {
			return true
		}
	}
	return false
}

// MemberCount returns the membership breakdown.
func (u Unit) MemberCount() MemberCount {
	mc := MemberCount{Executors: len(u.Executors), Supporters: len(u.Supporters)}
	if u.Lead != nil {
		mc.Lead = 1
	}
	mc.Total = mc.Lead + mc.Executors + mc.Supporters
	return mc
}

func (u *Unit) clone() Unit {
	out := *u
	if u.Lead != nil {
		lead := u.Lead.clone()
		out.Lead = &lead
	}
	out.Executors = cloneMembers(u.Executors)
	out.Supporters = cloneMembers(u.Supporters)
	if u.StartedAt != nil {
		started := *u.StartedAt
		out.StartedAt = &started
	}
	if u.CompletedAt != nil {
		completed := *u.CompletedAt
		out.CompletedAt = &completed
	}
	if u.Tasks != nil {
		out.Tasks = make([]Task, len(u.Tasks))
		copy(out.Tasks, u.Tasks)
	}
	return out
}

func cloneMembers(in []Member) []Member {
	if in == nil {
		return nil
	}
	out := make([]Member, len(in))
	for i, m := range in {
		out[i] = m.clone()
	}
	return out
}

// Filter selects units in Registry.Search. All supplied criteria are
// AND-combined; a zero field disables that criterion. Name matches are
// case-insensitive substring matches.
type Filter struct {
	Name      string
	Status    Status
	ProjectID string
}

// Stats summarizes the unit registry.
type Stats struct {
	Units        int
	ByStatus     map[Status]int
	TotalMembers int
	TotalTasks   int
}
