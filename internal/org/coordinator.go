// Package org coordinates the department and unit registries. The
// Coordinator is the only writer of cross-registry state: it owns the
// invariant that an agent is unavailable with a recorded unit id exactly
// when it is a member of a non-terminal unit.
package org

import (
	"sync"
	"time"

	"github.com/viosson/agentorg/internal/catalog"
	"github.com/viosson/agentorg/internal/errors"
	"github.com/viosson/agentorg/internal/event"
	"github.com/viosson/agentorg/internal/logging"
	"github.com/viosson/agentorg/internal/unit"
)

// leadResponsibilities is the default responsibilities text for unit leads.
const leadResponsibilities = "unit lead, coordination and decision making"

// Config holds the collaborators a Coordinator needs.
type Config struct {
	Departments *catalog.Registry
	Units       *unit.Registry
	Bus         *event.Bus
	Logger      *logging.Logger
}

// Coordinator runs the multi-step operations that span both registries.
// Its mutex serializes those operations so no caller ever observes unit
// membership without the matching availability flip.
type Coordinator struct {
	mu     sync.Mutex
	depts  *catalog.Registry
	units  *unit.Registry
	bus    *event.Bus
	logger *logging.Logger
}

// NewCoordinator creates a Coordinator. Missing registries get fresh empty
// ones; a missing bus or logger gets a working default.
func NewCoordinator(cfg Config) *Coordinator {
	c := &Coordinator{
		depts:  cfg.Departments,
		units:  cfg.Units,
		bus:    cfg.Bus,
		logger: cfg.Logger,
	}
	if c.depts == nil {
		c.depts = catalog.NewRegistry()
	}
	if c.units == nil {
		c.units = unit.NewRegistry()
	}
	if c.bus == nil {
		c.bus = event.NewBus()
	}
	if c.logger == nil {
		c.logger = logging.NopLogger()
	}
	return c
}

// Departments exposes the department registry for read and single-registry
// operations. Cross-registry mutations must go through the Coordinator.
func (c *Coordinator) Departments() *catalog.Registry { return c.depts }

// Units exposes the unit registry for read and single-registry operations.
func (c *Coordinator) Units() *unit.Registry { return c.units }

// Bus exposes the event bus for subscribers.
func (c *Coordinator) Bus() *event.Bus { return c.bus }

// CreateDepartmentWithPositions creates a department and registers the named
// predefined positions for its type. Position names with no preset for the
// department type are skipped.
func (c *Coordinator) CreateDepartmentWithPositions(id, name string, dtype catalog.DeptType, description, leadID, leadName string, positionNames []string) (catalog.Department, error) {
	_, err := c.depts.CreateDepartment(id, name, dtype, description, leadID, leadName)
	if err != nil {
		return catalog.Department{}, err
	}
	for _, posName := range positionNames {
		pos, ok := catalog.PredefinedPosition(dtype, posName)
		if !ok {
			c.logger.Warn("no predefined position for department type",
				"department_type", dtype, "position", posName)
			continue
		}
		if err := c.depts.AddPosition(id, pos); err != nil {
			return catalog.Department{}, err
		}
	}
	c.bus.Publish(event.NewDepartmentCreatedEvent(id, name, string(dtype)))
	return c.depts.Department(id)
}

// AddAgent places an agent into a department position and announces it on
// the bus.
func (c *Coordinator) AddAgent(deptID string, agent catalog.Agent) (catalog.Agent, error) {
	a, err := c.depts.AddAgent(deptID, agent)
	if err != nil {
		return catalog.Agent{}, err
	}
	c.bus.Publish(event.NewAgentAddedEvent(a.ID, deptID, a.Position.Name))
	return a, nil
}

// CreateUnitFromAgent creates a unit led by an existing department agent.
// The lead member is a snapshot of the agent's current department, position,
// and skills. On success the agent is marked unavailable and committed to
// the new unit; on any failure no availability change occurs.
func (c *Coordinator) CreateUnitFromAgent(unitID, name, description, leadAgentID, projectID string, priority int) (unit.Unit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ag, err := c.depts.Agent(leadAgentID)
	if err != nil {
		return unit.Unit{}, err
	}
	if !ag.Available {
		return unit.Unit{}, errors.Wrapf(errors.ErrAgentUnavailable, "agent %s is committed to unit %s", ag.ID, ag.AssignedUnitID)
	}

	lead := memberFromAgent(ag, unit.RoleLead, leadResponsibilities)
	u, err := c.units.Create(unitID, name, description, lead, projectID, priority)
	if err != nil {
		return unit.Unit{}, err
	}
	if err := c.depts.SetAvailability(leadAgentID, false, unitID); err != nil {
		return unit.Unit{}, err
	}

	c.logger.Info("unit created from agent", "unit_id", unitID, "lead_id", leadAgentID)
	c.bus.Publish(event.NewUnitCreatedEvent(unitID, name, leadAgentID))
	c.bus.Publish(event.NewAgentAssignedEvent(leadAgentID, unitID, string(unit.RoleLead)))
	return u, nil
}

// AddExecutor resolves an available agent and adds it to the unit as an
// executor, then marks it unavailable. Fail fast: if either step fails the
// other is not attempted.
func (c *Coordinator) AddExecutor(unitID, agentID, responsibilities string) error {
	return c.addMember(unitID, agentID, responsibilities, unit.RoleExecutor)
}

// AddSupporter is AddExecutor for the supporter role.
func (c *Coordinator) AddSupporter(unitID, agentID, responsibilities string) error {
	return c.addMember(unitID, agentID, responsibilities, unit.RoleSupporter)
}

func (c *Coordinator) addMember(unitID, agentID, responsibilities string, role unit.Role) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ag, err := c.depts.Agent(agentID)
	if err != nil {
		return err
	}
	if !ag.Available {
		return errors.Wrapf(errors.ErrAgentUnavailable, "agent %s is committed to unit %s", ag.ID, ag.AssignedUnitID)
	}

	m := memberFromAgent(ag, role, responsibilities)
	if err := c.units.AddMember(unitID, m, role); err != nil {
		return err
	}
	if err := c.depts.SetAvailability(agentID, false, unitID); err != nil {
		return err
	}

	c.logger.Info("agent assigned to unit", "unit_id", unitID, "agent_id", agentID, "role", role)
	c.bus.Publish(event.NewAgentAssignedEvent(agentID, unitID, string(role)))
	return nil
}

// ReleaseAgent returns an agent to its department: available again, no
// assigned unit. The unit keeps the agent in its member list as history.
// Releasing an already-available agent is a no-op success.
func (c *Coordinator) ReleaseAgent(agentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.releaseLocked(agentID)
}

func (c *Coordinator) releaseLocked(agentID string) error {
	ag, err := c.depts.Agent(agentID)
	if err != nil {
		return err
	}
	if ag.Available {
		return nil
	}
	unitID := ag.AssignedUnitID
	if err := c.depts.SetAvailability(agentID, true, ""); err != nil {
		return err
	}

	c.logger.Info("agent released", "agent_id", agentID, "unit_id", unitID)
	c.bus.Publish(event.NewAgentReleasedEvent(agentID, unitID))
	return nil
}

// DisbandUnit releases every member still committed to the unit, then moves
// the unit to disbanded. Members released earlier on their own are skipped.
func (c *Coordinator) DisbandUnit(unitID string) error {
	return c.terminate(unitID, unit.StatusDisbanded, c.units.Disband)
}

// CompleteUnit releases every member still committed to the unit, then moves
// the unit to completed. Without the release step a completed unit would
// strand its members as unavailable forever.
func (c *Coordinator) CompleteUnit(unitID string) error {
	return c.terminate(unitID, unit.StatusCompleted, c.units.Complete)
}

func (c *Coordinator) terminate(unitID string, next unit.Status, transition func(string) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, err := c.units.Unit(unitID)
	if err != nil {
		return err
	}
	if err := transition(unitID); err != nil {
		return err
	}
	for _, m := range u.Members() {
		ag, err := c.depts.Agent(m.AgentID)
		if err != nil {
			continue // removed from the catalog since joining
		}
		// Only release agents still committed to this unit; an agent
		// released earlier and re-assigned elsewhere keeps its commitment.
		if ag.Available || ag.AssignedUnitID != unitID {
			continue
		}
		if err := c.releaseLocked(m.AgentID); err != nil {
			return err
		}
	}

	c.bus.Publish(event.NewUnitStatusChangedEvent(unitID, string(u.Status), string(next)))
	return nil
}

// AssignTask records a task on a unit and announces it on the bus.
func (c *Coordinator) AssignTask(unitID string, task unit.Task) (unit.Task, error) {
	stored, err := c.units.AssignTask(unitID, task)
	if err != nil {
		return unit.Task{}, err
	}
	c.bus.Publish(event.NewTaskAssignedEvent(unitID, stored.ID, stored.Name))
	return stored, nil
}

// FindAgentsForUnit searches the catalog for agents fit to join a unit.
// The search is pre-biased toward available agents; a limit of 0 means
// unlimited.
func (c *Coordinator) FindAgentsForUnit(f catalog.Filter, limit int) []catalog.Agent {
	f.AvailableOnly = true
	agents := c.depts.Search(f)
	if limit > 0 && len(agents) > limit {
		agents = agents[:limit]
	}
	return agents
}

// Status is a merged view of both registries.
type Status struct {
	Timestamp       time.Time
	Departments     catalog.Stats
	Units           unit.Stats
	UtilizationRate float64 // unit members / total agents
}

// Status reports organization-wide statistics, including the share of
// catalog agents currently serving in units.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	ds := c.depts.Stats()
	us := c.units.Stats()
	total := ds.TotalAgents
	if total < 1 {
		total = 1
	}
	return Status{
		Timestamp:       time.Now(),
		Departments:     ds,
		Units:           us,
		UtilizationRate: float64(us.TotalMembers) / float64(total),
	}
}

func memberFromAgent(ag catalog.Agent, role unit.Role, responsibilities string) unit.Member {
	return unit.Member{
		AgentID:          ag.ID,
		AgentName:        ag.Name,
		Role:             role,
		DepartmentID:     ag.DepartmentID,
		PositionName:     ag.Position.Name,
		Skills:           ag.Skills,
		Responsibilities: responsibilities,
	}
}
