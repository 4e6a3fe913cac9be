package catalog

import (
	"sync"
	"time"

	"github.com/viosson/agentorg/internal/errors"
	"github.com/viosson/agentorg/internal/logging"
)

// Saver persists department snapshots. Persistence is best-effort: a failed
// save is logged and the in-memory mutation stands.
type Saver interface {
	SaveDepartments(depts []Department) error
}

// department is the registry's mutable internal representation.
type department struct {
	id          string
	name        string
	dtype       DeptType
	description string
	leadID      string
	leadName    string
	posOrder    []string
	positions   map[string]*positionGroup
	createdAt   time.Time
	updatedAt   time.Time
}

type positionGroup struct {
	def    Position
	agents []*Agent
}

// Registry is the department registry. It owns all departments, positions,
// and agents, and guards them with a single lock; reads return snapshots.
type Registry struct {
	mu          sync.RWMutex
	departments map[string]*department
	order       []string // department insertion order
	byAgent     map[string]*Agent
	saver       Saver
	logger      *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithSaver attaches a persistence backend invoked after each mutation.
func WithSaver(s Saver) Option {
	return func(r *Registry) { r.saver = s }
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry creates an empty department registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		departments: make(map[string]*department),
		byAgent:     make(map[string]*Agent),
		logger:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateDepartment registers a new department. It fails with an
// AlreadyExistsError if the id is taken, mutating nothing.
func (r *Registry) CreateDepartment(id, name string, dtype DeptType, description, leadID, leadName string) (Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		return Department{}, errors.NewValidationError("department id is required").WithField("id")
	}
	if !dtype.IsValid() {
		return Department{}, errors.NewValidationError("unknown department type").WithField("type")
	}
	if _, exists := r.departments[id]; exists {
		return Department{}, errors.NewAlreadyExistsError("department", id)
	}

	now := time.Now()
	d := &department{
		id:          id,
		name:        name,
		dtype:       dtype,
		description: description,
		leadID:      leadID,
		leadName:    leadName,
		positions:   make(map[string]*positionGroup),
		createdAt:   now,
		updatedAt:   now,
	}
	r.departments[id] = d
	r.order = append(r.order, id)

	r.logger.Info("department created", "department_id", id, "name", name, "type", dtype)
	r.persistLocked()
	return d.snapshot(), nil
}

// AddPosition registers a position in a department's catalog. Re-adding a
// position with the same name is a no-op success.
func (r *Registry) AddPosition(deptID string, pos Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.departments[deptID]
	if !ok {
		return errors.NewNotFoundError("department", deptID)
	}
	if err := pos.Validate(); err != nil {
		return err
	}
	if _, exists := d.positions[pos.Name]; exists {
		return nil
	}

	d.positions[pos.Name] = &positionGroup{def: pos.clone()}
	d.posOrder = append(d.posOrder, pos.Name)
	d.updatedAt = time.Now()

	r.logger.Info("position added", "department_id", deptID, "position", pos.Name)
	r.persistLocked()
	return nil
}

// AddAgent places an agent into a department position. The agent's Position
// field only needs Name set; the department's registered definition is
// authoritative. Fails if the department or position is unknown, the position
// is at capacity, or the agent id exists anywhere in the system.
func (r *Registry) AddAgent(deptID string, agent Agent) (Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.departments[deptID]
	if !ok {
		return Agent{}, errors.NewNotFoundError("department", deptID)
	}
	if agent.ID == "" {
		return Agent{}, errors.NewValidationError("agent id is required").WithField("agent_id")
	}
	pg, ok := d.positions[agent.Position.Name]
	if !ok {
		return Agent{}, errors.NewNotFoundError("position", agent.Position.Name)
	}
	if len(pg.agents) >= pg.def.MaxAgents {
		return Agent{}, errors.NewCapacityError(deptID, pg.def.Name, pg.def.MaxAgents)
	}
	if _, exists := r.byAgent[agent.ID]; exists {
		return Agent{}, errors.NewAlreadyExistsError("agent", agent.ID)
	}

	a := agent.clone()
	a.Position = pg.def.clone()
	a.DepartmentID = deptID
	a.Available = true
	a.AssignedUnitID = ""
	if a.JoinedAt.IsZero() {
		a.JoinedAt = time.Now()
	}

	pg.agents = append(pg.agents, &a)
	r.byAgent[a.ID] = &a
	d.updatedAt = time.Now()

	r.logger.Info("agent added", "department_id", deptID, "agent_id", a.ID, "position", a.Position.Name)
	r.persistLocked()
	return a.clone(), nil
}

// RemoveAgent removes an agent from a position. Removing an agent that does
// not hold the position succeeds silently; an unknown department or position
// is a NotFoundError.
func (r *Registry) RemoveAgent(deptID, agentID, positionName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.departments[deptID]
	if !ok {
		return errors.NewNotFoundError("department", deptID)
	}
	pg, ok := d.positions[positionName]
	if !ok {
		return errors.NewNotFoundError("position", positionName)
	}

	kept := pg.agents[:0]
	for _, a := range pg.agents {
		if a.ID == agentID {
			delete(r.byAgent, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	pg.agents = kept
	d.updatedAt = time.Now()

	r.logger.Info("agent removed", "department_id", deptID, "agent_id", agentID, "position", positionName)
	r.persistLocked()
	return nil
}

// Agent returns a snapshot of the agent with the given id. Agent ids are
// globally unique, so at most one match exists.
func (r *Registry) Agent(agentID string) (Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byAgent[agentID]
	if !ok {
		return Agent{}, errors.NewNotFoundError("agent", agentID)
	}
	return a.clone(), nil
}

// Department returns a snapshot of one department.
func (r *Registry) Department(deptID string) (Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.departments[deptID]
	if !ok {
		return Department{}, errors.NewNotFoundError("department", deptID)
	}
	return d.snapshot(), nil
}

// Departments returns snapshots of all departments in insertion order.
func (r *Registry) Departments() []Department {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Search returns agents matching the filter. Results follow department
// insertion order, then position insertion order within each department;
// callers needing a different order sort the result themselves.
func (r *Registry) Search(f Filter) []Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Agent
	for _, deptID := range r.order {
		d := r.departments[deptID]
		if f.DeptType != "" && d.dtype != f.DeptType {
			continue
		}
		for _, posName := range d.posOrder {
			for _, a := range d.positions[posName].agents {
				if f.AvailableOnly && !a.Available {
					continue
				}
				if f.Level != "" && a.Position.Level != f.Level {
					continue
				}
				if len(f.Skills) > 0 && !a.HasAnySkill(f.Skills) {
					continue
				}
				out = append(out, a.clone())
			}
		}
	}
	return out
}

// SetAvailability flips an agent's availability and assigned unit. Reserved
// for the org coordinator, which owns the cross-registry invariant; nothing
// else should call this.
func (r *Registry) SetAvailability(agentID string, available bool, unitID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byAgent[agentID]
	if !ok {
		return errors.NewNotFoundError("agent", agentID)
	}

	a.Available = available
	if available {
		a.AssignedUnitID = ""
	} else {
		a.AssignedUnitID = unitID
	}
	if d, ok := r.departments[a.DepartmentID]; ok {
		d.updatedAt = time.Now()
	}

	r.persistLocked()
	return nil
}

// Stats summarizes the registry.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{Departments: len(r.departments)}
	for _, deptID := range r.order {
		d := r.departments[deptID]
		ds := DepartmentStats{ID: d.id, Name: d.name, Type: d.dtype}
		for _, posName := range d.posOrder {
			for _, a := range d.positions[posName].agents {
				ds.TotalAgents++
				if a.Available {
					ds.AvailableAgents++
				} else {
					s.AssignedAgents++
				}
			}
		}
		s.TotalAgents += ds.TotalAgents
		s.AvailableAgents += ds.AvailableAgents
		s.PerDepartment = append(s.PerDepartment, ds)
	}
	return s
}

// Restore installs previously persisted department snapshots, replacing any
// current state. Used once at startup by the loading path.
func (r *Registry) Restore(depts []Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	departments := make(map[string]*department, len(depts))
	byAgent := make(map[string]*Agent)
	order := make([]string, 0, len(depts))

	for _, snap := range depts {
		if _, exists := departments[snap.ID]; exists {
			return errors.NewAlreadyExistsError("department", snap.ID)
		}
		d := &department{
			id:          snap.ID,
			name:        snap.Name,
			dtype:       snap.Type,
			description: snap.Description,
			leadID:      snap.LeadID,
			leadName:    snap.LeadName,
			positions:   make(map[string]*positionGroup),
			createdAt:   snap.CreatedAt,
			updatedAt:   snap.UpdatedAt,
		}
		for _, pg := range snap.Positions {
			group := &positionGroup{def: pg.Position.clone()}
			for _, agent := range pg.Agents {
				if _, exists := byAgent[agent.ID]; exists {
					return errors.NewAlreadyExistsError("agent", agent.ID)
				}
				a := agent.clone()
				a.DepartmentID = snap.ID
				group.agents = append(group.agents, &a)
				byAgent[a.ID] = &a
			}
			d.positions[pg.Position.Name] = group
			d.posOrder = append(d.posOrder, pg.Position.Name)
		}
		departments[snap.ID] = d
		order = append(order, snap.ID)
	}

	r.departments = departments
	r.byAgent = byAgent
	r.order = order
	return nil
}

// snapshotLocked builds snapshots of all departments. Callers must hold r.mu.
func (r *Registry) snapshotLocked() []Department {
	out := make([]Department, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.departments[id].snapshot())
	}
	return out
}

// persistLocked triggers a best-effort save. Callers must hold r.mu for
// writing. A failure is logged and never rolls back the mutation.
func (r *Registry) persistLocked() {
	if r.saver == nil {
		return
	}
	if err := r.saver.SaveDepartments(r.snapshotLocked()); err != nil {
		r.logger.Warn("department persistence failed", "error", err)
	}
}

func (d *department) snapshot() Department {
	snap := Department{
		ID:          d.id,
		Name:        d.name,
		Type:        d.dtype,
		Description: d.description,
		LeadID:      d.leadID,
		LeadName:    d.leadName,
		CreatedAt:   d.createdAt,
		UpdatedAt:   d.updatedAt,
	}
	for _, posName := range d.posOrder {
		pg := d.positions[posName]
		group := PositionGroup{Position: pg.def.clone()}
		for _, a := range pg.agents {
			group.Agents = append(group.Agents, a.clone())
		}
		snap.Positions = append(snap.Positions, group)
	}
	return snap
}
