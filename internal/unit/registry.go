package unit

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viosson/agentorg/internal/errors"
	"github.com/viosson/agentorg/internal/logging"
)

// Saver persists unit snapshots. Persistence is best-effort: a failed save
// is logged and the in-memory mutation stands.
type Saver interface {
	SaveUnits(units []Unit) error
}

// Registry is the unit registry. It owns all units and guards them with a
// single lock; reads return deep copies.
type Registry struct {
	mu     sync.RWMutex
	units  map[string]*Unit
	order  []string // unit insertion order
	saver  Saver
	logger *logging.Logger
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

// NewRegistry creates an empty unit registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		units:  make(map[string]*Unit),
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new unit in the forming state. Every unit starts with
// a lead; the lead's role is forced to RoleLead regardless of what the
// caller set. Fails with an AlreadyExistsError if the id is taken.
func (r *Registry) Create(id, name, description string, lead Member, projectID string, priority int) (Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		return Unit{}, errors.NewValidationError("unit id is required").WithField("id")
	}
	if lead.AgentID == "" {
		return Unit{}, errors.NewValidationError("unit lead is required").WithField("lead")
	}
	if priority < 0 || priority > 10 {
		return Unit{}, errors.NewValidationError("priority must be between 0 and 10").WithField("priority")
	}
	if _, exists := r.units[id]; exists {
		return Unit{}, errors.NewAlreadyExistsError("unit", id)
	}

	l := lead.clone()
	l.Role = RoleLead
	if l.AddedAt.IsZero() {
		l.AddedAt = time.Now()
	}
	u := &Unit{
		ID:          id,
		Name:        name,
		Description: description,
		ProjectID:   projectID,
		Lead:        &l,
		Status:      StatusForming,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}
	r.units[id] = u
	r.order = append(r.order, id)

	r.logger.Info("unit created", "unit_id", id, "name", name, "lead_id", l.AgentID)
	r.persistLocked()
	return u.clone(), nil
}

// AddMember adds an executor or supporter to a unit. The member's role is
// forced to the given role. Adding a lead this way is rejected; a unit has
// exactly one lead, set at creation. Fails on terminal units and on agent
// ids already present anywhere in the unit.
func (r *Registry) AddMember(unitID string, m Member, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return errors.NewNotFoundError("unit", unitID)
	}
	if role == RoleLead {
		return errors.NewValidationError("a unit lead can only be set at creation").WithField("role")
	}
	if !role.IsValid() {
		return errors.NewValidationError("unknown member role").WithField("role")
	}
	if m.AgentID == "" {
		return errors.NewValidationError("member agent id is required").WithField("agent_id")
	}
	if u.Status.IsTerminal() {
		return errors.NewTransitionError(unitID, u.Status.String(), u.Status.String()).
			WithReason("cannot add members to a " + u.Status.String() + " unit")
	}
	if u.HasMember(m.AgentID) {
		return errors.NewAlreadyExistsError("unit member", m.AgentID)
	}

	member := m.clone()
	member.Role = role
	if member.AddedAt.IsZero() {
		member.AddedAt = time.Now()
	}
	switch role {
	case RoleExecutor:
		u.Executors = append(u.Executors, member)
	case RoleSupporter:
		u.Supporters = append(u.Supporters, member)
	}

	r.logger.Info("member added", "unit_id", unitID, "agent_id", member.AgentID, "role", role)
	r.persistLocked()
	return nil
}

// RemoveMember removes an executor or supporter from a unit. Removing the
// lead is rejected; removing an agent that is not a member succeeds silently.
func (r *Registry) RemoveMember(unitID, agentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return errors.NewNotFoundError("unit", unitID)
	}
	if u.Lead != nil && u.Lead.AgentID == agentID {
		return errors.Wrapf(errors.ErrLeadImmutable, "unit %s", unitID)
	}

	u.Executors = removeMember(u.Executors, agentID)
	u.Supporters = removeMember(u.Supporters, agentID)

	r.logger.Info("member removed", "unit_id", unitID, "agent_id", agentID)
	r.persistLocked()
	return nil
}

func removeMember(members []Member, agentID string) []Member {
	kept := members[:0]
	for _, m := range members {
		if m.AgentID != agentID {
			kept = append(kept, m)
		}
	}
	return kept
}

// Activate moves a forming unit to active and stamps StartedAt. A unit
// without a lead can never activate.
func (r *Registry) Activate(unitID string) error {
	return r.transition(unitID, StatusActive, func(u *Unit) error {
		if u.Status != StatusForming {
			return errors.NewTransitionError(unitID, u.Status.String(), StatusActive.String()).
				WithReason("only forming units can be activated")
		}
		if u.Lead == nil {
			return errors.NewTransitionError(unitID, u.Status.String(), StatusActive.String()).
				WithReason("unit has no lead")
		}
		now := time.Now()
		u.StartedAt = &now
		return nil
	})
}

// Pause moves an active unit to paused.
func (r *Registry) Pause(unitID string) error {
	return r.transition(unitID, StatusPaused, func(u *Unit) error {
		if u.Status != StatusActive {
			return errors.NewTransitionError(unitID, u.Status.String(), StatusPaused.String()).
				WithReason("only active units can be paused")
		}
		return nil
	})
}

// Resume moves a paused unit back to active.
func (r *Registry) Resume(unitID string) error {
	return r.transition(unitID, StatusActive, func(u *Unit) error {
		if u.Status != StatusPaused {
			return errors.NewTransitionError(unitID, u.Status.String(), StatusActive.String()).
				WithReason("only paused units can be resumed")
		}
		return nil
	})
}

// Complete moves an active or paused unit to the terminal completed state
// and stamps CompletedAt.
func (r *Registry) Complete(unitID string) error {
	return r.transition(unitID, StatusCompleted, func(u *Unit) error {
		if !u.Status.CanTransition(StatusCompleted) {
			return errors.NewTransitionError(unitID, u.Status.String(), StatusCompleted.String())
		}
		now := time.Now()
		u.CompletedAt = &now
		return nil
	})
}

// Disband moves any non-terminal unit to the terminal disbanded state and
// stamps CompletedAt.
func (r *Registry) Disband(unitID string) error {
	return r.transition(unitID, StatusDisbanded, func(u *Unit) error {
		if !u.Status.CanTransition(StatusDisbanded) {
			return errors.NewTransitionError(unitID, u.Status.String(), StatusDisbanded.String())
		}
		now := time.Now()
		u.CompletedAt = &now
		return nil
	})
}

// transition applies check to the unit under lock and, on success, moves it
// to next and persists.
func (r *Registry) transition(unitID string, next Status, check func(*Unit) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return errors.NewNotFoundError("unit", unitID)
	}
	if err := check(u); err != nil {
		return err
	}
	prev := u.Status
	u.Status = next

	r.logger.Info("unit status changed", "unit_id", unitID, "from", prev, "to", next)
	r.persistLocked()
	return nil
}

// AssignTask records a task on a unit and returns the stored task. A blank
// task id gets a generated UUID; a blank status defaults to "assigned".
// Terminal units no longer accept tasks.
func (r *Registry) AssignTask(unitID string, task Task) (Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.units[unitID]
	if !ok {
		return Task{}, errors.NewNotFoundError("unit", unitID)
	}
	if u.Status.IsTerminal() {
		return Task{}, errors.NewTransitionError(unitID, u.Status.String(), u.Status.String()).
			WithReason("cannot assign tasks to a " + u.Status.String() + " unit")
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = "assigned"
	}
	if task.AssignedAt.IsZero() {
		task.AssignedAt = time.Now()
	}
	u.Tasks = append(u.Tasks, task)

	r.logger.Info("task assigned", "unit_id", unitID, "task_id", task.ID, "task_name", task.Name)
	r.persistLocked()
	return task, nil
}

// Unit returns a deep copy of one unit.
func (r *Registry) Unit(unitID string) (Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.units[unitID]
	if !ok {
		return Unit{}, errors.NewNotFoundError("unit", unitID)
	}
	return u.clone(), nil
}

// Units returns deep copies of all units in insertion order.
func (r *Registry) Units() []Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Search returns units matching the filter in insertion order. All supplied
// criteria are AND-combined.
func (r *Registry) Search(f Filter) []Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(f.Name)
	var out []Unit
	for _, id := range r.order {
		u := r.units[id]
		if name != "" && !strings.Contains(strings.ToLower(u.Name), name) {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.ProjectID != "" && u.ProjectID != f.ProjectID {
			continue
		}
		out = append(out, u.clone())
	}
	return out
}

// Stats summarizes the registry. ByStatus always carries every status, with
// zero counts for absent ones.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{Units: len(r.units), ByStatus: make(map[Status]int, len(AllStatuses))}
	for _, st := range AllStatuses {
		s.ByStatus[st] = 0
	}
	for _, u := range r.units {
		s.ByStatus[u.Status]++
		s.TotalMembers += u.MemberCount().Total
		s.TotalTasks += len(u.Tasks)
	}
	return s
}

// Restore installs previously persisted unit snapshots, replacing any
// current state. Used once at startup by the loading path.
func (r *Registry) Restore(units []Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	restored := make(map[string]*Unit, len(units))
	order := make([]string, 0, len(units))
	for _, snap := range units {
		if _, exists := restored[snap.ID]; exists {
			return errors.NewAlreadyExistsError("unit", snap.ID)
		}
		if !snap.Status.IsValid() {
			return errors.NewValidationError("unknown unit status " + snap.Status.String()).WithField("status")
		}
		u := snap.clone()
		restored[snap.ID] = &u
		order = append(order, snap.ID)
	}

	r.units = restored
	r.order = order
	return nil
}

// snapshotLocked builds deep copies of all units. Callers must hold r.mu.
func (r *Registry) snapshotLocked() []Unit {
	out := make([]Unit, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.units[id].clone())
	}
	return out
}

// persistLocked triggers a best-effort save. Callers must hold r.mu for
// writing. A failure is logged and never rolls back the mutation.
func (r *Registry) persistLocked() {
	if r.saver == nil {
		return
	}
	if err := r.saver.SaveUnits(r.snapshotLocked()); err != nil {
		r.logger.Warn("unit persistence failed", "error", err)
	}
}
