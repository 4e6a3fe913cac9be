package event

import "time"

// Event is the interface all domain events implement.
type Event interface {
	// EventType returns a string identifier following the
	// "category.action" convention (e.g. "unit.activated").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events. Embed it in concrete
// event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// DepartmentCreatedEvent is emitted when a department is registered.
type DepartmentCreatedEvent struct {
	baseEvent
	DepartmentID string
	Name         string
	Type         string
}

// NewDepartmentCreatedEvent creates a DepartmentCreatedEvent.
func NewDepartmentCreatedEvent(departmentID, name, deptType string) DepartmentCreatedEvent {
	return DepartmentCreatedEvent{
		baseEvent:    newBaseEvent("department.created"),
		DepartmentID: departmentID,
		Name:         name,
		Type:         deptType,
	}
}

// AgentAddedEvent is emitted when an agent joins a department position.
type AgentAddedEvent struct {
	baseEvent
	AgentID      string
	DepartmentID string
	Position     string
}

// NewAgentAddedEvent creates an AgentAddedEvent.
func NewAgentAddedEvent(agentID, departmentID, position string) AgentAddedEvent {
	return AgentAddedEvent{
		baseEvent:    newBaseEvent("agent.added"),
		AgentID:      agentID,
		DepartmentID: departmentID,
		Position:     position,
	}
}

// AgentAssignedEvent is emitted when an agent is committed to a unit.
type AgentAssignedEvent struct {
	baseEvent
	AgentID string
	UnitID  string
	Role    string
}

// NewAgentAssignedEvent creates an AgentAssignedEvent.
func NewAgentAssignedEvent(agentID, unitID, role string) AgentAssignedEvent {
	return AgentAssignedEvent{
		baseEvent: newBaseEvent("agent.assigned"),
		AgentID:   agentID,
		UnitID:    unitID,
		Role:      role,
	}
}

// AgentReleasedEvent is emitted when an agent becomes available again.
type AgentReleasedEvent struct {
	baseEvent
	AgentID string
	UnitID  string // unit the agent was released from, if any
}

// NewAgentReleasedEvent creates an AgentReleasedEvent.
func NewAgentReleasedEvent(agentID, unitID string) AgentReleasedEvent {
	return AgentReleasedEvent{
		baseEvent: newBaseEvent("agent.released"),
		AgentID:   agentID,
		UnitID:    unitID,
	}
}

// UnitCreatedEvent is emitted when a unit is created.
type UnitCreatedEvent struct {
	baseEvent
	UnitID      string
	Name        string
	LeadAgentID string
}

// NewUnitCreatedEvent creates a UnitCreatedEvent.
func NewUnitCreatedEvent(unitID, name, leadAgentID string) UnitCreatedEvent {
	return UnitCreatedEvent{
		baseEvent:   newBaseEvent("unit.created"),
		UnitID:      unitID,
		Name:        name,
		LeadAgentID: leadAgentID,
	}
}

// UnitStatusChangedEvent is emitted on every unit lifecycle transition.
type UnitStatusChangedEvent struct {
	baseEvent
	UnitID string
	From   string
	To     string
}

// NewUnitStatusChangedEvent creates a UnitStatusChangedEvent.
func NewUnitStatusChangedEvent(unitID, from, to string) UnitStatusChangedEvent {
	return UnitStatusChangedEvent{
		baseEvent: newBaseEvent("unit.status_changed"),
		UnitID:    unitID,
		From:      from,
		To:        to,
	}
}

// TaskAssignedEvent is emitted when a work item is assigned to a unit.
type TaskAssignedEvent struct {
	baseEvent
	UnitID   string
	TaskID   string
	TaskName string
}

// NewTaskAssignedEvent creates a TaskAssignedEvent.
func NewTaskAssignedEvent(unitID, taskID, taskName string) TaskAssignedEvent {
	return TaskAssignedEvent{
		baseEvent: newBaseEvent("task.assigned"),
		UnitID:    unitID,
		TaskID:    taskID,
		TaskName:  taskName,
	}
}
