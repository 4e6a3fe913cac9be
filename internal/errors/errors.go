// Package errors provides centralized error definitions for the agentorg
// codebase. It defines sentinel errors for the registry subsystems, semantic
// error types carrying structured context, and classification helpers.
//
// # Error Types
//
// Semantic errors represent the failure modes of the registries:
//   - NotFoundError: a department, position, agent, or unit does not exist
//   - AlreadyExistsError: a create was attempted on an existing id
//   - CapacityError: a position is at its maximum occupancy
//   - TransitionError: a unit lifecycle precondition was not met
//   - PersistenceError: the backing store could not be read or written
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewNotFoundError("unit", "u1")
//	err := errors.NewCapacityError("tech_dept", "Senior Developer", 1)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrNotFound) { ... }
//
//	var capErr *errors.CapacityError
//	if errors.As(err, &capErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience so callers can import
// only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for the registry subsystems.
var (
	// ErrNotFound indicates a referenced resource does not exist.
	ErrNotFound = New("not found")
	// ErrAlreadyExists indicates a create was attempted on an existing id.
	ErrAlreadyExists = New("already exists")
	// ErrCapacityExceeded indicates a position is at max occupancy.
	ErrCapacityExceeded = New("position capacity exceeded")
	// ErrInvalidTransition indicates a unit lifecycle precondition failed.
	ErrInvalidTransition = New("invalid status transition")
	// ErrPersistence indicates the backing store failed.
	ErrPersistence = New("persistence failure")
	// ErrInvalidInput indicates input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrLeadImmutable indicates an attempt to remove or replace a unit lead.
	ErrLeadImmutable = New("unit lead cannot be removed")
	// ErrAgentUnavailable indicates an agent is already committed to a unit.
	ErrAgentUnavailable = New("agent is not available")
)

// Severity represents how serious an error is for reporting purposes.
type Severity int

const (
	// SeverityWarning is for expected failures (not found, duplicates).
	SeverityWarning Severity = iota
	// SeverityError is for failures that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// NotFoundError reports a resource that could not be found.
type NotFoundError struct {
	Resource string // "department", "position", "agent", "unit"
	ID       string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is matches other NotFoundErrors and the ErrNotFound sentinel.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return target == ErrNotFound
}

// AlreadyExistsError reports a create attempted on an existing id.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

// NewAlreadyExistsError creates an AlreadyExistsError.
func NewAlreadyExistsError(resource, id string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, ID: id}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.ID)
}

// Is matches other AlreadyExistsErrors and the ErrAlreadyExists sentinel.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return target == ErrAlreadyExists
}

// CapacityError reports a position at its maximum occupancy.
type CapacityError struct {
	DepartmentID string
	Position     string
	MaxAgents    int
}

// NewCapacityError creates a CapacityError.
func NewCapacityError(departmentID, position string, maxAgents int) *CapacityError {
	return &CapacityError{DepartmentID: departmentID, Position: position, MaxAgents: maxAgents}
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("position %q in department %q is at capacity (%d)",
		e.Position, e.DepartmentID, e.MaxAgents)
}

// Is matches other CapacityErrors and the ErrCapacityExceeded sentinel.
func (e *CapacityError) Is(target error) bool {
	if _, ok := target.(*CapacityError); ok {
		return true
	}
	return target == ErrCapacityExceeded
}

// TransitionError reports a rejected unit lifecycle transition.
type TransitionError struct {
	UnitID string
	From   string
	To     string
	Reason string
}

// NewTransitionError creates a TransitionError.
func NewTransitionError(unitID, from, to string) *TransitionError {
	return &TransitionError{UnitID: unitID, From: from, To: to}
}

// WithReason attaches an explanation to the error.
func (e *TransitionError) WithReason(reason string) *TransitionError {
	e.Reason = reason
	return e
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("unit %q: cannot transition from %s to %s", e.UnitID, e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is matches other TransitionErrors and the ErrInvalidTransition sentinel.
func (e *TransitionError) Is(target error) bool {
	if _, ok := target.(*TransitionError); ok {
		return true
	}
	return target == ErrInvalidTransition
}

// PersistenceError reports a failed read or write of the backing store.
// Persistence failures never roll back in-memory mutations; callers log them
// and continue.
type PersistenceError struct {
	Op    string // "save" or "load"
	Path  string
	cause error
}

// NewPersistenceError creates a PersistenceError wrapping cause.
func NewPersistenceError(op, path string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, cause: cause}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed for %s: %v", e.Op, e.Path, e.cause)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error { return e.cause }

// Is matches other PersistenceErrors and the ErrPersistence sentinel.
func (e *PersistenceError) Is(target error) bool {
	if _, ok := target.(*PersistenceError); ok {
		return true
	}
	return target == ErrPersistence
}

// ValidationError reports invalid input or state.
type ValidationError struct {
	Field   string
	message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error [field=%s]: %s", e.Field, e.message)
	}
	return "validation error: " + e.message
}

// Is matches other ValidationErrors and the ErrInvalidInput sentinel.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// GetSeverity classifies an error for reporting. Expected registry failures
// (not found, duplicates, capacity, rejected transitions, validation) are
// warnings; persistence failures and anything unrecognized are errors.
func GetSeverity(err error) Severity {
	switch {
	case err == nil:
		return SeverityWarning
	case Is(err, ErrNotFound), Is(err, ErrAlreadyExists), Is(err, ErrCapacityExceeded),
		Is(err, ErrInvalidTransition), Is(err, ErrInvalidInput):
		return SeverityWarning
	default:
		return SeverityError
	}
}

// IsUserFacing reports whether the error message is safe to display to end
// users. All semantic registry errors are user-facing.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var (
		notFound   *NotFoundError
		exists     *AlreadyExistsError
		capacity   *CapacityError
		transition *TransitionError
		validation *ValidationError
	)
	return As(err, &notFound) || As(err, &exists) || As(err, &capacity) ||
		As(err, &transition) || As(err, &validation)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
