package models

import "fmt"

// InvalidTransitionError is returned when a workflow edge is not permitted
// from the entity's current status. Transitions never silently no-op.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot transition from %s to %s", e.Entity, e.From, e.To)
}

func NewInvalidTransition(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

// NotFoundError is returned when a referenced entity is missing or soft-deleted.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id int) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError carries field-level problems with the caller's input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PermissionDeniedError is returned when the acting member lacks the role or
// ownership required for an operation.
type PermissionDeniedError struct {
	Message string
}

func (e *PermissionDeniedError) Error() string {
	return e.Message
}

func NewPermissionDenied(message string) *PermissionDeniedError {
	return &PermissionDeniedError{Message: message}
}
