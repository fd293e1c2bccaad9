package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Outpost errors

type OutpostError struct {
	*DomainError
	ColonyName  string
	OutpostName string
}

func NewOutpostError(message, colonyName, outpostName string) *OutpostError {
	return &OutpostError{
		DomainError: &DomainError{Message: message},
		ColonyName:  colonyName,
		OutpostName: outpostName,
	}
}

// MissingAnchorError means the owning colony has no base anchor to measure
// paths from. It is a configuration defect, not a world condition.
type MissingAnchorError struct {
	*OutpostError
}

func NewMissingAnchorError(colonyName, outpostName string) *MissingAnchorError {
	return &MissingAnchorError{
		OutpostError: NewOutpostError(
			fmt.Sprintf("colony %s has no anchor for outpost %s", colonyName, outpostName),
			colonyName,
			outpostName,
		),
	}
}

type OutpostNotFoundError struct {
	*OutpostError
}

func NewOutpostNotFoundError(colonyName, outpostName string) *OutpostNotFoundError {
	return &OutpostNotFoundError{
		OutpostError: NewOutpostError(
			fmt.Sprintf("outpost %s not found in colony %s", outpostName, colonyName),
			colonyName,
			outpostName,
		),
	}
}
