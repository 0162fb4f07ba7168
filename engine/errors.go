package engine

import "fmt"

// ValidationKind classifies why a mapping was rejected
type ValidationKind string

const (
	InvalidPinCount ValidationKind = "pin-count"
	DuplicatePin    ValidationKind = "duplicate-pin"
	ReservedPin     ValidationKind = "reserved-pin"
	UnknownPin      ValidationKind = "unknown-pin"
	InvalidRole     ValidationKind = "role"
	NothingToSave   ValidationKind = "empty"
)

// ValidationError is a rejected user action. Message is meant to be shown to the user as is.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func reject(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
