package workflow

import (
	"errors"
	"fmt"

	"gecapi/internal/model"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrSchemaMismatch matches every *SchemaMismatchError.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrNodeNotFound is returned when a node id does not resolve inside the courrier.
	ErrNodeNotFound = errors.New("node not found")
	// ErrInactiveNode is returned when an operation needs an active node and got a closed one.
	ErrInactiveNode = errors.New("inactive node")

	errNoPayload   = errors.New("missing payload")
	errUseTransmit = errors.New("transmissions create nodes and must go through Transmit")
)

// ValidationError reports a malformed graph or invalid input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// SchemaMismatchError reports an action payload that does not match its declared type.
type SchemaMismatchError struct {
	Type model.ActionType
	Err  error
}

func (e *SchemaMismatchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("schema mismatch for action %q", e.Type)
	}
	return fmt.Sprintf("schema mismatch for action %q: %v", e.Type, e.Err)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

func (e *SchemaMismatchError) Unwrap() error {
	return e.Err
}

func nodeNotFound(courierID, nodeID string) error {
	return fmt.Errorf("%w: %s in courrier %s", ErrNodeNotFound, nodeID, courierID)
}

func inactiveNode(nodeID string) error {
	return fmt.Errorf("%w: %s is closed", ErrInactiveNode, nodeID)
}
