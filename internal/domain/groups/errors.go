package groups

import (
	"errors"
	"fmt"
)

// Registry errors
var (
	ErrUnresolvedParent = errors.New("group parent has not been translated to an internal id")
)

// TypeConstraintError is returned when an operation receives a value of the
// wrong kind, such as a nil group passed to Assign.
type TypeConstraintError struct {
	Expected string
	Actual   string
}

func (e *TypeConstraintError) Error() string {
	return fmt.Sprintf("type constraint violated: expected %s, got %s", e.Expected, e.Actual)
}
