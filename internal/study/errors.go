package study

import "fmt"

// StateConsistencyError reports a phase transition that the current state
// does not allow.
type StateConsistencyError struct {
	Op     string
	Reason string
}

func (e *StateConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
