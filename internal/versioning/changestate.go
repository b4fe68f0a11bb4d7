// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package versioning

import (
	"encoding/json"
	"fmt"
)

// ChangeState is the lifecycle marker stored in the change_state column.
type ChangeState int16

const (
	Added    ChangeState = 0
	Modified ChangeState = 1
	Deleted  ChangeState = 2
)

// String returns the upper-case state name used in logs and JSON.
func (s ChangeState) String() string {
	switch s {
	case Added:
		return "ADDED"
	case Modified:
		return "MODIFIED"
	case Deleted:
		return "DELETED"
	default:
		return fmt.Sprintf("ChangeState(%d)", int16(s))
	}
}

// Valid reports whether s is one of the three known states.
func (s ChangeState) Valid() bool {
	return s >= Added && s <= Deleted
}

// CanTransition reports whether a record in state s may move to next.
//
// ADDED and MODIFIED may become MODIFIED or DELETED. DELETED is terminal.
func (s ChangeState) CanTransition(next ChangeState) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}

	switch s {
	case Added, Modified:
		return next == Modified || next == Deleted
	default:
		return false
	}
}

// Transition returns next if the move is legal, otherwise an error naming both states.
func (s ChangeState) Transition(next ChangeState) (ChangeState, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("versioning: illegal change_state transition %s -> %s", s, next)
	}
	return next, nil
}

// MarshalJSON renders the state by name.
func (s ChangeState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseChangeState maps a state name back to its value.
func ParseChangeState(name string) (ChangeState, error) {
	switch name {
	case "ADDED":
		return Added, nil
	case "MODIFIED":
		return Modified, nil
	case "DELETED":
		return Deleted, nil
	default:
		return 0, fmt.Errorf("versioning: unknown change_state %q", name)
	}
}

// UnmarshalJSON accepts the state name produced by MarshalJSON.
func (s *ChangeState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	state, err := ParseChangeState(name)
	if err != nil {
		return err
	}
	*s = state
	return nil
}
