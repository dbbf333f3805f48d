package statecraft

import "errors"

// Configuration errors returned by NewEngine. They wrap one of these sentinels so
// callers can classify a failure with errors.Is, following the sentinel-error
// convention used throughout the teacher's internal/core/registry.go.
var (
	// ErrDuplicateState is returned when two states in the tree share a name.
	// Uniqueness is an invariant the engine assumes (§3.2); construction fails
	// loudly instead of leaving the tree in an undefined state.
	ErrDuplicateState = errors.New("statecraft: duplicate state name")

	// ErrDanglingTarget is returned when a transition names a target state that
	// does not exist anywhere in the tree.
	ErrDanglingTarget = errors.New("statecraft: transition target does not exist")

	// ErrMissingAction is returned when an entry, exit, or transition action
	// name has no corresponding entry in the actions table.
	ErrMissingAction = errors.New("statecraft: action not implemented")

	// ErrMissingCondition is returned when a transition condition name has no
	// corresponding entry in the conditions table.
	ErrMissingCondition = errors.New("statecraft: condition not implemented")
)
