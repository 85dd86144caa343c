package states

import "fmt"

// NoState marks a SchemaError that refers to a whole group rather than a
// single state entry.
const NoState = -1

// SchemaError describes structurally invalid manifest content: wrong JSON
// shape, a missing required field, an empty state list or a duplicate group
// identifier. A manifest that produces a SchemaError yields no groups at all.
type SchemaError struct {
	Group  string
	State  int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("invalid states manifest: %s", e.Reason)
	}
	if e.State == NoState {
		return fmt.Sprintf("invalid states manifest: group '%s': %s", e.Group, e.Reason)
	}
	return fmt.Sprintf(
		"invalid states manifest: group '%s' state %d: %s", e.Group, e.State, e.Reason)
}

func schemaErrorf(group string, state int, format string, a ...interface{}) *SchemaError {
	return &SchemaError{Group: group, State: state, Reason: fmt.Sprintf(format, a...)}
}

// MissingFileError is reported by Validate when a file a state refers to does
// not exist under the folder being validated.
type MissingFileError struct {
	Group string
	State string
	Path  string
}

func (e *MissingFileError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("failed to find '%s' for state '%s'", e.Path, e.State)
	}
	return fmt.Sprintf(
		"failed to find '%s' for state '%s' of group '%s'", e.Path, e.State, e.Group)
}
