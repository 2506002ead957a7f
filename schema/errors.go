package schema

import "errors"

// Construction failures wrap one of these sentinels so callers can classify
// the authoring defect with errors.Is. They are build-time defects in the
// metadata corpus, never operational errors.
var (
	// ErrMissingField marks a mandatory key absent (or empty) in a raw map.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidEnum marks a value outside its closed set: event types,
	// delivery guarantees, write styles, option kinds, and the
	// compression/encoding description tables.
	ErrInvalidEnum = errors.New("invalid enum value")

	// ErrStyleViolation marks free text breaking a documentation convention,
	// e.g. a write_to_description ending in a period.
	ErrStyleViolation = errors.New("style violation")

	// ErrConflictingConstraint marks mutually exclusive settings, e.g. a
	// required option that also declares a default.
	ErrConflictingConstraint = errors.New("conflicting constraint")
)
