package internal

import "errors"

// Adapter errors.
var (
	// ErrEmptyComponent is returned by Render when no component name is given.
	ErrEmptyComponent = errors.New("inertia: component name required")

	// errSkipNested signals that a nested Deferred or Optional prop must be
	// dropped from its containing structure. Never escapes the engine.
	errSkipNested = errors.New("inertia: nested prop skipped")
)
