package topology

import "errors"

// Common errors
var (
	ErrPathResolution = errors.New("path could not be resolved")
	ErrNotDirectory   = errors.New("not a directory")
	ErrCycle          = errors.New("path is one of its own ancestors")
	ErrUnknownKind    = errors.New("kind missing from node table")
	ErrCountMismatch  = errors.New("counters disagree with assembled tree")
)
