package engine

import "errors"

// Error kinds surfaced to cmd/lineagg. The first three are always
// returned before any worker goroutine starts; the latter two can only
// happen once ingestion is underway.
var (
	ErrInputNotFound     = errors.New("engine: input file not found")
	ErrInputNotReadable  = errors.New("engine: input file not readable")
	ErrMapFailed         = errors.New("engine: memory-map failed")
	ErrOutOfMemory       = errors.New("engine: out of memory during ingestion")
	ErrInvariantViolated = errors.New("engine: internal invariant violated")
)
