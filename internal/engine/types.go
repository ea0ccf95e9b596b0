package engine

import (
	"time"

	"latentd/internal/adapter"
)

// Instance is one registered adapter with its cached capability set and
// admission primitives.
type Instance struct {
	ID     string
	Name   string
	Source string
	Path   string

	Model adapter.Model
	// Caps is probed once at registration; capabilities are fixed at
	// adapter construction, so this never changes afterwards.
	Caps adapter.CapabilitySet

	LastUsed   time.Time
	EvalsTotal uint64

	// genCh (size 1) serializes evaluation; queueCh bounds waiters.
	genCh   chan struct{}
	queueCh chan struct{}
}
