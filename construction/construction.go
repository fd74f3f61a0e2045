// Package construction defines the consumed interface the kernel invokes
// once per tick to let the host's building layer plan new construction
// sites, plus a no-op fallback.
package construction

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Manager lets the host decide where new construction sites belong. The
// kernel calls Plan once per tick, before DemandCalculator runs, passing
// the read-mostly snapshot and the mutable blackboard; the core itself
// never plans room layouts. Any sites Plan places appear as
// ConstructionSiteView entries in a later tick's snapshot, where
// TaskDiscovery picks them up.
type Manager interface {
	Plan(snap snapshot.Snapshot, bb *blackboard.Blackboard) error
}

// Noop places nothing, used when Kernel.Config.Construction is nil.
type Noop struct{}

func (Noop) Plan(snap snapshot.Snapshot, bb *blackboard.Blackboard) error { return nil }
