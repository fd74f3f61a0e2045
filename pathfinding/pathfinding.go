// Package pathfinding defines the consumed interface the kernel invokes at
// the end of a tick to let the host resolve every queued Move intent
// (priority-swap traffic, obstacle avoidance), plus a no-op fallback for
// hosts that don't wire one in.
package pathfinding

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Manager lets the host coordinate every Move intent issued by role
// controllers during a tick's execution phase. The kernel calls RunMoves
// exactly once, after every unit has run; the core never computes a path
// itself and never calls back into RunMoves mid-tick.
type Manager interface {
	RunMoves(snap snapshot.Snapshot) error
}

// Noop is the default Manager used when Kernel.Config.Pathfinding is nil.
// It performs no traffic coordination: every Move intent already reached
// the host directly through UnitView.Move, so there is nothing left to
// resolve.
type Noop struct{}

func (Noop) RunMoves(snap snapshot.Snapshot) error { return nil }

// Direction returns the normalized vector from one position to another,
// ignoring cross-room travel (X/Y are room-local). Grounded on the
// teacher's entity movement computer, this is exposed for hosts building a
// direct-move fallback on top of Noop rather than embedded in Noop itself,
// since a true no-op has no positions to act on.
func Direction(from, to snapshot.Position) mgl64.Vec3 {
	v := mgl64.Vec3{float64(to.X - from.X), float64(to.Y - from.Y), 0}
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
