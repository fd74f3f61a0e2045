package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Repairer restores structure hit points, excluding walls and ramparts
// which the repair task queue never enqueues.
type Repairer struct{}

func (Repairer) RoleName() string { return roles.Repairer }

func (Repairer) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartCarry, snapshot.PartMove, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		MaxRepeats:          3,
		MemorySchemaVersion: 1,
	}
}

func (r Repairer) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: r.RoleName(), Version: r.Config().MemorySchemaVersion}
}

func (r Repairer) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, r.Config().MemorySchemaVersion)
}

func (r Repairer) Execute(ctx *ExecContext) string {
	unit := ctx.Unit

	if target, ok := ForceRefillTarget(ctx.Room, unit); ok {
		if err := unit.Transfer(target.ID(), unit.Carry().Free()); err != nil {
			ctx.Log.Debug("repairer forced refill failed", "unit", unit.Name(), "err", err)
		}
		return "refilling_spawn"
	}

	if unit.Carry().Energy() <= 0 {
		if targetID, verb, ok := findEnergy(ctx.Room); ok {
			if err := runVerb(unit, verb, targetID, unit.Carry().Free()); err != nil {
				ctx.Log.Debug("repairer gather failed", "unit", unit.Name(), "err", err)
			}
			return "gathering"
		}
		return "idle"
	}

	entry, ok := acquireTask(ctx, r.RoleName())
	if !ok {
		return "idle"
	}
	if err := unit.Repair(entry.TargetID); err != nil {
		ctx.Log.Debug("repairer repair failed", "unit", unit.Name(), "target", entry.TargetID, "err", err)
	}
	return "repairing"
}
