package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Upgrader feeds the room controller and self-supplies its own energy at
// every RCL; whether or not a hauler economy exists, the task queue hands it
// a controller target every tick, so this stays identical either way.
type Upgrader struct{}

func (Upgrader) RoleName() string { return roles.Upgrader }

func (Upgrader) Config() Config {
	return Config{
		Minimum:             1,
		BaseBody:            []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartWork, snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		MaxRepeats:          4,
		MemorySchemaVersion: 1,
	}
}

func (u Upgrader) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: u.RoleName(), Version: u.Config().MemorySchemaVersion}
}

func (u Upgrader) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, u.Config().MemorySchemaVersion)
}

func (u Upgrader) Execute(ctx *ExecContext) string {
	unit := ctx.Unit

	if target, ok := ForceRefillTarget(ctx.Room, unit); ok {
		if err := unit.Transfer(target.ID(), unit.Carry().Free()); err != nil {
			ctx.Log.Debug("upgrader forced refill failed", "unit", unit.Name(), "err", err)
		}
		return "refilling_spawn"
	}

	entry, ok := acquireTask(ctx, u.RoleName())
	if !ok {
		return "idle"
	}

	if unit.Carry().Energy() <= 0 {
		if targetID, verb, ok := findEnergy(ctx.Room); ok {
			if err := runVerb(unit, verb, targetID, unit.Carry().Free()); err != nil {
				ctx.Log.Debug("upgrader gather failed", "unit", unit.Name(), "err", err)
			}
			return "gathering"
		}
		return "idle"
	}

	if err := unit.Upgrade(entry.TargetID); err != nil {
		ctx.Log.Debug("upgrader upgrade failed", "unit", unit.Name(), "err", err)
	}
	return "upgrading"
}
