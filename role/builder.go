package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Builder completes construction sites, gathering its own energy when it
// runs dry.
type Builder struct{}

func (Builder) RoleName() string { return roles.Builder }

func (Builder) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartCarry, snapshot.PartMove, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		MaxRepeats:          4,
		MemorySchemaVersion: 1,
	}
}

func (b Builder) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: b.RoleName(), Version: b.Config().MemorySchemaVersion}
}

func (b Builder) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, b.Config().MemorySchemaVersion)
}

// Execute threads a {gather, build, maintain} Machine through the tick:
// gather until loaded, build while the construction queue has work, and
// fall through to repair duty once it runs dry so the unit keeps doing
// something useful instead of idling.
func (b Builder) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	m := restoreMachine(mem, builderTable, StateGather, unit.Name())

	if target, ok := ForceRefillTarget(ctx.Room, unit); ok {
		m.Goto(StateBuild)
		if err := unit.Transfer(target.ID(), unit.Carry().Free()); err != nil {
			ctx.Log.Debug("builder forced refill failed", "unit", unit.Name(), "err", err)
		}
		commitMachine(mem, m)
		return "refilling_spawn"
	}

	if unit.Carry().Energy() <= 0 {
		m.Fire(EventEmpty)
	} else {
		m.Fire(EventFull)
	}

	if m.State() == StateGather {
		if targetID, verb, ok := findEnergy(ctx.Room); ok {
			if err := runVerb(unit, verb, targetID, unit.Carry().Free()); err != nil {
				ctx.Log.Debug("builder gather failed", "unit", unit.Name(), "err", err)
			}
			commitMachine(mem, m)
			return "gathering"
		}
		commitMachine(mem, m)
		return "idle"
	}

	if m.State() == StateMaintain && ctx.Queue.Available(b.RoleName(), ctx.Tick) {
		m.Fire(EventSitesFound)
	}

	if m.State() == StateBuild {
		if entry, ok := acquireTask(ctx, b.RoleName()); ok {
			if err := unit.Build(entry.TargetID); err != nil {
				ctx.Log.Debug("builder build failed", "unit", unit.Name(), "target", entry.TargetID, "err", err)
			}
			commitMachine(mem, m)
			return "building"
		}
		m.Fire(EventNoSites)
	}

	entry, ok := acquireTask(ctx, roles.Repairer)
	commitMachine(mem, m)
	if !ok {
		return "idle"
	}
	if err := unit.Repair(entry.TargetID); err != nil {
		ctx.Log.Debug("builder maintain repair failed", "unit", unit.Name(), "target", entry.TargetID, "err", err)
	}
	return "maintaining"
}
