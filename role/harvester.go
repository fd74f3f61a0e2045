package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Harvester mines its assigned source directly and, absent a hauler
// economy, carries the energy itself to whichever owned structure needs it
// most.
type Harvester struct{}

func (Harvester) RoleName() string { return roles.Harvester }

func (Harvester) Config() Config {
	return Config{
		Minimum:             1,
		BaseBody:            []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		MaxRepeats:          5,
		MemorySchemaVersion: 1,
	}
}

func (h Harvester) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: h.RoleName(), Version: h.Config().MemorySchemaVersion}
}

func (h Harvester) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, h.Config().MemorySchemaVersion)
}

// Execute threads a {harvest, deliver, upgrade} Machine through the tick:
// the forced-refill pre-emption jumps straight to deliver via Goto, and
// otherwise the observed carry free space drives the full/empty events that
// decide whether this tick harvests or delivers.
func (h Harvester) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	m := restoreMachine(mem, harvesterTable, StateHarvest, unit.Name())

	if target, ok := ForceRefillTarget(ctx.Room, unit); ok {
		m.Goto(StateDeliver)
		if err := unit.Transfer(target.ID(), unit.Carry().Free()); err != nil {
			ctx.Log.Debug("harvester forced refill failed", "unit", unit.Name(), "target", target.ID(), "err", err)
		}
		commitMachine(mem, m)
		return "refilling_spawn"
	}

	if unit.Carry().Free() > 0 {
		m.Fire(EventEmpty)
	} else {
		m.Fire(EventFull)
	}

	if m.State() == StateHarvest {
		entry, ok := acquireTask(ctx, h.RoleName())
		if !ok {
			commitMachine(mem, m)
			return "idle"
		}
		if err := unit.Harvest(entry.TargetID); err != nil {
			ctx.Log.Debug("harvester harvest failed", "unit", unit.Name(), "source", entry.TargetID, "err", err)
		}
		commitMachine(mem, m)
		return "harvesting"
	}

	if destID, verb, ok := bestDeliveryTarget(ctx.Room); ok {
		if err := runVerb(unit, verb, destID, unit.Carry().Energy()); err != nil {
			ctx.Log.Debug("harvester delivery failed", "unit", unit.Name(), "target", destID, "err", err)
		}
		commitMachine(mem, m)
		return "delivering"
	}

	m.Fire(EventNoDeliveryTarget)
	if ctrl, hasCtrl := ctx.Room.Controller(); hasCtrl {
		if err := unit.Upgrade(ctrl.ID()); err != nil {
			ctx.Log.Debug("harvester fallback upgrade failed", "unit", unit.Name(), "err", err)
		}
		commitMachine(mem, m)
		return "delivering"
	}
	commitMachine(mem, m)
	return "idle"
}
