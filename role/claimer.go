package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Claimer travels to an expansion target room and claims its controller.
// Once the claim succeeds the colony manager retires the expansion request
// and the unit has nothing further to do; it is expected to die on that
// room's first respawn cycle.
type Claimer struct{}

func (Claimer) RoleName() string { return roles.Claimer }

func (Claimer) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartClaim, snapshot.PartMove},
		GrowthPattern:       nil,
		MaxRepeats:          1,
		MemorySchemaVersion: 1,
	}
}

func (c Claimer) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: c.RoleName(), Version: c.Config().MemorySchemaVersion}
}

func (c Claimer) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, c.Config().MemorySchemaVersion)
}

// Execute threads a {travel, claim} Machine through the tick. Claim is
// absorbing: once arrived, the unit claims every tick until the colony
// manager retires the expansion request and the unit is torn down.
func (c Claimer) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	if mem.TargetRoom == "" {
		return "idle"
	}
	m := restoreMachine(mem, claimerTable, StateTravel, unit.Name())

	if unit.Room() != mem.TargetRoom {
		commitMachine(mem, m)
		return travelToTargetRoom(ctx)
	}
	room, visible := remoteRoom(ctx)
	if !visible {
		commitMachine(mem, m)
		return travelToTargetRoom(ctx)
	}
	if m.State() == StateTravel {
		m.Fire(EventArrived)
	}
	ctrl, ok := room.Controller()
	if !ok {
		commitMachine(mem, m)
		return "idle"
	}
	if err := unit.Claim(ctrl.ID()); err != nil {
		ctx.Log.Debug("claimer claim failed", "unit", unit.Name(), "err", err)
	}
	commitMachine(mem, m)
	return "claiming"
}
