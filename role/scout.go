package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// Scout has no economic function: it moves to the single room named by its
// TargetRoom to give TaskDiscovery/DemandCalculator visibility there, then
// holds in that room. It keeps no itinerary and does not move on to further
// rooms. It costs one move part and nothing else.
type Scout struct{}

func (Scout) RoleName() string { return roles.Scout }

func (Scout) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartMove},
		GrowthPattern:       nil,
		MaxRepeats:          1,
		MemorySchemaVersion: 1,
	}
}

func (s Scout) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: s.RoleName(), Version: s.Config().MemorySchemaVersion}
}

func (s Scout) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, s.Config().MemorySchemaVersion)
}

func (s Scout) Execute(ctx *ExecContext) string {
	if ctx.Memory.TargetRoom == "" || ctx.Unit.Room() == ctx.Memory.TargetRoom {
		return "holding"
	}
	goal := snapshot.Position{Room: ctx.Memory.TargetRoom}
	if err := ctx.Unit.Move(goal, int(blackboard.PriorityLow)); err != nil {
		ctx.Log.Debug("scout travel failed", "unit", ctx.Unit.Name(), "err", err)
	}
	return "travelling"
}
