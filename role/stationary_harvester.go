package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// StationaryHarvester harvests the source named by its stationary_harvester
// task every tick and records it as SourceID. It issues no Move and no
// Transfer and never sets ContainerID: it does not walk to the source, and
// it does not put harvested energy into the source's container itself.
type StationaryHarvester struct{}

func (StationaryHarvester) RoleName() string { return roles.StationaryHarvester }

func (StationaryHarvester) Config() Config {
	return Config{
		Minimum: 0,
		BaseBody: []snapshot.BodyPart{
			snapshot.PartWork, snapshot.PartWork, snapshot.PartWork,
			snapshot.PartWork, snapshot.PartWork, snapshot.PartMove,
		},
		GrowthPattern:       nil,
		MaxRepeats:          1,
		MemorySchemaVersion: 1,
	}
}

func (s StationaryHarvester) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: s.RoleName(), Version: s.Config().MemorySchemaVersion}
}

func (s StationaryHarvester) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, s.Config().MemorySchemaVersion)
}

func (s StationaryHarvester) Execute(ctx *ExecContext) string {
	unit := ctx.Unit

	entry, ok := acquireTask(ctx, s.RoleName())
	if !ok {
		return "idle"
	}
	ctx.Memory.SourceID = entry.TargetID

	if err := unit.Harvest(entry.TargetID); err != nil {
		ctx.Log.Debug("stationary_harvester harvest failed", "unit", unit.Name(), "source", entry.TargetID, "err", err)
	}
	return "harvesting"
}
