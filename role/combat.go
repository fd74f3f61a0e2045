package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// combatTarget resolves the unit's assigned theatre room, falling back to
// its home room when no attack/defense request names one.
func combatTarget(ctx *ExecContext) (snapshot.RoomView, bool) {
	room := ctx.Memory.TargetRoom
	if room == "" {
		return ctx.Room, true
	}
	if ctx.Unit.Room() != room {
		return nil, false
	}
	view, ok := ctx.Snapshot.Rooms()[room]
	return view, ok
}

// Attacker engages the assigned theatre room. It has no vision of hostile
// units in this model (the snapshot only exposes owned structures/units),
// so it calls Attack on the first structure listed by the theatre room's
// Structures(). Hostile units are never targeted, construction sites are
// not considered, and no target ordering is applied.
type Attacker struct{}

func (Attacker) RoleName() string { return roles.Attacker }

func (Attacker) Config() Config {
	return Config{
		Minimum: 0,
		BaseBody: []snapshot.BodyPart{
			snapshot.PartAttack, snapshot.PartAttack, snapshot.PartMove, snapshot.PartMove, snapshot.PartTough,
		},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartAttack, snapshot.PartMove},
		MaxRepeats:          4,
		MemorySchemaVersion: 1,
	}
}

func (a Attacker) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: a.RoleName(), Version: a.Config().MemorySchemaVersion}
}

func (a Attacker) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, a.Config().MemorySchemaVersion)
}

func (a Attacker) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	if ctx.Memory.TargetRoom != "" && unit.Room() != ctx.Memory.TargetRoom {
		return travelToTargetRoom(ctx)
	}
	room, ok := combatTarget(ctx)
	if !ok {
		return "idle"
	}
	structures := room.Structures()
	if len(structures) == 0 {
		return "holding"
	}
	target := structures[0]
	if err := unit.Attack(target.ID()); err != nil {
		ctx.Log.Debug("attacker attack failed", "unit", unit.Name(), "target", target.ID(), "err", err)
	}
	return "attacking"
}

// Healer heals the unit whose name is stored in its SquadID whenever that
// unit is in the snapshot, and holds otherwise. It reads no hit points, so
// it does not pick the most wounded escort.
type Healer struct{}

func (Healer) RoleName() string { return roles.Healer }

func (Healer) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartHeal, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartHeal, snapshot.PartMove},
		MaxRepeats:          3,
		MemorySchemaVersion: 1,
	}
}

func (h Healer) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: h.RoleName(), Version: h.Config().MemorySchemaVersion}
}

func (h Healer) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, h.Config().MemorySchemaVersion)
}

func (h Healer) Execute(ctx *ExecContext) string {
	if ctx.Memory.SquadID == "" {
		return "holding"
	}
	if unit, ok := ctx.Snapshot.Units()[ctx.Memory.SquadID]; ok {
		if err := ctx.Unit.Heal(unit.Name()); err != nil {
			ctx.Log.Debug("healer heal failed", "unit", ctx.Unit.Name(), "target", unit.Name(), "err", err)
		}
		return "healing"
	}
	return "holding"
}

// Dismantler tears down enemy structures ahead of an Attacker squad.
type Dismantler struct{}

func (Dismantler) RoleName() string { return roles.Dismantler }

func (Dismantler) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartWork, snapshot.PartWork, snapshot.PartMove, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartWork, snapshot.PartMove},
		MaxRepeats:          4,
		MemorySchemaVersion: 1,
	}
}

func (d Dismantler) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: d.RoleName(), Version: d.Config().MemorySchemaVersion}
}

func (d Dismantler) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, d.Config().MemorySchemaVersion)
}

func (d Dismantler) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	if ctx.Memory.TargetRoom != "" && unit.Room() != ctx.Memory.TargetRoom {
		return travelToTargetRoom(ctx)
	}
	room, ok := combatTarget(ctx)
	if !ok {
		return "idle"
	}
	structures := room.Structures()
	if len(structures) == 0 {
		return "holding"
	}
	target := structures[0]
	if err := unit.Dismantle(target.ID()); err != nil {
		ctx.Log.Debug("dismantler dismantle failed", "unit", unit.Name(), "target", target.ID(), "err", err)
	}
	return "dismantling"
}
