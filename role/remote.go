package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// remoteRoom resolves the room view a remote-role unit should be working
// in. It returns false when that room hasn't been scouted this tick (no
// visibility), in which case the only sane action is moving toward it.
func remoteRoom(ctx *ExecContext) (snapshot.RoomView, bool) {
	if ctx.Memory.TargetRoom == "" {
		return nil, false
	}
	room, ok := ctx.Snapshot.Rooms()[ctx.Memory.TargetRoom]
	return room, ok
}

func travelToTargetRoom(ctx *ExecContext) string {
	goal := snapshot.Position{Room: ctx.Memory.TargetRoom}
	if err := ctx.Unit.Move(goal, int(blackboard.PriorityNormal)); err != nil {
		ctx.Log.Debug("remote unit travel failed", "unit", ctx.Unit.Name(), "target_room", ctx.Memory.TargetRoom, "err", err)
	}
	return "travelling"
}

func remoteConfig() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartWork, snapshot.PartMove},
		MaxRepeats:          5,
		MemorySchemaVersion: 1,
	}
}

// RemoteMiner harvests a source in an unowned support room and drops the
// energy for a RemoteHauler to retrieve, the same division of labour as
// StationaryHarvester/Hauler but across a room boundary.
type RemoteMiner struct{}

func (RemoteMiner) RoleName() string { return roles.RemoteMiner }
func (RemoteMiner) Config() Config   { return remoteConfig() }

func (r RemoteMiner) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: r.RoleName(), Version: r.Config().MemorySchemaVersion}
}
func (r RemoteMiner) ValidateMemory(mem *blackboard.UnitMemory) { baseValidate(mem, r.Config().MemorySchemaVersion) }

// Execute threads a {travel, work} Machine through the tick: travel until
// the target room is visible and reached, then work it forever — a remote
// miner never returns home, it just drops energy for a RemoteHauler.
func (r RemoteMiner) Execute(ctx *ExecContext) string {
	mem := ctx.Memory
	m := restoreMachine(mem, remoteWorkerTable, StateTravel, ctx.Unit.Name())

	room, visible := remoteRoom(ctx)
	if !visible || ctx.Unit.Room() != mem.TargetRoom {
		if m.State() != StateTravel {
			m.Fire(EventLostVisibility)
		}
		commitMachine(mem, m)
		return travelToTargetRoom(ctx)
	}
	if m.State() == StateTravel {
		m.Fire(EventArrived)
	}

	if mem.SourceID == "" {
		for _, src := range room.Sources() {
			if src.Active() {
				mem.SourceID = src.ID()
				break
			}
		}
	}
	if mem.SourceID == "" {
		commitMachine(mem, m)
		return "idle"
	}
	if err := ctx.Unit.Harvest(mem.SourceID); err != nil {
		ctx.Log.Debug("remote_miner harvest failed", "unit", ctx.Unit.Name(), "err", err)
	}
	commitMachine(mem, m)
	return "harvesting"
}

// RemoteHauler ferries energy dropped by a RemoteMiner back to the home
// room's storage.
type RemoteHauler struct{}

func (RemoteHauler) RoleName() string { return roles.RemoteHauler }
func (RemoteHauler) Config() Config {
	c := remoteConfig()
	c.BaseBody = []snapshot.BodyPart{snapshot.PartCarry, snapshot.PartCarry, snapshot.PartMove, snapshot.PartMove}
	c.GrowthPattern = []snapshot.BodyPart{snapshot.PartCarry, snapshot.PartMove}
	return c
}

func (r RemoteHauler) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: r.RoleName(), Version: r.Config().MemorySchemaVersion}
}
func (r RemoteHauler) ValidateMemory(mem *blackboard.UnitMemory) { baseValidate(mem, r.Config().MemorySchemaVersion) }

// Execute threads the full {travel, work, return} Machine through the
// tick: travel to the support room, work (gather dropped/container energy)
// once arrived, and return home once carrying a load, delivering and
// cycling back to travel once it's empty again.
func (r RemoteHauler) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	m := restoreMachine(mem, remoteTable, StateTravel, unit.Name())

	if unit.Carry().Energy() > 0 {
		m.Fire(EventFull)
	} else if m.State() == StateReturn && unit.Room() == mem.HomeRoom {
		m.Fire(EventEmpty)
	}

	if m.State() == StateReturn {
		if unit.Room() == mem.HomeRoom {
			if homeRoom, ok := ctx.Snapshot.Rooms()[mem.HomeRoom]; ok {
				if destID, verb, ok := bestDeliveryTarget(homeRoom); ok {
					if err := runVerb(unit, verb, destID, unit.Carry().Energy()); err != nil {
						ctx.Log.Debug("remote_hauler delivery failed", "unit", unit.Name(), "err", err)
					}
					commitMachine(mem, m)
					return "delivering"
				}
			}
			commitMachine(mem, m)
			return "idle"
		}
		goal := snapshot.Position{Room: mem.HomeRoom}
		if err := unit.Move(goal, int(blackboard.PriorityNormal)); err != nil {
			ctx.Log.Debug("remote_hauler return travel failed", "unit", unit.Name(), "err", err)
		}
		commitMachine(mem, m)
		return "returning"
	}

	room, visible := remoteRoom(ctx)
	if !visible || unit.Room() != mem.TargetRoom {
		if m.State() != StateTravel {
			m.Fire(EventLostVisibility)
		}
		commitMachine(mem, m)
		return travelToTargetRoom(ctx)
	}
	if m.State() == StateTravel {
		m.Fire(EventArrived)
	}
	if targetID, verb, ok := findEnergy(room); ok && verb != "harvest" {
		if err := runVerb(unit, verb, targetID, unit.Carry().Free()); err != nil {
			ctx.Log.Debug("remote_hauler gather failed", "unit", unit.Name(), "err", err)
		}
		commitMachine(mem, m)
		return "gathering"
	}
	commitMachine(mem, m)
	return "idle"
}

// RemoteUpgrader reinforces a claimed, unowned-at-spawn-level support
// room's controller, reusing the home Upgrader's self-supply behaviour.
type RemoteUpgrader struct{}

func (RemoteUpgrader) RoleName() string { return roles.RemoteUpgrader }
func (RemoteUpgrader) Config() Config   { return remoteConfig() }

func (r RemoteUpgrader) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: r.RoleName(), Version: r.Config().MemorySchemaVersion}
}
func (r RemoteUpgrader) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, r.Config().MemorySchemaVersion)
}

// Execute threads a {travel, work} Machine through the tick: travel to the
// support room, then alternate gather/upgrade once arrived, the same
// self-supply pattern as the home Upgrader but without ever leaving the
// target room.
func (r RemoteUpgrader) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	m := restoreMachine(mem, remoteWorkerTable, StateTravel, unit.Name())

	room, visible := remoteRoom(ctx)
	if !visible || unit.Room() != mem.TargetRoom {
		if m.State() != StateTravel {
			m.Fire(EventLostVisibility)
		}
		commitMachine(mem, m)
		return travelToTargetRoom(ctx)
	}
	if m.State() == StateTravel {
		m.Fire(EventArrived)
	}

	if unit.Carry().Energy() <= 0 {
		if targetID, verb, ok := findEnergy(room); ok {
			if err := runVerb(unit, verb, targetID, unit.Carry().Free()); err != nil {
				ctx.Log.Debug("remote_upgrader gather failed", "unit", unit.Name(), "err", err)
			}
			commitMachine(mem, m)
			return "gathering"
		}
		commitMachine(mem, m)
		return "idle"
	}

	ctrl, ok := room.Controller()
	if !ok {
		commitMachine(mem, m)
		return "idle"
	}
	if err := unit.Upgrade(ctrl.ID()); err != nil {
		ctx.Log.Debug("remote_upgrader upgrade failed", "unit", unit.Name(), "err", err)
	}
	commitMachine(mem, m)
	return "upgrading"
}

// RemoteBuilder completes construction sites in a support room, reusing the
// home Builder's self-supply behaviour.
type RemoteBuilder struct{}

func (RemoteBuilder) RoleName() string { return roles.RemoteBuilder }
func (RemoteBuilder) Config() Config   { return remoteConfig() }

func (r RemoteBuilder) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: r.RoleName(), Version: r.Config().MemorySchemaVersion}
}
func (r RemoteBuilder) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, r.Config().MemorySchemaVersion)
}

// Execute threads a {travel, work} Machine through the tick: travel to the
// support room, then alternate gather/build once arrived, the same
// self-supply pattern as the home Builder but without a maintain fallback,
// since a support room's construction queue never runs dry for long enough
// to matter.
func (r RemoteBuilder) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	m := restoreMachine(mem, remoteWorkerTable, StateTravel, unit.Name())

	room, visible := remoteRoom(ctx)
	if !visible || unit.Room() != mem.TargetRoom {
		if m.State() != StateTravel {
			m.Fire(EventLostVisibility)
		}
		commitMachine(mem, m)
		return travelToTargetRoom(ctx)
	}
	if m.State() == StateTravel {
		m.Fire(EventArrived)
	}

	if unit.Carry().Energy() <= 0 {
		if targetID, verb, ok := findEnergy(room); ok {
			if err := runVerb(unit, verb, targetID, unit.Carry().Free()); err != nil {
				ctx.Log.Debug("remote_builder gather failed", "unit", unit.Name(), "err", err)
			}
			commitMachine(mem, m)
			return "gathering"
		}
		commitMachine(mem, m)
		return "idle"
	}

	sites := room.ConstructionSites()
	if len(sites) == 0 {
		commitMachine(mem, m)
		return "idle"
	}
	if err := unit.Build(sites[0].ID()); err != nil {
		ctx.Log.Debug("remote_builder build failed", "unit", unit.Name(), "err", err)
	}
	commitMachine(mem, m)
	return "building"
}
