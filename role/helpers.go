package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// restoreMachine rebuilds a unit's persisted state machine against table,
// defaulting to initial when memory holds no record yet (first tick in the
// role, or the record was cleared by a schema migration). The returned
// Machine must be handed to commitMachine before Execute returns on every
// path, so the state a controller decided this tick is never lost.
func restoreMachine(mem *blackboard.UnitMemory, table Table, initial State, unitName string) *Machine {
	return Restore(table, initial, unitName, mem.StateMachine)
}

// commitMachine serializes m back into mem.StateMachine. Serialize only
// fails on an encoding error, which would mean the state machine runtime
// itself is broken; memory is left untouched rather than persisting a
// partial record.
func commitMachine(mem *blackboard.UnitMemory, m *Machine) {
	rec, err := Serialize(m)
	if err != nil {
		return
	}
	mem.StateMachine = rec
}

// ForceRefillTarget implements the spawn-refill pre-emption rule shared by
// the gathering roles: a unit already carrying energy is redirected to the
// nearest under-filled owned spawn whenever one exists, overriding whatever
// task it was about to run.
func ForceRefillTarget(room snapshot.RoomView, unit snapshot.UnitView) (snapshot.SpawnView, bool) {
	if unit.Carry().Energy() <= 0 {
		return nil, false
	}
	from := unit.Position()
	var best snapshot.SpawnView
	bestDist := 0
	for _, sp := range room.Spawns() {
		store := sp.Store()
		if store == nil {
			continue
		}
		capacity := store.Energy() + store.Free()
		threshold := capacity / 2
		if threshold < 150 {
			threshold = 150
		}
		if store.Energy() < threshold {
			p := sp.Position()
			dx, dy := p.X-from.X, p.Y-from.Y
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			if best == nil || dx+dy < bestDist {
				best, bestDist = sp, dx+dy
			}
		}
	}
	return best, best != nil
}

// findEnergy locates the best available energy pickup for a unit that
// supplies itself rather than waiting on a hauler: dropped energy first,
// then a container or storage, then a direct harvest off any active
// source.
func findEnergy(room snapshot.RoomView) (targetID string, verb string, ok bool) {
	best := -1
	var bestID string
	for _, d := range room.DroppedEnergy() {
		if d.Amount() > best {
			best = d.Amount()
			bestID = d.ID()
		}
	}
	if bestID != "" {
		return bestID, "pickup", true
	}
	for _, st := range room.Structures() {
		if st.Kind() != snapshot.StructureContainer && st.Kind() != snapshot.StructureStorage {
			continue
		}
		if st.Store() != nil && st.Store().Energy() > 0 {
			return st.ID(), "withdraw", true
		}
	}
	for _, src := range room.Sources() {
		if src.Active() {
			return src.ID(), "harvest", true
		}
	}
	return "", "", false
}

// bestDeliveryTarget picks where a self-hauling unit should drop off energy
// when no dedicated hauler task assigned one: spawns first, then
// extensions/towers/storage.
func bestDeliveryTarget(room snapshot.RoomView) (string, string, bool) {
	for _, sp := range room.Spawns() {
		if sp.Store() != nil && sp.Store().Free() > 0 {
			return sp.ID(), "transfer", true
		}
	}
	for _, st := range room.Structures() {
		if st.Store() == nil || st.Store().Free() <= 0 {
			continue
		}
		switch st.Kind() {
		case snapshot.StructureExtension, snapshot.StructureTower, snapshot.StructureStorage:
			return st.ID(), "transfer", true
		}
	}
	return "", "", false
}

// runVerb dispatches to the UnitView method matching verb, so callers can
// carry the verb as data (e.g. read off a TaskEntry.Kind) instead of
// branching on it everywhere.
func runVerb(unit snapshot.UnitView, verb, targetID string, amount int) error {
	switch verb {
	case "pickup":
		return unit.Pickup(targetID)
	case "withdraw":
		return unit.Withdraw(targetID, amount)
	case "harvest":
		return unit.Harvest(targetID)
	case "transfer":
		return unit.Transfer(targetID, amount)
	case "build":
		return unit.Build(targetID)
	case "repair":
		return unit.Repair(targetID)
	case "upgrade":
		return unit.Upgrade(targetID)
	case "claim":
		return unit.Claim(targetID)
	case "attack":
		return unit.Attack(targetID)
	case "ranged_attack":
		return unit.RangedAttack(targetID)
	case "heal":
		return unit.Heal(targetID)
	case "ranged_heal":
		return unit.RangedHeal(targetID)
	case "dismantle":
		return unit.Dismantle(targetID)
	}
	return nil
}

// targetPosition builds a lookup from a room's targetable ids (sources,
// structures, construction sites, dropped resources, controller) to their
// position, so a controller can hand the task queue a proximity tie-break
// without reaching into room internals itself.
func targetPosition(room snapshot.RoomView) func(string) (snapshot.Position, bool) {
	positions := make(map[string]snapshot.Position)
	for _, s := range room.Sources() {
		positions[s.ID()] = s.Position()
	}
	for _, st := range room.Structures() {
		positions[st.ID()] = st.Position()
	}
	for _, cs := range room.ConstructionSites() {
		positions[cs.ID()] = cs.Position()
	}
	for _, d := range room.DroppedEnergy() {
		positions[d.ID()] = d.Position()
	}
	if ctrl, ok := room.Controller(); ok {
		positions[ctrl.ID()] = ctrl.Position()
	}
	return func(id string) (snapshot.Position, bool) {
		p, ok := positions[id]
		return p, ok
	}
}

// acquireTask returns the entry currently assigned to ctx.Unit for roleName,
// re-acquiring one from the queue if memory holds no live assignment. Among
// equal-priority candidates it prefers whichever target sits closest to the
// unit, rather than whichever entry happened to queue first.
func acquireTask(ctx *ExecContext, roleName string) (entry *blackboard.TaskEntry, ok bool) {
	if ctx.Memory.Task != "" {
		if e, found := ctx.Queue.Find(roleName, ctx.Memory.Task); found && e.AssignedUnit == ctx.Unit.Name() {
			return e, true
		}
		ctx.Memory.Task = ""
	}
	e, found := ctx.Queue.AssignClosestTask(roleName, ctx.Unit.Name(), ctx.Tick, ctx.Unit.Position(), targetPosition(ctx.Room))
	if !found {
		return nil, false
	}
	ctx.Memory.Task = e.TaskID
	return e, true
}
