package kernel

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/colony"
	"github.com/screeps-gpt/colonykernel/demand"
	"github.com/screeps-gpt/colonykernel/energy"
	"github.com/screeps-gpt/colonykernel/role"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/spawn"
	"github.com/screeps-gpt/colonykernel/tasks"
)

// phaseMemoryRepair reconciles unit_memory keys with the snapshot's live
// units, dropping memory for anything that no longer exists, and recounts
// role_counts from the live units' roles.
func phaseMemoryRepair(snap snapshot.Snapshot, bb *blackboard.Blackboard) {
	live := snap.Units()
	for name := range bb.UnitMemory {
		if _, ok := live[name]; !ok {
			delete(bb.UnitMemory, name)
		}
	}
	for r := range bb.RoleCounts {
		delete(bb.RoleCounts, r)
	}
	for _, u := range live {
		bb.RoleCounts[u.Role()]++
	}
}

func phaseConstruction(k *Kernel, snap snapshot.Snapshot, bb *blackboard.Blackboard) {
	if err := k.cfg.Construction.Plan(snap, bb); err != nil {
		k.cfg.Logger.Debug("construction plan failed", "err", err)
	}
}

// ownedRoomNames returns every room the snapshot reports as owned, sorted
// for deterministic downstream iteration.
func ownedRoomNames(snap snapshot.Snapshot) []string {
	var out []string
	for name, room := range snap.Rooms() {
		if room.Owned() {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

func buildDemandOptions(snap snapshot.Snapshot, bb *blackboard.Blackboard, queues colony.Queues) demand.Options {
	owned := ownedRoomNames(snap)

	assignedClaimers, assignedAttackers := 0, 0
	for _, mem := range bb.UnitMemory {
		switch mem.Role {
		case roles.Claimer:
			assignedClaimers++
		case roles.Attacker:
			assignedAttackers++
		}
	}

	return demand.Options{
		OwnedRooms:            owned,
		PendingExpansion:      len(queues.Expansion()),
		AssignedClaimers:      assignedClaimers,
		PendingAttackFlags:    len(queues.Attacks()),
		AssignedAttackers:     assignedAttackers,
		IntegrationRoomQuotas: len(queues.Integrations()),
	}
}

// phaseDemand computes demand unless the budget is already exhausted, in
// which case it reuses last tick's cached demand per the stored-demand
// fallback rule. It also derives the energy balance for the primary owned
// room, used by SpawnPlanner's body sizing.
func phaseDemand(snap snapshot.Snapshot, bb *blackboard.Blackboard, queues colony.Queues, cpu snapshot.CPUMeter, threshold float64) (demand.Result, energy.Balance) {
	var dem demand.Result
	if cpu.Used() > threshold {
		dem = demand.Result{Targets: bb.LastDemand.Targets, Order: bb.LastDemand.Order}
	} else {
		opts := buildDemandOptions(snap, bb, queues)
		dem = demand.Calculate(snap, bb, opts)
		bb.LastDemand = blackboard.Demand{Targets: dem.Targets, Order: dem.Order}
	}

	var bal energy.Balance
	owned := ownedRoomNames(snap)
	if len(owned) > 0 {
		room := snap.Rooms()[owned[0]]
		sources := energy.CountSources(room)
		bal = energy.Calculate(sources, int(bb.RoleCounts[roles.Harvester]), len(snap.Units()), false, 0)
	}
	return dem, bal
}

func phaseSpawn(k *Kernel, snap snapshot.Snapshot, bb *blackboard.Blackboard, dem demand.Result, bal energy.Balance, tick uint64) ([]string, []string) {
	var spawned, warnings []string
	for _, name := range ownedRoomNames(snap) {
		room := snap.Rooms()[name]
		spawned = append(spawned, k.planner.Plan(room, bb, dem, bal, tick)...)
		warnings = append(warnings, spawn.CheckHealth(room, bb, tick, k.cfg.Logger)...)
	}
	return spawned, warnings
}

// phaseQueueCleanup runs the dead-unit reclamation sweep twice: once here
// (ahead of TaskDiscovery and SpawnPlanner having already run earlier this
// tick) and is deliberately re-invoked after discovery too, so a unit that
// died and was replaced within the same tick never inherits a stale
// assignment left by the corpse.
func phaseQueueCleanup(snap snapshot.Snapshot, bb *blackboard.Blackboard, tick uint64) {
	q := tasks.NewQueue(bb)
	live := make(tasks.LiveUnitSet, len(snap.Units()))
	for name := range snap.Units() {
		live[name] = struct{}{}
	}
	q.CleanupDeadUnitTasks(live)
	for _, roleName := range roles.All {
		q.CleanupExpired(roleName, tick)
	}
}

func phaseTaskDiscovery(snap snapshot.Snapshot, bb *blackboard.Blackboard, tick uint64) {
	q := tasks.NewQueue(bb)
	for _, name := range ownedRoomNames(snap) {
		tasks.DiscoverAll(q, snap.Rooms()[name], tick)
	}
	// Re-run dead-unit cleanup now that discovery has potentially refreshed
	// entries, so a unit spawned earlier this same tick's SpawnPlanner phase
	// can never be handed a task still marked assigned to its predecessor.
	live := make(tasks.LiveUnitSet, len(snap.Units()))
	for name := range snap.Units() {
		live[name] = struct{}{}
	}
	q.CleanupDeadUnitTasks(live)
}

// sortedUnitNames returns every unit name in deterministic order, matching
// the "stable sort by unit name" iteration guarantee.
func sortedUnitNames(snap snapshot.Snapshot) []string {
	names := maps.Keys(snap.Units())
	slices.Sort(names)
	return names
}

// phaseExecuteUnits runs every unit's role controller, skipping the rest of
// the list the moment the budget is exceeded. It returns the number of
// units it attempted (including the one that triggered the abort) and how
// many self-heals were needed to give a unit valid memory.
func phaseExecuteUnits(k *Kernel, snap snapshot.Snapshot, bb *blackboard.Blackboard, tick uint64, tasksByUnit map[string]string, warnings *[]string) (int, int) {
	cpu := snap.CPU()
	threshold := cpu.Limit() * k.cfg.SafetyMargin
	q := tasks.NewQueue(bb)

	processed, healed := 0, 0
	for _, name := range sortedUnitNames(snap) {
		if cpu.Used() > threshold {
			*warnings = append(*warnings, "CPU threshold exceeded during unit execution; remaining units skipped")
			break
		}
		unit := snap.Units()[name]
		before := cpu.Used()

		mem, didHeal := ensureUnitMemory(k.cfg.Registry, bb, unit)
		if didHeal {
			healed++
		}

		room := snap.Rooms()[unit.Room()]
		result := runUnit(k, unit, mem, room, snap, q, tick, warnings)
		tasksByUnit[name] = result
		processed++

		if delta := cpu.Used() - before; delta > k.cfg.MaxCPUPerUnit {
			*warnings = append(*warnings, fmt.Sprintf("unit %s exceeded max_cpu_per_unit (%.2f > %.2f)", name, delta, k.cfg.MaxCPUPerUnit))
		}
	}
	return processed, healed
}

// ensureUnitMemory returns unit's persisted memory, creating and
// validating it if missing or stale. The bool return reports whether a
// repair (create or validate-driven reset) happened.
func ensureUnitMemory(reg *role.Registry, bb *blackboard.Blackboard, unit snapshot.UnitView) (*blackboard.UnitMemory, bool) {
	ctrl, ok := reg.Get(unit.Role())
	if !ok {
		return &blackboard.UnitMemory{Role: unit.Role()}, false
	}
	mem, exists := bb.UnitMemory[unit.Name()]
	if !exists {
		mem = ctrl.CreateMemory(unit.Name())
		bb.UnitMemory[unit.Name()] = mem
		return mem, true
	}
	before := mem.Version
	ctrl.ValidateMemory(mem)
	return mem, mem.Version != before
}

// runUnit executes one unit's controller with panic recovery, mirroring
// the host's own "never let one extension crash the process" posture for
// loaded plugins.
func runUnit(k *Kernel, unit snapshot.UnitView, mem *blackboard.UnitMemory, room snapshot.RoomView, snap snapshot.Snapshot, q *tasks.Queue, tick uint64, warnings *[]string) (result string) {
	ctrl, ok := k.cfg.Registry.Get(unit.Role())
	if !ok {
		return "unknown_role"
	}
	defer func() {
		if r := recover(); r != nil {
			*warnings = append(*warnings, fmt.Sprintf("unit %s panicked in execute: %v\n%s", unit.Name(), r, debug.Stack()))
			result = "panicked"
		}
	}()
	if room == nil {
		return "no_room_view"
	}
	ctx := &role.ExecContext{
		Unit:     unit,
		Memory:   mem,
		Room:     room,
		Snapshot: snap,
		Queue:    q,
		Tick:     tick,
		Log:      k.cfg.Logger,
	}
	return ctrl.Execute(ctx)
}

func phaseMovementResolution(k *Kernel, snap snapshot.Snapshot) {
	if err := k.cfg.Pathfinding.RunMoves(snap); err != nil {
		k.cfg.Logger.Debug("pathfinding run_moves failed", "err", err)
	}
}
