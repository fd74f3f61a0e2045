package role

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/tasks"
)

// Hauler moves energy between sources and sinks. Unlike the self-supplying
// roles it never harvests: every action it takes comes from the task
// queue's Kind field, which tells it whether to pick up, withdraw, or
// deliver.
type Hauler struct{}

func (Hauler) RoleName() string { return roles.Hauler }

func (Hauler) Config() Config {
	return Config{
		Minimum:             0,
		BaseBody:            []snapshot.BodyPart{snapshot.PartCarry, snapshot.PartCarry, snapshot.PartMove, snapshot.PartMove},
		GrowthPattern:       []snapshot.BodyPart{snapshot.PartCarry, snapshot.PartCarry, snapshot.PartMove},
		MaxRepeats:          6,
		MemorySchemaVersion: 1,
	}
}

func (h Hauler) CreateMemory(unitName string) *blackboard.UnitMemory {
	return &blackboard.UnitMemory{Role: h.RoleName(), Version: h.Config().MemorySchemaVersion}
}

func (h Hauler) ValidateMemory(mem *blackboard.UnitMemory) {
	baseValidate(mem, h.Config().MemorySchemaVersion)
}

// haulVerb maps a task's Kind to the UnitView verb that satisfies it.
func haulVerb(kind string) string {
	switch tasks.Kind(kind) {
	case tasks.KindPickupDropped:
		return "pickup"
	case tasks.KindWithdrawContainer:
		return "withdraw"
	case tasks.KindDeliverSpawn, tasks.KindDeliverTower, tasks.KindDeliverStorage:
		return "transfer"
	default:
		return ""
	}
}

// acquire prefers a task matching carrying, the unit's current position in
// the {pickup, deliver} cycle (deliveries while carrying, pickups while
// empty), so a hauler never accepts work it can't act on this tick; it
// falls back to any available task rather than sit idle when nothing
// matches.
func (h Hauler) acquire(ctx *ExecContext, carrying bool) (*blackboard.TaskEntry, bool) {
	if ctx.Memory.Task != "" {
		if e, found := ctx.Queue.Find(h.RoleName(), ctx.Memory.Task); found && e.AssignedUnit == ctx.Unit.Name() {
			return e, true
		}
		ctx.Memory.Task = ""
	}
	pred := func(e *blackboard.TaskEntry) bool { return (haulVerb(e.Kind) == "transfer") == carrying }
	e, ok := ctx.Queue.AssignMatchingTask(h.RoleName(), ctx.Unit.Name(), ctx.Tick, pred)
	if !ok {
		e, ok = ctx.Queue.AssignTask(h.RoleName(), ctx.Unit.Name(), ctx.Tick)
	}
	if ok {
		ctx.Memory.Task = e.TaskID
	}
	return e, ok
}

// Execute threads a {pickup, deliver} Machine through the tick, reusing the
// generic gathering/working states from gatherwork.go: "gathering" is
// pickup, "working" is deliver. The observed carry drives which event fires
// each tick, and the resulting state picks which direction of task acquire
// prefers; the reported result stays the specific verb the task demanded,
// since that is what telemetry and tests key off.
func (h Hauler) Execute(ctx *ExecContext) string {
	unit := ctx.Unit
	mem := ctx.Memory
	m := restoreMachine(mem, gatherWorkTable, StateGathering, unit.Name())

	if unit.Carry().Energy() > 0 {
		m.Fire(EventFull)
	} else {
		m.Fire(EventEmpty)
	}
	carrying := m.State() == StateWorking

	entry, ok := h.acquire(ctx, carrying)
	if !ok {
		commitMachine(mem, m)
		return "idle"
	}

	verb := haulVerb(entry.Kind)
	if verb == "" {
		ctx.Log.Debug("hauler assigned task of unknown kind", "unit", unit.Name(), "kind", entry.Kind)
		commitMachine(mem, m)
		return "idle"
	}

	amount := unit.Carry().Free()
	if verb == "transfer" {
		amount = unit.Carry().Energy()
	}
	if err := runVerb(unit, verb, entry.TargetID, amount); err != nil {
		ctx.Log.Debug("hauler action failed", "unit", unit.Name(), "verb", verb, "target", entry.TargetID, "err", err)
	}
	commitMachine(mem, m)
	return verb
}
