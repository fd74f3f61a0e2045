package role

import (
	"io"
	"log/slog"
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/tasks"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHarvester_ForcedRefillOverridesTask(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	lowSpawn := &testutil.Spawn{IDV: "spawn1", StoreV: testutil.Store{E: 50, F: 250}}
	room.SpawnsV = append(room.SpawnsV, lowSpawn)

	unit := &testutil.Unit{NameV: "h1", CarryV: testutil.Store{E: 40, F: 10}}
	bb := blackboard.New()
	mem := &blackboard.UnitMemory{Role: roles.Harvester}

	ctx := &ExecContext{Unit: unit, Memory: mem, Room: room, Queue: tasks.NewQueue(bb), Log: discardLogger()}
	h := Harvester{}
	result := h.Execute(ctx)

	if result != "refilling_spawn" {
		t.Fatalf("expected forced refill to take priority, got %s", result)
	}
	if len(unit.Calls) != 1 || unit.Calls[0].Verb != "transfer" || unit.Calls[0].Target != "spawn1" {
		t.Fatalf("expected a transfer call to spawn1, got %v", unit.Calls)
	}
}

func TestHarvester_HarvestsAssignedSourceWhenNotFull(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.SourcesV = append(room.SourcesV, &testutil.Source{IDV: "src1", ActiveV: true})

	bb := blackboard.New()
	q := tasks.NewQueue(bb)
	tasks.DiscoverAll(q, room, 0)

	unit := &testutil.Unit{NameV: "h1", CarryV: testutil.Store{E: 0, F: 50}}
	mem := &blackboard.UnitMemory{Role: roles.Harvester}
	ctx := &ExecContext{Unit: unit, Memory: mem, Room: room, Queue: q, Tick: 0, Log: discardLogger()}

	result := Harvester{}.Execute(ctx)
	if result != "harvesting" {
		t.Fatalf("expected harvesting, got %s", result)
	}
	if len(unit.Calls) != 1 || unit.Calls[0].Verb != "harvest" || unit.Calls[0].Target != "src1" {
		t.Fatalf("expected a harvest call against src1, got %v", unit.Calls)
	}
	if mem.Task == "" {
		t.Fatalf("expected memory to record the assigned task id")
	}
}

func TestHarvester_DeliversToSpawnWhenFull(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	spawn := &testutil.Spawn{IDV: "spawn1", StoreV: testutil.Store{E: 200, F: 100}}
	room.SpawnsV = append(room.SpawnsV, spawn)
	room.SourcesV = append(room.SourcesV, &testutil.Source{IDV: "src1", ActiveV: true})

	bb := blackboard.New()
	q := tasks.NewQueue(bb)
	tasks.DiscoverAll(q, room, 0)

	unit := &testutil.Unit{NameV: "h1", CarryV: testutil.Store{E: 50, F: 0}}
	mem := &blackboard.UnitMemory{Role: roles.Harvester}
	ctx := &ExecContext{Unit: unit, Memory: mem, Room: room, Queue: q, Log: discardLogger()}

	result := Harvester{}.Execute(ctx)
	if result != "delivering" {
		t.Fatalf("expected delivering, got %s", result)
	}
	if len(unit.Calls) != 1 || unit.Calls[0].Verb != "transfer" || unit.Calls[0].Target != "spawn1" {
		t.Fatalf("expected a transfer call to spawn1, got %v", unit.Calls)
	}
}
