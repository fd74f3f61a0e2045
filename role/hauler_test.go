package role

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/tasks"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func TestHauler_PicksUpDroppedEnergy(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.DroppedEnergyV = append(room.DroppedEnergyV, &testutil.Dropped{IDV: "d1", AmountV: 40})

	bb := blackboard.New()
	q := tasks.NewQueue(bb)
	tasks.DiscoverAll(q, room, 0)

	unit := &testutil.Unit{NameV: "hauler-1", CarryV: testutil.Store{E: 0, F: 100}}
	mem := &blackboard.UnitMemory{Role: roles.Hauler}
	ctx := &ExecContext{Unit: unit, Memory: mem, Room: room, Queue: q, Log: discardLogger()}

	result := Hauler{}.Execute(ctx)
	if result != "pickup" {
		t.Fatalf("expected pickup, got %s", result)
	}
	if len(unit.Calls) != 1 || unit.Calls[0].Verb != "pickup" || unit.Calls[0].Target != "d1" {
		t.Fatalf("expected a pickup call against d1, got %v", unit.Calls)
	}
}

func TestHauler_EmptyHaulerWithdrawsFromContainer(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.StructuresV = append(room.StructuresV,
		&testutil.Structure{IDV: "container1", KindV: snapshot.StructureContainer, StoreV: testutil.Store{E: 200, F: 0}},
	)
	room.SpawnsV = append(room.SpawnsV, &testutil.Spawn{IDV: "spawn1", StoreV: testutil.Store{E: 0, F: 300}})

	bb := blackboard.New()
	q := tasks.NewQueue(bb)
	tasks.DiscoverAll(q, room, 0)

	unit := &testutil.Unit{NameV: "hauler-1", CarryV: testutil.Store{E: 0, F: 100}}
	mem := &blackboard.UnitMemory{Role: roles.Hauler}
	ctx := &ExecContext{Unit: unit, Memory: mem, Room: room, Queue: q, Log: discardLogger()}

	result := Hauler{}.Execute(ctx)
	if result != "withdraw" {
		t.Fatalf("expected an empty hauler to withdraw from the container, got %s", result)
	}
	if len(unit.Calls) != 1 || unit.Calls[0].Target != "container1" {
		t.Fatalf("expected to withdraw from container1, got %v", unit.Calls)
	}
}
