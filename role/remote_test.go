package role

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func TestRemoteMiner_TravelsWhenRoomNotVisible(t *testing.T) {
	snap := testutil.NewSnapshot(0)
	unit := &testutil.Unit{NameV: "rm1", Pos: snapshot.Position{Room: "W1N1"}}
	mem := &blackboard.UnitMemory{Role: roles.RemoteMiner, TargetRoom: "W2N1"}
	ctx := &ExecContext{Unit: unit, Memory: mem, Snapshot: snap, Log: discardLogger()}

	result := RemoteMiner{}.Execute(ctx)
	if result != "travelling" {
		t.Fatalf("expected travelling when the target room is unscouted, got %s", result)
	}
	if unit.MoveGoal.Room != "W2N1" {
		t.Fatalf("expected move goal toward W2N1, got %+v", unit.MoveGoal)
	}
}

func TestRemoteMiner_HarvestsOnceInTargetRoom(t *testing.T) {
	room := &testutil.Room{NameV: "W2N1"}
	room.SourcesV = append(room.SourcesV, &testutil.Source{IDV: "src1", ActiveV: true})

	snap := testutil.NewSnapshot(0)
	snap.RoomsV["W2N1"] = room

	unit := &testutil.Unit{NameV: "rm1", Pos: snapshot.Position{Room: "W2N1"}}
	mem := &blackboard.UnitMemory{Role: roles.RemoteMiner, TargetRoom: "W2N1"}
	ctx := &ExecContext{Unit: unit, Memory: mem, Snapshot: snap, Log: discardLogger()}

	result := RemoteMiner{}.Execute(ctx)
	if result != "harvesting" {
		t.Fatalf("expected harvesting once in the target room, got %s", result)
	}
	if mem.SourceID != "src1" {
		t.Fatalf("expected the remote source to be cached in memory, got %q", mem.SourceID)
	}
}
