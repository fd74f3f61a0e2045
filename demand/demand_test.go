package demand

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func roomWithSources(name string, rcl, sourceCount, withContainer int) *testutil.Room {
	room := &testutil.Room{NameV: name, OwnedV: true, RCLV: rcl}
	for i := 0; i < sourceCount; i++ {
		s := &testutil.Source{IDV: "src" + string(rune('0'+i))}
		if i < withContainer {
			s.HasContainer = true
			s.ContainerID = "container" + string(rune('0'+i))
		}
		room.SourcesV = append(room.SourcesV, s)
	}
	return room
}

// S2 — Container transition.
func TestCalculate_ContainerTransition(t *testing.T) {
	room := roomWithSources("W1N1", 4, 2, 2)
	room.StructuresV = append(room.StructuresV, &testutil.Structure{IDV: "link1", KindV: snapshot.StructureLink})
	room.StructuresV = append(room.StructuresV, &testutil.Structure{IDV: "link2", KindV: snapshot.StructureLink})

	snap := testutil.NewSnapshot(100)
	snap.RoomsV["W1N1"] = room

	bb := blackboard.New()
	result := Calculate(snap, bb, Options{OwnedRooms: []string{"W1N1"}})

	if result.Targets[roles.StationaryHarvester] != 2 {
		t.Fatalf("expected stationary_harvester=2, got %d", result.Targets[roles.StationaryHarvester])
	}
	if result.Targets[roles.Hauler] < 1 {
		t.Fatalf("expected hauler >= 1, got %d", result.Targets[roles.Hauler])
	}
	if result.Targets[roles.Harvester] > 2 {
		t.Fatalf("expected harvester reduced to <= 2, got %d", result.Targets[roles.Harvester])
	}
}

// S4 — Combat reprioritization.
func TestCalculate_CombatReprioritization(t *testing.T) {
	room := roomWithSources("W2N2", 5, 1, 0)
	snap := testutil.NewSnapshot(50)
	snap.RoomsV["W2N2"] = room

	bb := blackboard.New()
	bb.Defense.Posture = map[string]string{"W2N2": "defensive"}

	result := Calculate(snap, bb, Options{OwnedRooms: []string{"W2N2"}})

	if result.Targets[roles.Upgrader] != 0 {
		t.Fatalf("expected upgrader floored to 0 under defensive posture, got %d", result.Targets[roles.Upgrader])
	}
	if result.Targets[roles.Attacker] < 2 {
		t.Fatalf("expected attacker >= 2, got %d", result.Targets[roles.Attacker])
	}
	if result.Targets[roles.Healer] < 2 {
		t.Fatalf("expected healer >= 2, got %d", result.Targets[roles.Healer])
	}

	attackerIdx, healerIdx, harvesterIdx := -1, -1, -1
	for i, r := range result.Order {
		switch r {
		case roles.Attacker:
			attackerIdx = i
		case roles.Healer:
			healerIdx = i
		case roles.Harvester:
			harvesterIdx = i
		}
	}
	if attackerIdx != harvesterIdx+1 && healerIdx != harvesterIdx+1 {
		t.Fatalf("expected attacker or healer to immediately follow harvester in spawn order, got order=%v", result.Order)
	}
}

func TestCalculate_InvisibleRoomDeferred(t *testing.T) {
	snap := testutil.NewSnapshot(1)
	bb := blackboard.New()

	result := Calculate(snap, bb, Options{OwnedRooms: []string{"W3N3"}})
	if result.Targets[roles.Harvester] != 0 {
		t.Fatalf("expected demand for an invisible room to be deferred (0), got %d", result.Targets[roles.Harvester])
	}
}

func TestCalculate_ExternalQueueOverlay(t *testing.T) {
	room := roomWithSources("W4N4", 3, 1, 0)
	snap := testutil.NewSnapshot(1)
	snap.RoomsV["W4N4"] = room
	bb := blackboard.New()

	result := Calculate(snap, bb, Options{
		OwnedRooms:         []string{"W4N4"},
		PendingExpansion:   2,
		AssignedClaimers:   1,
		PendingAttackFlags: 1,
		AssignedAttackers:  0,
	})

	if result.Targets[roles.Claimer] != 1 {
		t.Fatalf("expected claimer=1 (2 pending - 1 assigned), got %d", result.Targets[roles.Claimer])
	}
	if result.Targets[roles.Attacker] != 2 {
		t.Fatalf("expected attacker=2 (2*1 pending - 0 assigned), got %d", result.Targets[roles.Attacker])
	}
}
