package tasks

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func TestDiscoverAll_SingleCriticalBuildTask(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.ConstructionSitesV = append(room.ConstructionSitesV, &testutil.Site{IDV: "spawn1", KindV: snapshot.StructureSpawn})

	bb := blackboard.New()
	q := NewQueue(bb)
	DiscoverAll(q, room, 0)

	entries := bb.TaskQueue[roles.Builder]
	if len(entries) != 1 {
		t.Fatalf("expected exactly one build task, got %d", len(entries))
	}
	if entries[0].Priority != blackboard.PriorityCritical {
		t.Fatalf("expected a spawn construction site to be Critical priority, got %v", entries[0].Priority)
	}
}

func TestDiscoverAll_IsIdempotentAcrossTicks(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.SourcesV = append(room.SourcesV, &testutil.Source{IDV: "src1", ActiveV: true})

	bb := blackboard.New()
	q := NewQueue(bb)
	DiscoverAll(q, room, 0)
	DiscoverAll(q, room, 1)
	DiscoverAll(q, room, 2)

	if len(bb.TaskQueue[roles.Harvester]) != 1 {
		t.Fatalf("expected repeated discovery to stay idempotent by TaskID, got %d entries", len(bb.TaskQueue[roles.Harvester]))
	}
}

func TestDiscoverAll_SkipsWallsAndRamparts(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.StructuresV = append(room.StructuresV,
		&testutil.Structure{IDV: "wall1", KindV: snapshot.StructureWall, HitsV: 1, HitsMaxV: 1000000},
		&testutil.Structure{IDV: "rampart1", KindV: snapshot.StructureRampart, HitsV: 1, HitsMaxV: 1000000},
		&testutil.Structure{IDV: "road1", KindV: snapshot.StructureRoad, HitsV: 100, HitsMaxV: 5000},
	)

	bb := blackboard.New()
	q := NewQueue(bb)
	DiscoverAll(q, room, 0)

	entries := bb.TaskQueue[roles.Repairer]
	if len(entries) != 1 || entries[0].TargetID != "road1" {
		t.Fatalf("expected only the road to produce a repair task, got %v", entries)
	}
}

func TestDiscoverAll_StationaryHarvestRequiresAdjacentContainer(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1"}
	room.SourcesV = append(room.SourcesV,
		&testutil.Source{IDV: "src1", ActiveV: true, HasContainer: true, ContainerID: "c1"},
		&testutil.Source{IDV: "src2", ActiveV: true},
	)

	bb := blackboard.New()
	q := NewQueue(bb)
	DiscoverAll(q, room, 0)

	entries := bb.TaskQueue[roles.StationaryHarvester]
	if len(entries) != 1 || entries[0].TargetID != "src1" {
		t.Fatalf("expected only src1 to produce a stationary_harvester task, got %v", entries)
	}
}
