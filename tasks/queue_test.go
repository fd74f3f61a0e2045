package tasks

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
)

// S3 — Duplicate-work prevention: one Critical task, three
// builders competing; exactly one holds the assignment.
func TestQueue_DuplicateWorkPrevention(t *testing.T) {
	bb := blackboard.New()
	q := NewQueue(bb)
	q.AddTask(roles.Builder, blackboard.TaskEntry{
		TaskID: "W1N1-build-spawn1", TargetID: "spawn1", RoomName: "W1N1",
		Priority: blackboard.PriorityCritical, ExpiresAt: 300,
	})

	winners := 0
	for _, unit := range []string{"builder-1", "builder-2", "builder-3"} {
		if _, ok := q.AssignTask(roles.Builder, unit, 100); ok {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one builder to win the assignment, got %d", winners)
	}

	stat := q.Stats()[roles.Builder]
	if stat.Assigned != 1 || stat.Available != 0 {
		t.Fatalf("expected 1 assigned/0 available, got %+v", stat)
	}
}

// S6 — Dead-unit cleanup.
func TestQueue_DeadUnitCleanup(t *testing.T) {
	bb := blackboard.New()
	q := NewQueue(bb)
	q.AddTask(roles.Harvester, blackboard.TaskEntry{
		TaskID: "h1", TargetID: "source1", RoomName: "W1N1",
		Priority: blackboard.PriorityHigh, ExpiresAt: 500,
	})
	if _, ok := q.AssignTask(roles.Harvester, "harvester-100-0", 100); !ok {
		t.Fatalf("expected task to be assignable")
	}

	// Tick T+1: harvester-100-0 is missing from the snapshot.
	q.CleanupDeadUnitTasks(LiveUnitSet{})

	entry, ok := q.AssignTask(roles.Harvester, "harvester-101-1", 101)
	if !ok {
		t.Fatalf("expected the reclaimed task to be assignable to the next harvester")
	}
	if entry.TaskID != "h1" {
		t.Fatalf("expected the reclaimed task to be h1, got %s", entry.TaskID)
	}
}

func TestQueue_AddTaskIdempotentByID(t *testing.T) {
	bb := blackboard.New()
	q := NewQueue(bb)
	entry := blackboard.TaskEntry{TaskID: "t1", TargetID: "x", RoomName: "W1N1", Priority: blackboard.PriorityNormal, ExpiresAt: 100}
	q.AddTask(roles.Hauler, entry)
	q.AddTask(roles.Hauler, entry)
	if len(bb.TaskQueue[roles.Hauler]) != 1 {
		t.Fatalf("expected AddTask to be idempotent by TaskID, got %d entries", len(bb.TaskQueue[roles.Hauler]))
	}
}

func TestQueue_AddTaskDoesNotMutateAssignedPriority(t *testing.T) {
	bb := blackboard.New()
	q := NewQueue(bb)
	q.AddTask(roles.Hauler, blackboard.TaskEntry{TaskID: "t1", Priority: blackboard.PriorityNormal, ExpiresAt: 100})
	q.AssignTask(roles.Hauler, "hauler-1", 1)
	q.AddTask(roles.Hauler, blackboard.TaskEntry{TaskID: "t1", Priority: blackboard.PriorityCritical, ExpiresAt: 200})

	if bb.TaskQueue[roles.Hauler][0].Priority != blackboard.PriorityNormal {
		t.Fatalf("expected priority of an assigned entry to be left untouched")
	}
}

func TestQueue_InsertionKeepsAscendingPriorityOrder(t *testing.T) {
	bb := blackboard.New()
	q := NewQueue(bb)
	q.AddTask(roles.Builder, blackboard.TaskEntry{TaskID: "low", Priority: blackboard.PriorityLow, ExpiresAt: 100})
	q.AddTask(roles.Builder, blackboard.TaskEntry{TaskID: "crit", Priority: blackboard.PriorityCritical, ExpiresAt: 100})
	q.AddTask(roles.Builder, blackboard.TaskEntry{TaskID: "normal", Priority: blackboard.PriorityNormal, ExpiresAt: 100})

	entries := bb.TaskQueue[roles.Builder]
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Priority > entries[i].Priority {
			t.Fatalf("expected ascending priority order, got %v", entries)
		}
	}
	if entries[0].TaskID != "crit" {
		t.Fatalf("expected critical task first, got %s", entries[0].TaskID)
	}
}

func TestQueue_CleanupExpired(t *testing.T) {
	bb := blackboard.New()
	q := NewQueue(bb)
	q.AddTask(roles.Hauler, blackboard.TaskEntry{TaskID: "expired", Priority: blackboard.PriorityNormal, ExpiresAt: 10})
	q.AddTask(roles.Hauler, blackboard.TaskEntry{TaskID: "fresh", Priority: blackboard.PriorityNormal, ExpiresAt: 1000})

	q.CleanupExpired(roles.Hauler, 10)

	if len(bb.TaskQueue[roles.Hauler]) != 1 || bb.TaskQueue[roles.Hauler][0].TaskID != "fresh" {
		t.Fatalf("expected only the unexpired entry to remain, got %v", bb.TaskQueue[roles.Hauler])
	}
}
