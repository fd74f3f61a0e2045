// Package tasks implements TaskDiscovery and RoleTaskQueue. Queue is a
// thin, one-tick-lifetime accessor over the blackboard's persisted
// task_queue map — it owns no state of its own beyond a per-tick lookup
// cache, matching a "managers must not capture references across ticks"
// posture: the equivalent wiring is recreated fresh every Run because the
// queue data itself lives in the blackboard, not in the Queue value.
package tasks

import (
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/screeps-gpt/colonykernel/blackboard"
)

// Queue provides the RoleTaskQueue operations over one role's slice of
// TaskEntry within the blackboard.
type Queue struct {
	bb *blackboard.Blackboard
	// seen caches a fasthash of every known TaskID per role, so AddTask can
	// skip its linear existence scan on the common case of a brand new id
	// (a hash miss is conclusive; a hit still falls back to a full string
	// compare, since the cache is only a fast pre-filter, never the source
	// of truth).
	seen map[string]map[uint64]bool
}

// NewQueue wraps bb for queue operations during this tick, priming the
// fast-dedupe hash cache from whatever is already persisted.
func NewQueue(bb *blackboard.Blackboard) *Queue {
	q := &Queue{bb: bb, seen: make(map[string]map[uint64]bool, len(bb.TaskQueue))}
	for role, entries := range bb.TaskQueue {
		h := make(map[uint64]bool, len(entries))
		for _, e := range entries {
			h[fnv1a.HashString64(e.TaskID)] = true
		}
		q.seen[role] = h
	}
	return q
}

func (q *Queue) markSeen(role string, h uint64) {
	if q.seen[role] == nil {
		q.seen[role] = make(map[uint64]bool)
	}
	q.seen[role][h] = true
}

// AddTask is idempotent by TaskID: if the entry is present and unassigned,
// its priority and expiry are refreshed; if assigned, it is left untouched.
func (q *Queue) AddTask(role string, entry blackboard.TaskEntry) {
	h := fnv1a.HashString64(entry.TaskID)
	if seen := q.seen[role]; seen == nil || !seen[h] {
		q.bb.TaskQueue[role] = insertSorted(q.bb.TaskQueue[role], &entry)
		q.markSeen(role, h)
		return
	}

	entries := q.bb.TaskQueue[role]
	for i, e := range entries {
		if e.TaskID == entry.TaskID {
			if !e.Assigned() {
				e.Priority = entry.Priority
				e.ExpiresAt = entry.ExpiresAt
				entries[i] = e
			}
			return
		}
	}
	q.bb.TaskQueue[role] = insertSorted(entries, &entry)
	q.markSeen(role, h)
}

// insertSorted inserts e into entries, kept sorted ascending by priority.
// Ties are resolved FIFO by appending after existing equal-priority
// entries; this is a manual insertion sort rather than sort.Search on
// every insert, matching the deterministic ordering idiom used elsewhere
// in this codebase for small hot-path slices.
func insertSorted(entries []*blackboard.TaskEntry, e *blackboard.TaskEntry) []*blackboard.TaskEntry {
	i := len(entries)
	for i > 0 && entries[i-1].Priority > e.Priority {
		i--
	}
	entries = append(entries, nil)
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}

// AssignTask cleans expired entries for role, then returns the first
// unassigned, unexpired entry and marks it assigned to unit. Returns false
// if nothing is available.
func (q *Queue) AssignTask(role string, unit string, tick uint64) (*blackboard.TaskEntry, bool) {
	q.CleanupExpired(role, tick)
	for _, e := range q.bb.TaskQueue[role] {
		if !e.Assigned() {
			e.AssignedUnit = unit
			return e, true
		}
	}
	return nil, false
}

// ReleaseTask removes the entry identified by taskID from role's queue,
// provided it is currently assigned to unit (or unit is empty, meaning
// "release regardless of owner"). Dead-unit cleanup does not use it: that
// sweep unassigns entries instead of removing them.
func (q *Queue) ReleaseTask(role, taskID, unit string) {
	entries := q.bb.TaskQueue[role]
	for i, e := range entries {
		if e.TaskID == taskID && (unit == "" || e.AssignedUnit == unit) {
			q.bb.TaskQueue[role] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// CleanupExpired drops entries with ExpiresAt <= tick from role's queue.
func (q *Queue) CleanupExpired(role string, tick uint64) {
	entries := q.bb.TaskQueue[role]
	if len(entries) == 0 {
		return
	}
	kept := entries[:0]
	for _, e := range entries {
		if !e.Expired(tick) {
			kept = append(kept, e)
		}
	}
	q.bb.TaskQueue[role] = kept
}

// LiveUnitSet is the set of unit names present in the current snapshot,
// used by CleanupDeadUnitTasks.
type LiveUnitSet map[string]struct{}

// CleanupDeadUnitTasks unassigns every entry across every role whose
// AssignedUnit is not present in live.
func (q *Queue) CleanupDeadUnitTasks(live LiveUnitSet) {
	for role, entries := range q.bb.TaskQueue {
		for _, e := range entries {
			if e.Assigned() {
				if _, ok := live[e.AssignedUnit]; !ok {
					e.AssignedUnit = ""
				}
			}
		}
		q.bb.TaskQueue[role] = entries
	}
}

// Stats summarises every role's queue for telemetry.
func (q *Queue) Stats() map[string]blackboard.TaskStat {
	out := make(map[string]blackboard.TaskStat, len(q.bb.TaskQueue))
	for role, entries := range q.bb.TaskQueue {
		stat := blackboard.TaskStat{Total: len(entries)}
		for _, e := range entries {
			if e.Assigned() {
				stat.Assigned++
			} else {
				stat.Available++
			}
		}
		out[role] = stat
	}
	return out
}

// AssignMatchingTask behaves like AssignTask but only considers entries
// accepted by pred, letting a controller prefer same-direction work (e.g. a
// hauler with an empty carry preferring a pickup over a delivery) without
// reaching into the blackboard directly.
func (q *Queue) AssignMatchingTask(role, unit string, tick uint64, pred func(*blackboard.TaskEntry) bool) (*blackboard.TaskEntry, bool) {
	q.CleanupExpired(role, tick)
	for _, e := range q.bb.TaskQueue[role] {
		if !e.Assigned() && pred(e) {
			e.AssignedUnit = unit
			return e, true
		}
	}
	return nil, false
}

// Find returns the entry for (role, taskID) without mutating anything, so a
// controller can re-read its assigned target each tick instead of caching
// it in unit memory.
func (q *Queue) Find(role, taskID string) (*blackboard.TaskEntry, bool) {
	for _, e := range q.bb.TaskQueue[role] {
		if e.TaskID == taskID {
			return e, true
		}
	}
	return nil, false
}

// Available reports whether role has at least one unassigned, unexpired
// entry, without mutating the queue.
func (q *Queue) Available(role string, tick uint64) bool {
	for _, e := range q.bb.TaskQueue[role] {
		if !e.Assigned() && !e.Expired(tick) {
			return true
		}
	}
	return false
}
