package tasks

import (
	"container/heap"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// candidate pairs an unassigned entry with its distance from the requesting
// unit, used only to break priority ties by proximity instead of by queue
// insertion order.
type candidate struct {
	entry *blackboard.TaskEntry
	dist  int
}

// candidateHeap orders candidates by (priority, distance), lowest first.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].entry.Priority != h[j].entry.Priority {
		return h[i].entry.Priority < h[j].entry.Priority
	}
	return h[i].dist < h[j].dist
}
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)   { *h = append(*h, x.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func manhattan(a, b snapshot.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// unresolvedDistance is assigned to a candidate whose target position can't
// be resolved, so it sorts last within its priority tier instead of being
// excluded outright.
const unresolvedDistance = 1 << 30

// AssignClosestTask behaves like AssignTask, but among entries sharing the
// lowest available priority it assigns the one physically closest to from,
// using positionOf to resolve each candidate's target position.
func (q *Queue) AssignClosestTask(role, unit string, tick uint64, from snapshot.Position, positionOf func(targetID string) (snapshot.Position, bool)) (*blackboard.TaskEntry, bool) {
	q.CleanupExpired(role, tick)
	entries := q.bb.TaskQueue[role]
	if len(entries) == 0 {
		return nil, false
	}

	h := make(candidateHeap, 0, len(entries))
	for _, e := range entries {
		if e.Assigned() {
			continue
		}
		dist := unresolvedDistance
		if pos, ok := positionOf(e.TargetID); ok {
			dist = manhattan(from, pos)
		}
		h = append(h, candidate{entry: e, dist: dist})
	}
	if len(h) == 0 {
		return nil, false
	}
	heap.Init(&h)
	top := heap.Pop(&h).(candidate)
	top.entry.AssignedUnit = unit
	return top.entry, true
}
