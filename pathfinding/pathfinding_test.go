package pathfinding

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/snapshot"
)

func TestDirection_NormalizesTowardGoal(t *testing.T) {
	from := snapshot.Position{X: 0, Y: 0, Room: "W1N1"}
	to := snapshot.Position{X: 3, Y: 4, Room: "W1N1"}
	v := Direction(from, to)
	if got := v.Len(); got < 0.999 || got > 1.001 {
		t.Fatalf("expected a unit vector, got length %v", got)
	}
}

func TestDirection_ZeroWhenAlreadyAtGoal(t *testing.T) {
	p := snapshot.Position{X: 5, Y: 5, Room: "W1N1"}
	v := Direction(p, p)
	if v.Len() != 0 {
		t.Fatalf("expected zero vector when already at goal, got %v", v)
	}
}
