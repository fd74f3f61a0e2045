package spawn

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/demand"
	"github.com/screeps-gpt/colonykernel/energy"
	"github.com/screeps-gpt/colonykernel/role"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func TestPlan_SpawnsHighestPriorityUnderstaffedRole(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1", EnergyAvailableV: 300, EnergyCapacityV: 300}
	sp := &testutil.Spawn{IDV: "spawn1", NextStatus: 0}
	room.SpawnsV = append(room.SpawnsV, sp)

	bb := blackboard.New()
	reg := role.Default()
	dem := demand.Result{Targets: map[string]uint32{roles.Harvester: 2}, Order: []string{roles.Harvester, roles.Upgrader}}
	bal := energy.Balance{Ratio: 1.0, MaxSpawnBudget: 300}

	p := &Planner{Registry: reg, Body: BodyComposer{}}
	spawned := p.Plan(room, bb, dem, bal, 10)

	if len(spawned) != 1 {
		t.Fatalf("expected exactly one spawn to be started, got %d (%v)", len(spawned), spawned)
	}
	if bb.RoleCounts[roles.Harvester] != 1 {
		t.Fatalf("expected harvester count to be bumped optimistically, got %d", bb.RoleCounts[roles.Harvester])
	}
	if len(sp.IntentCalls) != 1 {
		t.Fatalf("expected exactly one SpawnIntent call, got %d", len(sp.IntentCalls))
	}
}

func TestPlan_SkipsBusySpawns(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1", EnergyAvailableV: 300, EnergyCapacityV: 300}
	sp := &testutil.Spawn{IDV: "spawn1", SpawningV: true}
	room.SpawnsV = append(room.SpawnsV, sp)

	bb := blackboard.New()
	reg := role.Default()
	dem := demand.Result{Targets: map[string]uint32{roles.Harvester: 2}, Order: []string{roles.Harvester}}
	bal := energy.Balance{Ratio: 1.0, MaxSpawnBudget: 300}

	p := &Planner{Registry: reg, Body: BodyComposer{}}
	spawned := p.Plan(room, bb, dem, bal, 10)

	if len(spawned) != 0 {
		t.Fatalf("expected no spawns started while the only spawn is busy, got %v", spawned)
	}
}

func TestPlan_NothingToSpawnWhenDemandSatisfied(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1", EnergyAvailableV: 300, EnergyCapacityV: 300}
	room.SpawnsV = append(room.SpawnsV, &testutil.Spawn{IDV: "spawn1"})

	bb := blackboard.New()
	bb.RoleCounts[roles.Harvester] = 2
	reg := role.Default()
	dem := demand.Result{Targets: map[string]uint32{roles.Harvester: 2}, Order: []string{roles.Harvester}}
	bal := energy.Balance{Ratio: 1.0, MaxSpawnBudget: 300}

	p := &Planner{Registry: reg, Body: BodyComposer{}}
	spawned := p.Plan(room, bb, dem, bal, 10)

	if len(spawned) != 0 {
		t.Fatalf("expected nothing to spawn once demand is satisfied, got %v", spawned)
	}
}
