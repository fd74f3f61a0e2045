package spawn

import (
	"log/slog"
	"strconv"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/demand"
	"github.com/screeps-gpt/colonykernel/energy"
	"github.com/screeps-gpt/colonykernel/role"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// essential roles bypass the energy reserve that otherwise protects against
// draining the room on low-priority creeps, but only when a low-RCL room
// genuinely cannot afford both the body and the reserve at once.
var essential = map[string]bool{roles.Harvester: true, roles.Upgrader: true, roles.Builder: true}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// hasLogisticsInfrastructure reports whether the room has a container or
// storage, the signal that it has outgrown self-hauling roles and actually
// needs a dedicated Hauler.
func hasLogisticsInfrastructure(room snapshot.RoomView) bool {
	for _, st := range room.Structures() {
		if st.Kind() == snapshot.StructureContainer || st.Kind() == snapshot.StructureStorage {
			return true
		}
	}
	return false
}

// Planner walks the demand-calculated spawn priority order and issues at
// most one SpawnIntent per idle spawn per tick.
type Planner struct {
	Registry *role.Registry
	Body     BodyComposer
	Log      *slog.Logger
}

// Plan tries to start one spawn for the highest-priority understaffed role
// on every idle spawn in room, and returns the names of units it started.
// bb.RoleCounts is bumped optimistically so a second idle spawn in the same
// tick doesn't double-queue the same role before the host's next snapshot
// reflects the new unit.
func (p *Planner) Plan(room snapshot.RoomView, bb *blackboard.Blackboard, dem demand.Result, bal energy.Balance, tick uint64) []string {
	var spawned []string
	idle := idleSpawns(room)
	if len(idle) == 0 {
		return spawned
	}

	capacity := room.EnergyCapacityAvailable()
	reserve := maxInt(50, int(0.2*float64(capacity)))
	logistics := hasLogisticsInfrastructure(room)

	for _, sp := range idle {
		roleName, body, ok := p.nextSpawnable(room, dem, bb.RoleCounts, bal, reserve, logistics)
		if !ok {
			break
		}

		name := roleName + "-" + strconv.FormatUint(tick, 10) + "-" + strconv.FormatUint(bb.UnitCounter, 10)

		status, err := sp.SpawnIntent(body, name, map[string]any{"role": roleName})
		if err != nil || status != snapshot.SpawnOK {
			if p.Log != nil {
				p.Log.Debug("spawn intent failed", "spawn", sp.ID(), "role", roleName, "status", status, "err", err)
			}
			continue
		}
		bb.UnitCounter++
		bb.RoleCounts[roleName]++
		spawned = append(spawned, name)
	}
	return spawned
}

func idleSpawns(room snapshot.RoomView) []snapshot.SpawnView {
	var out []snapshot.SpawnView
	for _, sp := range room.Spawns() {
		if !sp.Spawning() {
			out = append(out, sp)
		}
	}
	return out
}

// nextSpawnable returns the first role in demand order that is understaffed
// and affordable under the reserve policy (§4.6), along with the body it
// should spawn. It composes the body before applying the reserve check
// since the rule is stated in terms of the body's actual cost, not a flat
// budget, and the emergency/critical bypasses widen the energy budget
// BodyComposer is allowed to spend against.
func (p *Planner) nextSpawnable(room snapshot.RoomView, dem demand.Result, counts map[string]uint32, bal energy.Balance, reserve int, logistics bool) (string, []snapshot.BodyPart, bool) {
	energyAvailable := room.EnergyAvailable()
	capacity := room.EnergyCapacityAvailable()

	for _, roleName := range dem.Order {
		target := dem.Targets[roleName]
		if counts[roleName] >= target {
			continue
		}
		ctrl, ok := p.Registry.Get(roleName)
		if !ok {
			continue
		}
		cfg := ctrl.Config()

		emergency := roleName == roles.Harvester && counts[roles.Harvester] == 0
		critical := roleName == roles.Hauler && counts[roles.Hauler] == 0 && logistics
		bypassReserve := emergency || critical

		cap := bal.SustainableCap(capacity)
		if bypassReserve {
			cap = energyAvailable
		}
		body := p.Body.Compose(cfg, energyAvailable, cap)
		cost := bodyCost(body)
		if cost == 0 || energyAvailable < cost {
			continue
		}

		if !bypassReserve && essential[roleName] && cost+reserve > capacity {
			bypassReserve = true
		}
		if !bypassReserve && energyAvailable-cost < reserve {
			continue
		}

		return roleName, body, true
	}
	return "", nil, false
}
