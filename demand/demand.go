// Package demand implements the DemandCalculator: it derives
// {role -> target minimum} and the spawn priority order from the current
// tick's room state plus a handful of cross-queue signals from the
// blackboard. It is pure with respect to the blackboard: it only reads.
package demand

import (
	"math"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// facts captures the per-room observations the formulas below are derived
// from.
type facts struct {
	room                  string
	rcl                   int
	sourceCount           int
	sourcesWithContainer  int
	operationalLinks      int
	hasTower              bool
	hasStorageOrContainer bool
	constructionSites     int
	damagedNonWall        int
	storageEnergyRatio    float64
	extensionFillRatio    float64
}

func gatherFacts(room snapshot.RoomView) facts {
	f := facts{room: room.Name(), rcl: room.RCL()}
	for _, s := range room.Sources() {
		f.sourceCount++
		if _, ok := s.AdjacentContainerID(); ok {
			f.sourcesWithContainer++
		}
	}

	var storageEnergy, storageCapacity, extEnergy, extCapacity float64
	for _, st := range room.Structures() {
		switch st.Kind() {
		case snapshot.StructureTower:
			f.hasTower = true
		case snapshot.StructureStorage:
			f.hasStorageOrContainer = true
			if store := st.Store(); store != nil {
				storageEnergy += float64(store.Energy())
				storageCapacity += float64(store.Energy() + store.Free())
			}
		case snapshot.StructureContainer:
			f.hasStorageOrContainer = true
		case snapshot.StructureExtension:
			if store := st.Store(); store != nil {
				extEnergy += float64(store.Energy())
				extCapacity += float64(store.Energy() + store.Free())
			}
		case snapshot.StructureLink:
			f.operationalLinks++
		}
		if st.Kind() != snapshot.StructureWall && st.Kind() != snapshot.StructureRampart && st.Hits() < st.HitsMax() {
			f.damagedNonWall++
		}
	}
	if storageCapacity > 0 {
		f.storageEnergyRatio = storageEnergy / storageCapacity
	}
	if extCapacity > 0 {
		f.extensionFillRatio = extEnergy / extCapacity
	}
	f.constructionSites = len(room.ConstructionSites())
	return f
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return int(math.Ceil(float64(a) / float64(b)))
}

// harvesterTarget implements the harvester demand formula. For the Sc==0
// case one source gives 1 at RCL 1, 2 at RCL 2 and 3 from RCL 3 on; S > 1
// sources give S+1 below RCL 3 and 2·S from RCL 3 on.
func harvesterTarget(f facts) int {
	if f.sourcesWithContainer > 0 {
		reduced := f.sourceCount - f.sourcesWithContainer
		if reduced < 0 {
			reduced = 0
		}
		return reduced
	}
	if f.sourceCount == 1 {
		switch {
		case f.rcl >= 3:
			return 3
		case f.rcl == 2:
			return 2
		default:
			return 1
		}
	}
	if f.sourceCount == 0 {
		return 0
	}
	if f.rcl >= 3 {
		return 2 * f.sourceCount
	}
	return f.sourceCount + 1
}

func builderTarget(f facts) uint32 {
	switch {
	case f.constructionSites <= 0:
		return 1
	case f.constructionSites <= 5:
		return 1
	case f.constructionSites <= 15:
		return 2
	default:
		return 3
	}
}

func upgraderTarget(f facts) uint32 {
	if f.rcl >= 4 {
		switch {
		case f.storageEnergyRatio > 0.5 || f.extensionFillRatio > 0.9:
			return 5
		case f.storageEnergyRatio > 0.3 || f.extensionFillRatio > 0.75:
			return 4
		default:
			return 3
		}
	}
	if f.rcl == 3 && f.extensionFillRatio > 0.8 {
		return 4
	}
	return 3
}

// Result is the output of Calculate, consumed only by SpawnPlanner.
type Result struct {
	Targets map[string]uint32
	Order   []string
}

// Options carries the cross-queue signals DemandCalculator overlays onto
// the per-room formulas.
type Options struct {
	OwnedRooms             []string
	PendingExpansion       int
	AssignedClaimers       int
	PendingAttackFlags     int
	AssignedAttackers      int
	IntegrationRoomQuotas  int // number of active integration rooms, each wanting 1 miner + 1 hauler
}

// Calculate derives the demand for the current tick. It is pure: snap and bb
// are read-only inputs.
func Calculate(snap snapshot.Snapshot, bb *blackboard.Blackboard, opts Options) Result {
	targets := map[string]uint32{
		roles.Harvester: 0,
		roles.Upgrader:  0,
		roles.Builder:   0,
		roles.Repairer:  0,
	}

	anyTower, anyStorageOrContainer := false, false
	combat := false
	ownedCount := len(opts.OwnedRooms)
	if ownedCount == 0 {
		ownedCount = 1
	}

	for _, name := range opts.OwnedRooms {
		room, ok := snap.Rooms()[name]
		if !ok {
			// Invisible room: defer its demand rather than guessing.
			continue
		}
		f := gatherFacts(room)

		targets[roles.Harvester] += uint32(max0(harvesterTarget(f)))
		targets[roles.Builder] += builderTarget(f)
		targets[roles.Upgrader] += upgraderTarget(f)
		if f.damagedNonWall > 0 {
			targets[roles.Repairer] += 1
		}

		if f.hasTower {
			anyTower = true
		}
		if f.hasStorageOrContainer {
			anyStorageOrContainer = true
		}

		if f.sourcesWithContainer > 0 {
			targets[roles.StationaryHarvester] += uint32(f.sourcesWithContainer)
			var haulerForRoom uint32
			if f.operationalLinks >= 2 {
				haulerForRoom = uint32(max(1, ceilDiv(f.sourceCount, 2)))
			} else {
				haulerForRoom = uint32(max(f.sourceCount, ownedCount))
			}
			targets[roles.Hauler] += haulerForRoom
			targets[roles.Repairer] += uint32(ownedCount)
		}

		switch bb.Defense.PostureOf(f.room) {
		case "defensive", "emergency":
			combat = true
		}
	}

	if (anyTower || anyStorageOrContainer) && targets[roles.StationaryHarvester] == 0 {
		targets[roles.Hauler] = uint32(max(int(targets[roles.Hauler]), ownedCount))
		if targets[roles.Harvester] > 0 {
			targets[roles.Harvester]--
		}
	}

	// Overlay external-queue-derived minimums.
	if claimer := opts.PendingExpansion - opts.AssignedClaimers; claimer > 0 {
		targets[roles.Claimer] = uint32(claimer)
	}
	if attacker := 2*opts.PendingAttackFlags - opts.AssignedAttackers; attacker > 0 {
		targets[roles.Attacker] = uint32(attacker)
	}
	if opts.IntegrationRoomQuotas > 0 {
		targets[roles.RemoteMiner] += uint32(opts.IntegrationRoomQuotas)
		targets[roles.RemoteHauler] += uint32(opts.IntegrationRoomQuotas)
	}

	globalEmergency := targets[roles.Harvester] == 0 && bb.RoleCounts[roles.Harvester] == 0

	if combat {
		applyCombatOverride(bb, targets)
	}

	order := buildOrder(targets, combat, anyTower, anyStorageOrContainer, globalEmergency,
		opts.PendingAttackFlags > 0 || opts.PendingExpansion > 0)

	return Result{Targets: targets, Order: order}
}

// applyCombatOverride implements the combat-posture demand override. The
// upgrader reduction factor's floor behaviour is resolved per
// SPEC_FULL.md/DESIGN.md: alert floors at 1, defensive/emergency floor at 0.
func applyCombatOverride(bb *blackboard.Blackboard, targets map[string]uint32) {
	for _, posture := range bb.Defense.Posture {
		switch posture {
		case "emergency":
			targets[roles.Upgrader] = 0
		case "defensive":
			targets[roles.Upgrader] = uint32(int(float64(targets[roles.Upgrader]) * 0.3))
		case "alert":
			reduced := int(float64(targets[roles.Upgrader]) * 0.3)
			if reduced < 1 {
				reduced = 1
			}
			targets[roles.Upgrader] = uint32(reduced)
		}
	}
	if targets[roles.Attacker] < 2 {
		targets[roles.Attacker] = 2
	}
	if targets[roles.Healer] < 2 {
		targets[roles.Healer] = 2
	}
	if targets[roles.Repairer] < 1 {
		targets[roles.Repairer] = 1
	}
}

func buildOrder(targets map[string]uint32, combat, anyTower, anyStorageOrContainer, globalEmergency, attackOrExpansionPending bool) []string {
	order := []string{
		roles.Harvester, roles.Upgrader, roles.Builder, roles.StationaryHarvester,
		roles.Hauler, roles.Repairer, roles.RemoteMiner, roles.RemoteHauler,
		roles.RemoteUpgrader, roles.RemoteBuilder, roles.Scout, roles.Attacker,
		roles.Healer, roles.Dismantler, roles.Claimer,
	}

	haulerCritical := (anyTower || anyStorageOrContainer) && targets[roles.Hauler] == 0 && !globalEmergency
	if haulerCritical {
		order = moveAfter(order, roles.Hauler, 1)
	}
	if combat {
		order = moveAfter(order, roles.Healer, 1)
		order = moveAfter(order, roles.Attacker, 1)
	}
	if attackOrExpansionPending {
		order = moveAfter(order, roles.Claimer, 1)
		order = moveAfter(order, roles.Attacker, 1)
	}
	return order
}

// moveAfter relocates role to position index (0-based) in the order slice,
// so it sits immediately after the entry at index-1, preserving the
// relative order of everything else.
func moveAfter(order []string, role string, index int) []string {
	pos := -1
	for i, r := range order {
		if r == role {
			pos = i
			break
		}
	}
	if pos < 0 || pos == index {
		return order
	}
	out := make([]string, 0, len(order))
	out = append(out, order[:pos]...)
	out = append(out, order[pos+1:]...)
	if index > len(out) {
		index = len(out)
	}
	result := make([]string, 0, len(order))
	result = append(result, out[:index]...)
	result = append(result, role)
	result = append(result, out[index:]...)
	return result
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func max0(a int) int {
	if a < 0 {
		return 0
	}
	return a
}
