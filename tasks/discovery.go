package tasks

import (
	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/roles"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// DiscoverAll runs every TaskDiscovery function for one room.
func DiscoverAll(q *Queue, room snapshot.RoomView, tick uint64) {
	discoverHarvestTasks(q, room, tick)
	discoverBuildTasks(q, room, tick)
	discoverRepairTasks(q, room, tick)
	discoverHaulTasks(q, room, tick)
	discoverUpgradeTask(q, room, tick)
	discoverStationaryHarvestTasks(q, room, tick)
}

func discoverHarvestTasks(q *Queue, room snapshot.RoomView, tick uint64) {
	for _, src := range room.Sources() {
		if !src.Active() {
			continue
		}
		q.AddTask(roles.Harvester, blackboard.TaskEntry{
			TaskID:    ID(room.Name(), KindHarvestSource, src.ID()),
			Kind:      string(KindHarvestSource),
			TargetID:  src.ID(),
			RoomName:  room.Name(),
			Priority:  blackboard.PriorityHigh,
			ExpiresAt: tick + 100,
		})
	}
}

func buildPriority(kind snapshot.StructureKind) blackboard.Priority {
	switch kind {
	case snapshot.StructureSpawn, snapshot.StructureExtension:
		return blackboard.PriorityCritical
	case snapshot.StructureTower, snapshot.StructureContainer, snapshot.StructureStorage:
		return blackboard.PriorityHigh
	case snapshot.StructureRoad, snapshot.StructureRampart:
		return blackboard.PriorityNormal
	case snapshot.StructureWall:
		return blackboard.PriorityLow
	default:
		return blackboard.PriorityNormal
	}
}

func discoverBuildTasks(q *Queue, room snapshot.RoomView, tick uint64) {
	for _, site := range room.ConstructionSites() {
		q.AddTask(roles.Builder, blackboard.TaskEntry{
			TaskID:    ID(room.Name(), KindBuild, site.ID()),
			Kind:      string(KindBuild),
			TargetID:  site.ID(),
			RoomName:  room.Name(),
			Priority:  buildPriority(site.Kind()),
			ExpiresAt: tick + 200,
		})
	}
}

func repairPriority(kind snapshot.StructureKind) blackboard.Priority {
	switch kind {
	case snapshot.StructureSpawn, snapshot.StructureTower:
		return blackboard.PriorityCritical
	case snapshot.StructureRoad, snapshot.StructureContainer:
		return blackboard.PriorityHigh
	default:
		return blackboard.PriorityNormal
	}
}

// discoverRepairTasks skips walls and ramparts.
func discoverRepairTasks(q *Queue, room snapshot.RoomView, tick uint64) {
	for _, st := range room.Structures() {
		if st.Kind() == snapshot.StructureWall || st.Kind() == snapshot.StructureRampart {
			continue
		}
		if st.Hits() >= st.HitsMax() {
			continue
		}
		q.AddTask(roles.Repairer, blackboard.TaskEntry{
			TaskID:    ID(room.Name(), KindRepair, st.ID()),
			Kind:      string(KindRepair),
			TargetID:  st.ID(),
			RoomName:  room.Name(),
			Priority:  repairPriority(st.Kind()),
			ExpiresAt: tick + 150,
		})
	}
}

func discoverHaulTasks(q *Queue, room snapshot.RoomView, tick uint64) {
	for _, d := range room.DroppedEnergy() {
		if d.Amount() < 20 {
			continue
		}
		q.AddTask(roles.Hauler, blackboard.TaskEntry{
			TaskID:    ID(room.Name(), KindPickupDropped, d.ID()),
			Kind:      string(KindPickupDropped),
			TargetID:  d.ID(),
			RoomName:  room.Name(),
			Priority:  blackboard.PriorityHigh,
			ExpiresAt: tick + 50,
		})
	}
	for _, st := range room.Structures() {
		store := st.Store()
		if store == nil {
			continue
		}
		switch st.Kind() {
		case snapshot.StructureContainer:
			if store.Energy() > 0 {
				q.AddTask(roles.Hauler, blackboard.TaskEntry{
					TaskID:    ID(room.Name(), KindWithdrawContainer, st.ID()),
					Kind:      string(KindWithdrawContainer),
					TargetID:  st.ID(),
					RoomName:  room.Name(),
					Priority:  blackboard.PriorityNormal,
					ExpiresAt: tick + 50,
				})
			}
		case snapshot.StructureSpawn, snapshot.StructureExtension:
			if store.Free() > 0 {
				q.AddTask(roles.Hauler, blackboard.TaskEntry{
					TaskID:    ID(room.Name(), KindDeliverSpawn, st.ID()),
					Kind:      string(KindDeliverSpawn),
					TargetID:  st.ID(),
					RoomName:  room.Name(),
					Priority:  blackboard.PriorityCritical,
					ExpiresAt: tick + 100,
				})
			}
		case snapshot.StructureTower:
			if store.Free() > 0 {
				q.AddTask(roles.Hauler, blackboard.TaskEntry{
					TaskID:    ID(room.Name(), KindDeliverTower, st.ID()),
					Kind:      string(KindDeliverTower),
					TargetID:  st.ID(),
					RoomName:  room.Name(),
					Priority:  blackboard.PriorityHigh,
					ExpiresAt: tick + 100,
				})
			}
		case snapshot.StructureStorage:
			if store.Free() > 0 {
				q.AddTask(roles.Hauler, blackboard.TaskEntry{
					TaskID:    ID(room.Name(), KindDeliverStorage, st.ID()),
					Kind:      string(KindDeliverStorage),
					TargetID:  st.ID(),
					RoomName:  room.Name(),
					Priority:  blackboard.PriorityNormal,
					ExpiresAt: tick + 100,
				})
			}
		}
	}
}

func discoverUpgradeTask(q *Queue, room snapshot.RoomView, tick uint64) {
	ctrl, ok := room.Controller()
	if !ok {
		return
	}
	q.AddTask(roles.Upgrader, blackboard.TaskEntry{
		TaskID:    ID(room.Name(), KindUpgradeController, ctrl.ID()),
		Kind:      string(KindUpgradeController),
		TargetID:  ctrl.ID(),
		RoomName:  room.Name(),
		Priority:  blackboard.PriorityNormal,
		ExpiresAt: tick + 50,
	})
}

// discoverStationaryHarvestTasks adds a task only for sources whose
// SourceView.AdjacentContainerID reports a container; the kernel does no
// container search of its own, the range is resolved by the host there.
func discoverStationaryHarvestTasks(q *Queue, room snapshot.RoomView, tick uint64) {
	for _, src := range room.Sources() {
		if _, ok := src.AdjacentContainerID(); !ok {
			continue
		}
		q.AddTask(roles.StationaryHarvester, blackboard.TaskEntry{
			TaskID:    ID(room.Name(), KindStationaryHarvest, src.ID()),
			Kind:      string(KindStationaryHarvest),
			TargetID:  src.ID(),
			RoomName:  room.Name(),
			Priority:  blackboard.PriorityHigh,
			ExpiresAt: tick + 100,
		})
	}
}
