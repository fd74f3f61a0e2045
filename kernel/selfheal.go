package kernel

import "github.com/screeps-gpt/colonykernel/blackboard"

// selfHeal repairs any nil map left by a zero-value or partially corrupted
// Blackboard, recording a warning and a heal for each subtree it had to
// rebuild rather than silently papering over the damage.
func selfHeal(bb *blackboard.Blackboard, sum *Summary) {
	if bb.UnitMemory == nil {
		sum.Warnings = append(sum.Warnings, "self-heal: unit_memory was nil, reinitialised")
		sum.HealCount++
	}
	if bb.RoleCounts == nil {
		sum.Warnings = append(sum.Warnings, "self-heal: role_counts was nil, reinitialised")
		sum.HealCount++
	}
	if bb.TaskQueue == nil {
		sum.Warnings = append(sum.Warnings, "self-heal: task_queue was nil, reinitialised")
		sum.HealCount++
	}
	if bb.SpawnHealth == nil {
		sum.Warnings = append(sum.Warnings, "self-heal: spawn_health was nil, reinitialised")
		sum.HealCount++
	}
	bb.EnsureInitialised()
}
