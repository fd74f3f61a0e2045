package spawn

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// stuckThreshold is the number of consecutive ticks a spawn's
// RemainingTime must fail to decrease before it's reported as stuck.
const stuckThreshold = 10

// CheckHealth detects spawns stuck mid-spawn (RemainingTime not decreasing
// tick over tick) and escalates to a critical warning once stuck for
// stuckThreshold consecutive ticks. The escalation happens once per
// episode; its log line carries a fresh uuid episode id so it can be found
// in external logs, while the returned warning string does not include it.
func CheckHealth(room snapshot.RoomView, bb *blackboard.Blackboard, tick uint64, log *slog.Logger) []string {
	var warnings []string
	seen := make(map[string]bool, len(room.Spawns()))

	for _, sp := range room.Spawns() {
		if !sp.Spawning() {
			continue
		}
		seen[sp.ID()] = true

		h, ok := bb.SpawnHealth[sp.ID()]
		if !ok || h.CandidateName != sp.CandidateName() {
			bb.SpawnHealth[sp.ID()] = &blackboard.SpawnHealth{
				DetectedAt:    tick,
				CandidateName: sp.CandidateName(),
				RemainingTime: sp.RemainingTime(),
			}
			continue
		}

		if sp.RemainingTime() >= h.RemainingTime {
			h.StuckTicks++
		} else {
			h.StuckTicks = 0
		}
		h.RemainingTime = sp.RemainingTime()

		if h.StuckTicks >= stuckThreshold && !h.CriticalSent {
			h.CriticalSent = true
			episode := uuid.NewString()
			warnings = append(warnings, "spawn "+sp.ID()+" stuck spawning "+sp.CandidateName()+" for 10+ ticks")
			if log != nil {
				log.Warn("spawn stuck", "spawn", sp.ID(), "candidate", sp.CandidateName(), "stuck_ticks", h.StuckTicks, "episode", episode)
			}
		}
	}

	for id := range bb.SpawnHealth {
		if !seen[id] {
			delete(bb.SpawnHealth, id)
		}
	}
	return warnings
}
