// Package spawn implements SpawnPlanner and BodyComposer: deciding which
// role to spawn next and what body to request for it, bounded by the
// energy balance calculator's sustainable cap.
package spawn

import (
	"github.com/screeps-gpt/colonykernel/role"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

// emergencyTier returns the cheapest usable body the room can currently
// afford when a role's configured base body is out of reach: a 3-part
// worker at 200 energy, a bare 2-part worker at 150, or nothing at all
// below that — a freshly claimed room still gets a working creep instead of
// waiting for its full base body to become affordable.
func emergencyTier(energyAvailable int) []snapshot.BodyPart {
	switch {
	case energyAvailable >= 200:
		return []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove}
	case energyAvailable >= 150:
		return []snapshot.BodyPart{snapshot.PartWork, snapshot.PartMove}
	default:
		return nil
	}
}

func bodyCost(body []snapshot.BodyPart) int {
	total := 0
	for _, p := range body {
		total += snapshot.PartCost(p)
	}
	return total
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// BodyComposer expands a role's base body by repeating its growth pattern
// for as long as the room's spendable energy allows, capped by MaxRepeats
// and by the sustainable spawn cap the energy balance calculator computed.
type BodyComposer struct{}

// Compose returns the body to request for one spawn of a role configured
// by cfg, given the energy actually on hand right now and the sustainable
// cap for this room.
func (BodyComposer) Compose(cfg role.Config, energyAvailable, sustainableCap int) []snapshot.BodyPart {
	budget := minInt(energyAvailable, sustainableCap)
	base := cfg.BaseBody
	if len(base) == 0 || bodyCost(base) > budget {
		return emergencyTier(energyAvailable)
	}

	body := append([]snapshot.BodyPart(nil), base...)
	if len(cfg.GrowthPattern) == 0 {
		return body
	}
	for repeats := 0; repeats < cfg.MaxRepeats; repeats++ {
		candidate := append(append([]snapshot.BodyPart(nil), body...), cfg.GrowthPattern...)
		if bodyCost(candidate) > budget {
			break
		}
		body = candidate
	}
	return body
}
