// Package energy implements the EnergyBalanceCalculator: a
// pure function over a single room's snapshot that reports production,
// consumption, ratio, and the sustainable spawn budget BodyComposer caps
// itself to.
package energy

import "github.com/screeps-gpt/colonykernel/snapshot"

// Balance is the result of analysing one room's energy economy.
type Balance struct {
	Production       float64
	Consumption      float64
	Ratio            float64
	MaxSpawnBudget   float64
}

const epsilon = 1e-6

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Calculate derives the Balance for a room given its source count, the
// number of harvesters currently assigned to it, and the number of units
// present in the room. spawning reports whether any spawn in the room is
// currently producing a unit, used to estimate consumption the way
// BodyComposer's caller would see it mid-spawn.
func Calculate(sourceCount, harvesterCount, unitsInRoom int, spawning bool, spawnCost int) Balance {
	efficiency := 1.0
	if sourceCount > 0 {
		efficiency = clamp(float64(harvesterCount)/float64(sourceCount), 0.5, 1.0)
	}
	production := float64(sourceCount) * 10 * efficiency

	var consumption float64
	if spawning {
		consumption = float64(spawnCost) / 1 // spawning consumes its full cost within the tick it's issued
	} else {
		consumption = float64(unitsInRoom) * 300 / 1500
	}

	ratio := production / max(consumption, epsilon)

	divisor := float64(unitsInRoom)
	if divisor < 3 {
		divisor = 3
	}
	maxSpawnBudget := max(200, 0.8*production/divisor)

	return Balance{
		Production:     production,
		Consumption:    consumption,
		Ratio:          ratio,
		MaxSpawnBudget: maxSpawnBudget,
	}
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// SustainableCap is the maximum per-unit spawn cost BodyComposer should
// target, derived from the Balance's ratio.
func (b Balance) SustainableCap(roomCapacity int) int {
	capacity := float64(roomCapacity)
	switch {
	case b.Ratio >= 1.5:
		return roomCapacity
	case b.Ratio >= 1.2:
		return int(min(capacity, 1.2*b.MaxSpawnBudget))
	case b.Ratio >= 1.0:
		return int(min(capacity, b.MaxSpawnBudget))
	default:
		return int(0.8 * b.MaxSpawnBudget)
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// CountSources is a small helper so callers don't have to walk
// snapshot.RoomView twice for the same count DemandCalculator already
// computed.
func CountSources(room snapshot.RoomView) int {
	return len(room.Sources())
}
