// Package colony defines the consumed interface the kernel reads the
// empire-level expansion/attack/integration queues through, plus a no-op
// fallback for single-room hosts.
package colony

import "github.com/screeps-gpt/colonykernel/blackboard"

// Queues exposes the read-only, empire-level requests DemandCalculator
// overlays onto a single room's targets. The kernel never mutates these;
// acknowledging or retiring a request is the host's job once the colony
// manager observes its effect (a claim succeeded, an attack flag cleared).
type Queues interface {
	Expansion() []blackboard.ExpansionRequest
	Attacks() []blackboard.AttackRequest
	Integrations() []blackboard.IntegrationEntry
}

// Noop reports empty queues, used when Kernel.Config.Colony is nil.
type Noop struct{}

func (Noop) Expansion() []blackboard.ExpansionRequest     { return nil }
func (Noop) Attacks() []blackboard.AttackRequest           { return nil }
func (Noop) Integrations() []blackboard.IntegrationEntry   { return nil }
