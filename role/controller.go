package role

import (
	"log/slog"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/tasks"
)

// Config describes one role's spawn-sizing parameters, consumed by
// BodyComposer.
type Config struct {
	Minimum             int
	BaseBody            []snapshot.BodyPart
	GrowthPattern       []snapshot.BodyPart
	MaxRepeats          int
	MemorySchemaVersion int
}

// ExecContext bundles everything a Controller needs to run one unit for one
// tick.
type ExecContext struct {
	Unit     snapshot.UnitView
	Memory   *blackboard.UnitMemory
	Room     snapshot.RoomView
	Snapshot snapshot.Snapshot
	Queue    *tasks.Queue
	Tick     uint64
	Log      *slog.Logger
}

// Controller is one role's full behaviour: its spawn sizing, its memory
// bootstrap/migration, and its per-tick decision function. Execute returns a
// short label describing what the unit did this tick, used for telemetry and
// debugging only.
type Controller interface {
	RoleName() string
	Config() Config
	CreateMemory(unitName string) *blackboard.UnitMemory
	ValidateMemory(mem *blackboard.UnitMemory)
	Execute(ctx *ExecContext) string
}

// Registry is the name-indexed set of role controllers the kernel executes
// against. Grounded on the host's plugin registry, which keys handlers by
// name and preserves registration order for deterministic iteration; unlike
// that registry this one carries no mutex, since the kernel is the sole
// owner of a Registry for the duration of a tick.
type Registry struct {
	controllers map[string]Controller
	order       []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]Controller)}
}

// Register adds c, keyed by its RoleName. Registering the same name twice
// overwrites the previous controller but keeps its original position in
// Names().
func (r *Registry) Register(c Controller) {
	name := c.RoleName()
	if _, exists := r.controllers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.controllers[name] = c
}

// Get looks up a controller by role name.
func (r *Registry) Get(role string) (Controller, bool) {
	c, ok := r.controllers[role]
	return c, ok
}

// Names returns every registered role name in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Default returns a Registry with one Controller registered per known role.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Harvester{})
	r.Register(Upgrader{})
	r.Register(Builder{})
	r.Register(Repairer{})
	r.Register(StationaryHarvester{})
	r.Register(Hauler{})
	r.Register(RemoteMiner{})
	r.Register(RemoteHauler{})
	r.Register(RemoteUpgrader{})
	r.Register(RemoteBuilder{})
	r.Register(Scout{})
	r.Register(Attacker{})
	r.Register(Healer{})
	r.Register(Dismantler{})
	r.Register(Claimer{})
	return r
}

// baseValidate resets task-related fields whenever the persisted schema
// version doesn't match the controller's current one, so a body/memory
// layout change never leaves a stale task pointer around.
func baseValidate(mem *blackboard.UnitMemory, currentVersion int) {
	if mem.Version != currentVersion {
		mem.Task = ""
		mem.StateMachine = nil
		mem.Version = currentVersion
	}
}
