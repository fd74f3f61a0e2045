// Package blackboard defines the persisted, mutable state that survives
// across ticks. The host owns storage; the kernel is the exclusive mutator
// while a tick is running.
package blackboard

// Priority is the total, stable order used by task queues. Lower values are
// more urgent; insertion and comparisons rely on this ordering directly, so
// the numeric values themselves are part of the persisted contract and must
// not be renumbered.
type Priority int8

const (
	PriorityCritical Priority = 1
	PriorityHigh     Priority = 2
	PriorityNormal   Priority = 3
	PriorityLow      Priority = 4
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// TaskEntry is one work target tracked for a single role's queue. At most
// one TaskEntry exists per (role, target_id) pair.
type TaskEntry struct {
	TaskID       string   `json:"task_id"`
	Kind         string   `json:"kind"`
	TargetID     string   `json:"target_id"`
	RoomName     string   `json:"room_name"`
	Priority     Priority `json:"priority"`
	ExpiresAt    uint64   `json:"expires_at"`
	AssignedUnit string   `json:"assigned_unit,omitempty"`
}

// Assigned reports whether the entry currently has an owning unit.
func (e *TaskEntry) Assigned() bool { return e.AssignedUnit != "" }

// Expired reports whether the entry should be dropped by cleanup at tick T.
func (e *TaskEntry) Expired(t uint64) bool { return e.ExpiresAt <= t }

// StateRecord is the serialized form of a per-unit state machine instance.
// Context is opaque to the kernel; only the owning role controller
// interprets it.
type StateRecord struct {
	State   string `json:"state"`
	Context []byte `json:"context,omitempty"`
}

// UnitMemory is the persisted, per-unit record a role controller reads and
// mutates. Version must match the controller's current schema version or
// the task-related fields are reset to defaults on next execute.
type UnitMemory struct {
	Role         string       `json:"role"`
	Task         string       `json:"task,omitempty"`
	Version      int          `json:"version"`
	StateMachine *StateRecord `json:"state_machine,omitempty"`
	HomeRoom     string       `json:"home_room,omitempty"`
	TargetRoom   string       `json:"target_room,omitempty"`
	SourceID     string       `json:"source_id,omitempty"`
	ContainerID  string       `json:"container_id,omitempty"`
	SquadID      string       `json:"squad_id,omitempty"`
	Emergency    bool         `json:"emergency,omitempty"`
}

// SpawnHealth tracks stuck-spawn detection state for one spawn structure.
type SpawnHealth struct {
	DetectedAt    uint64 `json:"detected_at"`
	CandidateName string `json:"candidate_name"`
	RemainingTime int    `json:"remaining_time"`
	StuckTicks    int    `json:"stuck_ticks"`
	CriticalSent  bool   `json:"critical_sent"`
}

// Demand is the last-computed {role -> target minimum} map plus the spawn
// priority order, cached so SpawnPlanner can reuse it when DemandCalculator
// is skipped for budget reasons.
type Demand struct {
	Targets map[string]uint32 `json:"targets"`
	Order   []string          `json:"order"`
}

// Clone returns a deep copy of the demand snapshot.
func (d Demand) Clone() Demand {
	out := Demand{Targets: make(map[string]uint32, len(d.Targets)), Order: append([]string(nil), d.Order...)}
	for k, v := range d.Targets {
		out.Targets[k] = v
	}
	return out
}

// TaskStat summarises one role's queue for telemetry.
type TaskStat struct {
	Total     int `json:"total"`
	Assigned  int `json:"assigned"`
	Available int `json:"available"`
}

// Telemetry is the always-written per-tick summary.
type Telemetry struct {
	Tick       uint64              `json:"tick"`
	CPUUsed    float64             `json:"cpu_used"`
	CPULimit   float64             `json:"cpu_limit"`
	Bucket     float64             `json:"bucket"`
	Warnings   []string            `json:"warnings,omitempty"`
	RoleCounts map[string]uint32   `json:"role_counts,omitempty"`
	TaskStats  map[string]TaskStat `json:"task_stats,omitempty"`
	Spawns     []string            `json:"spawns,omitempty"`
	Heals      int                 `json:"heals"`
}

// ExpansionRequest is a consumed entry from the colony/empire manager.
type ExpansionRequest struct {
	TargetRoom string `json:"target_room"`
	Status     string `json:"status"`
}

// AttackRequest is a consumed entry from the colony/empire manager.
type AttackRequest struct {
	TargetRoom string `json:"target_room"`
	Flag       string `json:"flag"`
	Status     string `json:"status"`
}

// IntegrationEntry is a consumed entry describing a remote room being
// harvested/supported from a home room.
type IntegrationEntry struct {
	Room     string `json:"room"`
	HomeRoom string `json:"home_room"`
	Status   string `json:"status"`
}

// DefenseState mirrors the external defense subsystem's posture map. The
// kernel only reads it.
type DefenseState struct {
	Posture map[string]string `json:"posture,omitempty"`
}

// PostureOf returns the posture for room, defaulting to "normal" when absent.
func (d DefenseState) PostureOf(room string) string {
	if d.Posture == nil {
		return "normal"
	}
	if p, ok := d.Posture[room]; ok {
		return p
	}
	return "normal"
}

// ColonyState mirrors the external colony/empire manager's read-only queues.
type ColonyState struct {
	ExpansionQueue  []ExpansionRequest `json:"expansion_queue,omitempty"`
	AttackQueue     []AttackRequest    `json:"attack_queue,omitempty"`
	IntegrationList []IntegrationEntry `json:"integration_list,omitempty"`
}

// Blackboard is the only mutable state that survives across ticks.
type Blackboard struct {
	UnitCounter uint64                  `json:"unit_counter"`
	UnitMemory  map[string]*UnitMemory  `json:"unit_memory"`
	RoleCounts  map[string]uint32       `json:"role_counts"`
	TaskQueue   map[string][]*TaskEntry `json:"task_queue"`
	SpawnHealth map[string]*SpawnHealth `json:"spawn_health"`
	Defense     DefenseState            `json:"defense"`
	Colony      ColonyState             `json:"colony"`
	LastDemand  Demand                  `json:"last_demand"`
	Telemetry   Telemetry               `json:"telemetry"`
}

// New returns a Blackboard with every map initialised, ready for first use.
func New() *Blackboard {
	return &Blackboard{
		UnitMemory:  make(map[string]*UnitMemory),
		RoleCounts:  make(map[string]uint32),
		TaskQueue:   make(map[string][]*TaskEntry),
		SpawnHealth: make(map[string]*SpawnHealth),
	}
}

// EnsureInitialised repairs nil maps left by a zero-value or partially
// corrupted Blackboard without discarding any data that is already present.
// This is the entry point the kernel's self-heal phase uses.
func (b *Blackboard) EnsureInitialised() {
	if b.UnitMemory == nil {
		b.UnitMemory = make(map[string]*UnitMemory)
	}
	if b.RoleCounts == nil {
		b.RoleCounts = make(map[string]uint32)
	}
	if b.TaskQueue == nil {
		b.TaskQueue = make(map[string][]*TaskEntry)
	}
	if b.SpawnHealth == nil {
		b.SpawnHealth = make(map[string]*SpawnHealth)
	}
}
