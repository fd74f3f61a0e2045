// Package kernel implements the TickKernel: the top-level orchestrator that
// sequences the colony's per-tick phases under an incremental CPU budget,
// guaranteeing telemetry is always written even on early abort.
package kernel

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/colony"
	"github.com/screeps-gpt/colonykernel/construction"
	"github.com/screeps-gpt/colonykernel/pathfinding"
	"github.com/screeps-gpt/colonykernel/role"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/spawn"
)

// Config configures one Kernel instance. Every field is optional; zero
// values fall back to sane defaults via withDefaults, the same
// cascading-default idiom the host's own top-level configuration loader
// uses.
type Config struct {
	// SafetyMargin scales the CPU limit into the per-phase checkpoint
	// threshold (threshold = limit * SafetyMargin). Defaults to 0.85.
	SafetyMargin float64
	// MaxCPUPerUnit is the delta-CPU warning threshold for a single unit's
	// execute call. Defaults to 1.5.
	MaxCPUPerUnit float64

	Registry     *role.Registry
	Pathfinding  pathfinding.Manager
	Construction construction.Manager
	Colony       colony.Queues

	// PrometheusRegistry, when set, receives the optional counters
	// telemetry.go exports alongside the in-memory blackboard telemetry.
	PrometheusRegistry *prometheus.Registry
	// Tracer, when set, receives one "colonykernel.tick" span per Run,
	// emitted when telemetry is written; phases get no spans of their own.
	Tracer trace.Tracer

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.SafetyMargin <= 0 {
		c.SafetyMargin = 0.85
	}
	if c.MaxCPUPerUnit <= 0 {
		c.MaxCPUPerUnit = 1.5
	}
	if c.Registry == nil {
		c.Registry = role.Default()
	}
	if c.Pathfinding == nil {
		c.Pathfinding = pathfinding.Noop{}
	}
	if c.Construction == nil {
		c.Construction = construction.Noop{}
	}
	if c.Colony == nil {
		c.Colony = colony.Noop{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Kernel is the built, ready-to-run tick orchestrator.
type Kernel struct {
	cfg     Config
	body    spawn.BodyComposer
	planner *spawn.Planner
	metrics *metrics
}

// Build constructs a Kernel from cfg, applying defaults.
func (c Config) Build() *Kernel {
	cfg := c.withDefaults()
	return &Kernel{
		cfg:  cfg,
		body: spawn.BodyComposer{},
		planner: &spawn.Planner{
			Registry: cfg.Registry,
			Body:     spawn.BodyComposer{},
			Log:      cfg.Logger,
		},
		metrics: newMetrics(cfg.PrometheusRegistry),
	}
}

// Summary is the per-tick report returned by Run. Nothing here is
// persisted; it exists purely for the caller (typically cmd/kernelctl or
// the host's own diagnostics) to inspect what happened.
type Summary struct {
	CorrelationID  string
	ProcessedUnits int
	SpawnedUnits   []string
	TasksByUnit    map[string]string
	Warnings       []string
	HealCount      int
}

// Run executes one tick against snap and bb. No panic escapes this call:
// per-unit panics are recovered in runUnit and converted into warnings.
func (k *Kernel) Run(snap snapshot.Snapshot, bb *blackboard.Blackboard) Summary {
	sum := Summary{CorrelationID: uuid.NewString(), TasksByUnit: make(map[string]string)}
	tick := snap.Tick()
	cpu := snap.CPU()
	threshold := cpu.Limit() * k.cfg.SafetyMargin

	selfHeal(bb, &sum)

	phaseMemoryRepair(snap, bb)

	if len(snap.Units()) == 0 && len(snap.Spawns()) == 0 {
		writeTelemetry(k, snap, bb, &sum)
		return sum
	}

	if !checkpoint(cpu, threshold, "memory operations", &sum) {
		writeTelemetry(k, snap, bb, &sum)
		return sum
	}

	phaseConstruction(k, snap, bb)

	if !checkpoint(cpu, threshold, "construction request", &sum) {
		writeTelemetry(k, snap, bb, &sum)
		return sum
	}

	dem, bal := phaseDemand(snap, bb, k.cfg.Colony, cpu, threshold)
	var spawnWarnings []string
	sum.SpawnedUnits, spawnWarnings = phaseSpawn(k, snap, bb, dem, bal, tick)
	sum.Warnings = append(sum.Warnings, spawnWarnings...)

	if !checkpoint(cpu, threshold, "spawn planning", &sum) {
		writeTelemetry(k, snap, bb, &sum)
		return sum
	}

	phaseQueueCleanup(snap, bb, tick)
	phaseTaskDiscovery(snap, bb, tick)

	processed, healed := phaseExecuteUnits(k, snap, bb, tick, sum.TasksByUnit, &sum.Warnings)
	sum.ProcessedUnits = processed
	sum.HealCount += healed

	phaseMovementResolution(k, snap)

	writeTelemetry(k, snap, bb, &sum)
	return sum
}

// checkpoint appends a structured warning and reports false when cpu_used
// has crossed threshold, per the TickKernel's checkpoint semantics.
func checkpoint(cpu snapshot.CPUMeter, threshold float64, afterPhase string, sum *Summary) bool {
	if cpu.Used() > threshold {
		sum.Warnings = append(sum.Warnings, "CPU threshold exceeded after "+afterPhase)
		return false
	}
	return true
}
