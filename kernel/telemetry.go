package kernel

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/tasks"
)

// metrics holds the optional Prometheus instruments a Kernel exports
// alongside the blackboard's own in-memory telemetry. It is nil whenever
// Config.PrometheusRegistry is nil, in which case every method below is a
// no-op.
type metrics struct {
	ticks    prometheus.Counter
	cpuUsed  prometheus.Gauge
	warnings prometheus.Counter
	spawns   prometheus.Counter
	heals    prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) *metrics {
	if reg == nil {
		return nil
	}
	m := &metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colonykernel_ticks_total",
			Help: "Number of ticks the kernel has run.",
		}),
		cpuUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "colonykernel_cpu_used",
			Help: "CPU used by the most recently completed tick.",
		}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colonykernel_warnings_total",
			Help: "Number of per-tick warnings emitted across all ticks.",
		}),
		spawns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colonykernel_spawns_total",
			Help: "Number of SpawnIntent calls issued across all ticks.",
		}),
		heals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "colonykernel_self_heals_total",
			Help: "Number of blackboard subtree repairs across all ticks.",
		}),
	}
	reg.MustRegister(m.ticks, m.cpuUsed, m.warnings, m.spawns, m.heals)
	return m
}

func (m *metrics) observe(sum *Summary, cpuUsed float64) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.cpuUsed.Set(cpuUsed)
	m.warnings.Add(float64(len(sum.Warnings)))
	m.spawns.Add(float64(len(sum.SpawnedUnits)))
	m.heals.Add(float64(sum.HealCount))
}

// writeTelemetry records the tick's outcome into the persisted blackboard
// telemetry snapshot and, when configured, into the Prometheus registry and
// the active tracer. It runs unconditionally, even on early abort, so a
// caller can always tell what happened.
func writeTelemetry(k *Kernel, snap snapshot.Snapshot, bb *blackboard.Blackboard, sum *Summary) {
	cpu := snap.CPU()
	bb.Telemetry = blackboard.Telemetry{
		Tick:       snap.Tick(),
		CPUUsed:    cpu.Used(),
		CPULimit:   cpu.Limit(),
		Bucket:     cpu.Bucket(),
		Warnings:   sum.Warnings,
		RoleCounts: cloneRoleCounts(bb.RoleCounts),
		TaskStats:  tasks.NewQueue(bb).Stats(),
		Spawns:     sum.SpawnedUnits,
		Heals:      sum.HealCount,
	}

	k.metrics.observe(sum, cpu.Used())

	if k.cfg.Tracer != nil {
		_, span := k.cfg.Tracer.Start(context.Background(), "colonykernel.tick")
		span.SetAttributes(
			attribute.Int64("tick", int64(snap.Tick())),
			attribute.Float64("cpu_used", cpu.Used()),
			attribute.Int("warnings", len(sum.Warnings)),
			attribute.Int("spawned_units", len(sum.SpawnedUnits)),
			attribute.Int("heal_count", sum.HealCount),
		)
		span.End()
	}
}

func cloneRoleCounts(in map[string]uint32) map[string]uint32 {
	out := make(map[string]uint32, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
