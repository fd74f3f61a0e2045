package kernel

import (
	"context"
	"io"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/screeps-gpt/colonykernel/blackboard"
	"github.com/screeps-gpt/colonykernel/snapshot"
	"github.com/screeps-gpt/colonykernel/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRun_BootstrapSpawnsFirstHarvester exercises a cold-start room: no
// units, no memory, one idle spawn with enough energy for the emergency
// body. The kernel should spawn a harvester and never touch a unit
// execution phase.
func TestRun_BootstrapSpawnsFirstHarvester(t *testing.T) {
	room := &testutil.Room{
		NameV:            "W1N1",
		OwnedV:           true,
		RCLV:             1,
		EnergyAvailableV: 300,
		EnergyCapacityV:  300,
		SourcesV:         []snapshot.SourceView{&testutil.Source{IDV: "source1", ActiveV: true}},
		SpawnsV:          []snapshot.SpawnView{&testutil.Spawn{IDV: "spawn1", RoomV: "W1N1", NextStatus: snapshot.SpawnOK}},
	}
	snap := testutil.NewSnapshot(1)
	snap.RoomsV["W1N1"] = room
	snap.SpawnsV["spawn1"] = room.SpawnsV[0]
	snap.CPUV = testutil.CPU{UsedV: 0.1, LimitV: 20}

	bb := blackboard.New()
	k := Config{Logger: discardLogger()}.Build()

	sum := k.Run(snap, bb)

	if len(sum.SpawnedUnits) != 1 {
		t.Fatalf("expected exactly one spawned unit, got %v", sum.SpawnedUnits)
	}
	if bb.Telemetry.Tick != 1 {
		t.Fatalf("expected telemetry to record tick 1, got %d", bb.Telemetry.Tick)
	}
	if len(sum.Warnings) != 0 {
		t.Fatalf("expected no warnings on a clean bootstrap tick, got %v", sum.Warnings)
	}
}

// TestRun_CPUAbortAfterMemoryOperationsStillWritesTelemetry verifies the
// checkpoint abort path: when cpu_used already exceeds the threshold before
// any phase beyond self-heal and memory repair runs, Run stops immediately
// but still records telemetry and leaves the blackboard usable.
func TestRun_CPUAbortAfterMemoryOperationsStillWritesTelemetry(t *testing.T) {
	room := &testutil.Room{NameV: "W1N1", OwnedV: true, EnergyAvailableV: 300, EnergyCapacityV: 300}
	snap := testutil.NewSnapshot(42)
	snap.RoomsV["W1N1"] = room
	snap.UnitsV["harvester-1"] = &testutil.Unit{NameV: "harvester-1", RoleV: "harvester", Pos: snapshot.Position{Room: "W1N1"}}
	snap.CPUV = testutil.CPU{UsedV: 19, LimitV: 20}

	bb := blackboard.New()
	k := Config{Logger: discardLogger()}.Build()

	sum := k.Run(snap, bb)

	if len(sum.Warnings) == 0 {
		t.Fatalf("expected a CPU threshold warning")
	}
	if sum.Warnings[0] != "CPU threshold exceeded after memory operations" {
		t.Fatalf("unexpected first warning: %q", sum.Warnings[0])
	}
	if sum.ProcessedUnits != 0 {
		t.Fatalf("expected no units processed after an abort this early, got %d", sum.ProcessedUnits)
	}
	if bb.Telemetry.Tick != 42 {
		t.Fatalf("expected telemetry written even on abort, got tick %d", bb.Telemetry.Tick)
	}
	if bb.UnitMemory == nil || bb.TaskQueue == nil {
		t.Fatalf("expected self-heal to have run before the abort")
	}
}

// TestRun_SelfHealRepairsCorruptedBlackboard covers a Blackboard that was
// decoded with nil maps (e.g. from a truncated or pre-schema save) and
// confirms Run repairs it before anything else happens, recording a heal.
func TestRun_SelfHealRepairsCorruptedBlackboard(t *testing.T) {
	snap := testutil.NewSnapshot(7)
	snap.CPUV = testutil.CPU{UsedV: 0.1, LimitV: 20}

	bb := &blackboard.Blackboard{} // every map nil
	k := Config{Logger: discardLogger()}.Build()

	sum := k.Run(snap, bb)

	if sum.HealCount == 0 {
		t.Fatalf("expected at least one heal for the nil-map blackboard")
	}
	if bb.UnitMemory == nil || bb.RoleCounts == nil || bb.TaskQueue == nil || bb.SpawnHealth == nil {
		t.Fatalf("expected every blackboard map to be initialised after Run")
	}
}

// TestRun_RoleCountsMatchLiveUnitsAfterMemoryRepair is the universal
// invariant check: stale unit_memory entries for units no longer present in
// the snapshot must not survive a tick, and role_counts must not keep
// counting them.
func TestRun_RoleCountsMatchLiveUnitsAfterMemoryRepair(t *testing.T) {
	snap := testutil.NewSnapshot(3)
	snap.CPUV = testutil.CPU{UsedV: 0.1, LimitV: 20}
	snap.RoomsV["W1N1"] = &testutil.Room{NameV: "W1N1", OwnedV: true}

	bb := blackboard.New()
	bb.UnitMemory["ghost-1"] = &blackboard.UnitMemory{Role: "harvester"}
	bb.RoleCounts["harvester"] = 1

	k := Config{Logger: discardLogger()}.Build()
	k.Run(snap, bb)

	if _, ok := bb.UnitMemory["ghost-1"]; ok {
		t.Fatalf("expected memory for a unit absent from the snapshot to be dropped")
	}
	if n := bb.RoleCounts["harvester"]; n != 0 {
		t.Fatalf("expected role_counts[harvester] to match the zero live harvesters, got %d", n)
	}
}

// TestRun_EmitsOneSpanPerTickWhenTracerConfigured wires a real in-memory
// span exporter to confirm the tracer integration actually produces a
// span, rather than just compiling against the interface.
func TestRun_EmitsOneSpanPerTickWhenTracerConfigured(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	defer tp.Shutdown(context.Background())

	snap := testutil.NewSnapshot(9)
	snap.CPUV = testutil.CPU{UsedV: 0.1, LimitV: 20}

	bb := blackboard.New()
	k := Config{Logger: discardLogger(), Tracer: tp.Tracer("kernelctl-test")}.Build()
	k.Run(snap, bb)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected exactly one exported span, got %d", len(spans))
	}
	if spans[0].Name != "colonykernel.tick" {
		t.Fatalf("expected span name colonykernel.tick, got %q", spans[0].Name)
	}
}
