package role

import "testing"

func TestMachine_FireAppliesEffectAndTransition(t *testing.T) {
	table := Table{
		StateGathering: {
			EventFull: {Next: StateWorking, Effect: func(c *Context) { c.Data["filled_at"] = 42 }},
		},
	}
	m := NewMachine(table, StateGathering, "unit-1")
	if !m.Fire(EventFull) {
		t.Fatalf("expected a defined transition to fire")
	}
	if m.State() != StateWorking {
		t.Fatalf("expected state to advance to working, got %s", m.State())
	}
	if m.Context().Data["filled_at"] != 42 {
		t.Fatalf("expected effect to run, got %v", m.Context().Data)
	}
}

func TestMachine_FireUndefinedTransitionIsNoop(t *testing.T) {
	m := NewMachine(gatherWorkTable, StateGathering, "unit-1")
	if m.Fire(EventEmpty) {
		t.Fatalf("expected undefined (gathering, empty) transition to report false")
	}
	if m.State() != StateGathering {
		t.Fatalf("expected state to stay unchanged, got %s", m.State())
	}
}

func TestSerializeRestore_RoundTripsModuloUnitHandle(t *testing.T) {
	m := NewMachine(gatherWorkTable, StateGathering, "unit-1")
	m.Fire(EventFull)
	m.Context().Data["source_id"] = "src1"

	rec, err := Serialize(m)
	if err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}

	restored := Restore(gatherWorkTable, StateGathering, "unit-2", rec)
	if restored.State() != m.State() {
		t.Fatalf("expected restored state %s to equal original %s", restored.State(), m.State())
	}
	if restored.Context().Data["source_id"] != "src1" {
		t.Fatalf("expected restored context data to round-trip, got %v", restored.Context().Data)
	}
	if restored.Context().UnitName != "unit-2" {
		t.Fatalf("expected the unit handle to be freshly injected, got %s", restored.Context().UnitName)
	}
}

func TestRestore_NilRecordYieldsFreshMachine(t *testing.T) {
	m := Restore(gatherWorkTable, StateGathering, "unit-3", nil)
	if m.State() != StateGathering {
		t.Fatalf("expected nil record to produce the initial state, got %s", m.State())
	}
}
