package fixture

import "testing"

func TestLoad_BootstrapFixtureParsesIntoARunnableSnapshot(t *testing.T) {
	snap, err := Load("../cmd/kernelctl/testdata/bootstrap.yaml")
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if snap.Tick() != 1 {
		t.Fatalf("expected tick 1, got %d", snap.Tick())
	}
	room, ok := snap.Rooms()["W1N1"]
	if !ok {
		t.Fatalf("expected room W1N1 to be present")
	}
	if !room.Owned() {
		t.Fatalf("expected W1N1 to be owned")
	}
	if len(room.Sources()) != 1 {
		t.Fatalf("expected one source, got %d", len(room.Sources()))
	}
	if len(room.Spawns()) != 1 {
		t.Fatalf("expected one spawn, got %d", len(room.Spawns()))
	}
	if snap.CPU().Limit() != 20 {
		t.Fatalf("expected cpu limit 20, got %v", snap.CPU().Limit())
	}
}
