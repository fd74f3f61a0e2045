package spawn

import (
	"testing"

	"github.com/screeps-gpt/colonykernel/role"
	"github.com/screeps-gpt/colonykernel/snapshot"
)

func TestCompose_GrowsWithinBudget(t *testing.T) {
	cfg := role.Config{
		BaseBody:      []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		GrowthPattern: []snapshot.BodyPart{snapshot.PartWork, snapshot.PartCarry, snapshot.PartMove},
		MaxRepeats:    5,
	}
	body := BodyComposer{}.Compose(cfg, 550, 550)
	if bodyCost(body) > 550 {
		t.Fatalf("expected composed body to respect the budget, cost=%d", bodyCost(body))
	}
	if len(body) <= len(cfg.BaseBody) {
		t.Fatalf("expected at least one growth repeat given 550 energy, got %v", body)
	}
}

func TestCompose_FallsBackToEmergencyBodyWhenBaseUnaffordable(t *testing.T) {
	cfg := role.Config{
		BaseBody: []snapshot.BodyPart{snapshot.PartClaim, snapshot.PartMove},
	}
	body := BodyComposer{}.Compose(cfg, 200, 200)
	if bodyCost(body) > 200 {
		t.Fatalf("expected a body within the 200-energy budget, got cost=%d", bodyCost(body))
	}
}

func TestCompose_EmergencyTierJustBelowTwoHundred(t *testing.T) {
	cfg := role.Config{
		BaseBody: []snapshot.BodyPart{snapshot.PartClaim, snapshot.PartMove},
	}
	body := BodyComposer{}.Compose(cfg, 199, 199)
	want := []snapshot.BodyPart{snapshot.PartWork, snapshot.PartMove}
	if len(body) != len(want) {
		t.Fatalf("expected a 2-part emergency body given 199 energy, got %v", body)
	}
	for i := range want {
		if body[i] != want[i] {
			t.Fatalf("expected %v given 199 energy, got %v", want, body)
		}
	}
}

func TestCompose_EmergencyTierBelowOneFifty(t *testing.T) {
	cfg := role.Config{
		BaseBody: []snapshot.BodyPart{snapshot.PartClaim, snapshot.PartMove},
	}
	body := BodyComposer{}.Compose(cfg, 149, 149)
	if len(body) != 0 {
		t.Fatalf("expected an empty body given 149 energy, got %v", body)
	}
}

func TestCompose_RespectsMaxRepeats(t *testing.T) {
	cfg := role.Config{
		BaseBody:      []snapshot.BodyPart{snapshot.PartWork},
		GrowthPattern: []snapshot.BodyPart{snapshot.PartWork},
		MaxRepeats:    2,
	}
	body := BodyComposer{}.Compose(cfg, 10000, 10000)
	if len(body) != 3 { // base + 2 repeats
		t.Fatalf("expected exactly 3 work parts (base + 2 repeats), got %d", len(body))
	}
}
