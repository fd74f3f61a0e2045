package energy

import "testing"

func TestCalculate_EfficiencyClamped(t *testing.T) {
	b := Calculate(2, 0, 4, false, 0)
	if b.Production != 10 { // efficiency clamped to 0.5 minimum
		t.Fatalf("expected production=10 with clamped efficiency, got %v", b.Production)
	}
}

func TestCalculate_FullyStaffed(t *testing.T) {
	b := Calculate(2, 2, 4, false, 0)
	if b.Production != 20 {
		t.Fatalf("expected production=20, got %v", b.Production)
	}
}

func TestSustainableCap_HighRatioUsesFullCapacity(t *testing.T) {
	b := Balance{Ratio: 1.6}
	if cap := b.SustainableCap(1000); cap != 1000 {
		t.Fatalf("expected full capacity at ratio >= 1.5, got %d", cap)
	}
}

func TestSustainableCap_LowRatioReducesBudget(t *testing.T) {
	b := Balance{Ratio: 0.5, MaxSpawnBudget: 300}
	if cap := b.SustainableCap(1000); cap != 240 {
		t.Fatalf("expected 0.8*maxSpawnBudget=240, got %d", cap)
	}
}
