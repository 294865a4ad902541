package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineZero(t *testing.T) {
	if d := HaversineKm(47.6, 8.0, 47.6, 8.0); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}
