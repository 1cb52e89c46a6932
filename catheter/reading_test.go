package catheter

import (
	"testing"
	"time"
)

func TestChanged(t *testing.T) {
	base := Reading{UrineOutput: 100, UrineFlowRate: 10, CatheterBagVolume: 400, RemainingVolume: 400}

	tests := []struct {
		name string
		next Reading
		want bool
	}{
		{"identical", base, false},
		{"output within threshold", Reading{UrineOutput: 102, UrineFlowRate: 10, CatheterBagVolume: 400}, false},
		{"output above threshold", Reading{UrineOutput: 102.5, UrineFlowRate: 10, CatheterBagVolume: 400}, true},
		{"flow rate within threshold", Reading{UrineOutput: 100, UrineFlowRate: 10.05, CatheterBagVolume: 400}, false},
		{"flow rate above threshold", Reading{UrineOutput: 100, UrineFlowRate: 10.2, CatheterBagVolume: 400}, true},
		{"bag volume within threshold", Reading{UrineOutput: 100, UrineFlowRate: 10, CatheterBagVolume: 398}, false},
		{"bag volume above threshold", Reading{UrineOutput: 100, UrineFlowRate: 10, CatheterBagVolume: 397}, true},
		{"remaining volume ignored", Reading{UrineOutput: 100, UrineFlowRate: 10, CatheterBagVolume: 400, RemainingVolume: 10}, false},
		{"all within threshold", Reading{UrineOutput: 101.9, UrineFlowRate: 9.95, CatheterBagVolume: 401.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Changed(base, tt.next); got != tt.want {
				t.Fatalf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCrossingTime(t *testing.T) {
	now := time.Date(2025, 3, 4, 9, 7, 0, 0, time.Local)

	if got := CrossingTime(799, now); got != nil {
		t.Fatalf("expected nil below threshold, got %q", *got)
	}

	got := CrossingTime(800, now)
	if got == nil {
		t.Fatal("expected actual time at threshold")
	}
	if *got != "09:07" {
		t.Fatalf("expected 09:07, got %q", *got)
	}

	if CrossingTime(950, now) == nil {
		t.Fatal("expected actual time above threshold")
	}
}
