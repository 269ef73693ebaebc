package budget

import (
	"math"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		want  Breakdown
	}{
		{"paris trip", 30000, Breakdown{Accommodation: 12000, Food: 7500, Activities: 7500, Transport: 3000}},
		{"zero", 0, Breakdown{}},
		{"negative clamps", -500, Breakdown{}},
		{"cents", 999.99, Breakdown{Accommodation: 400, Food: 250, Activities: 250, Transport: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Split(tt.total); got != tt.want {
				t.Errorf("Split(%v) = %+v, want %+v", tt.total, got, tt.want)
			}
		})
	}
}

func TestNightlyBand(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		days  int
		want  Band
	}{
		// 30000 * 0.4 / 3 = 4000 -> [3200, 4800]
		{"paris trip", 30000, 3, Band{Target: 4000, Min: 3200, Max: 4800}},
		{"single day", 1000, 1, Band{Target: 400, Min: 320, Max: 480}},
		{"zero days treated as one", 1000, 0, Band{Target: 400, Min: 320, Max: 480}},
		{"zero budget", 0, 5, Band{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NightlyBand(tt.total, tt.days); got != tt.want {
				t.Errorf("NightlyBand(%v, %d) = %+v, want %+v", tt.total, tt.days, got, tt.want)
			}
		})
	}

	b := NightlyBand(30000, 3)
	for _, f := range []float64{0.9, 1.0, 1.1} {
		if p := Round2(b.Target * f); !b.Contains(p) {
			t.Errorf("price %v outside band %+v", p, b)
		}
	}
}

func TestDailySpend(t *testing.T) {
	// (7500 + 7500 + 3000) / 3
	if got := DailySpend(30000, 3); got != 6000 {
		t.Fatalf("DailySpend = %v, want 6000", got)
	}
	if got := DailySpend(-1, 3); got != 0 {
		t.Fatalf("DailySpend(-1) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-0.01) != 0 || Clamp(math.NaN()) != 0 || Clamp(12.5) != 12.5 {
		t.Fatal("Clamp mismatch")
	}
}
