package app

import (
	"testing"
	"time"
)

func TestTotalCost(t *testing.T) {
	cases := []struct {
		name      string
		rate      float64
		nights    int
		guests    int
		breakfast bool
		want      float64
	}{
		{"with breakfast", 100, 2, 2, true, 280},       // 100*2 + 20 + 15*2*2
		{"without breakfast", 150, 3, 1, false, 470},   // 150*3 + 20
		{"zero nights still charges cleaning", 100, 0, 2, true, 20},
		{"breakfast scales with guests", 200, 1, 4, true, 280}, // 200 + 20 + 15*4
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalCost(tc.rate, tc.nights, tc.guests, tc.breakfast)
			if got != tc.want {
				t.Fatalf("TotalCost = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNightsBetween(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if n := nightsBetween(start, start.AddDate(0, 0, 3)); n != 3 {
		t.Fatalf("nights = %d, want 3", n)
	}
	if n := nightsBetween(start, start); n != 0 {
		t.Fatalf("nights = %d, want 0", n)
	}
}
