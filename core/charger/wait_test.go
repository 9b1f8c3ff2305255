package charger

import (
	"testing"
	"time"
)

func TestEstimateFinish(t *testing.T) {
	start := testNow.Add(-30 * time.Minute)
	// floor((70 / (50*0.8)) * 60 * 0.8) = floor(84) = 84 minutes
	got := EstimateFinish(start, 50, testNow)
	if want := start.Add(84 * time.Minute); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestEstimateFinishMonotoneInPower(t *testing.T) {
	start := testNow.Add(-time.Hour)
	prev := EstimateFinish(start, 3, testNow)
	for _, kw := range []float64{7, 11, 22, 50, 100, 200, 350} {
		cur := EstimateFinish(start, kw, testNow)
		if cur.After(prev) {
			t.Fatalf("estimate increased at %v kW: %v > %v", kw, cur, prev)
		}
		prev = cur
	}
}

func TestEstimateFinishUnreliableStart(t *testing.T) {
	stale := testNow.Add(-FreshnessWindow - time.Minute)
	if got := EstimateFinish(stale, 50, testNow); !got.Equal(testNow) {
		t.Fatalf("stale start must yield now, got %v", got)
	}
	future := testNow.Add(FreshnessWindow + time.Minute)
	if got := EstimateFinish(future, 50, testNow); !got.Equal(testNow) {
		t.Fatalf("far-future start must yield now, got %v", got)
	}
}

func TestEstimateFinishNonPositivePower(t *testing.T) {
	start := testNow.Add(-time.Hour)
	if got := EstimateFinish(start, 0, testNow); !got.Equal(testNow) {
		t.Fatalf("zero power must yield now, got %v", got)
	}
	if got := EstimateFinish(start, -7, testNow); !got.Equal(testNow) {
		t.Fatalf("negative power must yield now, got %v", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		from time.Time
		want string
	}{
		{testNow.Add(-45 * time.Second), "0m"},
		{testNow.Add(-12 * time.Minute), "12m"},
		{testNow.Add(-90 * time.Minute), "1h 30m"},
		{testNow.Add(-25 * time.Hour), "1d"},
		{testNow.Add(25 * time.Hour), "1d"}, // direction does not matter
	}
	for _, c := range cases {
		if got := FormatElapsed(c.from, testNow); got != c.want {
			t.Fatalf("FormatElapsed(%v) = %q want %q", c.from, got, c.want)
		}
	}
}
