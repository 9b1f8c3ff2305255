package demand

import (
	"testing"

	"chargecast/core/model"
)

func profileWith(hour, value int, prev int) []int {
	p := make([]int, model.HoursPerDay)
	p[hour] = value
	if hour > 0 {
		p[hour-1] = prev
	}
	return p
}

func TestPredictVisitCountReferenceExample(t *testing.T) {
	// viewNum=5, two departures, 3 chargers in use, history 2 then 4:
	// historyTerm = round((2+4)/2) = 3
	// predicted = round(3*0.8 + 2*0.8 + 5*0.33 + 3*0.5) = round(7.15) = 7
	sig := &model.DemandSignals{
		ViewNum:        5,
		DepartsIn30m:   []string{"2024-06-15T11:40:00Z", "2024-06-15T11:50:00Z"},
		HourlyVisitNum: profileWith(12, 4, 2),
	}
	got, ok := PredictVisitCount(sig, 3, 12)
	if !ok {
		t.Fatal("expected computable prediction")
	}
	if got != 7 {
		t.Fatalf("predicted %d, want 7", got)
	}
}

func TestPredictVisitCountAbsentSignals(t *testing.T) {
	if _, ok := PredictVisitCount(nil, 3, 12); ok {
		t.Fatal("nil signals must not be computable")
	}
}

func TestPredictVisitCountPure(t *testing.T) {
	sig := &model.DemandSignals{
		ViewNum:        2,
		DepartsIn30m:   []string{"2024-06-15T11:40:00Z"},
		HourlyVisitNum: profileWith(9, 6, 2),
	}
	first, _ := PredictVisitCount(sig, 1, 9)
	for i := 0; i < 10; i++ {
		again, _ := PredictVisitCount(sig, 1, 9)
		if again != first {
			t.Fatalf("prediction not deterministic: %d vs %d", again, first)
		}
	}
	if sig.ViewNum != 2 || len(sig.DepartsIn30m) != 1 {
		t.Fatal("inputs were mutated")
	}
}

func TestPredictVisitCountNoHistory(t *testing.T) {
	sig := &model.DemandSignals{ViewNum: 3}
	// round(2*0.8 + 0 + 3*0.33 + 0) = round(2.59) = 3
	got, ok := PredictVisitCount(sig, 2, 15)
	if !ok || got != 3 {
		t.Fatalf("got %d,%v want 3,true", got, ok)
	}
}

func TestPredictVisitCountShortProfileIgnored(t *testing.T) {
	sig := &model.DemandSignals{HourlyVisitNum: []int{9, 9, 9}}
	got, ok := PredictVisitCount(sig, 0, 1)
	if !ok || got != 0 {
		t.Fatalf("mis-sized profile must contribute nothing, got %d", got)
	}
}

func TestPredictVisitCountHourZero(t *testing.T) {
	p := make([]int, model.HoursPerDay)
	p[0] = 4
	p[23] = 100 // must not be consulted at hour 0
	sig := &model.DemandSignals{HourlyVisitNum: p}
	// historyTerm = round((4+4)/2) = 4, predicted = round(4*0.5) = 2
	got, ok := PredictVisitCount(sig, 0, 0)
	if !ok || got != 2 {
		t.Fatalf("got %d,%v want 2,true", got, ok)
	}
}

func TestProfile(t *testing.T) {
	p := make([]int, model.HoursPerDay)
	p[8] = 2
	p[18] = 6
	stats, ok := Profile(p)
	if !ok {
		t.Fatal("expected stats for a full profile")
	}
	if stats.PeakHour != 18 || stats.PeakVisits != 6 {
		t.Fatalf("unexpected peak: %+v", stats)
	}
	if want := 8.0 / 24.0; stats.Mean != want {
		t.Fatalf("mean %v want %v", stats.Mean, want)
	}
	if _, ok := Profile([]int{1, 2, 3}); ok {
		t.Fatal("short profile must not produce stats")
	}
}
