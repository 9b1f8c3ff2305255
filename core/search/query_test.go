package search

import "testing"

func TestQueryStringEmpty(t *testing.T) {
	var q Query
	if got := q.String(); got != "" {
		t.Fatalf("empty query rendered %q", got)
	}
}

func TestQueryStringBoundsOnly(t *testing.T) {
	var q Query
	q.SetBounds(Bounds{MinLat: 37.5, MaxLat: 37.6, MinLng: 126.9, MaxLng: 127})
	want := "minLat=37.5&maxLat=37.6&minLng=126.9&maxLng=127"
	if got := q.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestQueryStringWithFilters(t *testing.T) {
	var q Query
	q.SetBounds(Bounds{MinLat: 1, MaxLat: 2, MinLng: 3, MaxLng: 4})
	if err := q.SetFilter(FilterChargerTypes, []string{"04", "06"}); err != nil {
		t.Fatal(err)
	}
	if err := q.SetFilter(FilterParkingFree, []string{"Y"}); err != nil {
		t.Fatal(err)
	}
	want := "minLat=1&maxLat=2&minLng=3&maxLng=4&chargerTypes=04,06&parkingFree=Y"
	if got := q.String(); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestQueryStringFiltersWithoutBounds(t *testing.T) {
	var q Query
	if err := q.SetFilter(FilterMinOutput, []string{"50", "100"}); err != nil {
		t.Fatal(err)
	}
	if got := q.String(); got != "minOutput=50,100" {
		t.Fatalf("got %q", got)
	}
}

func TestQuerySetFilterUnknownCategory(t *testing.T) {
	var q Query
	if err := q.SetFilter("color", []string{"red"}); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestQueryStringChangesWithState(t *testing.T) {
	var q Query
	q.SetBounds(Bounds{MinLat: 1, MaxLat: 2, MinLng: 3, MaxLng: 4})
	before := q.String()
	q.SetBounds(Bounds{MinLat: 1.1, MaxLat: 2, MinLng: 3, MaxLng: 4})
	if q.String() == before {
		t.Fatal("query string must change when bounds change")
	}
}
