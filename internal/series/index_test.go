package series

import (
	"math"
	"testing"

	"PeerLens/internal/model"
)

func TestIndexPrices_RebaseToHundred(t *testing.T) {
	// Scenario: two closes 100 and 110 → indexed 100 and 110.
	pts := []model.RawPoint{
		{Date: day(2024, 1, 2), Close: fp(100)},
		{Date: day(2024, 1, 3), Close: fp(110)},
	}
	got := IndexPrices(pts)
	if len(got) != 2 {
		t.Fatalf("expected 2 indexed points, got %d", len(got))
	}
	if got[0].Value != 100 {
		t.Errorf("first retained point must equal exactly 100, got %v", got[0].Value)
	}
	if got[1].Value != 110 {
		t.Errorf("second point should be 110 (10%% above base), got %v", got[1].Value)
	}
}

func TestIndexPrices_BaseSkipsUnusableCloses(t *testing.T) {
	pts := []model.RawPoint{
		{Date: day(2024, 1, 2)}, // no close
		{Date: day(2024, 1, 3), Close: fp(0)},
		{Date: day(2024, 1, 4), Close: fp(50)},
		{Date: day(2024, 1, 5), Close: fp(75)},
	}
	got := IndexPrices(pts)
	if len(got) != 2 {
		t.Fatalf("expected 2 points from the first positive base, got %d", len(got))
	}
	if got[0].Value != 100 || got[1].Value != 150 {
		t.Errorf("expected [100 150], got [%v %v]", got[0].Value, got[1].Value)
	}
}

func TestIndexPrices_GapsAreReal(t *testing.T) {
	pts := []model.RawPoint{
		{Date: day(2024, 1, 2), Close: fp(200)},
		{Date: day(2024, 1, 3)}, // non-trading gap: dropped, not carried forward
		{Date: day(2024, 1, 4), Close: fp(210)},
	}
	got := IndexPrices(pts)
	if len(got) != 2 {
		t.Fatalf("missing closes must be dropped, got %d points", len(got))
	}
	if !got[1].Date.Equal(day(2024, 1, 4)) {
		t.Errorf("gap date must not appear, second point is %s", got[1].Date)
	}
}

func TestIndexPrices_NoPositiveBase(t *testing.T) {
	tests := []struct {
		name string
		pts  []model.RawPoint
	}{
		{"empty window", nil},
		{"all missing", []model.RawPoint{{Date: day(2024, 1, 2)}}},
		{"all non-positive", []model.RawPoint{{Date: day(2024, 1, 2), Close: fp(0)}, {Date: day(2024, 1, 3), Close: fp(-3)}}},
		{"nan close", []model.RawPoint{{Date: day(2024, 1, 2), Close: fp(math.NaN())}}},
	}
	for _, tt := range tests {
		if got := IndexPrices(tt.pts); len(got) != 0 {
			t.Errorf("%s: expected empty sequence, got %d points", tt.name, len(got))
		}
	}
}
