package series

import (
	"math"
	"testing"

	"PeerLens/internal/model"
)

func TestDerive_Composition(t *testing.T) {
	g1 := 12.5
	raw := model.RawSeries{
		Ticker: "AAA",
		Growth: model.GrowthStats{RevenueGrowth1Y: &g1},
		Points: []model.RawPoint{
			{Date: day(2024, 1, 2), Close: fp(100), PE: fp(20), EPS: fp(5)},
			{Date: day(2024, 1, 3), Close: fp(110), PE: fp(-4)}, // invalid pe, no eps
			{Date: day(2024, 1, 4), Close: fp(120), PE: fp(22), EPS: fp(-1.2)},
		},
	}
	d := Derive(raw, model.RangeAll, day(2024, 6, 1))

	if len(d.PriceIndex) != 3 || d.PriceIndex[0].Value != 100 || d.PriceIndex[2].Value != 120 {
		t.Errorf("unexpected price index: %+v", d.PriceIndex)
	}
	// P/E keeps only finite positive values, carried without rebasing.
	if len(d.PESeries) != 2 || d.PESeries[0].Value != 20 || d.PESeries[1].Value != 22 {
		t.Errorf("unexpected pe series: %+v", d.PESeries)
	}
	// EPS keeps finite values, negatives included.
	if len(d.EPSSeries) != 2 || d.EPSSeries[1].Value != -1.2 {
		t.Errorf("unexpected eps series: %+v", d.EPSSeries)
	}
	if d.Coverage.Empty() || !d.Coverage.First.Equal(day(2024, 1, 2)) || !d.Coverage.Last.Equal(day(2024, 1, 4)) {
		t.Errorf("unexpected coverage: %+v", d.Coverage)
	}
	if d.LastClose == nil || *d.LastClose != 120 {
		t.Errorf("unexpected last close: %v", d.LastClose)
	}
	if d.Growth.RevenueGrowth1Y == nil || *d.Growth.RevenueGrowth1Y != 12.5 {
		t.Error("growth scalars must pass through unmodified")
	}
}

func TestDerive_EmptyWindow(t *testing.T) {
	raw := model.RawSeries{
		Ticker: "AAA",
		Points: []model.RawPoint{{Date: day(2020, 1, 2), Close: fp(100)}},
	}
	// 3M window in 2024 holds nothing from 2020.
	d := Derive(raw, model.Range3M, day(2024, 6, 1))
	if !d.Coverage.Empty() {
		t.Error("coverage must be empty for a window with zero points")
	}
	if len(d.PriceIndex) != 0 || d.LastClose != nil {
		t.Errorf("empty window must normalize to nothing, got %+v", d)
	}
}

func TestDerive_LastCloseMissingOrNaN(t *testing.T) {
	raw := model.RawSeries{
		Ticker: "AAA",
		Points: []model.RawPoint{
			{Date: day(2024, 1, 2), Close: fp(100)},
			{Date: day(2024, 1, 3), Close: fp(math.NaN())},
		},
	}
	d := Derive(raw, model.RangeAll, day(2024, 6, 1))
	if d.LastClose != nil {
		t.Errorf("final point's unusable close must yield nil, got %v", *d.LastClose)
	}
	// Coverage still reports availability independent of close usability.
	if !d.Coverage.Last.Equal(day(2024, 1, 3)) {
		t.Errorf("coverage last should be 2024-01-03, got %s", d.Coverage.Last)
	}
}

func TestDeriveAll_KeepsOrderAndEmpties(t *testing.T) {
	raw := []model.RawSeries{
		{Ticker: "AAA", Points: []model.RawPoint{{Date: day(2024, 1, 2), Close: fp(50)}}},
		{Ticker: "BBB"}, // no data at all: empty bundle, not an error
	}
	all := DeriveAll(raw, model.RangeAll, day(2024, 6, 1))
	if len(all) != 2 || all[0].Ticker != "AAA" || all[1].Ticker != "BBB" {
		t.Fatalf("derive must preserve ticker order, got %+v", all)
	}
	if len(all[1].PriceIndex) != 0 {
		t.Error("ticker without data must derive to an empty bundle")
	}
}
