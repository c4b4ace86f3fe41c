package summary

import (
	"testing"
	"time"

	"PeerLens/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fp(v float64) *float64 { return &v }

func TestCompute_WindowReturn(t *testing.T) {
	s := model.DerivedSeries{
		Ticker: "AAA",
		PriceIndex: []model.Point{
			{Date: day(2023, 6, 1), Value: 100},
			{Date: day(2024, 5, 30), Value: 123.5},
		},
	}
	rows := Compute([]model.DerivedSeries{s}, day(2024, 6, 1))
	if rows[0].RetWindow == nil || *rows[0].RetWindow != 23.5 {
		t.Errorf("retWindow should be last index value minus 100, got %v", rows[0].RetWindow)
	}
}

func TestCompute_TrailingReturns(t *testing.T) {
	now := day(2024, 6, 1)
	s := model.DerivedSeries{
		Ticker: "AAA",
		PriceIndex: []model.Point{
			{Date: day(2022, 6, 1), Value: 100}, // outside both trailing windows
			{Date: day(2023, 7, 1), Value: 200}, // 1Y sub-window base
			{Date: day(2024, 4, 1), Value: 220}, // 3M sub-window base
			{Date: day(2024, 5, 30), Value: 242},
		},
	}
	rows := Compute([]model.DerivedSeries{s}, now)
	// 1Y: re-indexed to 200 → 100*242/200-100 = 21.
	if rows[0].Ret1Y == nil || *rows[0].Ret1Y != 21 {
		t.Errorf("ret1Y should re-index the trailing year to its own base, got %v", rows[0].Ret1Y)
	}
	// 3M: re-indexed to 220 → 100*242/220-100 = 10.
	if rows[0].Ret3M == nil || *rows[0].Ret3M != 10 {
		t.Errorf("ret3M should re-index the trailing quarter to its own base, got %v", rows[0].Ret3M)
	}
}

func TestCompute_LatestAndMissing(t *testing.T) {
	g5 := 40.0
	s := model.DerivedSeries{
		Ticker:   "AAA",
		PESeries: []model.Point{{Date: day(2024, 1, 2), Value: 18}, {Date: day(2024, 2, 2), Value: 19}},
		Growth:   model.GrowthStats{PriceGrowth5Y: &g5},
	}
	rows := Compute([]model.DerivedSeries{s}, day(2024, 6, 1))
	r := rows[0]
	if r.PE == nil || *r.PE != 19 {
		t.Errorf("pe should be the latest series value, got %v", r.PE)
	}
	if r.EPS != nil {
		t.Errorf("empty eps series must yield nil, got %v", *r.EPS)
	}
	if r.RetWindow != nil || r.Ret3M != nil || r.Ret1Y != nil {
		t.Error("empty price index must yield nil returns")
	}
	if r.PriceGrowth5Y == nil || *r.PriceGrowth5Y != 40 {
		t.Error("growth scalars must carry into the row")
	}
}

func TestSortRows_NullsAlwaysLast(t *testing.T) {
	rows := []Row{
		{Ticker: "AAA", PE: fp(30)},
		{Ticker: "BBB"}, // missing pe
		{Ticker: "CCC", PE: fp(10)},
	}
	SortRows(rows, ColPE, false)
	if rows[0].Ticker != "CCC" || rows[1].Ticker != "AAA" || rows[2].Ticker != "BBB" {
		t.Errorf("ascending: expected CCC,AAA,BBB got %s,%s,%s", rows[0].Ticker, rows[1].Ticker, rows[2].Ticker)
	}
	SortRows(rows, ColPE, true)
	if rows[0].Ticker != "AAA" || rows[1].Ticker != "CCC" || rows[2].Ticker != "BBB" {
		t.Errorf("descending: nulls must still sort last, got %s,%s,%s", rows[0].Ticker, rows[1].Ticker, rows[2].Ticker)
	}
}

func TestSortRows_TickerTiebreak(t *testing.T) {
	rows := []Row{
		{Ticker: "BBB", Ret1Y: fp(5)},
		{Ticker: "AAA", Ret1Y: fp(5)},
	}
	SortRows(rows, ColRet1Y, true)
	if rows[0].Ticker != "AAA" {
		t.Errorf("equal values must fall back to ticker ascending, got %s first", rows[0].Ticker)
	}
}

func TestSortRows_TickerColumn(t *testing.T) {
	rows := []Row{{Ticker: "BBB"}, {Ticker: "CCC"}, {Ticker: "AAA"}}
	SortRows(rows, ColTicker, false)
	if rows[0].Ticker != "AAA" || rows[2].Ticker != "CCC" {
		t.Errorf("unexpected ticker order: %s,%s,%s", rows[0].Ticker, rows[1].Ticker, rows[2].Ticker)
	}
	SortRows(rows, ColTicker, true)
	if rows[0].Ticker != "CCC" {
		t.Errorf("descending ticker sort should start with CCC, got %s", rows[0].Ticker)
	}
}

func TestValidColumn(t *testing.T) {
	for _, col := range []string{ColTicker, ColRetWindow, ColRet3M, ColRet1Y, ColPE, ColEPS, ColLastClose, ColRevenueGrowth1Y, ColPriceGrowth5Y} {
		if !ValidColumn(col) {
			t.Errorf("%s should be sortable", col)
		}
	}
	if ValidColumn("beta") {
		t.Error("unknown column must be rejected")
	}
}
