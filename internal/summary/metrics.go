package summary

import (
	"time"

	"PeerLens/internal/model"
)

// Row is one ticker's sortable line in the comparison table. Nil pointers are
// rendered as missing values and always sort after numbers.
type Row struct {
	Ticker          string   `json:"ticker"`
	RetWindow       *float64 `json:"retWindow"`
	Ret3M           *float64 `json:"ret3M"`
	Ret1Y           *float64 `json:"ret1Y"`
	PE              *float64 `json:"pe"`
	EPS             *float64 `json:"eps"`
	LastClose       *float64 `json:"lastClose"`
	RevenueGrowth1Y *float64 `json:"revenueGrowth1Y"`
	RevenueGrowth3Y *float64 `json:"revenueGrowth3Y"`
	RevenueGrowth5Y *float64 `json:"revenueGrowth5Y"`
	PriceGrowth5Y   *float64 `json:"priceGrowth5Y"`
}

// Compute derives the summary rows for every ticker's bundle. RetWindow is
// the last indexed value minus 100 (the rebase makes that the percent return
// over the active range). Ret3M and Ret1Y re-apply the same rebasing to the
// trailing sub-window of the already range-filtered index, re-indexing it to
// its own first point. That compounds two rebases and is an approximation of
// the true independent-window return, kept as observed upstream.
func Compute(all []model.DerivedSeries, now time.Time) []Row {
	rows := make([]Row, len(all))
	for i, s := range all {
		rows[i] = Row{
			Ticker:          s.Ticker,
			RetWindow:       windowReturn(s.PriceIndex),
			Ret3M:           trailingReturn(s.PriceIndex, now.AddDate(0, -3, 0)),
			Ret1Y:           trailingReturn(s.PriceIndex, now.AddDate(-1, 0, 0)),
			PE:              latest(s.PESeries),
			EPS:             latest(s.EPSSeries),
			LastClose:       s.LastClose,
			RevenueGrowth1Y: s.Growth.RevenueGrowth1Y,
			RevenueGrowth3Y: s.Growth.RevenueGrowth3Y,
			RevenueGrowth5Y: s.Growth.RevenueGrowth5Y,
			PriceGrowth5Y:   s.Growth.PriceGrowth5Y,
		}
	}
	return rows
}

// windowReturn is the percent return over the whole window: last index value
// minus the 100 base.
func windowReturn(index []model.Point) *float64 {
	if len(index) == 0 {
		return nil
	}
	v := index[len(index)-1].Value - 100
	return &v
}

// trailingReturn re-indexes the tail of an already-indexed series (points
// dated on or after cutoff) to its own first retained value.
func trailingReturn(index []model.Point, cutoff time.Time) *float64 {
	var sub []model.Point
	for _, p := range index {
		if p.Date.Before(cutoff) {
			continue
		}
		sub = append(sub, p)
	}
	if len(sub) == 0 || sub[0].Value <= 0 {
		return nil
	}
	v := 100*sub[len(sub)-1].Value/sub[0].Value - 100
	return &v
}

func latest(points []model.Point) *float64 {
	if len(points) == 0 {
		return nil
	}
	v := points[len(points)-1].Value
	return &v
}
