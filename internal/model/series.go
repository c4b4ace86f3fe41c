package model

import (
	"encoding/json"
	"time"
)

// DateFormat is the calendar-date layout used across the wire and in merge keys.
const DateFormat = "2006-01-02"

// RawPoint is a single observation for one ticker. Close may be nil for
// non-trading gaps; PE and EPS may be nil or non-positive independently of Close.
type RawPoint struct {
	Date  time.Time
	Close *float64
	PE    *float64
	EPS   *float64
}

// GrowthStats holds the static growth scalars attached to a ticker's series.
// They are opaque pass-through values owned by the upstream summary index.
type GrowthStats struct {
	RevenueGrowth1Y *float64 `json:"revenue_growth_1y"`
	RevenueGrowth3Y *float64 `json:"revenue_growth_3y"`
	RevenueGrowth5Y *float64 `json:"revenue_growth_5y"`
	PriceGrowth5Y   *float64 `json:"price_growth_5y"`
}

// RawSeries is the per-ticker input to the derivation pipeline: date-ordered
// raw points plus the growth scalars.
type RawSeries struct {
	Ticker string
	Points []RawPoint
	Growth GrowthStats
}

// Point is one observation of a derived series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Coverage reports the first and last date actually present in a filtered
// window. The zero value means the window held no points.
type Coverage struct {
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// Empty reports whether the window held no points at all.
func (c Coverage) Empty() bool { return c.First.IsZero() }

// DerivedSeries is one ticker's normalized bundle for the active range.
// PriceIndex is rebased so its first point equals 100; it is empty iff the
// window had no usable base close.
type DerivedSeries struct {
	Ticker     string      `json:"ticker"`
	PriceIndex []Point     `json:"priceIndex"`
	PESeries   []Point     `json:"peSeries"`
	EPSSeries  []Point     `json:"epsSeries"`
	Coverage   Coverage    `json:"coverage"`
	Growth     GrowthStats `json:"growth"`
	LastClose  *float64    `json:"lastClose"`
}

// MergedRow is one date of the multi-ticker union table. Tickers without an
// observation on that date are absent from Values, never zero.
type MergedRow struct {
	Date   time.Time
	Values map[string]float64
}

// MarshalJSON flattens the row to {"date": "...", "<ticker>": value, ...},
// the shape chart consumers key on.
func (r MergedRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(r.Values)+1)
	flat["date"] = r.Date.Format(DateFormat)
	for ticker, v := range r.Values {
		flat[ticker] = v
	}
	return json.Marshal(flat)
}

// UnmarshalJSON restores a row from its flattened form.
func (r *MergedRow) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.Values = make(map[string]float64, len(flat))
	for key, raw := range flat {
		if key == "date" {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			d, err := time.Parse(DateFormat, s)
			if err != nil {
				return err
			}
			r.Date = d
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		r.Values[key] = v
	}
	return nil
}

// Domain is a chart axis domain. Bounded=false means the axis is left free.
type Domain struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Bounded bool    `json:"bounded"`
}

// Unbounded is the free-axis domain.
var Unbounded = Domain{}
