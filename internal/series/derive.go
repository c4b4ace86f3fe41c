package series

import (
	"time"

	"PeerLens/internal/model"
)

// Derive builds one ticker's normalized bundle for the active range: the
// rebased price index, the carried P/E and EPS series (no rebasing), coverage
// bounds over the filtered-but-unindexed window, the window's final close,
// and the growth scalars passed through unmodified. Total and stateless:
// re-invoked in full whenever raw data, range, or ticker set changes.
func Derive(raw model.RawSeries, rng model.Range, now time.Time) model.DerivedSeries {
	window := FilterRange(raw.Points, rng, now)

	d := model.DerivedSeries{Ticker: raw.Ticker, Growth: raw.Growth}
	if len(window) > 0 {
		d.Coverage = model.Coverage{
			First: window[0].Date,
			Last:  window[len(window)-1].Date,
		}
		if c := window[len(window)-1].Close; c != nil && isFinite(*c) {
			v := *c
			d.LastClose = &v
		}
	}

	d.PriceIndex = IndexPrices(window)
	for _, p := range window {
		if p.PE != nil && isFinite(*p.PE) && *p.PE > 0 {
			d.PESeries = append(d.PESeries, model.Point{Date: p.Date, Value: *p.PE})
		}
		if p.EPS != nil && isFinite(*p.EPS) {
			d.EPSSeries = append(d.EPSSeries, model.Point{Date: p.Date, Value: *p.EPS})
		}
	}
	return d
}

// DeriveAll derives every ticker in order. A ticker whose window yields no
// usable base is represented by its empty bundle, not an error.
func DeriveAll(raw []model.RawSeries, rng model.Range, now time.Time) []model.DerivedSeries {
	out := make([]model.DerivedSeries, len(raw))
	for i, r := range raw {
		out[i] = Derive(r, rng, now)
	}
	return out
}
