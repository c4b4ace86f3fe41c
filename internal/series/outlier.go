package series

import (
	"math"
	"sort"

	"PeerLens/internal/model"
)

// minClipSamples is the smallest pooled sample for which a percentile band is
// meaningful; below it the axis is left free.
const minClipSamples = 5

// ClipDomain computes the display domain for noisy ratio values pooled across
// all selected tickers. With clip off it returns the unbounded domain. With
// clip on it takes the 5th and 95th percentile of the finite positive values
// by nearest rank (index = floor(q * (n-1)) on the ascending sort); the low
// bound is max(0, floor(p5)) and the high bound max(10, ceil(p95)), the floor
// of 10 guarding against a degenerate near-zero upper clip. Fewer than
// minClipSamples values, or p5 >= p95, falls back to unbounded. Display-only:
// no underlying point is discarded or mutated.
func ClipDomain(values []float64, clip bool) model.Domain {
	if !clip {
		return model.Unbounded
	}
	pooled := make([]float64, 0, len(values))
	for _, v := range values {
		if !isFinite(v) || v <= 0 {
			continue
		}
		pooled = append(pooled, v)
	}
	if len(pooled) < minClipSamples {
		return model.Unbounded
	}
	sort.Float64s(pooled)

	n := len(pooled)
	p5 := pooled[int(math.Floor(0.05*float64(n-1)))]
	p95 := pooled[int(math.Floor(0.95*float64(n-1)))]
	if p5 >= p95 {
		return model.Unbounded
	}
	return model.Domain{
		Low:     math.Max(0, math.Floor(p5)),
		High:    math.Max(10, math.Ceil(p95)),
		Bounded: true,
	}
}

// PoolPE gathers every P/E value currently in scope across the given derived
// series, the input ClipDomain expects.
func PoolPE(all []model.DerivedSeries) []float64 {
	var pooled []float64
	for _, s := range all {
		for _, p := range s.PESeries {
			pooled = append(pooled, p.Value)
		}
	}
	return pooled
}
