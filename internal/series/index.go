package series

import (
	"math"

	"PeerLens/internal/model"
)

// IndexPrices rebases a filtered price window so its first retained point
// equals exactly 100. The base is the first point with a finite positive
// close; every retained point maps to 100 * close / base. Points without a
// usable close are dropped, never carried forward or interpolated, so gaps in
// the indexed series are real. Returns nil when no positive base exists.
func IndexPrices(points []model.RawPoint) []model.Point {
	start := -1
	var base float64
	for i, p := range points {
		if p.Close == nil || !isFinite(*p.Close) || *p.Close <= 0 {
			continue
		}
		start, base = i, *p.Close
		break
	}
	if start < 0 {
		return nil
	}

	out := make([]model.Point, 0, len(points)-start)
	for _, p := range points[start:] {
		if p.Close == nil || !isFinite(*p.Close) {
			continue
		}
		out = append(out, model.Point{Date: p.Date, Value: 100 * *p.Close / base})
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
