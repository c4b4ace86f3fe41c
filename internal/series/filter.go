package series

import (
	"time"

	"PeerLens/internal/model"
)

// FilterRange returns the sub-sequence of points dated on or after the range
// cutoff. Cutoffs for bounded ranges use calendar month/year arithmetic from
// now (not fixed day counts), so crossing a month end neither skips nor
// duplicates records. Points with a zero date are excluded. Pure function of
// (points, rng, now).
func FilterRange(points []model.RawPoint, rng model.Range, now time.Time) []model.RawPoint {
	cutoff, bounded := rangeCutoff(rng, now)
	out := make([]model.RawPoint, 0, len(points))
	for _, p := range points {
		if p.Date.IsZero() {
			continue
		}
		if bounded && p.Date.Before(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// rangeCutoff returns the earliest admitted date for rng. ALL (and any
// unknown range, which callers have already validated away) is unbounded.
func rangeCutoff(rng model.Range, now time.Time) (time.Time, bool) {
	switch rng {
	case model.Range1M:
		return now.AddDate(0, -1, 0), true
	case model.Range3M:
		return now.AddDate(0, -3, 0), true
	case model.Range1Y:
		return now.AddDate(-1, 0, 0), true
	case model.Range5Y:
		return now.AddDate(-5, 0, 0), true
	default:
		return time.Time{}, false
	}
}
