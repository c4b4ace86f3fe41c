package model

// Range is a named lookback window.
type Range string

const (
	Range1M  Range = "1M"
	Range3M  Range = "3M"
	Range1Y  Range = "1Y"
	Range5Y  Range = "5Y"
	RangeAll Range = "ALL"
)

// DefaultRange is the fallback when a stored or requested range is invalid.
const DefaultRange = Range1Y

// MaxCompareTickers caps how many symbols a comparison view may hold.
const MaxCompareTickers = 6

// CompareRanges are the ranges the comparison view accepts. The home and
// detail views additionally use Range1M.
var CompareRanges = []Range{Range3M, Range1Y, Range5Y, RangeAll}

// ValidCompareRange reports whether r is one of the comparison view's ranges.
func ValidCompareRange(r Range) bool {
	for _, v := range CompareRanges {
		if r == v {
			return true
		}
	}
	return false
}

// Descriptor is the restorable compare-view state: the unit of shareable URLs.
// Tickers keep insertion order, are de-duplicated, and hold at most
// MaxCompareTickers entries.
type Descriptor struct {
	Tickers      []string `json:"tickers"`
	Range        Range    `json:"range"`
	ClipOutliers bool     `json:"clipOutliers"`
}

// Equal reports whether two descriptors describe the same view.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.Range != o.Range || d.ClipOutliers != o.ClipOutliers || len(d.Tickers) != len(o.Tickers) {
		return false
	}
	for i := range d.Tickers {
		if d.Tickers[i] != o.Tickers[i] {
			return false
		}
	}
	return true
}
