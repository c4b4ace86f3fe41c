package summary

import "sort"

// Sortable columns. ColTicker sorts lexically; every other column sorts
// numerically with missing values last.
const (
	ColTicker          = "ticker"
	ColRetWindow       = "retWindow"
	ColRet3M           = "ret3M"
	ColRet1Y           = "ret1Y"
	ColPE              = "pe"
	ColEPS             = "eps"
	ColLastClose       = "lastClose"
	ColRevenueGrowth1Y = "revenueGrowth1Y"
	ColRevenueGrowth3Y = "revenueGrowth3Y"
	ColRevenueGrowth5Y = "revenueGrowth5Y"
	ColPriceGrowth5Y   = "priceGrowth5Y"
)

func columnValue(r Row, col string) *float64 {
	switch col {
	case ColRetWindow:
		return r.RetWindow
	case ColRet3M:
		return r.Ret3M
	case ColRet1Y:
		return r.Ret1Y
	case ColPE:
		return r.PE
	case ColEPS:
		return r.EPS
	case ColLastClose:
		return r.LastClose
	case ColRevenueGrowth1Y:
		return r.RevenueGrowth1Y
	case ColRevenueGrowth3Y:
		return r.RevenueGrowth3Y
	case ColRevenueGrowth5Y:
		return r.RevenueGrowth5Y
	case ColPriceGrowth5Y:
		return r.PriceGrowth5Y
	default:
		return nil
	}
}

// ValidColumn reports whether col names a sortable column.
func ValidColumn(col string) bool {
	if col == ColTicker {
		return true
	}
	switch col {
	case ColRetWindow, ColRet3M, ColRet1Y, ColPE, ColEPS, ColLastClose,
		ColRevenueGrowth1Y, ColRevenueGrowth3Y, ColRevenueGrowth5Y, ColPriceGrowth5Y:
		return true
	}
	return false
}

// SortRows orders rows in place by the given column. The order is total over
// (value, ticker): rows with a missing value sort after every numeric row in
// both directions, and equal values fall back to ticker ascending.
func SortRows(rows []Row, col string, descending bool) {
	if col == ColTicker {
		sort.SliceStable(rows, func(i, j int) bool {
			if descending {
				return rows[i].Ticker > rows[j].Ticker
			}
			return rows[i].Ticker < rows[j].Ticker
		})
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := columnValue(rows[i], col), columnValue(rows[j], col)
		switch {
		case vi == nil && vj == nil:
			return rows[i].Ticker < rows[j].Ticker
		case vi == nil:
			return false
		case vj == nil:
			return true
		case *vi != *vj:
			if descending {
				return *vi > *vj
			}
			return *vi < *vj
		default:
			return rows[i].Ticker < rows[j].Ticker
		}
	})
}
