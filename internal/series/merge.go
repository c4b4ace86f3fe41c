package series

import (
	"sort"

	"PeerLens/internal/model"
)

// Field selects which derived series the merge table is built from.
type Field int

const (
	FieldPriceIndex Field = iota
	FieldPE
)

// Merge unions the chosen field of every ticker into one table with a row per
// distinct calendar date, sorted ascending. A ticker without an observation
// on a date is absent from that row: the union is sparse, never interpolated
// to zero, and holds up even when ticker date sets do not intersect.
func Merge(all []model.DerivedSeries, field Field) []model.MergedRow {
	byDate := make(map[string]*model.MergedRow)
	for _, s := range all {
		for _, p := range fieldPoints(s, field) {
			key := p.Date.Format(model.DateFormat)
			row, ok := byDate[key]
			if !ok {
				row = &model.MergedRow{Date: p.Date, Values: make(map[string]float64, len(all))}
				byDate[key] = row
			}
			row.Values[s.Ticker] = p.Value
		}
	}

	rows := make([]model.MergedRow, 0, len(byDate))
	for _, r := range byDate {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

func fieldPoints(s model.DerivedSeries, field Field) []model.Point {
	if field == FieldPE {
		return s.PESeries
	}
	return s.PriceIndex
}
