package aggregate

import (
	"go-attackboard/types"
)

// Breakdown groups records by the given categorical column. Occurrences and
// casualty totals are computed separately and joined on the category value,
// then the per-occurrence ratio is derived for each joined row. Every counted
// category has at least one occurrence, so the join keeps all of them.
// Rows come back in the order their category was first seen.
func Breakdown(records []types.AttackRecord, col types.Column) []types.CategoryBreakdown {
	counts, order := occurrences(records, col)
	totals := casualtyTotals(records, col)

	out := make([]types.CategoryBreakdown, 0, len(order))
	for _, category := range order {
		count := counts[category]
		total := totals[category]
		out = append(out, types.CategoryBreakdown{
			Category:                category,
			Occurrences:             count,
			Casualties:              total,
			CasualtiesPerOccurrence: float64(total) / float64(count),
		})
	}
	return out
}

// occurrences counts records per category value.
func occurrences(records []types.AttackRecord, col types.Column) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		category := r.Category(col)
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}
	return counts, order
}

// casualtyTotals sums usable casualty counts per category value. A category
// whose counts are all missing has no entry and joins as 0.
func casualtyTotals(records []types.AttackRecord, col types.Column) map[string]int {
	totals := make(map[string]int)
	for _, r := range records {
		if n, ok := r.CasualtyCount(); ok {
			totals[r.Category(col)] += n
		}
	}
	return totals
}

// TotalCasualties sums every known casualty count.
func TotalCasualties(records []types.AttackRecord) int {
	total := 0
	for _, r := range records {
		if n, ok := r.CasualtyCount(); ok {
			total += n
		}
	}
	return total
}

// Mode returns the most frequent value of a categorical column. Ties go to the
// value seen first. An empty record set yields "".
func Mode(records []types.AttackRecord, col types.Column) string {
	counts, order := occurrences(records, col)
	best, bestCount := "", 0
	for _, category := range order {
		if counts[category] > bestCount {
			best, bestCount = category, counts[category]
		}
	}
	return best
}

// GeoEvents groups records that share a map key and sums their casualties.
// Records without both coordinates cannot be placed and are skipped.
func GeoEvents(records []types.AttackRecord) []types.GeoEvent {
	index := make(map[types.GeoEventKey]int)
	var out []types.GeoEvent

	for _, r := range records {
		lat, long, ok := r.Coordinates()
		if !ok {
			continue
		}
		key := types.GeoEventKey{
			EventID:       r.Category(types.ColumnEventID),
			Date:          r.Category(types.ColumnDate),
			City:          r.Category(types.ColumnCity),
			TargetSubtype: r.Category(types.ColumnTargetSubtype),
			WeaponSubtype: r.Category(types.ColumnWeaponSubtype),
			Lat:           lat,
			Long:          long,
		}
		// missing and negative counts come back as 0
		n, _ := r.CasualtyCount()

		if i, exists := index[key]; exists {
			out[i].Casualties += n
			out[i].Rows++
			continue
		}
		index[key] = len(out)
		out = append(out, types.GeoEvent{GeoEventKey: key, Casualties: n, Rows: 1})
	}

	if out == nil {
		out = []types.GeoEvent{}
	}
	return out
}

// DuplicateGeoEvents returns the events built from more than one source row.
func DuplicateGeoEvents(events []types.GeoEvent) []types.GeoEvent {
	var dups []types.GeoEvent
	for _, e := range events {
		if e.Rows > 1 {
			dups = append(dups, e)
		}
	}
	return dups
}
