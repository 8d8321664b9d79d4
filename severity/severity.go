package severity

import "go-attackboard/types"

// --- Casualty Thresholds ---
// A count strictly greater than the threshold falls in the bucket.
const (
	highThreshold           = 30
	moderateToHighThreshold = 10
	moderateThreshold       = 5
	lowThreshold            = 0
)

// Bucket describes one severity tier as drawn on the map and in the legend.
type Bucket struct {
	Severity  types.Severity `json:"severity"`
	Label     string         `json:"label"`
	Color     string         `json:"color"`
	Threshold int            `json:"threshold"` // exclusive lower bound; -1 for the zero bucket
}

// buckets is ordered from most to least severe; Classify walks it top-down.
var buckets = []Bucket{
	{Severity: types.SeverityHigh, Label: "High Casualties", Color: "#ff0000", Threshold: highThreshold},
	{Severity: types.SeverityModerateToHigh, Label: "Moderate to High Casualties", Color: "#ffb84d", Threshold: moderateToHighThreshold},
	{Severity: types.SeverityModerate, Label: "Moderate Casualties", Color: "#ffff00", Threshold: moderateThreshold},
	{Severity: types.SeverityLow, Label: "Low Casualties", Color: "#996600", Threshold: lowThreshold},
	{Severity: types.SeverityNone, Label: "No Casualties", Color: "#33cc33", Threshold: -1},
}

// Classify maps a casualty count to its bucket. Negative counts are clamped to the zero bucket.
func Classify(casualties int) Bucket {
	if casualties < 0 {
		casualties = 0
	}
	for _, b := range buckets {
		if casualties > b.Threshold {
			return b
		}
	}
	// unreachable: the last bucket accepts every count >= 0
	return buckets[len(buckets)-1]
}

// Color is a shorthand for Classify(n).Color.
func Color(casualties int) string {
	return Classify(casualties).Color
}

// Legend returns the buckets in display order, most severe first.
func Legend() []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	return out
}
