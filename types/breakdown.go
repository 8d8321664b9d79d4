package types

// CategoryBreakdown aggregates every record sharing one category value.
type CategoryBreakdown struct {
	Category                string  `json:"category"`
	Occurrences             int     `json:"occurrences"`
	Casualties              int     `json:"casualties"`
	CasualtiesPerOccurrence float64 `json:"casualtiesPerOccurrence"`
}

// GeoEventKey identifies one map event. Duplicate source rows with the same key are merged.
type GeoEventKey struct {
	EventID       string  `json:"eventid"`
	Date          string  `json:"date"`
	City          string  `json:"city"`
	TargetSubtype string  `json:"targetSubtype"`
	WeaponSubtype string  `json:"weaponSubtype"`
	Lat           float64 `json:"lat"`
	Long          float64 `json:"long"`
}

type GeoEvent struct {
	GeoEventKey
	Casualties int `json:"casualties"`
	Rows       int `json:"rows"` // source rows merged into this event
}
