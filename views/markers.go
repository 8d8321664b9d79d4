package views

import (
	"fmt"
	"html"

	"go-attackboard/severity"
	"go-attackboard/types"
)

const (
	markerRadius = 2
	markerWeight = 5
)

type Marker struct {
	Lat        float64        `json:"lat"`
	Long       float64        `json:"long"`
	Color      string         `json:"color"`
	Severity   types.Severity `json:"severity"`
	Casualties int            `json:"casualties"`
	Tooltip    string         `json:"tooltip"` // HTML, values escaped
	Radius     int            `json:"radius"`
	Weight     int            `json:"weight"`
}

type MapSpec struct {
	Center  [2]float64        `json:"center"`
	Zoom    int               `json:"zoom"`
	Markers []Marker          `json:"markers"`
	Legend  []severity.Bucket `json:"legend"`
}

// BuildMap places one severity-colored marker per event.
func BuildMap(events []types.GeoEvent, center [2]float64, zoom int) MapSpec {
	markers := make([]Marker, 0, len(events))
	for _, e := range events {
		bucket := severity.Classify(e.Casualties)
		markers = append(markers, Marker{
			Lat:        e.Lat,
			Long:       e.Long,
			Color:      bucket.Color,
			Severity:   bucket.Severity,
			Casualties: e.Casualties,
			Tooltip:    Tooltip(e),
			Radius:     markerRadius,
			Weight:     markerWeight,
		})
	}
	return MapSpec{
		Center:  center,
		Zoom:    zoom,
		Markers: markers,
		Legend:  severity.Legend(),
	}
}

func Tooltip(e types.GeoEvent) string {
	return fmt.Sprintf("Date: %s<br>Weapon Type: %s<br>Casualties: %d",
		html.EscapeString(e.Date), html.EscapeString(e.WeaponSubtype), e.Casualties)
}
