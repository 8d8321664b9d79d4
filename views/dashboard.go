package views

import (
	"go-attackboard/aggregate"
	"go-attackboard/types"
)

// Options carries the presentation constants from config.
type Options struct {
	Title     string
	Subtitle  string
	PageSize  int
	MapCenter [2]float64
	MapZoom   int
}

// Summary holds the three card values shown above the tabs.
type Summary struct {
	TotalCasualties    int    `json:"totalCasualties"`
	TotalAttacks       int    `json:"totalAttacks"`
	MostUsedWeaponType string `json:"mostUsedWeaponType"`
}

// Dashboard is every view derived from one load of the dataset. It is built
// once and only read afterwards, so handlers share it without locking.
type Dashboard struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`

	Summary     Summary   `json:"summary"`
	TargetChart ChartSpec `json:"targetChart"`
	WeaponChart ChartSpec `json:"weaponChart"`
	Map         MapSpec   `json:"map"`
	Table       *Table    `json:"-"`

	TargetBreakdown []types.CategoryBreakdown `json:"targetBreakdown"`
	WeaponBreakdown []types.CategoryBreakdown `json:"weaponBreakdown"`

	// MergedEvents counts map events assembled from more than one source row.
	MergedEvents int `json:"mergedEvents"`
}

// Build derives all views from the record set.
func Build(records []types.AttackRecord, opts Options) *Dashboard {
	targets := aggregate.Breakdown(records, types.ColumnTargetType)
	weapons := aggregate.Breakdown(records, types.ColumnWeaponSubtype)
	events := aggregate.GeoEvents(records)

	return &Dashboard{
		Title:           opts.Title,
		Subtitle:        opts.Subtitle,
		Summary:         BuildSummary(records),
		TargetChart:     TargetChart(targets),
		WeaponChart:     WeaponChart(weapons),
		Map:             BuildMap(events, opts.MapCenter, opts.MapZoom),
		Table:           NewTable(records, opts.PageSize),
		TargetBreakdown: targets,
		WeaponBreakdown: weapons,
		MergedEvents:    len(aggregate.DuplicateGeoEvents(events)),
	}
}

func BuildSummary(records []types.AttackRecord) Summary {
	return Summary{
		TotalCasualties:    aggregate.TotalCasualties(records),
		TotalAttacks:       len(records),
		MostUsedWeaponType: aggregate.Mode(records, types.ColumnWeaponType),
	}
}
