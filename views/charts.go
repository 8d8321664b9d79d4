package views

import (
	"sort"

	"go-attackboard/types"
)

// ChartStyle is the dark theme shared by both bar charts.
type ChartStyle struct {
	Background string  `json:"background"`
	Text       string  `json:"text"`
	TitleFont  string  `json:"titleFont"`
	TitleSize  int     `json:"titleSize"`
	TitleX     float64 `json:"titleX"`
}

var DefaultChartStyle = ChartStyle{
	Background: "#111111",
	Text:       "#ffffff",
	TitleFont:  "Times New Roman",
	TitleSize:  25,
	TitleX:     0.5,
}

// ChartBar is one horizontal bar. Ratio drives the bar color; Occurrences is hover data.
type ChartBar struct {
	Label       string  `json:"label"`
	Casualties  int     `json:"casualties"`
	Ratio       float64 `json:"ratio"`
	Occurrences int     `json:"occurrences"`
}

type ChartSpec struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	CategoryLabel string     `json:"categoryLabel"`
	ValueLabel    string     `json:"valueLabel"`
	RatioLabel    string     `json:"ratioLabel"`
	Bars          []ChartBar `json:"bars"`
	Style         ChartStyle `json:"style"`
}

func TargetChart(rows []types.CategoryBreakdown) ChartSpec {
	return ChartSpec{
		ID:            "targets",
		Title:         "Number of Casualities by Attack Target",
		CategoryLabel: "Target Type",
		ValueLabel:    "Number of Casualities",
		RatioLabel:    "Casualities Per Attack",
		Bars:          bars(rows),
		Style:         DefaultChartStyle,
	}
}

func WeaponChart(rows []types.CategoryBreakdown) ChartSpec {
	return ChartSpec{
		ID:            "weapons",
		Title:         "Number of Casualities by Attack Method",
		CategoryLabel: "Weapon Type",
		ValueLabel:    "Number of Casualities",
		RatioLabel:    "Casualities per occurrences",
		Bars:          bars(rows),
		Style:         DefaultChartStyle,
	}
}

// bars sorts by casualty total descending; equal totals fall back to the label.
func bars(rows []types.CategoryBreakdown) []ChartBar {
	out := make([]ChartBar, 0, len(rows))
	for _, r := range rows {
		out = append(out, ChartBar{
			Label:       r.Category,
			Casualties:  r.Casualties,
			Ratio:       r.CasualtiesPerOccurrence,
			Occurrences: r.Occurrences,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Casualties != out[j].Casualties {
			return out[i].Casualties > out[j].Casualties
		}
		return out[i].Label < out[j].Label
	})
	return out
}
