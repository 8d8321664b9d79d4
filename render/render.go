package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"go-attackboard/severity"
	"go-attackboard/views"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts the values of the --format flag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want table or json)", s)
}

type Renderer interface {
	Render(w io.Writer, d *views.Dashboard) error
}

func New(f Format) Renderer {
	switch f {
	case FormatJSON:
		return &jsonRenderer{}
	default:
		return &tableRenderer{}
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Render(w io.Writer, d *views.Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

type tableRenderer struct{}

func (r *tableRenderer) Render(w io.Writer, d *views.Dashboard) error {
	fmt.Fprintf(w, "%s\n", d.Title)
	if d.Subtitle != "" {
		fmt.Fprintf(w, "%s\n", d.Subtitle)
	}
	fmt.Fprintln(w)

	weapon := d.Summary.MostUsedWeaponType
	if weapon == "" {
		weapon = "-"
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Casualties\t%d\n", d.Summary.TotalCasualties)
	fmt.Fprintf(tw, "Total Attacks\t%d\n", d.Summary.TotalAttacks)
	fmt.Fprintf(tw, "Most used Weapon Type\t%s\n", weapon)
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, chart := range []views.ChartSpec{d.TargetChart, d.WeaponChart} {
		if err := renderChart(w, chart); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n--- Map ---\n")
	counts := make(map[string]int)
	for _, m := range d.Map.Markers {
		counts[m.Color]++
	}
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "SEVERITY\tCOLOR\tEVENTS\n")
	for _, b := range severity.Legend() {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", b.Label, b.Color, counts[b.Color])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if d.MergedEvents > 0 {
		fmt.Fprintf(w, "%d events merged from duplicate rows\n", d.MergedEvents)
	}
	return nil
}

func renderChart(w io.Writer, chart views.ChartSpec) error {
	fmt.Fprintf(w, "\n--- %s ---\n", chart.Title)
	if len(chart.Bars) == 0 {
		fmt.Fprintf(w, "No records\n")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCASUALTIES\tOCCURRENCES\tPER OCCURRENCE\n", chart.CategoryLabel)
	for _, b := range chart.Bars {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\n", b.Label, b.Casualties, b.Occurrences, b.Ratio)
	}
	return tw.Flush()
}
