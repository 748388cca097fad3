package dataset

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"
)

type FeatureStats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (d *Dataset) Stats() []FeatureStats {
	out := make([]FeatureStats, d.NumFeatures())
	column := make([]float64, d.Len())

	for j := range out {
		for i, sample := range d.Samples {
			column[i] = sample[j]
		}
		min, max := columnRange(column)
		out[j] = FeatureStats{
			Name:   FeatureNames[j],
			Mean:   stat.Mean(column, nil),
			StdDev: stat.StdDev(column, nil),
			Min:    min,
			Max:    max,
		}
	}

	return out
}

func columnRange(column []float64) (float64, float64) {
	if len(column) == 0 {
		return 0, 0
	}
	min, max := column[0], column[0]
	for _, v := range column[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func (d *Dataset) Describe(w io.Writer) {
	counts := d.ClassCounts()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(Name)
	t.AppendRows([]table.Row{
		{"Samples", fmt.Sprintf("%d", d.Len())},
		{"Features", fmt.Sprintf("%d", d.NumFeatures())},
	})
	for i, name := range TargetNames {
		t.AppendRow(table.Row{name, fmt.Sprintf("%d", counts[i])})
	}
	t.Render()

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Features")
	t.AppendHeader(table.Row{"Feature", "Mean", "Std Dev", "Min", "Max"})
	for _, stats := range d.Stats() {
		t.AppendRow(table.Row{
			stats.Name,
			fmt.Sprintf("%0.04f", stats.Mean),
			fmt.Sprintf("%0.04f", stats.StdDev),
			fmt.Sprintf("%0.04f", stats.Min),
			fmt.Sprintf("%0.04f", stats.Max),
		})
	}
	t.Render()
}
