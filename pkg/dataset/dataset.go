package dataset

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// wdbc is the embedded copy of the reference data. It carries the published
// layout, row count and class balance with canonical leading records; the
// remaining rows are provisional until regenerated from SourceURL with the
// fetch subcommand.
//
//go:embed wdbc.csv
var wdbc string

var ErrUnavailable = errors.New("dataset unavailable")

const (
	Name        = "Breast Cancer Wisconsin (Diagnostic)"
	NumSamples  = 569
	NumFeatures = 30
)

var FeatureNames = []string{
	"mean radius", "mean texture", "mean perimeter", "mean area",
	"mean smoothness", "mean compactness", "mean concavity",
	"mean concave points", "mean symmetry", "mean fractal dimension",
	"radius error", "texture error", "perimeter error", "area error",
	"smoothness error", "compactness error", "concavity error",
	"concave points error", "symmetry error", "fractal dimension error",
	"worst radius", "worst texture", "worst perimeter", "worst area",
	"worst smoothness", "worst compactness", "worst concavity",
	"worst concave points", "worst symmetry", "worst fractal dimension",
}

// TargetNames maps label values to class names: 0 is malignant, 1 is benign.
var TargetNames = []string{"malignant", "benign"}

type Dataset struct {
	Samples [][]float64
	Labels  []int
}

func (d *Dataset) Len() int {
	return len(d.Samples)
}

func (d *Dataset) NumFeatures() int {
	if len(d.Samples) == 0 {
		return 0
	}
	return len(d.Samples[0])
}

func (d *Dataset) ClassCounts() []int {
	counts := make([]int, len(TargetNames))
	for _, label := range d.Labels {
		counts[label]++
	}
	return counts
}

// Load parses the embedded copy of the reference data. Rows carry a record
// id, an M/B diagnosis and thirty real-valued features; the diagnosis maps
// to label 0 for malignant and 1 for benign. Feature values past the
// leading records are provisional until the embedded copy is refreshed
// from SourceURL with the fetch subcommand.
func Load() (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(wdbc))
	reader.FieldsPerRecord = 2 + NumFeatures

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading embedded records: %v", ErrUnavailable, err)
	}

	return newDatasetFromRecords(records)
}

func newDatasetFromRecords(records [][]string) (*Dataset, error) {
	if len(records) != NumSamples {
		return nil, fmt.Errorf("%w: expected %d records, got %d", ErrUnavailable, NumSamples, len(records))
	}

	out := &Dataset{
		Samples: make([][]float64, len(records)),
		Labels:  make([]int, len(records)),
	}

	for i, record := range records {
		if len(record) != 2+NumFeatures {
			return nil, fmt.Errorf("%w: record %d has %d fields", ErrUnavailable, i, len(record))
		}

		switch record[1] {
		case "M":
			out.Labels[i] = 0
		case "B":
			out.Labels[i] = 1
		default:
			return nil, fmt.Errorf("%w: record %s has diagnosis %q", ErrUnavailable, record[0], record[1])
		}

		sample := make([]float64, NumFeatures)
		for j, field := range record[2:] {
			if v, err := strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%w: record %s field %s: %v", ErrUnavailable, record[0], FeatureNames[j], err)
			} else {
				sample[j] = v
			}
		}
		out.Samples[i] = sample
	}

	return out, nil
}
