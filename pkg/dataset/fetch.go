package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/progress"
)

// SourceURL is the canonical upstream copy of the reference data.
const SourceURL = "https://archive.ics.uci.edu/ml/machine-learning-databases/breast-cancer-wisconsin/wdbc.data"

var (
	apiClient = resty.New()
)

// Fetch downloads the reference data and validates it against the embedded
// schema. The split pipeline never calls this; it exists so the embedded
// copy can be refreshed from source.
func Fetch(ctx context.Context, pw progress.Writer, url string) ([][]string, error) {
	var tracker *progress.Tracker
	if pw != nil {
		tracker = &progress.Tracker{
			Message: fmt.Sprintf("Fetching %s", filepath.Base(url)),
			Total:   int64(NumSamples),
			Units:   progress.UnitsDefault,
		}
		pw.AppendTracker(tracker)
		tracker.Start()
	}

	resp, err := apiClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrUnavailable, url, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: fetching %s: status %s", ErrUnavailable, url, resp.Status())
	}

	reader := csv.NewReader(bytes.NewReader(resp.Body()))
	reader.FieldsPerRecord = 2 + NumFeatures

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, url, err)
	}

	if _, err := newDatasetFromRecords(records); err != nil {
		return nil, err
	}

	if tracker != nil {
		tracker.SetValue(int64(len(records)))
		tracker.MarkAsDone()
	}

	return records, nil
}

// WriteCSV writes records to path in the upstream column layout, creating
// parent directories as needed.
func WriteCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating %s: %v", filepath.Dir(path), err)
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening %s: %v", path, err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing %s: %v", path, err)
		}
	}
	writer.Flush()

	return writer.Error()
}
