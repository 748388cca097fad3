package dataset_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/grexie/datasets/pkg/dataset"
)

func newRecords(n int) [][]string {
	records := make([][]string, n)
	for i := range records {
		record := make([]string, 2+dataset.NumFeatures)
		record[0] = strconv.Itoa(900000 + i)
		record[1] = "B"
		for j := 2; j < len(record); j++ {
			record[j] = "1.5"
		}
		records[i] = record
	}
	return records
}

func serveRecords(t *testing.T, records [][]string) *httptest.Server {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			t.Fatalf("error writing record: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("error flushing records: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetch(t *testing.T) {
	data, err := os.ReadFile("wdbc.csv")
	if err != nil {
		t.Fatalf("error reading embedded copy: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	t.Cleanup(server.Close)

	records, err := dataset.Fetch(context.Background(), nil, server.URL)
	if err != nil {
		t.Fatalf("error fetching: %v", err)
	}
	if len(records) != dataset.NumSamples {
		t.Fatalf("expected %d records, got %d", dataset.NumSamples, len(records))
	}
	if records[0][0] != "842302" || records[0][1] != "M" {
		t.Fatalf("unexpected first record: %v", records[0][:2])
	}
}

func TestFetchMalformedSource(t *testing.T) {
	short := newRecords(10)

	width := newRecords(dataset.NumSamples)
	width[3] = width[3][:3]

	diagnosis := newRecords(dataset.NumSamples)
	diagnosis[5][1] = "X"

	feature := newRecords(dataset.NumSamples)
	feature[7][2] = "banana"

	for name, records := range map[string][][]string{
		"wrong row count":     short,
		"wrong field width":   width,
		"unknown diagnosis":   diagnosis,
		"unparseable feature": feature,
	} {
		server := serveRecords(t, records)
		if _, err := dataset.Fetch(context.Background(), nil, server.URL); !errors.Is(err, dataset.ErrUnavailable) {
			t.Fatalf("%s: expected the dataset unavailable error, got %v", name, err)
		}
	}
}

func TestFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	if _, err := dataset.Fetch(context.Background(), nil, server.URL); !errors.Is(err, dataset.ErrUnavailable) {
		t.Fatalf("expected the dataset unavailable error, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "wdbc.csv")
	records := newRecords(3)

	if err := dataset.WriteCSV(path, records); err != nil {
		t.Fatalf("error writing %s: %v", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("error reading %s: %v", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	out, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("error parsing %s: %v", path, err)
	}
	if len(out) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(out))
	}
	for i := range out {
		for j := range out[i] {
			if out[i][j] != records[i][j] {
				t.Fatalf("record %d field %d differs: %s != %s", i, j, out[i][j], records[i][j])
			}
		}
	}
}
