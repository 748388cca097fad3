package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/grexie/datasets/pkg/dataset"
	"github.com/grexie/datasets/pkg/export"
	"github.com/grexie/datasets/pkg/ledger"
	"github.com/grexie/datasets/pkg/split"
)

var ErrInvalidParams = errors.New("invalid parameters")

type Result struct {
	Path      string
	TrainRows int
	TestRows  int
	SHA256    string
	Elapsed   time.Duration
}

// Run executes the pipeline: validate, load the embedded data, shuffle and
// split, then serialize to params.Data. Configuration problems surface
// before anything touches the filesystem.
func Run(params Params) (*Result, error) {
	started := time.Now()

	if params.Generator == "" {
		params.Generator = split.GeneratorGo
	}
	if params.Data == "" {
		return nil, fmt.Errorf("%w: output path is required", ErrInvalidParams)
	}

	opts := split.Options{
		TestSize:    params.TestSize,
		RandomState: params.RandomState,
		Generator:   params.Generator,
	}
	if err := split.Validate(opts); err != nil {
		return nil, err
	}

	ds, err := dataset.Load()
	if err != nil {
		return nil, err
	}

	res, err := split.Split(ds.Samples, ds.Labels, opts)
	if err != nil {
		return nil, err
	}

	sum, err := export.WriteFile(params.Data, export.NewDocument(res))
	if err != nil {
		return nil, err
	}

	out := &Result{
		Path:      params.Data,
		TrainRows: len(res.XTrain),
		TestRows:  len(res.XTest),
		SHA256:    sum,
		Elapsed:   time.Since(started),
	}

	if params.Ledger != "" {
		if db, err := ledger.Open(params.Ledger); err != nil {
			return nil, fmt.Errorf("error opening ledger %s: %v", params.Ledger, err)
		} else {
			defer db.Close()
			if err := ledger.Append(db, ledger.Record{
				When:        started,
				Path:        params.Data,
				TestSize:    params.TestSize,
				RandomState: params.RandomState,
				Generator:   string(params.Generator),
				TrainRows:   out.TrainRows,
				TestRows:    out.TestRows,
				SHA256:      sum,
			}); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
