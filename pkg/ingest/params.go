package ingest

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/grexie/datasets/pkg/split"
	"github.com/jedib0t/go-pretty/v6/table"
)

type Params struct {
	Data        string
	TestSize    float64
	RandomState int64
	Generator   split.Generator
	Ledger      string
}

func (p *Params) Write(w io.Writer, title string) {
	ledger := p.Ledger
	if ledger == "" {
		ledger = "(disabled)"
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"Output", p.Data},
		{"DATASETS_TEST_SIZE", fmt.Sprintf("%0.04f", p.TestSize)},
		{"DATASETS_RANDOM_STATE", fmt.Sprintf("%d", p.RandomState)},
		{"DATASETS_GENERATOR", string(p.Generator)},
		{"DATASETS_LEDGER", ledger},
	})
	t.Render()
}

var (
	DefaultTestSize    = envFloat64("DATASETS_TEST_SIZE", func() float64 { return 0.2 })
	DefaultRandomState = envInt64("DATASETS_RANDOM_STATE", func() int64 { return 42 })
	DefaultGenerator   = envString("DATASETS_GENERATOR", func() string { return string(split.GeneratorGo) })
	DefaultLedger      = envString("DATASETS_LEDGER", func() string { return "" })
)

func envFloat64(name string, def func() float64) func() float64 {
	return func() float64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseFloat(v, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envInt64(name string, def func() int64) func() int64 {
	return func() int64 {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			if v, err := strconv.ParseInt(v, 10, 64); err != nil {
				log.Fatalf("failed to parse env.%s: %v", name, err)
			} else {
				value = v
			}
		}
		return value
	}
}

func envString(name string, def func() string) func() string {
	return func() string {
		value := def()
		if v, ok := os.LookupEnv(name); ok {
			value = v
		}
		return value
	}
}
