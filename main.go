package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/grexie/datasets/pkg/dataset"
	"github.com/grexie/datasets/pkg/ingest"
	"github.com/grexie/datasets/pkg/ledger"
	"github.com/grexie/datasets/pkg/split"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func loadEnv(filenames ...string) {
	for _, filename := range filenames {
		if s, err := os.Stat(filename); err == nil && !s.IsDir() {
			godotenv.Load(filename)
		}
	}
}

func newRootCommand() *cobra.Command {
	params := ingest.Params{}
	generator := ""

	cmd := &cobra.Command{
		Use:          "datasets",
		Short:        "Deterministic train/test splits of the built-in reference dataset",
		Long:         "datasets loads the built-in breast cancer reference dataset, shuffles it\nwith a seeded generator, holds out a test fraction and serializes the four\nresulting arrays to a single JSON file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Generator = split.Generator(generator)
			params.Write(os.Stdout, "Split Config")

			result, err := ingest.Run(params)
			if err != nil {
				return err
			}

			log.Printf("wrote %d train rows and %d test rows in %s (sha256 %s)", result.TrainRows, result.TestRows, result.Elapsed, result.SHA256)
			fmt.Printf("Data has been successfully processed and saved to %s\n", result.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Data, "data", "", "path of the JSON file to write")
	cmd.MarkFlagRequired("data")
	cmd.Flags().Float64Var(&params.TestSize, "test-size", ingest.DefaultTestSize(), "fraction of rows held out for the test set, strictly between 0 and 1")
	cmd.Flags().Int64Var(&params.RandomState, "random-state", ingest.DefaultRandomState(), "seed for the shuffle generator")
	cmd.Flags().StringVar(&generator, "generator", ingest.DefaultGenerator(), fmt.Sprintf("shuffle generator, one of %v", split.Generators()))
	cmd.Flags().StringVar(&params.Ledger, "ledger", ingest.DefaultLedger(), "leveldb directory recording run history, empty disables")

	cmd.AddCommand(newDescribeCommand(), newHistoryCommand(), newFetchCommand())

	return cmd
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "describe",
		Short:        "Summarize the built-in dataset",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load()
			if err != nil {
				return err
			}
			ds.Describe(os.Stdout)
			return nil
		},
	}
}

func newHistoryCommand() *cobra.Command {
	path := ""

	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List past runs recorded in the ledger",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("no ledger configured: pass --ledger or set DATASETS_LEDGER")
			}

			db, err := ledger.Open(path)
			if err != nil {
				return fmt.Errorf("error opening ledger %s: %v", path, err)
			}
			defer db.Close()

			records, err := ledger.List(db)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetTitle("Run History")
			t.AppendHeader(table.Row{"When", "Output", "Test Size", "Random State", "Generator", "Train", "Test", "SHA256"})
			for _, record := range records {
				sum := record.SHA256
				if len(sum) > 12 {
					sum = sum[:12]
				}
				t.AppendRow(table.Row{
					record.When.Local().Format(time.DateTime),
					record.Path,
					fmt.Sprintf("%0.04f", record.TestSize),
					fmt.Sprintf("%d", record.RandomState),
					record.Generator,
					fmt.Sprintf("%d", record.TrainRows),
					fmt.Sprintf("%d", record.TestRows),
					sum,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "ledger", ingest.DefaultLedger(), "leveldb directory recording run history")

	return cmd
}

func newFetchCommand() *cobra.Command {
	out := ""
	url := ""

	cmd := &cobra.Command{
		Use:          "fetch",
		Short:        "Refresh the embedded dataset from source",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := progress.NewWriter()
			pw.SetMessageLength(40)
			pw.SetNumTrackersExpected(1)
			pw.SetSortBy(progress.SortByPercentDsc)
			pw.SetStyle(progress.StyleDefault)
			pw.SetTrackerLength(15)
			pw.SetTrackerPosition(progress.PositionRight)
			pw.SetUpdateFrequency(time.Millisecond * 100)
			pw.Style().Colors = progress.StyleColorsExample
			pw.Style().Options.PercentFormat = "%2.0f%%"
			go pw.Render()

			records, err := dataset.Fetch(cmd.Context(), pw, url)

			pw.Stop()
			for pw.IsRenderInProgress() {
				time.Sleep(100 * time.Millisecond)
			}

			if err != nil {
				return err
			}

			if err := dataset.WriteCSV(out, records); err != nil {
				return err
			}

			log.Printf("wrote %d records to %s", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "pkg/dataset/wdbc.csv", "path of the CSV file to write")
	cmd.Flags().StringVar(&url, "url", dataset.SourceURL, "source URL for the reference data")

	return cmd
}

func main() {
	if _, ok := os.LookupEnv("ENV"); !ok {
		env := "development"
		os.Setenv("ENV", env)
	}
	loadEnv(".env."+os.Getenv("ENV")+".local", ".env."+os.Getenv("ENV"), ".env.local", ".env")

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
