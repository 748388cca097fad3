package ledger

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Record is one completed run: when it happened, how the split was
// parameterized and what landed on disk.
type Record struct {
	When        time.Time
	Path        string
	TestSize    float64
	RandomState int64
	Generator   string
	TrainRows   int
	TestRows    int
	SHA256      string
}

// Marshal to an array
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{
		r.When.UTC().Format(time.RFC3339Nano),
		r.Path,
		r.TestSize,
		r.RandomState,
		r.Generator,
		r.TrainRows, r.TestRows,
		r.SHA256,
	})
}

// Unmarshal from an array
func (r *Record) UnmarshalJSON(data []byte) error {
	var arr [8]any
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}

	whenString, whenOK := arr[0].(string)
	path, pathOK := arr[1].(string)
	testSize, testSizeOK := arr[2].(float64)
	randomState, randomStateOK := arr[3].(float64)
	generator, generatorOK := arr[4].(string)
	trainRows, trainRowsOK := arr[5].(float64)
	testRows, testRowsOK := arr[6].(float64)
	sum, sumOK := arr[7].(string)
	if !(whenOK && pathOK && testSizeOK && randomStateOK && generatorOK && trainRowsOK && testRowsOK && sumOK) {
		return fmt.Errorf("unexpected run record shape: %s", data)
	}

	when, err := time.Parse(time.RFC3339Nano, whenString)
	if err != nil {
		return err
	}

	r.When = when
	r.Path = path
	r.TestSize = testSize
	r.RandomState = int64(randomState)
	r.Generator = generator
	r.TrainRows = int(trainRows)
	r.TestRows = int(testRows)
	r.SHA256 = sum
	return nil
}

func Open(path string) (*leveldb.DB, error) {
	return leveldb.OpenFile(path, nil)
}

func Append(db *leveldb.DB, record Record) error {
	key := fmt.Appendf([]byte{}, "run-%s", record.When.UTC().Format(time.RFC3339Nano))
	if data, err := json.Marshal(record); err != nil {
		return fmt.Errorf("error marshalling run record: %v", err)
	} else if err := db.Put(key, data, nil); err != nil {
		return fmt.Errorf("error storing run record: %v", err)
	}
	return nil
}

func List(db *leveldb.DB) ([]Record, error) {
	out := []Record{}

	iter := db.NewIterator(util.BytesPrefix([]byte("run-")), nil)
	defer iter.Release()
	for iter.Next() {
		var record Record
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			return nil, fmt.Errorf("error parsing run record %s: %v", iter.Key(), err)
		}
		out = append(out, record)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b Record) int {
		return a.When.Compare(b.When)
	})

	return out, nil
}
