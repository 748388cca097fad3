package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grexie/datasets/pkg/split"
)

var ErrWrite = errors.New("write failed")

// Document is the serialized form of a split: a single JSON object with the
// four arrays and nothing else. Labels stay integers on the wire.
type Document struct {
	XTrain [][]float64 `json:"X_train"`
	YTrain []int       `json:"y_train"`
	XTest  [][]float64 `json:"X_test"`
	YTest  []int       `json:"y_test"`
}

func NewDocument(res *split.Result) *Document {
	doc := &Document{
		XTrain: res.XTrain,
		YTrain: res.YTrain,
		XTest:  res.XTest,
		YTest:  res.YTest,
	}

	// empty subsets still encode as [] rather than null
	if doc.XTrain == nil {
		doc.XTrain = [][]float64{}
	}
	if doc.YTrain == nil {
		doc.YTrain = []int{}
	}
	if doc.XTest == nil {
		doc.XTest = [][]float64{}
	}
	if doc.YTest == nil {
		doc.YTest = []int{}
	}
	return doc
}

// WriteFile serializes doc to path as UTF-8 JSON, creating missing parent
// directories. The document lands via a temp file in the destination
// directory renamed over path, so a failed run never leaves partial output
// behind. Returns the hex SHA-256 of the written bytes.
func WriteFile(path string, doc *Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("%w: encoding: %v", ErrWrite, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file in %s: %v", ErrWrite, dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: writing %s: %v", ErrWrite, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: closing %s: %v", ErrWrite, tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: setting mode on %s: %v", ErrWrite, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: renaming to %s: %v", ErrWrite, path, err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
