package split

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	randv2 "math/rand/v2"
)

var (
	ErrInvalidTestSize  = errors.New("invalid test size")
	ErrUnknownGenerator = errors.New("unknown generator")
)

// Generator names the pseudo-random source that drives the shuffle. The
// permutation for a given (generator, seed, n) never changes between runs
// or hosts, so consumers can rely on byte-identical splits.
type Generator string

const (
	// GeneratorGo seeds math/rand's Source with the random state.
	GeneratorGo Generator = "go1"
	// GeneratorPCG seeds a math/rand/v2 PCG with the random state in both words.
	GeneratorPCG Generator = "pcg"
)

func Generators() []Generator {
	return []Generator{GeneratorGo, GeneratorPCG}
}

type source interface {
	Intn(n int) int
}

type pcgSource struct {
	rand *randv2.Rand
}

func (s pcgSource) Intn(n int) int {
	return s.rand.IntN(n)
}

func newSource(generator Generator, seed int64) (source, error) {
	switch generator {
	case GeneratorGo, "":
		return rand.New(rand.NewSource(seed)), nil
	case GeneratorPCG:
		return pcgSource{randv2.New(randv2.NewPCG(uint64(seed), uint64(seed)))}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, generator)
	}
}

// Permutation returns the order rows are drawn in. The algorithm is fixed:
// indices start in natural order, then a backward Fisher-Yates pass swaps
// index i with a uniformly drawn j in [0, i], consuming the named generator
// seeded with seed.
func Permutation(n int, generator Generator, seed int64) ([]int, error) {
	src, err := newSource(generator, seed)
	if err != nil {
		return nil, err
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices, nil
}

type Options struct {
	TestSize    float64
	RandomState int64
	Generator   Generator
}

type Result struct {
	XTrain [][]float64
	YTrain []int
	XTest  [][]float64
	YTest  []int
}

// Validate rejects options before any work happens. TestSize must lie
// strictly between 0 and 1; the comparison also rejects NaN.
func Validate(opts Options) error {
	if !(opts.TestSize > 0 && opts.TestSize < 1) {
		return fmt.Errorf("%w: %v is not within (0, 1)", ErrInvalidTestSize, opts.TestSize)
	}
	if _, err := newSource(opts.Generator, opts.RandomState); err != nil {
		return err
	}
	return nil
}

// Split shuffles row indices with the seeded permutation and holds out the
// first round(TestSize*n) of them as the test set; the remainder form the
// training set in permutation order. Rows are shared with the input, not
// copied.
func Split(samples [][]float64, labels []int, opts Options) (*Result, error) {
	if err := Validate(opts); err != nil {
		return nil, err
	}
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("%d samples with %d labels", len(samples), len(labels))
	}

	permutation, err := Permutation(len(samples), opts.Generator, opts.RandomState)
	if err != nil {
		return nil, err
	}

	numTest := int(math.Round(opts.TestSize * float64(len(samples))))

	out := &Result{
		XTrain: make([][]float64, 0, len(samples)-numTest),
		YTrain: make([]int, 0, len(samples)-numTest),
		XTest:  make([][]float64, 0, numTest),
		YTest:  make([]int, 0, numTest),
	}

	for _, i := range permutation[:numTest] {
		out.XTest = append(out.XTest, samples[i])
		out.YTest = append(out.YTest, labels[i])
	}
	for _, i := range permutation[numTest:] {
		out.XTrain = append(out.XTrain, samples[i])
		out.YTrain = append(out.YTrain, labels[i])
	}

	return out, nil
}
