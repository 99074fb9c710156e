// Package dataset provides the training problems used by the CLI and the
// examples, plus a YAML file format for custom ones.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sort"

	"github.com/born-ml/backprop/internal/matrix"
	"github.com/born-ml/backprop/internal/network"
)

// ErrMismatch reports a dataset that does not fit a network or itself.
var ErrMismatch = errors.New("dataset mismatch")

// Dataset pairs sample inputs with target outputs.
//
// Inputs and Targets share a row count (one row per sample). The optional
// test split is held out from training and used for evaluation; when it is
// empty the training split doubles as the test split.
type Dataset struct {
	Name        string
	Inputs      matrix.Matrix
	Targets     matrix.Matrix
	TestInputs  matrix.Matrix
	TestTargets matrix.Matrix

	// Topology is a suggested network shape for the problem.
	Topology []int
}

// Validate checks the internal consistency of both splits.
func (d *Dataset) Validate() error {
	if d.Inputs.Rows() == 0 {
		return fmt.Errorf("%s: no training samples: %w", d.Name, ErrMismatch)
	}
	if d.Inputs.Rows() != d.Targets.Rows() {
		return fmt.Errorf("%s: %d inputs but %d targets: %w",
			d.Name, d.Inputs.Rows(), d.Targets.Rows(), ErrMismatch)
	}
	if d.TestInputs.Rows() != d.TestTargets.Rows() {
		return fmt.Errorf("%s: %d test inputs but %d test targets: %w",
			d.Name, d.TestInputs.Rows(), d.TestTargets.Rows(), ErrMismatch)
	}
	if d.HasTestSplit() {
		if d.TestInputs.Cols() != d.Inputs.Cols() || d.TestTargets.Cols() != d.Targets.Cols() {
			return fmt.Errorf("%s: test split shape %v/%v differs from training split %v/%v: %w",
				d.Name, d.TestInputs.Shape(), d.TestTargets.Shape(),
				d.Inputs.Shape(), d.Targets.Shape(), ErrMismatch)
		}
	}
	return nil
}

// ValidateFor checks that net accepts the dataset's inputs and produces
// outputs of the target width.
func (d *Dataset) ValidateFor(net *network.Network) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Inputs.Cols() != net.InputWidth() {
		return fmt.Errorf("%s: input width %d, network expects %d: %w",
			d.Name, d.Inputs.Cols(), net.InputWidth(), ErrMismatch)
	}
	if d.Targets.Cols() != net.OutputWidth() {
		return fmt.Errorf("%s: target width %d, network produces %d: %w",
			d.Name, d.Targets.Cols(), net.OutputWidth(), ErrMismatch)
	}
	return nil
}

// HasTestSplit reports whether a held-out split is present.
func (d *Dataset) HasTestSplit() bool {
	return d.TestInputs.Rows() > 0
}

// Test returns the held-out split, or the training split if there is none.
func (d *Dataset) Test() (inputs, targets matrix.Matrix) {
	if d.HasTestSplit() {
		return d.TestInputs, d.TestTargets
	}
	return d.Inputs, d.Targets
}

// FirstColumn is the three-input task whose target is the first input bit.
func FirstColumn() *Dataset {
	return &Dataset{
		Name: "first-column",
		Inputs: matrix.MustFromRows([][]float64{
			{1, 0, 0}, {0, 1, 1}, {1, 1, 1}, {0, 0, 1}, {1, 1, 0}, {0, 1, 0},
		}),
		Targets:     matrix.MustFromRows([][]float64{{1}, {0}, {1}, {0}, {1}, {0}}),
		TestInputs:  matrix.MustFromRows([][]float64{{1, 0, 0}, {0, 1, 1}, {1, 1, 1}}),
		TestTargets: matrix.MustFromRows([][]float64{{1}, {0}, {1}}),
		Topology:    []int{3, 1},
	}
}

// BitEncoding is the n-bit one-hot identity task: every one-hot input must be
// reproduced at the output through a hidden layer of ceil(log2(n)) neurons.
func BitEncoding(n int) (*Dataset, error) {
	if n < 2 {
		return nil, fmt.Errorf("bit encoding needs at least 2 bits, got %d", n)
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}
	m := matrix.MustFromRows(rows)
	hidden := int(math.Ceil(math.Log2(float64(n))))
	return &Dataset{
		Name:     fmt.Sprintf("bit-encoding-%d", n),
		Inputs:   m,
		Targets:  m,
		Topology: []int{n, hidden, n},
	}, nil
}

// BooleanSum enumerates every n-bit input; the target is the boolean sum
// (logical OR) of the bits.
func BooleanSum(n int) (*Dataset, error) {
	if n < 1 || n > 16 {
		return nil, fmt.Errorf("boolean sum needs 1..16 bits, got %d", n)
	}
	count := 1 << n
	inputs := make([][]float64, count)
	targets := make([][]float64, count)
	for v := 0; v < count; v++ {
		inputs[v] = make([]float64, n)
		for b := 0; b < n; b++ {
			inputs[v][b] = float64((v >> (n - 1 - b)) & 1)
		}
		targets[v] = []float64{float64(min(bits.OnesCount(uint(v)), 1))}
	}
	return &Dataset{
		Name:     fmt.Sprintf("boolean-sum-%d", n),
		Inputs:   matrix.MustFromRows(inputs),
		Targets:  matrix.MustFromRows(targets),
		Topology: []int{n, n + 1, 1},
	}, nil
}

var builtins = map[string]func(width int) (*Dataset, error){
	"first-column": func(int) (*Dataset, error) { return FirstColumn(), nil },
	"bit-encoding": BitEncoding,
	"boolean-sum":  BooleanSum,
}

// Lookup returns a built-in problem by name. width sizes the bit-encoding and
// boolean-sum problems and is ignored by first-column.
func Lookup(name string, width int) (*Dataset, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem %q (available: %v)", name, Names())
	}
	return build(width)
}

// Names lists the built-in problems in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
