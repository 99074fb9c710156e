// Package eval scores network predictions against expected outputs.
package eval

import (
	"fmt"
	"io"
	"math"

	"github.com/born-ml/backprop/internal/matrix"
	"github.com/born-ml/backprop/internal/network"
)

// Result counts matching cells for one evaluation.
type Result struct {
	Name    string
	Success int
	Failure int
	Total   int
}

// Rate returns Success/Total, or 0 for an empty evaluation.
func (r Result) Rate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Success) / float64(r.Total)
}

// String renders e.g. "after: 3/3 (100.0%)".
func (r Result) String() string {
	return fmt.Sprintf("%s: %d/%d (%.1f%%)", r.Name, r.Success, r.Total, 100*r.Rate())
}

// Evaluate runs net over inputs and compares every predicted cell, rounded
// to the nearest integer, with the matching cell of expected.
//
// Scoring is per cell, not per sample: a sample with two outputs contributes
// two to Total.
func Evaluate(name string, net *network.Network, inputs, expected matrix.Matrix) (Result, error) {
	predicted, err := network.ForwardBatch(net, inputs)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	return Score(name, predicted, expected)
}

// Score compares rounded predictions with expected values cell by cell.
func Score(name string, predicted, expected matrix.Matrix) (Result, error) {
	if predicted.Shape() != expected.Shape() {
		return Result{}, fmt.Errorf("%s: %w", name, &matrix.ShapeError{
			Op:    "score",
			Left:  predicted.Shape(),
			Right: expected.Shape(),
		})
	}

	got := matrix.Flatten(predicted)
	want := matrix.Flatten(expected)
	res := Result{Name: name, Total: len(want)}
	for i := range want {
		if math.Round(got[i]) == want[i] {
			res.Success++
		} else {
			res.Failure++
		}
	}
	return res, nil
}

// Report writes the actual and expected outputs of net followed by its score.
func Report(w io.Writer, name string, net *network.Network, inputs, expected matrix.Matrix) (Result, error) {
	predicted, err := network.ForwardBatch(net, inputs)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	res, err := Score(name, predicted, expected)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "%s\n", name)
	for i := 0; i < predicted.Rows(); i++ {
		fmt.Fprintf(w, "  actual: %-40s expect: %v\n", formatRow(predicted.Row(i)), expected.Row(i))
	}
	fmt.Fprintf(w, "  %s\n", res)
	return res, nil
}

func formatRow(row []float64) string {
	s := "["
	for i, v := range row {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.4f", v)
	}
	return s + "]"
}
