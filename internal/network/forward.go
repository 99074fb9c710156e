package network

import (
	"fmt"

	"github.com/born-ml/backprop/internal/activation"
	"github.com/born-ml/backprop/internal/matrix"
)

// ForwardOne feeds a single input vector through every layer and returns the
// output of the last one.
//
// len(x) must equal n.InputWidth(); otherwise a *matrix.ShapeError is returned.
func ForwardOne(n *Network, x []float64) ([]float64, error) {
	if len(x) != n.InputWidth() {
		return nil, &matrix.ShapeError{
			Op:    "forward",
			Left:  matrix.Shape{Rows: 1, Cols: len(x)},
			Right: n.layers[0].Shape(),
		}
	}

	current := append([]float64(nil), x...)
	for _, layer := range n.layers {
		next := make([]float64, layer.Rows())
		for j := range next {
			sum := 0.0
			for k, v := range current {
				sum += v * layer.At(j, k)
			}
			next[j] = activation.Sigmoid(sum)
		}
		current = next
	}
	return current, nil
}

// ForwardBatch applies ForwardOne to every row of inputs.
//
// Input shape: [samples, n.InputWidth()]
// Output shape: [samples, n.OutputWidth()]
func ForwardBatch(n *Network, inputs matrix.Matrix) (matrix.Matrix, error) {
	if inputs.Cols() != n.InputWidth() {
		return matrix.Matrix{}, &matrix.ShapeError{
			Op:    "forward_batch",
			Left:  inputs.Shape(),
			Right: n.layers[0].Shape(),
		}
	}

	out := make([]float64, 0, inputs.Rows()*n.OutputWidth())
	for i := 0; i < inputs.Rows(); i++ {
		row, err := ForwardOne(n, inputs.Row(i))
		if err != nil {
			return matrix.Matrix{}, fmt.Errorf("sample %d: %w", i, err)
		}
		out = append(out, row...)
	}
	return matrix.FromSlice(inputs.Rows(), n.OutputWidth(), out)
}

// ForwardAllLayers evaluates the whole batch layer by layer and returns every
// layer's output matrix, in order.
//
// outputs[i] has shape [samples, layer i neurons] and is computed as
//
//	Sigmoid(previous @ layer[i]^T)
//
// where previous is inputs for layer 0. The trainer needs these recorded
// outputs to evaluate the sigmoid derivative.
func ForwardAllLayers(n *Network, inputs matrix.Matrix) ([]matrix.Matrix, error) {
	outputs := make([]matrix.Matrix, len(n.layers))
	previous := inputs
	for i, layer := range n.layers {
		sums, err := matrix.Dot(previous, matrix.Transpose(layer))
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		outputs[i] = matrix.Map(activation.Sigmoid, sums)
		previous = outputs[i]
	}
	return outputs, nil
}
