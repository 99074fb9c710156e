package network

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/backprop/internal/matrix"
)

// Layer is a weight matrix whose rows are neurons.
//
// Shape: [neurons, inputs]. Row i holds the synapse weights of neuron i,
// one per input; no bias is modeled.
type Layer = matrix.Matrix

// Network is an ordered sequence of fully connected sigmoid layers.
//
// Layer i's neuron count equals layer i+1's input width. The chaining is
// checked whenever a Network is built and no method mutates the weights, so a
// *Network may be shared between goroutines and evaluated concurrently.
//
// Example:
//
//	net, err := network.New(3, 4, 1)  // 3 inputs, 4 hidden neurons, 1 output
//	out, err := network.ForwardOne(net, []float64{1, 0, 0})
type Network struct {
	layers []Layer
}

// New creates a network with the given layer sizes using the global
// math/rand source.
//
// sizes[0] is the input width; every following entry is the neuron count of
// one layer. Each weight is drawn uniformly from [-1, 1).
func New(sizes ...int) (*Network, error) {
	return build(sizes, func() float64 {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		return rand.Float64()*2.0 - 1.0
	})
}

// NewWithRand is like New but draws weights from rng, making initialization
// reproducible for a fixed seed.
func NewWithRand(rng *rand.Rand, sizes ...int) (*Network, error) {
	if rng == nil {
		return New(sizes...)
	}
	return build(sizes, func() float64 {
		return rng.Float64()*2.0 - 1.0
	})
}

func build(sizes []int, draw func() float64) (*Network, error) {
	if err := ValidateTopology(sizes); err != nil {
		return nil, err
	}

	layers := make([]Layer, len(sizes)-1)
	for i := range layers {
		in, out := sizes[i], sizes[i+1]
		data := make([]float64, out*in)
		for j := range data {
			data[j] = draw()
		}
		layer, err := matrix.FromSlice(out, in, data)
		if err != nil {
			return nil, err
		}
		layers[i] = layer
	}

	return &Network{layers: layers}, nil
}

// ValidateTopology checks that sizes describes at least one layer and that
// every size is positive.
func ValidateTopology(sizes []int) error {
	if len(sizes) < 2 {
		return &TopologyError{
			Sizes:  append([]int(nil), sizes...),
			Reason: fmt.Sprintf("need at least 2 sizes, got %d", len(sizes)),
		}
	}
	for i, s := range sizes {
		if s <= 0 {
			return &TopologyError{
				Sizes:  append([]int(nil), sizes...),
				Reason: fmt.Sprintf("size at index %d is %d (must be > 0)", i, s),
			}
		}
	}
	return nil
}

// FromLayers builds a network from explicit weight matrices.
//
// Layer i must have as many rows as layer i+1 has columns. The matrices are
// cloned.
func FromLayers(layers ...Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, &TopologyError{Reason: "network needs at least one layer"}
	}
	for i, l := range layers {
		if l.Rows() == 0 || l.Cols() == 0 {
			return nil, &TopologyError{
				Layer:  i,
				Reason: fmt.Sprintf("layer %d has empty shape %v", i, l.Shape()),
			}
		}
		if i > 0 && layers[i-1].Rows() != l.Cols() {
			return nil, &TopologyError{
				Layer: i,
				Reason: fmt.Sprintf("layer %d has %d neurons but layer %d expects %d inputs",
					i-1, layers[i-1].Rows(), i, l.Cols()),
			}
		}
	}

	cloned := make([]Layer, len(layers))
	for i, l := range layers {
		cloned[i] = l.Clone()
	}
	return &Network{layers: cloned}, nil
}

// NumLayers returns the number of weight layers.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Layer returns layer i. Matrices are immutable values, so the result can
// not be used to alter the network.
func (n *Network) Layer(i int) Layer {
	return n.layers[i]
}

// Layers returns the layers in order.
func (n *Network) Layers() []Layer {
	out := make([]Layer, len(n.layers))
	copy(out, n.layers)
	return out
}

// InputWidth returns the number of inputs the first layer expects.
func (n *Network) InputWidth() int {
	return n.layers[0].Cols()
}

// OutputWidth returns the neuron count of the last layer.
func (n *Network) OutputWidth() int {
	return n.layers[len(n.layers)-1].Rows()
}

// Sizes recovers the topology the network was created with.
func (n *Network) Sizes() []int {
	sizes := make([]int, 0, len(n.layers)+1)
	sizes = append(sizes, n.InputWidth())
	for _, l := range n.layers {
		sizes = append(sizes, l.Rows())
	}
	return sizes
}

// Clone returns a deep copy.
func (n *Network) Clone() *Network {
	layers := make([]Layer, len(n.layers))
	for i, l := range n.layers {
		layers[i] = l.Clone()
	}
	return &Network{layers: layers}
}

// Equal reports whether both networks have bit-identical weights.
func (n *Network) Equal(other *Network) bool {
	if other == nil || len(n.layers) != len(other.layers) {
		return false
	}
	for i := range n.layers {
		if !n.layers[i].Equal(other.layers[i]) {
			return false
		}
	}
	return true
}

// String summarizes the topology, e.g. "Network[3 4 1]".
func (n *Network) String() string {
	return fmt.Sprintf("Network%v", n.Sizes())
}
