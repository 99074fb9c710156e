// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/backprop/internal/activation"
	"github.com/born-ml/backprop/internal/eval"
	"github.com/born-ml/backprop/internal/matrix"
	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/trainer"
)

// Network is an ordered sequence of fully connected sigmoid layers.
type Network = network.Network

// Layer is a weight matrix of shape [neurons, inputs].
type Layer = network.Layer

// TopologyError reports malformed layer sizes.
type TopologyError = network.TopologyError

// ErrInvalidTopology is matched by every TopologyError.
var ErrInvalidTopology = network.ErrInvalidTopology

// CreateNetwork creates an untrained network with weights drawn uniformly
// from [-1, 1).
//
// Example:
//
//	net, err := nn.CreateNetwork(8, 3, 8)  // 8 inputs, 3 hidden, 8 outputs
func CreateNetwork(sizes ...int) (*Network, error) {
	return network.New(sizes...)
}

// CreateNetworkWithRand is like CreateNetwork but draws weights from rng.
func CreateNetworkWithRand(rng *rand.Rand, sizes ...int) (*Network, error) {
	return network.NewWithRand(rng, sizes...)
}

// FromLayers builds a network from explicit weight matrices.
func FromLayers(layers ...Layer) (*Network, error) {
	return network.FromLayers(layers...)
}

// Inference

// ForwardOne evaluates the network on a single input vector.
func ForwardOne(net *Network, x []float64) ([]float64, error) {
	return network.ForwardOne(net, x)
}

// ForwardBatch evaluates the network on every row of inputs.
func ForwardBatch(net *Network, inputs matrix.Matrix) (matrix.Matrix, error) {
	return network.ForwardBatch(net, inputs)
}

// ForwardAllLayers returns every layer's output for the batch.
func ForwardAllLayers(net *Network, inputs matrix.Matrix) ([]matrix.Matrix, error) {
	return network.ForwardAllLayers(net, inputs)
}

// Activation

// Sigmoid computes 1 / (1 + exp(-x)).
func Sigmoid(x float64) float64 {
	return activation.Sigmoid(x)
}

// SigmoidDerivative computes y·(1-y) from a sigmoid output y.
func SigmoidDerivative(y float64) float64 {
	return activation.SigmoidDerivative(y)
}

// Training

// Trainer runs full-batch gradient descent.
type Trainer = trainer.Trainer

// TrainerConfig holds configuration for a Trainer.
type TrainerConfig = trainer.Config

// Iteration records the intermediates of one training step.
type Iteration = trainer.Iteration

// NewTrainer creates a Trainer. A zero LearningRate means 1.0.
func NewTrainer(cfg TrainerConfig) *Trainer {
	return trainer.New(cfg)
}

// Train applies iterations unscaled gradient descent steps and returns the
// trained network. net is not modified.
func Train(iterations int, net *Network, inputs, targets matrix.Matrix) (*Network, error) {
	return trainer.Train(iterations, net, inputs, targets)
}

// TrainIteration performs one unscaled gradient descent step.
func TrainIteration(net *Network, inputs, targets matrix.Matrix) (*Network, error) {
	return trainer.TrainIteration(net, inputs, targets)
}

// Evaluation

// Result counts matching cells of an evaluation.
type Result = eval.Result

// Evaluate rounds every predicted cell to the nearest integer and compares
// it with the expected cell.
func Evaluate(name string, net *Network, inputs, expected matrix.Matrix) (Result, error) {
	return eval.Evaluate(name, net, inputs, expected)
}
