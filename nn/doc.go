// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides sigmoid multi-layer perceptrons trained by
// backpropagation with full-batch gradient descent.
//
// # Overview
//
// This package contains:
//   - Construction: CreateNetwork, FromLayers
//   - Inference: ForwardOne, ForwardBatch, ForwardAllLayers
//   - Training: Train, TrainIteration, NewTrainer
//   - Scoring: Evaluate
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/backprop/matrix"
//	    "github.com/born-ml/backprop/nn"
//	)
//
//	func main() {
//	    net, _ := nn.CreateNetwork(3, 1)
//
//	    inputs := matrix.MustFromRows([][]float64{{1, 0, 0}, {0, 1, 1}})
//	    targets := matrix.MustFromRows([][]float64{{1}, {0}})
//
//	    trained, _ := nn.Train(500, net, inputs, targets)
//	    res, _ := nn.Evaluate("after", trained, inputs, targets)
//	    fmt.Println(res)
//	}
//
// # Training Rule
//
// Every iteration adds the un-normalized batch gradient to the weights. The
// default learning rate is 1.0, which keeps that raw update; NewTrainer
// accepts a different rate.
//
// # Values
//
// Networks are never modified in place. Train and TrainIteration return a
// new *Network, so the previous one can still be evaluated, from any
// goroutine.
package nn
