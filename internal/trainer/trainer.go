package trainer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/born-ml/backprop/internal/activation"
	"github.com/born-ml/backprop/internal/matrix"
	"github.com/born-ml/backprop/internal/network"
)

// Config holds configuration for a Trainer.
type Config struct {
	LearningRate float64      // Multiplier on the raw batch gradient (default: 1.0)
	CheckFinite  bool         // Fail with matrix.ErrNumericInstability on NaN/Inf weights
	LogEvery     int          // Log progress every N iterations (0: only the summary)
	Logger       *slog.Logger // Progress logger (nil: silent)
}

// Trainer runs full-batch gradient descent on sigmoid networks.
//
// Update rule per iteration, with lr = LearningRate:
//
//	layer[i] = layer[i] + lr * weightOffset[i]
//
// weightOffset is the gradient summed over every sample of the batch. It is
// not divided by the batch size, and with the default lr of 1.0 it is added
// unscaled.
//
// Example:
//
//	tr := trainer.New(trainer.Config{})
//	trained, err := tr.Train(500, net, inputs, targets)
type Trainer struct {
	lr          float64
	checkFinite bool
	logEvery    int
	logger      *slog.Logger
}

// New creates a Trainer, applying defaults for zero fields.
func New(cfg Config) *Trainer {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 1.0
	}
	return &Trainer{
		lr:          cfg.LearningRate,
		checkFinite: cfg.CheckFinite,
		logEvery:    cfg.LogEvery,
		logger:      cfg.Logger,
	}
}

// LearningRate returns the step multiplier.
func (t *Trainer) LearningRate() float64 {
	return t.lr
}

// Iteration records every intermediate of one training step.
//
// All slices are indexed by layer. Errors, Deltas and WeightOffsets are
// filled from the last layer down to the first.
type Iteration struct {
	Outputs       []matrix.Matrix // Sigmoid output of each layer, [samples, neurons]
	LayerInputs   []matrix.Matrix // Input fed to each layer, [samples, inputs]
	Errors        []matrix.Matrix // Back-propagated error, [samples, neurons]
	Deltas        []matrix.Matrix // Error scaled by the local sigmoid slope
	WeightOffsets []matrix.Matrix // Batch gradient, same shape as the layer
	Next          *network.Network
}

// Step performs one training iteration and returns its intermediates.
func (t *Trainer) Step(net *network.Network, inputs, targets matrix.Matrix) (*Iteration, error) {
	outputs, err := network.ForwardAllLayers(net, inputs)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}

	numLayers := net.NumLayers()
	last := numLayers - 1

	it := &Iteration{
		Outputs:       outputs,
		LayerInputs:   make([]matrix.Matrix, numLayers),
		Errors:        make([]matrix.Matrix, numLayers),
		Deltas:        make([]matrix.Matrix, numLayers),
		WeightOffsets: make([]matrix.Matrix, numLayers),
	}
	for i := range it.LayerInputs {
		if i == 0 {
			it.LayerInputs[i] = inputs
		} else {
			it.LayerInputs[i] = outputs[i-1]
		}
	}

	for i := last; i >= 0; i-- {
		if i == last {
			// Ground truth only enters here.
			it.Errors[i], err = matrix.Sub(targets, outputs[i])
		} else {
			// Next layer's delta times its un-transposed weights.
			it.Errors[i], err = matrix.Dot(it.Deltas[i+1], net.Layer(i+1))
		}
		if err != nil {
			return nil, fmt.Errorf("layer %d error: %w", i, err)
		}

		slope := matrix.Map(activation.SigmoidDerivative, outputs[i])
		it.Deltas[i], err = matrix.MultiplyElementwise(it.Errors[i], slope)
		if err != nil {
			return nil, fmt.Errorf("layer %d delta: %w", i, err)
		}

		grad, err := matrix.Dot(matrix.Transpose(it.LayerInputs[i]), it.Deltas[i])
		if err != nil {
			return nil, fmt.Errorf("layer %d weight offset: %w", i, err)
		}
		it.WeightOffsets[i] = matrix.Transpose(grad)
	}

	layers := make([]network.Layer, numLayers)
	for i := range layers {
		offset := it.WeightOffsets[i]
		if t.lr != 1.0 {
			offset = matrix.Scale(t.lr, offset)
		}
		layers[i], err = matrix.Add(net.Layer(i), offset)
		if err != nil {
			return nil, fmt.Errorf("layer %d update: %w", i, err)
		}
		if t.checkFinite {
			if err := matrix.CheckFinite(layers[i]); err != nil {
				return nil, fmt.Errorf("layer %d weights: %w", i, err)
			}
		}
	}

	it.Next, err = network.FromLayers(layers...)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// TrainIteration performs one full-batch gradient descent step and returns
// the updated network. net is not modified.
func (t *Trainer) TrainIteration(net *network.Network, inputs, targets matrix.Matrix) (*network.Network, error) {
	it, err := t.Step(net, inputs, targets)
	if err != nil {
		return nil, err
	}
	return it.Next, nil
}

// Train applies TrainIteration exactly iterations times, threading the
// returned network into the next call. There is no early stopping and no
// shuffling. Train(0, ...) returns an exact copy of net.
func (t *Trainer) Train(iterations int, net *network.Network, inputs, targets matrix.Matrix) (*network.Network, error) {
	return t.TrainContext(context.Background(), iterations, net, inputs, targets)
}

// TrainContext is like Train but checks ctx between iterations and returns
// ctx.Err() once it is done.
func (t *Trainer) TrainContext(ctx context.Context, iterations int, net *network.Network, inputs, targets matrix.Matrix) (*network.Network, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("iterations must be >= 0 (got %d)", iterations)
	}

	current := net.Clone()
	for i := 1; i <= iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, err := t.TrainIteration(current, inputs, targets)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}
		current = next

		if t.logger != nil && t.logEvery > 0 && i%t.logEvery == 0 {
			t.logProgress(ctx, "training", i, current, inputs, targets)
		}
	}

	if t.logger != nil {
		t.logProgress(ctx, "training complete", iterations, current, inputs, targets)
	}
	return current, nil
}

// Loss returns the mean squared error of net over the batch.
func (t *Trainer) Loss(net *network.Network, inputs, targets matrix.Matrix) (float64, error) {
	outputs, err := network.ForwardAllLayers(net, inputs)
	if err != nil {
		return 0, err
	}
	diff, err := matrix.Sub(targets, outputs[len(outputs)-1])
	if err != nil {
		return 0, err
	}
	cells := diff.Rows() * diff.Cols()
	if cells == 0 {
		return 0, nil
	}
	return matrix.Sum(matrix.Map(func(x float64) float64 { return x * x }, diff)) / float64(cells), nil
}

func (t *Trainer) logProgress(ctx context.Context, msg string, iteration int, net *network.Network, inputs, targets matrix.Matrix) {
	loss, err := t.Loss(net, inputs, targets)
	if err != nil {
		t.logger.WarnContext(ctx, "loss unavailable", "iteration", iteration, "error", err)
		return
	}
	t.logger.InfoContext(ctx, msg, "iteration", iteration, "loss", loss)
}

var defaultTrainer = New(Config{})

// TrainIteration performs one unscaled training step with the default Trainer.
func TrainIteration(net *network.Network, inputs, targets matrix.Matrix) (*network.Network, error) {
	return defaultTrainer.TrainIteration(net, inputs, targets)
}

// Train runs iterations unscaled training steps with the default Trainer.
func Train(iterations int, net *network.Network, inputs, targets matrix.Matrix) (*network.Network, error) {
	return defaultTrainer.Train(iterations, net, inputs, targets)
}
