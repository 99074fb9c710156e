// Package activation provides the logistic sigmoid and its derivative.
package activation

import "math"

// Sigmoid computes σ(x) = 1 / (1 + exp(-x)).
//
// Sigmoid squashes values to the open range (0, 1).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidDerivative computes σ'(x) from the activation's own output y = σ(x):
//
//	σ'(x) = y · (1 - y)
//
// The argument is the recorded forward output, not the pre-activation sum.
func SigmoidDerivative(y float64) float64 {
	return y * (1.0 - y)
}
