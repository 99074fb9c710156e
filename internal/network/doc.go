// Package network holds the layered weight model and forward propagation.
//
// A network with sizes [3, 4, 1] owns two layers:
//
//	layer 0: [4, 3]  four neurons, three weights each
//	layer 1: [1, 4]  one neuron, four weights
//
// A layer's output for input x is, per neuron, Sigmoid(Σ_k x_k·w_k).
// There is no bias term.
package network
