// Package trainer implements backpropagation with full-batch gradient descent
// for networks built by package network.
//
// One iteration walks the layers from last to first:
//
//	error[L-1]      = targets - outputs[L-1]
//	error[i]        = delta[i+1] @ layer[i+1]
//	delta[i]        = error[i] ⊙ SigmoidDerivative(outputs[i])
//	weightOffset[i] = (layerInputs[i]^T @ delta[i])^T
//
// and then adds every weight offset to its layer. The gradient rule assumes
// sigmoid activations throughout.
package trainer
