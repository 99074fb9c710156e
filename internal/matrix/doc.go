// Package matrix implements the dense 2-D float64 kernel used by the network
// and the trainer.
//
// Every binary operation validates operand shapes and returns a *ShapeError
// (matching ErrShape) instead of computing a partial result:
//
//	Dot(a, b)                  a.Cols() == b.Rows()
//	Add, Sub                   identical shapes
//	MultiplyElementwise        identical shapes
//
// Scale, Map and Transpose cannot fail.
package matrix
