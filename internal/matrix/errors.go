package matrix

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShape              = errors.New("matrix shape mismatch")
	ErrNumericInstability = errors.New("numeric instability")
)

// ShapeError reports operands whose dimensions are incompatible for an operation.
type ShapeError struct {
	Op    string // Operation name (e.g., "dot", "add")
	Left  Shape  // Shape of the first operand
	Right Shape  // Shape of the second operand (zero for unary checks)
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch %v vs %v", e.Op, e.Left, e.Right)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// NumericError reports the first non-finite cell found in a matrix.
type NumericError struct {
	Row, Col int
	Value    float64
}

// Error implements the error interface.
func (e *NumericError) Error() string {
	return fmt.Sprintf("non-finite value %v at [%d,%d]", e.Value, e.Row, e.Col)
}

// Is reports whether target is ErrNumericInstability.
func (e *NumericError) Is(target error) bool {
	return target == ErrNumericInstability
}
