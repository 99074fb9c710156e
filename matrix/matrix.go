// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrices consumed by package nn.
//
// All operations are pure: they return a new Matrix and never modify their
// operands. Binary operations validate shapes and return an error matching
// ErrShape on mismatch.
//
//	a := matrix.MustFromRows([][]float64{{1, 2}, {3, 4}})
//	b, err := matrix.Dot(a, matrix.Transpose(a))
package matrix

import (
	"github.com/born-ml/backprop/internal/matrix"
)

// Matrix is a dense row-major 2-D array of float64.
type Matrix = matrix.Matrix

// Shape is the (rows, cols) pair of a matrix.
type Shape = matrix.Shape

// ShapeError reports operands with incompatible dimensions.
type ShapeError = matrix.ShapeError

// NumericError reports a non-finite cell.
type NumericError = matrix.NumericError

// Errors.
var (
	ErrShape              = matrix.ErrShape
	ErrNumericInstability = matrix.ErrNumericInstability
)

// New creates a rows x cols matrix of zeros.
func New(rows, cols int) Matrix {
	return matrix.New(rows, cols)
}

// FromRows creates a matrix from equal-length rows.
func FromRows(rows [][]float64) (Matrix, error) {
	return matrix.FromRows(rows)
}

// MustFromRows is like FromRows but panics on ragged input.
func MustFromRows(rows [][]float64) Matrix {
	return matrix.MustFromRows(rows)
}

// FromSlice creates a rows x cols matrix from row-major data.
func FromSlice(rows, cols int, data []float64) (Matrix, error) {
	return matrix.FromSlice(rows, cols, data)
}

// Dot computes a @ b.
func Dot(a, b Matrix) (Matrix, error) {
	return matrix.Dot(a, b)
}

// Transpose swaps rows and columns.
func Transpose(a Matrix) Matrix {
	return matrix.Transpose(a)
}

// Add returns a + b.
func Add(a, b Matrix) (Matrix, error) {
	return matrix.Add(a, b)
}

// Sub returns a - b.
func Sub(a, b Matrix) (Matrix, error) {
	return matrix.Sub(a, b)
}

// MultiplyElementwise returns the elementwise product of a and b.
func MultiplyElementwise(a, b Matrix) (Matrix, error) {
	return matrix.MultiplyElementwise(a, b)
}

// Scale returns c·a.
func Scale(c float64, a Matrix) Matrix {
	return matrix.Scale(c, a)
}

// Map applies f to every cell.
func Map(f func(float64) float64, a Matrix) Matrix {
	return matrix.Map(f, a)
}

// Flatten returns all cells in row-major order.
func Flatten(a Matrix) []float64 {
	return matrix.Flatten(a)
}

// CheckFinite returns a NumericError for the first NaN or Inf cell.
func CheckFinite(a Matrix) error {
	return matrix.CheckFinite(a)
}
