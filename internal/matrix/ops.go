package matrix

import (
	"math"

	"github.com/born-ml/backprop/internal/parallel"
)

// dotConfig controls row splitting in Dot. Each output row is computed by a
// single goroutine in the same order as the sequential loop, so results are
// bit-identical either way.
var dotConfig = parallel.DefaultConfig()

// Dot computes the matrix product a @ b.
//
// Requires a.Cols() == b.Rows(); the result has shape [a.Rows(), b.Cols()]
// and cell (i,j) = Σ_k a[i][k]·b[k][j].
func Dot(a, b Matrix) (Matrix, error) {
	if a.cols != b.rows {
		return Matrix{}, &ShapeError{Op: "dot", Left: a.Shape(), Right: b.Shape()}
	}

	m, k, n := a.rows, a.cols, b.cols
	out := New(m, n)

	parallel.Rows(m, m*k*n, func(start, end int) {
		for i := start; i < end; i++ {
			row := a.data[i*k : (i+1)*k]
			for j := 0; j < n; j++ {
				sum := 0.0
				for kIdx, av := range row {
					sum += av * b.data[kIdx*n+j]
				}
				out.data[i*n+j] = sum
			}
		}
	}, dotConfig)

	return out, nil
}

// Transpose returns a with rows and columns swapped.
func Transpose(a Matrix) Matrix {
	out := New(a.cols, a.rows)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			out.data[j*a.rows+i] = a.data[i*a.cols+j]
		}
	}
	return out
}

// Add returns a + b. Shapes must be identical.
func Add(a, b Matrix) (Matrix, error) {
	return zip("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b. Shapes must be identical.
func Sub(a, b Matrix) (Matrix, error) {
	return zip("sub", a, b, func(x, y float64) float64 { return x - y })
}

// MultiplyElementwise returns the Hadamard product of a and b.
// Shapes must be identical.
func MultiplyElementwise(a, b Matrix) (Matrix, error) {
	return zip("multiply_elementwise", a, b, func(x, y float64) float64 { return x * y })
}

// Scale returns c·a.
func Scale(c float64, a Matrix) Matrix {
	return Map(func(x float64) float64 { return c * x }, a)
}

// Map applies f to every cell of a, preserving shape.
func Map(f func(float64) float64, a Matrix) Matrix {
	out := New(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = f(v)
	}
	return out
}

// Flatten returns every cell of a in row-major order.
func Flatten(a Matrix) []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)
	return out
}

// Sum returns the sum of all cells.
func Sum(a Matrix) float64 {
	total := 0.0
	for _, v := range a.data {
		total += v
	}
	return total
}

// CheckFinite returns a *NumericError for the first NaN or ±Inf cell of a.
func CheckFinite(a Matrix) error {
	for idx, v := range a.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &NumericError{Row: idx / a.cols, Col: idx % a.cols, Value: v}
		}
	}
	return nil
}

// AllFinite reports whether every cell of a is finite.
func AllFinite(a Matrix) bool {
	return CheckFinite(a) == nil
}

func zip(op string, a, b Matrix, f func(x, y float64) float64) (Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return Matrix{}, &ShapeError{Op: op, Left: a.Shape(), Right: b.Shape()}
	}
	out := New(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = f(v, b.data[i])
	}
	return out, nil
}
