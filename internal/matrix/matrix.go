package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the (rows, cols) pair of a matrix.
type Shape struct {
	Rows int
	Cols int
}

// String renders the shape as [rows,cols].
func (s Shape) String() string {
	return fmt.Sprintf("[%d,%d]", s.Rows, s.Cols)
}

// Matrix is a dense row-major 2-D array of float64.
//
// A Matrix is a value: every operation in this package returns a new Matrix
// and never writes to its operands. The row and column counts are fixed at
// construction, so every row has the same width.
//
// Example:
//
//	a := matrix.MustFromRows([][]float64{{1, 2}, {3, 4}})
//	b, err := matrix.Dot(a, matrix.Transpose(a)) // [2,2]
type Matrix struct {
	rows int
	cols int
	data []float64
}

// New creates a rows x cols matrix filled with zeros.
// Panics if either dimension is negative.
func New(rows, cols int) Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix.New: invalid dimensions [%d,%d]", rows, cols))
	}
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// FromSlice creates a rows x cols matrix from row-major data.
// The slice is copied.
func FromSlice(rows, cols int, data []float64) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, fmt.Errorf("invalid dimensions [%d,%d]", rows, cols)
	}
	if len(data) != rows*cols {
		return Matrix{}, fmt.Errorf("shape [%d,%d] requires %d elements, but got %d: %w",
			rows, cols, rows*cols, len(data), ErrShape)
	}
	m := New(rows, cols)
	copy(m.data, data)
	return m, nil
}

// FromRows creates a matrix from a slice of rows.
//
// Every row must have the same length; a ragged input returns a *ShapeError.
// The rows are copied.
func FromRows(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return Matrix{}, &ShapeError{
				Op:    "from_rows",
				Left:  Shape{Rows: 1, Cols: cols},
				Right: Shape{Rows: 1, Cols: len(row)},
			}
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// MustFromRows is like FromRows but panics on ragged input.
// Intended for literals in demos and tests.
func MustFromRows(rows [][]float64) Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(fmt.Sprintf("matrix.MustFromRows: %v", err))
	}
	return m
}

// Vector creates a 1 x n matrix holding v.
func Vector(v []float64) Matrix {
	m := New(1, len(v))
	copy(m.data, v)
	return m
}

// Rows returns the number of rows (the matrix height).
func (m Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns (the matrix width).
func (m Matrix) Cols() int {
	return m.cols
}

// Shape returns the (rows, cols) pair.
func (m Matrix) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// At returns the cell at row i, column j.
func (m Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix.At: index [%d,%d] out of range for shape %v", i, j, m.Shape()))
	}
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []float64 {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("matrix.Row: index %d out of range for shape %v", i, m.Shape()))
	}
	row := make([]float64, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row
}

// ToRows returns the matrix as a freshly allocated slice of rows.
func (m Matrix) ToRows() [][]float64 {
	rows := make([][]float64, m.rows)
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return rows
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Equal reports whether both matrices have the same shape and bit-identical cells.
func (m Matrix) Equal(other Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if math.Float64bits(v) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

// String renders the matrix one row per line.
func (m Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v", m.data[i*m.cols:(i+1)*m.cols])
		if i < m.rows-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
