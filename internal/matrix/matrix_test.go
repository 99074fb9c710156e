package matrix

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/backprop/internal/parallel"
)

func randomMatrix(rng *rand.Rand, rows, cols int) Matrix {
	m := New(rows, cols)
	for i := range m.data {
		m.data[i] = rng.Float64()*2 - 1
	}
	return m
}

func toDense(m Matrix) *mat.Dense {
	return mat.NewDense(m.Rows(), m.Cols(), Flatten(m))
}

func assertMatchesDense(t *testing.T, want *mat.Dense, got Matrix) {
	t.Helper()
	r, c := want.Dims()
	require.Equal(t, Shape{Rows: r, Cols: c}, got.Shape())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-12, "cell [%d,%d]", i, j)
		}
	}
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 6.0, m.At(1, 2))
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.ToRows())
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShape)

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "from_rows", shapeErr.Op)
}

func TestFromRows_CopiesInput(t *testing.T) {
	rows := [][]float64{{1, 2}}
	m := MustFromRows(rows)
	rows[0][0] = 99

	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestFromSlice(t *testing.T) {
	m, err := FromSlice(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.At(1, 0))

	_, err = FromSlice(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrShape)
}

func TestMustFromRows_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustFromRows([][]float64{{1}, {2, 3}})
	})
}

func TestAt_OutOfRange(t *testing.T) {
	m := New(2, 2)
	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.At(0, -1) })
}

func TestRow_ReturnsCopy(t *testing.T) {
	m := MustFromRows([][]float64{{1, 2}, {3, 4}})
	row := m.Row(1)
	row[0] = 42

	assert.Equal(t, 3.0, m.At(1, 0))
}

func TestDot(t *testing.T) {
	a := MustFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustFromRows([][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := Dot(a, b)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, c.ToRows())
}

func TestDot_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	shapes := []struct{ m, k, n int }{
		{1, 1, 1},
		{3, 4, 2},
		{6, 3, 1},
		{17, 9, 13},
	}
	for _, s := range shapes {
		a := randomMatrix(rng, s.m, s.k)
		b := randomMatrix(rng, s.k, s.n)

		got, err := Dot(a, b)
		require.NoError(t, err)

		var want mat.Dense
		want.Mul(toDense(a), toDense(b))
		assertMatchesDense(t, &want, got)
	}
}

func TestDot_ParallelIsBitIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomMatrix(rng, 64, 32)
	b := randomMatrix(rng, 32, 16)

	saved := dotConfig
	defer func() { dotConfig = saved }()

	dotConfig = parallel.Sequential()
	seq, err := Dot(a, b)
	require.NoError(t, err)

	dotConfig = parallel.Config{Enabled: true, Workers: 4, MinWork: 1}
	par, err := Dot(a, b)
	require.NoError(t, err)

	assert.True(t, seq.Equal(par), "parallel Dot must match sequential Dot exactly")
}

func TestTranspose_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomMatrix(rng, 5, 3)

	got := Transpose(a)

	want := mat.DenseCopyOf(toDense(a).T())
	assertMatchesDense(t, want, got)
	assert.True(t, Transpose(got).Equal(a))
}

func TestShapeRejection(t *testing.T) {
	a := New(2, 3)
	b := New(3, 2)

	tests := []struct {
		name string
		op   func() (Matrix, error)
	}{
		{"dot", func() (Matrix, error) { return Dot(a, a) }},
		{"add", func() (Matrix, error) { return Add(a, b) }},
		{"sub", func() (Matrix, error) { return Sub(a, b) }},
		{"multiply_elementwise", func() (Matrix, error) { return MultiplyElementwise(a, b) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShape))

			var shapeErr *ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, tt.name, shapeErr.Op)
		})
	}
}

func TestElementwise(t *testing.T) {
	a := MustFromRows([][]float64{{1, 2}, {3, 4}})
	b := MustFromRows([][]float64{{5, 6}, {7, 8}})

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6, 8}, {10, 12}}, sum.ToRows())

	diff, err := Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-4, -4}, {-4, -4}}, diff.ToRows())

	prod, err := MultiplyElementwise(a, b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 12}, {21, 32}}, prod.ToRows())

	assert.Equal(t, [][]float64{{0.5, 1}, {1.5, 2}}, Scale(0.5, a).ToRows())
}

func TestOperandsUnchanged(t *testing.T) {
	a := MustFromRows([][]float64{{1, 2}, {3, 4}})
	before := a.Clone()

	_, _ = Add(a, a)
	_, _ = Dot(a, a)
	_ = Scale(3, a)
	_ = Map(math.Exp, a)
	_ = Transpose(a)

	assert.True(t, a.Equal(before))
}

func TestMap(t *testing.T) {
	a := MustFromRows([][]float64{{1, -2, 3}})
	got := Map(math.Abs, a)

	assert.Equal(t, a.Shape(), got.Shape())
	assert.Equal(t, []float64{1, 2, 3}, Flatten(got))
}

func TestFlatten_RowMajor(t *testing.T) {
	a := MustFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, Flatten(a))
	assert.Equal(t, 21.0, Sum(a))
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite(MustFromRows([][]float64{{1, 2}})))

	bad := MustFromRows([][]float64{{1, 2}, {3, math.Inf(1)}})
	err := CheckFinite(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNumericInstability)

	var numErr *NumericError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, 1, numErr.Row)
	assert.Equal(t, 1, numErr.Col)

	assert.False(t, AllFinite(MustFromRows([][]float64{{math.NaN()}})))
}

func TestEqual(t *testing.T) {
	a := MustFromRows([][]float64{{1, 2}})
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(MustFromRows([][]float64{{1}, {2}})))
	assert.False(t, a.Equal(MustFromRows([][]float64{{1, 2.0000001}})))
}
