package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/matrix"
	"github.com/born-ml/backprop/internal/network"
)

func TestFirstColumn(t *testing.T) {
	d := FirstColumn()
	require.NoError(t, d.Validate())

	assert.Equal(t, matrix.Shape{Rows: 6, Cols: 3}, d.Inputs.Shape())
	assert.Equal(t, matrix.Shape{Rows: 6, Cols: 1}, d.Targets.Shape())
	assert.True(t, d.HasTestSplit())

	// Target is the first column of every input row.
	for i := 0; i < d.Inputs.Rows(); i++ {
		assert.Equal(t, d.Inputs.At(i, 0), d.Targets.At(i, 0))
	}
}

func TestBitEncoding(t *testing.T) {
	d, err := BitEncoding(8)
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, []int{8, 3, 8}, d.Topology)
	assert.True(t, d.Inputs.Equal(d.Targets))
	assert.Equal(t, 8.0, matrix.Sum(d.Inputs))

	inputs, targets := d.Test()
	assert.True(t, inputs.Equal(d.Inputs))
	assert.True(t, targets.Equal(d.Targets))

	_, err = BitEncoding(1)
	assert.Error(t, err)
}

func TestBooleanSum(t *testing.T) {
	d, err := BooleanSum(3)
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, 8, d.Inputs.Rows())
	assert.Equal(t, []float64{0, 0, 0}, d.Inputs.Row(0))
	assert.Equal(t, []float64{1, 0, 1}, d.Inputs.Row(5))
	assert.Equal(t, []float64{0, 1, 1, 1, 1, 1, 1, 1}, matrix.Flatten(d.Targets))

	_, err = BooleanSum(0)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"bit-encoding", "boolean-sum", "first-column"}, Names())

	d, err := Lookup("boolean-sum", 2)
	require.NoError(t, err)
	assert.Equal(t, "boolean-sum-2", d.Name)

	d, err = Lookup("first-column", 0)
	require.NoError(t, err)
	assert.Equal(t, "first-column", d.Name)

	_, err = Lookup("xor", 2)
	assert.ErrorContains(t, err, "unknown problem")
}

func TestValidateFor(t *testing.T) {
	d := FirstColumn()

	ok, err := network.New(3, 2, 1)
	require.NoError(t, err)
	assert.NoError(t, d.ValidateFor(ok))

	wrongIn, err := network.New(4, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, d.ValidateFor(wrongIn), ErrMismatch)

	wrongOut, err := network.New(3, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, d.ValidateFor(wrongOut), ErrMismatch)
}

func TestValidate_Mismatch(t *testing.T) {
	d := &Dataset{
		Name:    "broken",
		Inputs:  matrix.New(3, 2),
		Targets: matrix.New(2, 1),
	}
	assert.ErrorIs(t, d.Validate(), ErrMismatch)

	empty := &Dataset{Name: "empty"}
	assert.ErrorIs(t, empty.Validate(), ErrMismatch)
}

func TestDecode(t *testing.T) {
	src := `
name: tiny
topology: [2, 1]
inputs: [[0, 1], [1, 0]]
targets: [[1], [0]]
test_inputs: [[1, 1]]
test_targets: [[1]]
`
	d, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "tiny", d.Name)
	assert.Equal(t, []int{2, 1}, d.Topology)
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, d.Inputs.ToRows())
	assert.Equal(t, [][]float64{{1, 1}}, d.TestInputs.ToRows())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"ragged", "inputs: [[0, 1], [1]]\ntargets: [[1], [0]]\n", matrix.ErrShape},
		{"count", "inputs: [[0, 1], [1, 0]]\ntargets: [[1]]\n", ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Decode(strings.NewReader("inputs: [[1]]\ntargets: [[1]]\nbogus: 1\n"))
	assert.Error(t, err)
}

func TestEncodeLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FirstColumn()))

	path := filepath.Join(t.TempDir(), "first.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	d, err := Load(path)
	require.NoError(t, err)

	want := FirstColumn()
	assert.Equal(t, want.Name, d.Name)
	assert.True(t, d.Inputs.Equal(want.Inputs))
	assert.True(t, d.TestTargets.Equal(want.TestTargets))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
