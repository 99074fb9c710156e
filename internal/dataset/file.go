package dataset

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/backprop/internal/matrix"
)

// fileFormat is the on-disk YAML layout of a dataset:
//
//	name: xor-ish
//	topology: [2, 3, 1]
//	inputs:  [[0, 0], [0, 1], [1, 0], [1, 1]]
//	targets: [[0], [1], [1], [0]]
//	test_inputs:  [[0, 1]]
//	test_targets: [[1]]
type fileFormat struct {
	Name        string      `yaml:"name"`
	Topology    []int       `yaml:"topology,omitempty"`
	Inputs      [][]float64 `yaml:"inputs"`
	Targets     [][]float64 `yaml:"targets"`
	TestInputs  [][]float64 `yaml:"test_inputs,omitempty"`
	TestTargets [][]float64 `yaml:"test_targets,omitempty"`
}

// Load reads a dataset from a YAML file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}
	if d.Name == "" {
		d.Name = path
	}
	return d, nil
}

// Decode reads a YAML dataset from r and validates it.
func Decode(r io.Reader) (*Dataset, error) {
	var raw fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	d := &Dataset{Name: raw.Name, Topology: raw.Topology}
	fields := []struct {
		name string
		rows [][]float64
		dst  *matrix.Matrix
	}{
		{"inputs", raw.Inputs, &d.Inputs},
		{"targets", raw.Targets, &d.Targets},
		{"test_inputs", raw.TestInputs, &d.TestInputs},
		{"test_targets", raw.TestTargets, &d.TestTargets},
	}
	for _, f := range fields {
		m, err := matrix.FromRows(f.rows)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", f.name)
		}
		*f.dst = m
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Encode writes d to w in the YAML layout accepted by Decode.
func Encode(w io.Writer, d *Dataset) error {
	raw := fileFormat{
		Name:        d.Name,
		Topology:    d.Topology,
		Inputs:      d.Inputs.ToRows(),
		Targets:     d.Targets.ToRows(),
		TestInputs:  d.TestInputs.ToRows(),
		TestTargets: d.TestTargets.ToRows(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&raw); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return errors.Wrap(enc.Close(), "flush yaml")
}
