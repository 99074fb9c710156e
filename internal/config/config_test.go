package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/backprop/internal/network"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "first-column", cfg.Problem)
	assert.Equal(t, 10000, cfg.Iterations)
	assert.Equal(t, 1.0, cfg.LearningRate)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
problem: bit-encoding
width: 8
topology: [8, 3, 8]
iterations: 2000
seed: 7
check_finite: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bit-encoding", cfg.Problem)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, []int{8, 3, 8}, cfg.Topology)
	assert.Equal(t, 2000, cfg.Iterations)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.True(t, cfg.CheckFinite)
	// Unset keys keep their defaults.
	assert.Equal(t, 1.0, cfg.LearningRate)
	assert.Equal(t, 1000, cfg.LogEvery)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "problem: first-column\nepochs: 3\n"},
		{"bad type", "iterations: many\n"},
		{"bad topology", "topology: [3]\n"},
		{"bad learning rate", "learning_rate: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_TopologyError(t *testing.T) {
	cfg := Default()
	cfg.Topology = []int{3, 0}

	err := cfg.Validate()
	assert.ErrorIs(t, err, network.ErrInvalidTopology)
}

func TestValidate_Nil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		Problem:      "boolean-sum",
		Topology:     []int{2, 3, 1},
		Iterations:   50,
		LearningRate: 0.5,
		Seed:         99,
		CheckFinite:  true,
	})

	assert.Equal(t, "boolean-sum", cfg.Problem)
	assert.Equal(t, []int{2, 3, 1}, cfg.Topology)
	assert.Equal(t, 50, cfg.Iterations)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.True(t, cfg.CheckFinite)
	// Zero overrides leave values alone.
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 1000, cfg.LogEvery)
}
