// Package config loads and validates training run settings.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/backprop/internal/network"
)

// Config captures the knobs for a training run.
type Config struct {
	Problem      string  `yaml:"problem"`       // Built-in problem name
	Dataset      string  `yaml:"dataset"`       // YAML dataset file, overrides Problem
	Width        int     `yaml:"width"`         // Bit width for bit-encoding and boolean-sum
	Topology     []int   `yaml:"topology"`      // Layer sizes; empty uses the problem's suggestion
	Iterations   int     `yaml:"iterations"`    // Training iterations
	LearningRate float64 `yaml:"learning_rate"` // Step multiplier, 1.0 is the unscaled rule
	Seed         int64   `yaml:"seed"`          // Weight init seed, 0 picks a random one
	LogEvery     int     `yaml:"log_every"`     // Progress log interval in iterations
	CheckFinite  bool    `yaml:"check_finite"`  // Abort on NaN/Inf weights
}

// Overrides captures CLI supplied values. Zero values leave the config unchanged.
type Overrides struct {
	Problem      string
	Dataset      string
	Width        int
	Topology     []int
	Iterations   int
	LearningRate float64
	Seed         int64
	LogEvery     int
	CheckFinite  bool
}

// Default reproduces the first-column demo run.
func Default() *Config {
	return &Config{
		Problem:      "first-column",
		Width:        3,
		Iterations:   10000,
		LearningRate: 1.0,
		LogEvery:     1000,
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Problem != "" {
		c.Problem = o.Problem
	}
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.Width > 0 {
		c.Width = o.Width
	}
	if len(o.Topology) > 0 {
		c.Topology = append([]int(nil), o.Topology...)
	}
	if o.Iterations > 0 {
		c.Iterations = o.Iterations
	}
	if o.LearningRate != 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.CheckFinite {
		c.CheckFinite = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Problem == "" && c.Dataset == "" {
		return errors.New("either problem or dataset must be set")
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0 (got %d)", c.Iterations)
	}
	if c.LearningRate <= 0 || math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("learning_rate must be a positive finite number (got %v)", c.LearningRate)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("log_every must be >= 0 (got %d)", c.LogEvery)
	}
	if len(c.Topology) > 0 {
		if err := network.ValidateTopology(c.Topology); err != nil {
			return errors.Wrap(err, "topology")
		}
	}
	return nil
}
