package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/config"
	"github.com/born-ml/backprop/internal/dataset"
	"github.com/born-ml/backprop/internal/eval"
	"github.com/born-ml/backprop/internal/network"
	"github.com/born-ml/backprop/internal/trainer"
)

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath string
		topology   string
		dump       bool
		quiet      bool
		o          config.Overrides
	)
	fs.StringVar(&configPath, "config", "", "YAML run config (defaults to the first-column demo)")
	fs.StringVar(&o.Problem, "problem", "", "built-in problem: "+strings.Join(dataset.Names(), ", "))
	fs.StringVar(&o.Dataset, "dataset", "", "YAML dataset file")
	fs.IntVar(&o.Width, "width", 0, "bit width for bit-encoding and boolean-sum")
	fs.StringVar(&topology, "topology", "", "comma separated layer sizes, e.g. 3,4,1")
	fs.IntVar(&o.Iterations, "iterations", 0, "training iterations")
	fs.Float64Var(&o.LearningRate, "lr", 0, "learning rate (1.0 adds the raw batch gradient)")
	fs.Int64Var(&o.Seed, "seed", 0, "weight init seed (0 picks one)")
	fs.IntVar(&o.LogEvery, "log-every", 0, "log loss every N iterations")
	fs.BoolVar(&o.CheckFinite, "check-finite", false, "abort when weights become NaN or Inf")
	fs.BoolVar(&dump, "dump", false, "dump trained weights")
	fs.BoolVar(&quiet, "quiet", false, "disable progress logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if topology != "" {
		sizes, err := parseTopology(topology)
		if err != nil {
			return err
		}
		o.Topology = sizes
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.New()
	logger := slog.New(slog.NewTextHandler(stderr, nil)).With("run_id", runID.String())
	if quiet {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ds, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	sizes := cfg.Topology
	if len(sizes) == 0 {
		sizes = ds.Topology
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	net, err := network.NewWithRand(rand.New(rand.NewSource(seed)), sizes...) //nolint:gosec // weight init
	if err != nil {
		return err
	}
	if err := ds.ValidateFor(net); err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting run",
		"dataset", ds.Name,
		"topology", fmt.Sprint(net.Sizes()),
		"iterations", cfg.Iterations,
		"learning_rate", cfg.LearningRate,
		"seed", seed,
	)

	tr := trainer.New(trainer.Config{
		LearningRate: cfg.LearningRate,
		CheckFinite:  cfg.CheckFinite,
		LogEvery:     cfg.LogEvery,
		Logger:       logger,
	})

	start := time.Now()
	trained, err := tr.TrainContext(ctx, cfg.Iterations, net, ds.Inputs, ds.Targets)
	if err != nil {
		return errors.Wrap(err, "train")
	}
	logger.InfoContext(ctx, "finished", "elapsed", time.Since(start).Round(time.Millisecond))

	testInputs, testTargets := ds.Test()
	if _, err := eval.Report(stdout, "before", net, testInputs, testTargets); err != nil {
		return err
	}
	if _, err := eval.Report(stdout, "after", trained, testInputs, testTargets); err != nil {
		return err
	}

	if dump {
		cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true}
		for i, layer := range trained.Layers() {
			fmt.Fprintf(stdout, "layer %d %v\n", i, layer.Shape())
			cs.Fdump(stdout, layer.ToRows())
		}
	}
	return nil
}

func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	if cfg.Dataset != "" {
		return dataset.Load(cfg.Dataset)
	}
	return dataset.Lookup(cfg.Problem, cfg.Width)
}

func parseTopology(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "topology %q", s)
		}
		sizes = append(sizes, v)
	}
	if err := network.ValidateTopology(sizes); err != nil {
		return nil, err
	}
	return sizes, nil
}
