package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lox/holdem-abstraction/internal/abstraction"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/equity"
	"github.com/lox/holdem-abstraction/internal/strength"
)

type StrengthCmd struct {
	Force bool `help:"rebuild even if the dataset already exists"`
}

func (cmd *StrengthCmd) Run(ctx context.Context) error {
	cfg, err := abstraction.LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	path := cfg.StrengthPath()
	if !cmd.Force && dataset.Exists(path) {
		log.Info().Str("path", path).Msg("strength dataset already exists, skipping (use --force to rebuild)")
		return nil
	}

	table, err := strength.Build(path, log.Logger)
	if err != nil {
		return err
	}
	log.Info().Int("entries", table.Len()).Msg("strength dataset built")
	return nil
}

type EquityCmd struct{}

func (cmd *EquityCmd) Run(ctx context.Context) error {
	cfg, err := abstraction.LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	strengths, err := strength.Load(cfg.StrengthPath())
	if err != nil {
		return err
	}

	opts := equity.BuildOptions{Workers: cfg.Workers, BatchSize: cfg.BatchSize}
	table, err := equity.Build(ctx, cfg.EquityPath(), strengths, opts, log.Logger)
	if err != nil {
		return err
	}
	log.Info().Int("entries", table.Len()).Msg("equity dataset built")
	return nil
}

type BucketsCmd struct {
	Street string `help:"street to build (flop|turn|both)" enum:"flop,turn,both" default:"both"`
}

func (cmd *BucketsCmd) Run(ctx context.Context) error {
	cfg, err := abstraction.LoadConfig(cli.Config)
	if err != nil {
		return err
	}

	strengths, err := strength.Load(cfg.StrengthPath())
	if err != nil {
		return err
	}
	opts := equity.BuildOptions{Workers: cfg.Workers, BatchSize: cfg.BatchSize}

	build := func(handSize, k int, distPath, path, name string) error {
		dists, err := equity.BuildDistributions(ctx, distPath, strengths, handSize, opts, log.Logger)
		if err != nil {
			return err
		}
		buckets := abstraction.Cluster(dists, k, cfg.ClusterIterations, cfg.Seed)
		if err := dataset.Save(path, buckets); err != nil {
			return err
		}
		log.Info().Str("street", name).Str("path", path).Int("archetypes", len(buckets)).Msg("abstraction dataset built")
		return nil
	}

	if cmd.Street == "flop" || cmd.Street == "both" {
		if err := build(5, cfg.FlopBuckets, cfg.FlopDistributionPath(), cfg.FlopPath(), "flop"); err != nil {
			return err
		}
	}
	if cmd.Street == "turn" || cmd.Street == "both" {
		if err := build(6, cfg.TurnBuckets, cfg.TurnDistributionPath(), cfg.TurnPath(), "turn"); err != nil {
			return err
		}
	}
	return nil
}

func loadFacade(ctx context.Context) (*abstraction.Abstraction, error) {
	cfg, err := abstraction.LoadConfig(cli.Config)
	if err != nil {
		return nil, err
	}
	abs, err := abstraction.New(ctx, cfg, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("load abstraction tables: %w", err)
	}
	return abs, nil
}
