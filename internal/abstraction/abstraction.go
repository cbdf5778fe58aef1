// Package abstraction is the public entry point of the hand-representation
// core: it maps hole cards plus board to a small integer id such that
// strategically similar hands share an id. Flop and turn ids come from
// clustering future-equity distributions; preflop ids are closed-form and
// river ids quantize the exact equity table.
package abstraction

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/equity"
	"github.com/lox/holdem-abstraction/internal/strength"
)

// Street hand sizes: 2 hole cards plus 0, 3, 4 or 5 board cards.
const (
	preflopSize = 2
	flopSize    = 5
	turnSize    = 6
	riverSize   = 7
)

// Abstraction serves abstraction ids, strengths and equities from the
// persisted tables. All tables are loaded (or built) once in New and
// treated as immutable afterwards, so lookups are safe for concurrent
// read-only callers.
type Abstraction struct {
	cfg       Config
	strengths *strength.Table
	equities  *equity.Table
	flop      map[string]int
	turn      map[string]int
}

// New loads every table the facade serves. The strength dataset is required
// and its absence fatal; the equity and per-street abstraction datasets are
// built on first use and checkpointed while building.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Abstraction, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strengths, err := strength.Load(cfg.StrengthPath())
	if err != nil {
		return nil, err
	}
	log.Info().Int("entries", strengths.Len()).Msg("strength table loaded")

	equities, err := loadOrBuildEquity(ctx, cfg, strengths, log)
	if err != nil {
		return nil, err
	}
	log.Info().Int("entries", equities.Len()).Msg("equity table loaded")

	flop, err := loadOrBuildBuckets(ctx, cfg, strengths, flopSize, log)
	if err != nil {
		return nil, err
	}
	turn, err := loadOrBuildBuckets(ctx, cfg, strengths, turnSize, log)
	if err != nil {
		return nil, err
	}
	log.Info().Int("flop", len(flop)).Int("turn", len(turn)).Msg("street abstractions loaded")

	return &Abstraction{
		cfg:       cfg,
		strengths: strengths,
		equities:  equities,
		flop:      flop,
		turn:      turn,
	}, nil
}

// AbstractID maps a hand of 2, 5, 6 or 7 cards to its abstraction id.
func (a *Abstraction) AbstractID(cards []deck.Card) (int, error) {
	switch len(cards) {
	case preflopSize:
		return PreflopBin(cards), nil
	case flopSize:
		return a.streetBucket(cards, a.flop, "flop abstraction")
	case turnSize:
		return a.streetBucket(cards, a.turn, "turn abstraction")
	case riverSize:
		return a.riverBucket(cards)
	default:
		return 0, fmt.Errorf("abstract id: unsupported hand length %d", len(cards))
	}
}

// HandStrength returns the relative strength of a 5-7 card hand.
func (a *Abstraction) HandStrength(cards []deck.Card) (int, error) {
	return a.strengths.Strength(cards)
}

// Equity returns the exact river win probability of a 7-card hand.
func (a *Abstraction) Equity(cards []deck.Card) (float64, error) {
	return a.equities.Lookup(cards)
}

// PreflopBin maps two hole cards to their preflop class. The 169 preflop
// classes are small enough that no table is needed: the bin is closed-form
// from the sorted rank pair and a suited flag, so any two suit-isomorphic
// holdings share a bin.
func PreflopBin(cards []deck.Card) int {
	lo, hi := cards[0].Rank, cards[1].Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	bin := 2 * (int(lo)*100 + int(hi))
	if cards[0].Suit == cards[1].Suit {
		bin++
	}
	return bin
}

func (a *Abstraction) streetBucket(cards []deck.Card, table map[string]int, name string) (int, error) {
	canon, err := canonical.Canonicalize(cards, true)
	if err != nil {
		return 0, err
	}
	key := deck.String(canon)
	bucket, ok := table[key]
	if !ok {
		return 0, &dataset.LookupMissError{Table: name, Key: key}
	}
	return bucket, nil
}

// riverBucket quantizes the exact river equity into RiverBuckets ids; an
// equity of exactly 1.0 lands in the top bucket.
func (a *Abstraction) riverBucket(cards []deck.Card) (int, error) {
	eq, err := a.equities.Lookup(cards)
	if err != nil {
		return 0, err
	}
	bucket := int(eq * float64(a.cfg.RiverBuckets))
	if bucket >= a.cfg.RiverBuckets {
		bucket = a.cfg.RiverBuckets - 1
	}
	return bucket, nil
}

func loadOrBuildEquity(ctx context.Context, cfg Config, strengths *strength.Table, log zerolog.Logger) (*equity.Table, error) {
	if dataset.Exists(cfg.EquityPath()) {
		return equity.Load(cfg.EquityPath())
	}
	log.Info().Str("path", cfg.EquityPath()).Msg("equity dataset absent, building")
	return equity.Build(ctx, cfg.EquityPath(), strengths, cfg.buildOptions(), log)
}

func loadOrBuildBuckets(ctx context.Context, cfg Config, strengths *strength.Table, handSize int, log zerolog.Logger) (map[string]int, error) {
	path, distPath, k := cfg.FlopPath(), cfg.FlopDistributionPath(), cfg.FlopBuckets
	name := "flop abstraction"
	if handSize == turnSize {
		path, distPath, k = cfg.TurnPath(), cfg.TurnDistributionPath(), cfg.TurnBuckets
		name = "turn abstraction"
	}

	if dataset.Exists(path) {
		return dataset.LoadBuckets(name, path)
	}

	log.Info().Str("path", path).Msg("abstraction dataset absent, building")
	dists, err := equity.BuildDistributions(ctx, distPath, strengths, handSize, cfg.buildOptions(), log)
	if err != nil {
		return nil, err
	}
	buckets := Cluster(dists, k, cfg.ClusterIterations, cfg.Seed)
	if err := dataset.Save(path, buckets); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("buckets", k).Int("archetypes", len(buckets)).Msg("abstraction dataset written")
	return buckets, nil
}

func (c Config) buildOptions() equity.BuildOptions {
	return equity.BuildOptions{Workers: c.Workers, BatchSize: c.BatchSize}
}
