package equity

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/strength"
)

// DistributionBins is the fixed histogram resolution for equity
// distributions.
const DistributionBins = 50

// Distribution is a histogram over the equities a hand can reach by the
// river, one count per opponent hole combination. The histogram, rather
// than a mean, is the clustering feature: a draw and a made hand with no
// upside can share an average equity while having very different shapes.
type Distribution []float64

// Bin returns the histogram bin for an equity value. An exact 1.0 falls
// into the top bin.
func Bin(equity float64) int {
	bin := int(equity * DistributionBins)
	if bin >= DistributionBins {
		bin = DistributionBins - 1
	}
	if bin < 0 {
		bin = 0
	}
	return bin
}

// EquityDistribution computes the future-equity histogram of a flop (5-card)
// or turn (6-card) hand: for every opponent hole combination, every
// remaining-board completion is scored through the strength table, the
// per-opponent equity is accumulated, and its bin incremented.
func EquityDistribution(st *strength.Table, cards []deck.Card) (Distribution, error) {
	if len(cards) != 5 && len(cards) != 6 {
		return nil, fmt.Errorf("equity distribution: want 5 or 6 cards, got %d", len(cards))
	}

	board := cards[holeCards:]
	remaining := deck.Without(deck.New(), cards)
	rolloutSize := riverHandSize - len(cards)

	dist := make(Distribution, DistributionBins)
	myHand := make([]deck.Card, 0, riverHandSize)
	oppHand := make([]deck.Card, 0, riverHandSize)

	var err error
	deck.Combinations(remaining, holeCards, func(oppHole []deck.Card) {
		if err != nil {
			return
		}
		opp := [holeCards]deck.Card{oppHole[0], oppHole[1]}
		subdeck := deck.Without(remaining, oppHole)

		wins := 0.0
		rollouts := 0
		deck.Combinations(subdeck, rolloutSize, func(rollout []deck.Card) {
			if err != nil {
				return
			}
			myHand = append(append(myHand[:0], cards...), rollout...)
			oppHand = append(append(append(oppHand[:0], opp[:]...), board...), rollout...)

			mine, sErr := st.Strength(myHand)
			if sErr != nil {
				err = sErr
				return
			}
			theirs, sErr := st.Strength(oppHand)
			if sErr != nil {
				err = sErr
				return
			}
			if mine > theirs {
				wins++
			} else if mine == theirs {
				wins += 0.5
			}
			rollouts++
		})
		if err != nil {
			return
		}
		dist[Bin(wins/float64(rollouts))]++
	})
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// BuildDistributions computes the equity distribution of every canonical
// street-aware hand of the given length (5 for flop, 6 for turn), persisting
// archetype -> histogram to path with per-batch checkpoints. Like the equity
// build, a restart skips hands already covered by the file on disk.
func BuildDistributions(ctx context.Context, path string, st *strength.Table, handSize int, opts BuildOptions, log zerolog.Logger) (map[string]Distribution, error) {
	if handSize != 5 && handSize != 6 {
		return nil, fmt.Errorf("build distributions: want hand size 5 or 6, got %d", handSize)
	}

	table := map[string][]float64{}
	if dataset.Exists(path) {
		loaded, err := dataset.LoadDistributions(DatasetName+" distribution", path)
		if err != nil {
			return nil, err
		}
		table = loaded
		log.Info().Int("entries", len(table)).Msg("resuming distribution build from checkpoint")
	}

	hands := canonical.Enumerate(handSize, true)
	pending := pendingHands(hands, table)
	log.Info().
		Int("hand_size", handSize).
		Int("classes", len(hands)).
		Int("pending", len(pending)).
		Msg("building equity distributions")

	compute := func(ctx context.Context, hand []deck.Card) ([]float64, error) {
		d, err := EquityDistribution(st, hand)
		return []float64(d), err
	}
	if err := buildBatches(ctx, pending, table, compute, opts, path, log); err != nil {
		return nil, err
	}

	out := make(map[string]Distribution, len(table))
	for key, bins := range table {
		if len(bins) != DistributionBins {
			return nil, fmt.Errorf("distribution dataset key %q: %d bins, want %d", key, len(bins), DistributionBins)
		}
		out[key] = Distribution(bins)
	}
	return out, nil
}
