// Package strength provides the precomputed canonical-5-card strength table,
// the single source of hand-ranking truth for every downstream component.
package strength

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/evaluator"
)

// DatasetName identifies the strength artifact in diagnostics.
const DatasetName = "strength"

// Table maps every canonical street-agnostic 5-card hand to its relative
// strength (greater beats smaller, equal ties). Loaded once and read-only
// thereafter, so concurrent readers never contend.
type Table struct {
	strengths map[deck.HandCode]int
}

// Load reads the persisted strength dataset. The dataset is required:
// absence is a *dataset.MissingError and fatal to the caller.
func Load(path string) (*Table, error) {
	raw, err := dataset.LoadStrengths(DatasetName, path)
	if err != nil {
		return nil, err
	}
	return NewTable(raw)
}

// Strength returns the best standard poker ranking over all 5-card subsets
// of a 5-7 card hand. Each subset is canonicalized street-agnostically
// before lookup; a missing subset means the dataset is incomplete, which is
// an internal-consistency fault.
func (t *Table) Strength(cards []deck.Card) (int, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("hand strength: want 5-7 cards, got %d", len(cards))
	}

	best := -1
	var lookupErr error
	deck.Combinations(cards, 5, func(five []deck.Card) {
		if lookupErr != nil {
			return
		}
		canon, err := canonical.Canonicalize(five, false)
		if err != nil {
			lookupErr = err
			return
		}
		code, err := deck.Pack(canon)
		if err != nil {
			lookupErr = err
			return
		}
		s, ok := t.strengths[code]
		if !ok {
			lookupErr = &dataset.LookupMissError{Table: DatasetName, Key: deck.String(canon)}
			return
		}
		if s > best {
			best = s
		}
	})
	if lookupErr != nil {
		return 0, lookupErr
	}
	return best, nil
}

// Len returns the number of canonical 5-card classes in the table.
func (t *Table) Len() int {
	return len(t.strengths)
}

// Generate computes the strength dataset in memory from the baseline
// evaluator, one entry per canonical street-agnostic 5-card class.
func Generate(log zerolog.Logger) (map[string]int, error) {
	hands := canonical.Enumerate(5, false)
	log.Info().Int("classes", len(hands)).Msg("ranking canonical 5-card hands")

	table := make(map[string]int, len(hands))
	for _, hand := range hands {
		s, err := evaluator.Strength(hand)
		if err != nil {
			return nil, fmt.Errorf("rank %s: %w", deck.String(hand), err)
		}
		table[deck.String(hand)] = s
	}
	return table, nil
}

// Build generates the dataset and persists it to path, returning the loaded
// table.
func Build(path string, log zerolog.Logger) (*Table, error) {
	raw, err := Generate(log)
	if err != nil {
		return nil, err
	}
	if err := dataset.Save(path, raw); err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("entries", len(raw)).Msg("strength dataset written")
	return NewTable(raw)
}

// NewTable builds an in-memory table from textual hand keys.
func NewTable(raw map[string]int) (*Table, error) {
	strengths := make(map[deck.HandCode]int, len(raw))
	for key, s := range raw {
		code, err := deck.ParseHandCode(key)
		if err != nil {
			return nil, fmt.Errorf("strength dataset key %q: %w", key, err)
		}
		strengths[code] = s
	}
	return &Table{strengths: strengths}, nil
}
