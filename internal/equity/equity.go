// Package equity provides exact river win probabilities and the equity
// distributions that feed abstraction clustering. The river table covers
// every canonical street-aware 7-card hand, so building it is an
// embarrassingly parallel batch job with durable checkpoints.
package equity

import (
	"fmt"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/strength"
)

// DatasetName identifies the equity artifact in diagnostics.
const DatasetName = "equity"

const (
	riverHandSize = 7
	holeCards     = 2
)

// Table maps canonical street-aware 7-card hands to win probability against
// a uniformly random opponent hole combination, with half credit for ties.
// Immutable once loaded.
type Table struct {
	equities map[deck.HandCode]float64
}

// Load reads a previously built equity dataset.
func Load(path string) (*Table, error) {
	raw, err := dataset.LoadEquities(DatasetName, path)
	if err != nil {
		return nil, err
	}
	return NewTable(raw)
}

// Lookup canonicalizes the hand street-aware and returns its stored equity.
// The table holds one entry per equivalence class; a miss on a well-formed
// hand is an internal-consistency fault.
func (t *Table) Lookup(cards []deck.Card) (float64, error) {
	if len(cards) != riverHandSize {
		return 0, fmt.Errorf("equity lookup: want %d cards, got %d", riverHandSize, len(cards))
	}
	canon, err := canonical.Canonicalize(cards, true)
	if err != nil {
		return 0, err
	}
	code, err := deck.Pack(canon)
	if err != nil {
		return 0, err
	}
	eq, ok := t.equities[code]
	if !ok {
		return 0, &dataset.LookupMissError{Table: DatasetName, Key: deck.String(canon)}
	}
	return eq, nil
}

// Len returns the number of canonical river classes in the table.
func (t *Table) Len() int {
	return len(t.equities)
}

// RiverEquity computes the exact win probability of a 2-hole 5-board hand:
// every one of the C(45,2) opponent hole combinations is scored through the
// strength table, counting 1 for a win and 0.5 for a tie.
func RiverEquity(st *strength.Table, hand []deck.Card) (float64, error) {
	if len(hand) != riverHandSize {
		return 0, fmt.Errorf("river equity: want %d cards, got %d", riverHandSize, len(hand))
	}

	mine, err := st.Strength(hand)
	if err != nil {
		return 0, err
	}

	board := hand[holeCards:]
	remaining := deck.Without(deck.New(), hand)
	oppHand := make([]deck.Card, riverHandSize)
	copy(oppHand[holeCards:], board)

	wins := 0.0
	runs := 0
	deck.Combinations(remaining, holeCards, func(oppHole []deck.Card) {
		if err != nil {
			return
		}
		copy(oppHand[:holeCards], oppHole)
		theirs, strengthErr := st.Strength(oppHand)
		if strengthErr != nil {
			err = strengthErr
			return
		}
		if mine > theirs {
			wins++
		} else if mine == theirs {
			wins += 0.5
		}
		runs++
	})
	if err != nil {
		return 0, err
	}
	return wins / float64(runs), nil
}

// NewTable builds an in-memory table from textual hand keys, validating
// that every probability is within [0,1].
func NewTable(raw map[string]float64) (*Table, error) {
	equities := make(map[deck.HandCode]float64, len(raw))
	for key, eq := range raw {
		code, err := deck.ParseHandCode(key)
		if err != nil {
			return nil, fmt.Errorf("equity dataset key %q: %w", key, err)
		}
		if eq < 0 || eq > 1 {
			return nil, fmt.Errorf("equity dataset key %q: probability %v out of [0,1]", key, eq)
		}
		equities[code] = eq
	}
	return &Table{equities: equities}, nil
}
