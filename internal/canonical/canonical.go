// Package canonical maps concrete poker hands to unique representatives of
// their suit-isomorphism equivalence classes. Every table in this repository
// is keyed by canonical form, so all components must agree on the rules here.
//
// A hand is canonical when:
//  1. its cards are in sorted order (suit first, then rank; street-aware
//     hands sort the two hole cards and the board independently),
//  2. each suit holds at least as many cards as every later suit,
//  3. suits with equal card counts are ordered by lexicographically smaller
//     rank list,
//  4. it contains no duplicate cards.
//
// The ordering rules are due to Daniel Stutzbach
// (https://stackoverflow.com/a/3831682).
package canonical

import (
	"fmt"
	"slices"

	"github.com/lox/holdem-abstraction/internal/deck"
)

// holeCards is the fixed hole-card prefix length in street-aware mode.
const holeCards = 2

// InvariantError reports a canonicalization output that failed its own
// validity check. It indicates a bug in the symmetry rules and is never
// recoverable.
type InvariantError struct {
	Input  []deck.Card
	Output []deck.Card
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("canonicalization produced non-canonical hand %s from %s",
		deck.String(e.Output), deck.String(e.Input))
}

// Canonicalize maps a hand to the canonical representative of its
// equivalence class. Street-aware mode treats the first two cards as a fixed
// hole prefix and the remainder as the board, so hands that differ only in
// which street a rank arrived on stay distinct. Street-agnostic mode ignores
// the boundary entirely.
//
// Canonicalize is idempotent, and hands related by any suit permutation
// (plus, street-agnostically, any card reordering) map to the same output.
func Canonicalize(cards []deck.Card, streetAware bool) ([]deck.Card, error) {
	sorted := sortHand(cards, streetAware)

	bySuit := ranksBySuit(sorted)

	// Relabel suits 0..3: the suit with the most cards first, ties broken by
	// lexicographically smaller rank list. Suit identity carries no
	// information, so this is the symmetry-breaking rule.
	var mapping [4]deck.Suit
	unused := []deck.Suit{deck.Clubs, deck.Diamonds, deck.Hearts, deck.Spades}
	for next := deck.Clubs; next <= deck.Spades; next++ {
		best := 0
		for i := 1; i < len(unused); i++ {
			if suitRanksBefore(bySuit[unused[i]], bySuit[unused[best]]) {
				best = i
			}
		}
		mapping[unused[best]] = next
		unused = slices.Delete(unused, best, best+1)
	}

	remapped := make([]deck.Card, len(sorted))
	for i, c := range sorted {
		remapped[i] = deck.Card{Rank: c.Rank, Suit: mapping[c.Suit]}
	}
	result := sortHand(remapped, streetAware)

	if !IsCanonical(result, streetAware) {
		return nil, &InvariantError{Input: slices.Clone(cards), Output: result}
	}
	return result, nil
}

// IsCanonical reports whether cards satisfy all four canonical-form rules.
// It is exposed standalone because enumeration uses it to prune.
func IsCanonical(cards []deck.Card, streetAware bool) bool {
	if !sortedCorrectly(cards, streetAware) {
		return false
	}
	bySuit := ranksBySuit(cards)
	for _, ranks := range bySuit {
		if containsDuplicates(ranks) {
			return false
		}
	}
	for s := 1; s < 4; s++ {
		prev, cur := bySuit[s-1], bySuit[s]
		if len(prev) < len(cur) {
			return false
		}
		if len(prev) == len(cur) && slices.Compare(prev, cur) > 0 {
			return false
		}
	}
	return true
}

// sortHand orders a hand for canonical comparison: suit first, then rank.
// Street-aware hands sort the hole prefix and board suffix independently so
// the street boundary survives.
func sortHand(cards []deck.Card, streetAware bool) []deck.Card {
	sorted := slices.Clone(cards)
	if streetAware && len(sorted) > holeCards {
		sortSuitFirst(sorted[:holeCards])
		sortSuitFirst(sorted[holeCards:])
	} else {
		sortSuitFirst(sorted)
	}
	return sorted
}

func sortSuitFirst(cards []deck.Card) {
	slices.SortFunc(cards, func(a, b deck.Card) int {
		if a.Suit != b.Suit {
			return int(a.Suit) - int(b.Suit)
		}
		return int(a.Rank) - int(b.Rank)
	})
}

func sortedCorrectly(cards []deck.Card, streetAware bool) bool {
	if streetAware {
		if len(cards) >= holeCards && suitFirstGreater(cards[0], cards[1]) {
			return false
		}
		if len(cards) > holeCards {
			board := cards[holeCards:]
			return slices.IsSortedFunc(board, func(a, b deck.Card) int {
				if a.Suit != b.Suit {
					return int(a.Suit) - int(b.Suit)
				}
				return int(a.Rank) - int(b.Rank)
			})
		}
		return true
	}
	return slices.Equal(cards, sortHand(cards, false))
}

func suitFirstGreater(a, b deck.Card) bool {
	if a.Suit != b.Suit {
		return a.Suit > b.Suit
	}
	return a.Rank > b.Rank
}

// ranksBySuit partitions a hand into four per-suit rank lists, preserving the
// hand's card order within each suit.
func ranksBySuit(cards []deck.Card) [4][]deck.Rank {
	var bySuit [4][]deck.Rank
	for _, c := range cards {
		bySuit[c.Suit] = append(bySuit[c.Suit], c.Rank)
	}
	return bySuit
}

// suitRanksBefore reports whether rank list a should receive a lower suit
// label than b: more cards first, then lexicographically smaller ranks.
func suitRanksBefore(a, b []deck.Rank) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return slices.Compare(a, b) < 0
}

func containsDuplicates(ranks []deck.Rank) bool {
	for i := 0; i < len(ranks); i++ {
		for j := i + 1; j < len(ranks); j++ {
			if ranks[i] == ranks[j] {
				return true
			}
		}
	}
	return false
}
