package canonical

import (
	"slices"

	"github.com/lox/holdem-abstraction/internal/deck"
)

// Enumerate produces every distinct canonical hand of length n by depth-first
// extension: append one card at a time from the full deck, keeping a branch
// only while it can still reach a canonical hand. Street-agnostic partial
// hands must themselves be canonical, which prunes the search down to the
// number of equivalence classes rather than raw deals. Street-aware ordering
// rules only bind once the board suffix is complete, so incomplete
// street-aware hands are always kept.
func Enumerate(n int, streetAware bool) [][]deck.Card {
	var hands [][]deck.Card
	full := deck.New()
	partial := make([]deck.Card, 0, n)

	var extend func()
	extend = func() {
		if len(partial) == n {
			hands = append(hands, slices.Clone(partial))
			return
		}
		for _, c := range full {
			partial = append(partial, c)
			if IsCanonical(partial, streetAware) || (streetAware && len(partial) < n) {
				extend()
			}
			partial = partial[:len(partial)-1]
		}
	}
	extend()
	return hands
}
