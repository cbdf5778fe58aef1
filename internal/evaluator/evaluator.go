// Package evaluator scores five-card poker hands with the standard ranking.
// It is the baseline ranking source the strength dataset is generated from;
// runtime lookups never call it directly.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-abstraction/internal/deck"
)

// Category is the coarse hand class, higher is better.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a description of the hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Kicker ranks pack into a base-15 key so ranks keep their face value; five
// ranks need 15^5 < 2^20, leaving the category in the bits above.
const (
	keyBits = 20
	keyBase = 15
)

// Strength returns an integer totally ordering five-card hands: a greater
// value always beats a smaller one, and equal values tie under standard
// poker comparison. The layout is category<<20 | tiebreak-key.
func Strength(cards []deck.Card) (int, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("evaluate hand: want 5 cards, got %d", len(cards))
	}

	var counts [15]int
	suited := true
	for i, c := range cards {
		counts[c.Rank]++
		if i > 0 && c.Suit != cards[0].Suit {
			suited = false
		}
	}
	if containsDuplicate(cards) {
		return 0, fmt.Errorf("evaluate hand: duplicate card in %s", deck.String(cards))
	}

	straightHigh := straightHighRank(counts)

	if suited && straightHigh != 0 {
		return pack(StraightFlush, int(straightHigh)), nil
	}

	// Group ranks by multiplicity, each group sorted high-to-low.
	var quads, trips, pairs, singles []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		case 1:
			singles = append(singles, r)
		}
	}

	switch {
	case len(quads) == 1:
		return pack(FourOfAKind, key(quads[0], singles[0])), nil
	case len(trips) == 1 && len(pairs) == 1:
		return pack(FullHouse, key(trips[0], pairs[0])), nil
	case suited:
		return pack(Flush, key(singles...)), nil
	case straightHigh != 0:
		return pack(Straight, int(straightHigh)), nil
	case len(trips) == 1:
		return pack(ThreeOfAKind, key(trips[0], singles[0], singles[1])), nil
	case len(pairs) == 2:
		return pack(TwoPair, key(pairs[0], pairs[1], singles[0])), nil
	case len(pairs) == 1:
		return pack(OnePair, key(pairs[0], singles[0], singles[1], singles[2])), nil
	default:
		return pack(HighCard, key(singles...)), nil
	}
}

// CategoryOf returns the coarse class of a strength value.
func CategoryOf(strength int) Category {
	return Category(strength >> keyBits)
}

// Best returns the maximum Strength over all 5-card subsets of a 5-7 card
// hand. It exists for generator-side audits; runtime best-of-7 goes through
// the strength table.
func Best(cards []deck.Card) (int, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return 0, fmt.Errorf("evaluate hand: want 5-7 cards, got %d", len(cards))
	}
	best := -1
	var innerErr error
	deck.Combinations(cards, 5, func(five []deck.Card) {
		s, err := Strength(five)
		if err != nil {
			innerErr = err
			return
		}
		if s > best {
			best = s
		}
	})
	if innerErr != nil {
		return 0, innerErr
	}
	return best, nil
}

func pack(c Category, key int) int {
	return int(c)<<keyBits | key
}

// key folds ranks into a single base-15 integer, most significant first.
func key(ranks ...deck.Rank) int {
	k := 0
	for _, r := range ranks {
		k = k*keyBase + int(r)
	}
	return k
}

// straightHighRank returns the high rank of a straight present in the rank
// counts, 0 if there is none. The wheel (A-2-3-4-5) is 5-high.
func straightHighRank(counts [15]int) deck.Rank {
	for high := deck.Ace; high >= deck.Six; high-- {
		run := true
		for r := high - 4; r <= high; r++ {
			if counts[r] == 0 {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	if counts[deck.Ace] > 0 && counts[deck.Two] > 0 && counts[deck.Three] > 0 &&
		counts[deck.Four] > 0 && counts[deck.Five] > 0 {
		return deck.Five
	}
	return 0
}

func containsDuplicate(cards []deck.Card) bool {
	sorted := append([]deck.Card(nil), cards...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return true
		}
	}
	return false
}
