// Package deck defines playing cards, the standard 52-card deck, and the
// compact hand encodings used by the abstraction tables.
package deck

// Suit represents a card suit. The numeric order (clubs lowest) is load
// bearing: canonicalization relabels suits by this order.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the single-character suit token
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank represents a card rank. Ranks carry their face value, with Ace high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank token
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card. Cards are immutable value types ordered by
// (rank, suit).
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two-character token for the card (e.g. "As", "Td")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Less reports whether c sorts before other by (rank, suit)
func (c Card) Less(other Card) bool {
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return c.Suit < other.Suit
}

// Compare orders cards by (rank, suit), returning -1, 0 or 1
func (c Card) Compare(other Card) int {
	switch {
	case c.Less(other):
		return -1
	case other.Less(c):
		return 1
	default:
		return 0
	}
}

// Index returns the card's position in [0,52): (rank-2)*4 + suit
func (c Card) Index() int {
	return int(c.Rank-Two)*4 + int(c.Suit)
}
