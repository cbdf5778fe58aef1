package deck

// New returns the standard 52-card deck, rank-major so that the order is
// stable across calls.
func New() []Card {
	cards := make([]Card, 0, 52)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Without returns a fresh copy of cards with every member of excluded removed.
func Without(cards []Card, excluded []Card) []Card {
	skip := NewCardSet(excluded)
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if !skip.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// CardSet is a 52-bit set of cards keyed by Card.Index, for O(1) membership
// checks on hot enumeration paths.
type CardSet uint64

// NewCardSet creates a CardSet from a slice of cards
func NewCardSet(cards []Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c.Index()
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c.Index()) != 0
}

// Combinations calls fn with every k-card subset of cards, in lexicographic
// index order. The slice passed to fn is reused between calls; fn must copy
// it if it needs to retain the cards.
func Combinations(cards []Card, k int, fn func([]Card)) {
	if k < 0 || k > len(cards) {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]Card, k)
	for {
		for i, j := range idx {
			combo[i] = cards[j]
		}
		fn(combo)

		// Advance to the next combination, rightmost index first.
		i := k - 1
		for i >= 0 && idx[i] == len(cards)-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
