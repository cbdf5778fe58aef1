package deck

import "fmt"

// HandCode packs a hand of up to eight cards into a uint64. Each card takes
// one byte slot, low slots first; a card's byte is suit*15 + rank, so the
// rank keeps its face value and no valid card encodes to zero. Trailing zero
// slots imply the hand length. The cap of eight cards buys O(1) equality and
// hashing for tables holding tens of millions of entries.
type HandCode uint64

// suitMultiplier leaves room for ranks 2..14 within a byte slot.
const suitMultiplier = 15

// MaxHandCodeCards is the largest hand a HandCode can hold.
const MaxHandCodeCards = 8

// Pack encodes up to MaxHandCodeCards cards into a HandCode.
func Pack(cards []Card) (HandCode, error) {
	if len(cards) > MaxHandCodeCards {
		return 0, fmt.Errorf("pack hand: %d cards exceeds the %d-card limit", len(cards), MaxHandCodeCards)
	}
	var code HandCode
	for i, c := range cards {
		code |= HandCode(uint64(int(c.Suit)*suitMultiplier+int(c.Rank)) << (8 * i))
	}
	return code, nil
}

// Len returns the number of cards in the code, determined by the first
// all-zero byte slot.
func (h HandCode) Len() int {
	for i := 0; i < MaxHandCodeCards; i++ {
		if (h>>(8*i))&0xFF == 0 {
			return i
		}
	}
	return MaxHandCodeCards
}

// CardAt decodes the card in slot i.
func (h HandCode) CardAt(i int) Card {
	b := int((h >> (8 * i)) & 0xFF)
	return Card{Rank: Rank(b % suitMultiplier), Suit: Suit(b / suitMultiplier)}
}

// Cards decodes the full hand.
func (h HandCode) Cards() []Card {
	n := h.Len()
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		cards[i] = h.CardAt(i)
	}
	return cards
}

// String renders the packed hand as concatenated card tokens.
func (h HandCode) String() string {
	return String(h.Cards())
}

// ParseHandCode packs the textual hand form directly.
func ParseHandCode(s string) (HandCode, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return 0, err
	}
	return Pack(cards)
}
