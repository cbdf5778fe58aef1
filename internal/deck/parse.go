package deck

import (
	"fmt"
	"strings"
)

// ParseError reports malformed card text. It is the only recoverable error
// in the package taxonomy: callers at the text boundary may reject the input
// and continue.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse cards %q: %s at position %d", e.Input, e.Msg, e.Pos)
}

// ParseCard parses a two-character card token such as "As" or "Td".
func ParseCard(s string) (Card, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Card{}, err
	}
	if len(cards) != 1 {
		return Card{}, &ParseError{Input: s, Pos: 0, Msg: "expected a single card"}
	}
	return cards[0], nil
}

// ParseCards parses concatenated two-character card tokens, e.g. "AsKdQh".
// Spaces are ignored. Any unrecognized character yields a *ParseError.
func ParseCards(s string) ([]Card, error) {
	compact := strings.ReplaceAll(s, " ", "")
	if len(compact)%2 != 0 {
		return nil, &ParseError{Input: s, Pos: len(compact), Msg: "odd length, incomplete card"}
	}

	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		rank, ok := parseRank(compact[i])
		if !ok {
			return nil, &ParseError{Input: s, Pos: i, Msg: fmt.Sprintf("unknown rank %q", compact[i])}
		}
		suit, ok := parseSuit(compact[i+1])
		if !ok {
			return nil, &ParseError{Input: s, Pos: i + 1, Msg: fmt.Sprintf("unknown suit %q", compact[i+1])}
		}
		cards = append(cards, Card{Rank: rank, Suit: suit})
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// String renders cards back to their concatenated token form.
func String(cards []Card) string {
	var b strings.Builder
	b.Grow(len(cards) * 2)
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

func parseRank(c byte) (Rank, bool) {
	switch c {
	case 'A':
		return Ace, true
	case 'K':
		return King, true
	case 'Q':
		return Queen, true
	case 'J':
		return Jack, true
	case 'T':
		return Ten, true
	case '9':
		return Nine, true
	case '8':
		return Eight, true
	case '7':
		return Seven, true
	case '6':
		return Six, true
	case '5':
		return Five, true
	case '4':
		return Four, true
	case '3':
		return Three, true
	case '2':
		return Two, true
	default:
		return 0, false
	}
}

func parseSuit(c byte) (Suit, bool) {
	switch c {
	case 'c':
		return Clubs, true
	case 'd':
		return Diamonds, true
	case 'h':
		return Hearts, true
	case 's':
		return Spades, true
	default:
		return 0, false
	}
}
