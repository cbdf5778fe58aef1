package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-abstraction/internal/deck"
)

func strengthOf(t *testing.T, hand string) int {
	t.Helper()
	s, err := Strength(deck.MustParseCards(hand))
	require.NoError(t, err)
	return s
}

func TestCategoryOrdering(t *testing.T) {
	// One representative per category, ascending.
	hands := []struct {
		hand     string
		category Category
	}{
		{"2c7d9hJsKc", HighCard},
		{"2c2d9hJsKc", OnePair},
		{"2c2d9h9sKc", TwoPair},
		{"2c2d2h9sKc", ThreeOfAKind},
		{"2c3d4h5s6c", Straight},
		{"2c7c9cJcKc", Flush},
		{"2c2d2h9s9c", FullHouse},
		{"2c2d2h2s9c", FourOfAKind},
		{"2c3c4c5c6c", StraightFlush},
	}
	prev := -1
	for _, h := range hands {
		s := strengthOf(t, h.hand)
		assert.Equal(t, h.category, CategoryOf(s), h.hand)
		assert.Greater(t, s, prev, "%s must beat the previous category", h.hand)
		prev = s
	}
}

func TestKickerResolution(t *testing.T) {
	tests := []struct {
		name             string
		stronger, weaker string
	}{
		{"flush second card", "8cJcQcKcAc", "7cTcQcKcAc"},
		{"pair kicker", "2c2dAh9s5c", "2c2dKh9s5c"},
		{"two pair kicker", "9c9dKhKsAc", "9c9dKhKsQc"},
		{"full house pair rank", "9c9d9hKsKc", "9c9d9hQsQc"},
		{"quad kicker", "9c9d9h9sAc", "9c9d9h9sKc"},
		{"high card last kicker", "2c5d9hJsAc", "2c4d9hJsAc"},
		{"wheel is lowest straight", "2c3d4h5s6c", "Ac2d3h4s5c"},
		{"steel wheel is lowest straight flush", "2c3c4c5c6c", "Ac2c3c4c5c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Greater(t, strengthOf(t, tt.stronger), strengthOf(t, tt.weaker))
		})
	}
}

func TestTiesAcrossSuits(t *testing.T) {
	assert.Equal(t, strengthOf(t, "2c7d9hJsKc"), strengthOf(t, "2d7h9sJcKd"))
	assert.Equal(t, strengthOf(t, "2c7c9cJcKc"), strengthOf(t, "2h7h9hJhKh"))
}

func TestRoyalFlushIsNuts(t *testing.T) {
	royal := strengthOf(t, "TcJcQcKcAc")
	assert.Equal(t, StraightFlush, CategoryOf(royal))
	assert.Greater(t, royal, strengthOf(t, "9cTcJcQcKc"))
	assert.Greater(t, royal, strengthOf(t, "AcAdAhAsKc"))
}

func TestStrengthErrors(t *testing.T) {
	_, err := Strength(deck.MustParseCards("2c3c4c"))
	require.Error(t, err)

	_, err = Strength(deck.MustParseCards("2c2c3c4c5c"))
	require.Error(t, err, "duplicate card")
}

func TestBestOfSeven(t *testing.T) {
	// The board plays a straight, but the hole cards upgrade it to a flush.
	seven := deck.MustParseCards("AhKh5h6h7h8s9d")
	best, err := Best(seven)
	require.NoError(t, err)
	assert.Equal(t, Flush, CategoryOf(best))

	_, err = Best(deck.MustParseCards("2c3c"))
	require.Error(t, err)
}
