package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRoundTrip(t *testing.T) {
	// Any hand of length 0-8 must round-trip exactly.
	full := MustParseCards("2c7dJhAsKc9s3d5h")
	for n := 0; n <= MaxHandCodeCards; n++ {
		hand := full[:n]
		code, err := Pack(hand)
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, n, code.Len())
		assert.Equal(t, hand, code.Cards())
	}
}

func TestPackRejectsNinthCard(t *testing.T) {
	nine := MustParseCards("2c7dJhAsKc9s3d5h6c")
	_, err := Pack(nine)
	require.Error(t, err)
}

func TestHandCodeLayout(t *testing.T) {
	// Byte code is suit*15 + rank, low slot first.
	code, err := Pack(MustParseCards("7c"))
	require.NoError(t, err)
	assert.Equal(t, HandCode(7), code, "a club keeps its face value")

	code, err = Pack(MustParseCards("As"))
	require.NoError(t, err)
	assert.Equal(t, HandCode(3*15+14), code)

	code, err = Pack(MustParseCards("2cAs"))
	require.NoError(t, err)
	assert.Equal(t, HandCode(2|(3*15+14)<<8), code)
	assert.Equal(t, Card{Rank: Two, Suit: Clubs}, code.CardAt(0))
	assert.Equal(t, Card{Rank: Ace, Suit: Spades}, code.CardAt(1))
}

func TestHandCodeDistinct(t *testing.T) {
	// Every card must map to a distinct non-zero byte.
	seen := map[HandCode]Card{}
	for _, c := range New() {
		code, err := Pack([]Card{c})
		require.NoError(t, err)
		require.NotZero(t, code)
		prev, dup := seen[code]
		require.False(t, dup, "cards %s and %s share code %d", prev, c, code)
		seen[code] = c
	}
	assert.Len(t, seen, 52)
}

func TestParseHandCode(t *testing.T) {
	code, err := ParseHandCode("AsKs")
	require.NoError(t, err)
	assert.Equal(t, "AsKs", code.String())

	_, err = ParseHandCode("zz")
	require.Error(t, err)
}
