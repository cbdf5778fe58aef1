package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardRoundTrip(t *testing.T) {
	// Every valid two-character token must survive parse -> format exactly.
	for _, c := range New() {
		token := c.String()
		parsed, err := ParseCard(token)
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, c, parsed)
		assert.Equal(t, token, parsed.String())
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Spades},
				{Rank: Queen, Suit: Spades},
				{Rank: Jack, Suit: Spades},
				{Rank: Ten, Suit: Spades},
			},
		},
		{
			name:  "mixed suits with spaces",
			input: "Ah Kd Qc",
			expected: []Card{
				{Rank: Ace, Suit: Hearts},
				{Rank: King, Suit: Diamonds},
				{Rank: Queen, Suit: Clubs},
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: []Card{},
		},
		{
			name:    "unknown rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "unknown suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "odd length",
			input:   "AsK",
			wantErr: true,
		},
		{
			name:    "lowercase rank rejected",
			input:   "as",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cards)
		})
	}
}

func TestCardOrdering(t *testing.T) {
	// Total order by (rank, suit).
	assert.True(t, Card{Rank: Two, Suit: Spades}.Less(Card{Rank: Three, Suit: Clubs}))
	assert.True(t, Card{Rank: King, Suit: Clubs}.Less(Card{Rank: King, Suit: Diamonds}))
	assert.False(t, Card{Rank: Ace, Suit: Clubs}.Less(Card{Rank: Ace, Suit: Clubs}))
	assert.Equal(t, 0, Card{Rank: Nine, Suit: Hearts}.Compare(Card{Rank: Nine, Suit: Hearts}))
	assert.Equal(t, -1, Card{Rank: Nine, Suit: Hearts}.Compare(Card{Rank: Ten, Suit: Clubs}))
	assert.Equal(t, 1, Card{Rank: Nine, Suit: Hearts}.Compare(Card{Rank: Nine, Suit: Diamonds}))
}

func TestStringConcatenation(t *testing.T) {
	cards := MustParseCards("As4d8c9h2d")
	assert.Equal(t, "As4d8c9h2d", String(cards))
}
