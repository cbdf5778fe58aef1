package abstraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-abstraction/internal/canonical"
	"github.com/lox/holdem-abstraction/internal/dataset"
	"github.com/lox/holdem-abstraction/internal/deck"
	"github.com/lox/holdem-abstraction/internal/equity"
)

func TestPreflopBinSuitInvariance(t *testing.T) {
	assert.Equal(t,
		PreflopBin(deck.MustParseCards("AhAd")),
		PreflopBin(deck.MustParseCards("AcAs")),
	)
	assert.Equal(t,
		PreflopBin(deck.MustParseCards("KhQs")),
		PreflopBin(deck.MustParseCards("QdKc")),
	)
}

func TestPreflopBinSeparatesHoldings(t *testing.T) {
	aces := PreflopBin(deck.MustParseCards("AhAd"))
	akSuited := PreflopBin(deck.MustParseCards("AhKh"))
	akOffsuit := PreflopBin(deck.MustParseCards("AhKd"))

	assert.NotEqual(t, aces, akSuited)
	assert.NotEqual(t, aces, akOffsuit)
	assert.Equal(t, akSuited, akOffsuit+1)
}

func TestPreflopBinOrderInvariance(t *testing.T) {
	assert.Equal(t,
		PreflopBin(deck.MustParseCards("2cAd")),
		PreflopBin(deck.MustParseCards("Ad2c")),
	)
}

func TestPreflopBinCoversAllClasses(t *testing.T) {
	cards := deck.New()
	bins := make(map[int]bool)
	deck.Combinations(cards, 2, func(hole []deck.Card) {
		bins[PreflopBin(hole)] = true
	})
	assert.Len(t, bins, 169)
}

// facadeFor assembles an Abstraction around fixture tables so street lookups
// can be exercised without building real datasets.
func facadeFor(t *testing.T, flop, turn map[string]int, equities map[string]float64) *Abstraction {
	t.Helper()
	eq, err := equity.NewTable(equities)
	require.NoError(t, err)
	return &Abstraction{
		cfg:      DefaultConfig(),
		equities: eq,
		flop:     flop,
		turn:     turn,
	}
}

func canonicalKey(t *testing.T, hand string) string {
	t.Helper()
	canon, err := canonical.Canonicalize(deck.MustParseCards(hand), true)
	require.NoError(t, err)
	return deck.String(canon)
}

func TestAbstractIDFlopCanonicalizesBeforeLookup(t *testing.T) {
	key := canonicalKey(t, "AhKhTc2d9s")
	a := facadeFor(t, map[string]int{key: 7}, nil, nil)

	// A suit permutation of the same hand resolves to the same bucket.
	id, err := a.AbstractID(deck.MustParseCards("AsKsTc2d9h"))
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestAbstractIDTurnUsesTurnTable(t *testing.T) {
	key := canonicalKey(t, "AhKhTc2d9s3s")
	a := facadeFor(t, nil, map[string]int{key: 11}, nil)

	id, err := a.AbstractID(deck.MustParseCards("AhKhTc2d9s3s"))
	require.NoError(t, err)
	assert.Equal(t, 11, id)
}

func TestAbstractIDFlopMissingEntry(t *testing.T) {
	a := facadeFor(t, map[string]int{}, nil, nil)

	_, err := a.AbstractID(deck.MustParseCards("AhKhTc2d9s"))
	var miss *dataset.LookupMissError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "flop abstraction", miss.Table)
}

func TestAbstractIDRiverQuantizesEquity(t *testing.T) {
	nuts := canonicalKey(t, "AcKcQcJcTc2d3h")
	weak := canonicalKey(t, "2c7d3h9sJcKdQh")
	a := facadeFor(t, nil, nil, map[string]float64{nuts: 1.0, weak: 0.12})

	// Equity 1.0 clamps to the top bucket rather than overflowing.
	id, err := a.AbstractID(deck.MustParseCards("AcKcQcJcTc2d3h"))
	require.NoError(t, err)
	assert.Equal(t, a.cfg.RiverBuckets-1, id)

	id, err = a.AbstractID(deck.MustParseCards("2c7d3h9sJcKdQh"))
	require.NoError(t, err)
	assert.Equal(t, int(0.12*float64(a.cfg.RiverBuckets)), id)
}

func TestAbstractIDRejectsUnsupportedLengths(t *testing.T) {
	a := facadeFor(t, nil, nil, nil)
	for _, hand := range []string{"Ah", "AhKd2c", "AhKd2c3c", "AhKd2c3c4c5c6c7c"} {
		_, err := a.AbstractID(deck.MustParseCards(hand))
		assert.Error(t, err, hand)
	}
}
