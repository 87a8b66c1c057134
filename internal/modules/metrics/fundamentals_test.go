package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFundamentals_AliasFallbacks(t *testing.T) {
	f := parseFundamentals(map[string]any{
		"regularMarketPrice":         101.5,
		"regularMarketPreviousClose": 100.0,
		"forwardPE":                  22.0,
		"regularMarketVolume":        float64(5000),
		"shortName":                  "Apple",
	})

	require.NotNil(t, f.Price)
	assert.Equal(t, 101.5, *f.Price)
	require.NotNil(t, f.PrevClose)
	assert.Equal(t, 100.0, *f.PrevClose)
	require.NotNil(t, f.PE)
	assert.Equal(t, 22.0, *f.PE)
	require.NotNil(t, f.Volume)
	assert.Equal(t, int64(5000), *f.Volume)
	assert.Equal(t, "Apple", f.Name)
}

func TestParseFundamentals_PrimaryKeyWins(t *testing.T) {
	f := parseFundamentals(map[string]any{
		"currentPrice":       101.5,
		"regularMarketPrice": 99.0,
		"trailingPE":         30.0,
		"forwardPE":          22.0,
		"longName":           "Apple Inc.",
		"shortName":          "Apple",
	})

	require.NotNil(t, f.Price)
	assert.Equal(t, 101.5, *f.Price)
	require.NotNil(t, f.PE)
	assert.Equal(t, 30.0, *f.PE)
	assert.Equal(t, "Apple Inc.", f.Name)
}

func TestParseFundamentals_MalformedValues(t *testing.T) {
	f := parseFundamentals(map[string]any{
		"currentPrice":     "not a number",
		"previousClose":    nil,
		"fiftyTwoWeekHigh": math.NaN(),
		"fiftyTwoWeekLow":  math.Inf(1),
		"volume":           "many",
		"sector":           42,
	})

	assert.Nil(t, f.Price)
	assert.Nil(t, f.PrevClose)
	assert.Nil(t, f.High52w)
	assert.Nil(t, f.Low52w)
	assert.Nil(t, f.Volume)
	assert.Empty(t, f.Sector)
}

func TestParseFundamentals_IntegerCoercion(t *testing.T) {
	f := parseFundamentals(map[string]any{
		"currentPrice": 150, // plain int from a non-JSON caller
		"marketCap":    int64(3e12),
		"volume":       int64(123456),
	})

	require.NotNil(t, f.Price)
	assert.Equal(t, 150.0, *f.Price)
	require.NotNil(t, f.MarketCap)
	assert.Equal(t, 3e12, *f.MarketCap)
	require.NotNil(t, f.Volume)
	assert.Equal(t, int64(123456), *f.Volume)
}

func TestParseFundamentals_EmptyMap(t *testing.T) {
	f := parseFundamentals(map[string]any{})

	assert.Nil(t, f.Price)
	assert.Nil(t, f.PE)
	assert.Nil(t, f.Volume)
	assert.Empty(t, f.Sector)
	assert.Empty(t, f.Name)
}
