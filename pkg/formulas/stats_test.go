package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	// Sample std dev of {2,4,4,4,5,5,7,9} is ~2.138
	assert.InDelta(t, 2.138, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.001)
}

func TestVarianceAndCovariance(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	// Covariance of a series with itself equals its variance.
	assert.InDelta(t, Variance(x), Covariance(x, x), 1e-12)

	// Mismatched lengths yield 0 rather than a panic.
	assert.Equal(t, 0.0, Covariance(x, []float64{1, 2}))
	assert.Equal(t, 0.0, Variance(nil))
}

func TestReturns(t *testing.T) {
	returns := Returns([]float64{100, 102, 51})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.02, returns[0], 1e-12)
	assert.InDelta(t, -0.5, returns[1], 1e-12)

	assert.Empty(t, Returns([]float64{100}))
	assert.Empty(t, Returns(nil))
}

func TestReturns_ZeroPrice(t *testing.T) {
	// A zero previous price produces a zero return instead of infinity.
	returns := Returns([]float64{0, 100})
	require.Len(t, returns, 1)
	assert.Equal(t, 0.0, returns[0])
}

func TestAnnualizedVolatility(t *testing.T) {
	assert.Equal(t, 0.0, AnnualizedVolatility(nil))

	returns := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	expected := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, expected, AnnualizedVolatility(returns), 1e-12)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.0, Round(2.00004, 4))
	assert.Equal(t, 1.235, Round(1.23456, 3))
	assert.Equal(t, -1.23, Round(-1.2345, 2))
}

func TestMovingAverage(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	ma := MovingAverage(closes, 5)
	require.NotNil(t, ma)
	assert.InDelta(t, 3.0, *ma, 1e-12)

	ma = MovingAverage(closes, 3)
	require.NotNil(t, ma)
	assert.InDelta(t, 4.0, *ma, 1e-12)

	assert.Nil(t, MovingAverage(closes, 6), "window longer than series")
	assert.Nil(t, MovingAverage(nil, 3))
	assert.Nil(t, MovingAverage(closes, 0))
}
