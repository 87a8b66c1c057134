package formulas

import (
	"github.com/markcheno/go-talib"
)

// MovingAverage returns the simple moving average of the trailing window,
// or nil when the series is shorter than the window.
func MovingAverage(closes []float64, window int) *float64 {
	if window <= 0 || len(closes) < window {
		return nil
	}

	sma := talib.Sma(closes, window)
	if len(sma) == 0 {
		return nil
	}

	last := sma[len(sma)-1]
	if isNaN(last) {
		return nil
	}
	return &last
}
