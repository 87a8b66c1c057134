package formulas

// RSI calculates the Relative Strength Index over the trailing window.
//
// Gains and losses are smoothed with an exponentially weighted mean using a
// center-of-mass of period-1 (alpha = 1/period), and the final smoothed
// values feed the standard formula:
//
//	RSI = 100 - (100 / (1 + RS)),  RS = avg gain / avg loss
//
// A series shorter than period+1 points yields the neutral value 50.0.
// A zero average loss yields 100.0. The result is rounded to 2 decimals.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50.0
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	alpha := 1.0 / float64(period)
	avgGain := ewmMean(gains, alpha)
	avgLoss := ewmMean(losses, alpha)

	if isNaN(avgGain) || isNaN(avgLoss) {
		return 50.0
	}
	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return Round(100-100/(1+rs), 2)
}

// ewmMean returns the final value of an adjusted exponentially weighted
// moving average: recent observations carry weight (1-alpha)^0, older ones
// decay geometrically, and the weights are normalized.
func ewmMean(xs []float64, alpha float64) float64 {
	var num, den float64
	for _, x := range xs {
		num = x + (1-alpha)*num
		den = 1 + (1-alpha)*den
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
