package metrics

import (
	"strings"

	"github.com/avramidis/quotemetrics/internal/domain"
	"github.com/avramidis/quotemetrics/pkg/formulas"
)

// assembleQuote builds a Quote from the fundamentals record and the 5-day
// and 1-year histories. Every field resolves through a cascade: upstream
// fundamentals first, then values derived from history, then a terminal
// default. Only the loss of all three inputs counts as a failure, and even
// then a fully-populated zeroed Quote is returned with Error set.
func (s *Service) assembleQuote(sym string) Quote {
	info, infoErr := s.source.Info(sym)
	if infoErr != nil {
		s.log.Debug().Err(infoErr).Str("symbol", sym).Msg("Fundamentals unavailable")
		info = map[string]any{}
	}

	hist5d, err5d := s.source.History(sym, periodWeek)
	if err5d != nil {
		s.log.Debug().Err(err5d).Str("symbol", sym).Msg("5-day history unavailable")
	}

	hist1y, err1y := s.source.History(sym, periodYear)
	if err1y != nil {
		s.log.Debug().Err(err1y).Str("symbol", sym).Msg("1-year history unavailable")
	}

	if infoErr != nil && err5d != nil && err1y != nil {
		return errorQuote(sym, strings.Join([]string{
			infoErr.Error(), err5d.Error(), err1y.Error(),
		}, "; "))
	}

	f := parseFundamentals(info)
	closes5d := domain.Closes(hist5d)
	closes1y := domain.Closes(hist1y)

	price := resolvePrice(f.Price, closes5d, closes1y)

	prevClose := price
	if f.PrevClose != nil {
		prevClose = *f.PrevClose
	} else if len(closes5d) >= 2 {
		prevClose = formulas.Round(closes5d[len(closes5d)-2], 4)
	}

	change := formulas.Round(price-prevClose, 4)
	changePct := 0.0
	if prevClose != 0 {
		changePct = formulas.Round(change/prevClose*100, 4)
	}

	high52w := resolveExtreme(f.High52w, hist1y, true)
	if high52w == nil {
		v := price * 1.2 // heuristic, not a measured value
		high52w = &v
	}
	low52w := resolveExtreme(f.Low52w, hist1y, false)
	if low52w == nil {
		v := price * 0.8
		low52w = &v
	}

	ma50 := resolveMA(f.MA50, closes1y, 50, price)
	ma200 := resolveMA(f.MA200, closes1y, 200, price)

	name := f.Name
	if name == "" {
		name = sym
	}
	sector := f.Sector
	if sector == "" {
		sector = "Other"
	}

	return Quote{
		Symbol:         sym,
		Name:           name,
		Price:          price,
		PrevClose:      prevClose,
		Change:         change,
		ChangePct:      changePct,
		High52w:        *high52w,
		Low52w:         *low52w,
		MA50:           ma50,
		MA200:          ma200,
		RSI:            formulas.RSI(closes1y, rsiPeriod),
		PE:             f.PE,
		DivYield:       formulas.Round(deref(f.DividendYield)*100, 4),
		MarketCap:      f.MarketCap,
		Sector:         sector,
		EarningsGrowth: formulas.Round(deref(f.EarningsGrowth)*100, 2),
		TargetPrice:    f.TargetPrice,
		Volume:         f.Volume,
	}
}

// resolvePrice applies the price cascade: fundamentals, then the last close
// of the 5-day history, then the last close of the 1-year history, then 0.
func resolvePrice(fundamental *float64, closes5d, closes1y []float64) float64 {
	if fundamental != nil {
		return *fundamental
	}
	if len(closes5d) > 0 {
		return formulas.Round(closes5d[len(closes5d)-1], 4)
	}
	if len(closes1y) > 0 {
		return formulas.Round(closes1y[len(closes1y)-1], 4)
	}
	return 0.0
}

// resolveExtreme resolves the 52-week high or low: fundamentals first,
// then the max High / min Low across the 1-year history.
func resolveExtreme(fundamental *float64, hist1y []domain.Candle, high bool) *float64 {
	if fundamental != nil {
		return fundamental
	}
	if len(hist1y) == 0 {
		return nil
	}

	v := hist1y[0].High
	if !high {
		v = hist1y[0].Low
	}
	for _, c := range hist1y[1:] {
		if high && c.High > v {
			v = c.High
		}
		if !high && c.Low < v {
			v = c.Low
		}
	}

	v = formulas.Round(v, 4)
	return &v
}

// resolveMA resolves a moving average: fundamentals first, then the SMA of
// the trailing window when enough closes exist, then the price itself.
func resolveMA(fundamental *float64, closes []float64, window int, price float64) float64 {
	if fundamental != nil {
		return *fundamental
	}
	if ma := formulas.MovingAverage(closes, window); ma != nil {
		return formulas.Round(*ma, 4)
	}
	return price
}

// errorQuote is the total-failure record: everything zeroed, neutral RSI,
// the failure description in Error. Still served as a normal response.
func errorQuote(sym, msg string) Quote {
	return Quote{
		Symbol: sym,
		Name:   sym,
		RSI:    50.0,
		Sector: "Other",
		Error:  msg,
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
