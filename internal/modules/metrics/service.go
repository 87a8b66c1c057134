// Package metrics implements the derived-metric calculators, the quote
// assembler and the per-symbol/batch orchestration on top of the TTL cache
// and the market-data source.
package metrics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/avramidis/quotemetrics/internal/cache"
	"github.com/avramidis/quotemetrics/internal/domain"
	"github.com/avramidis/quotemetrics/pkg/formulas"
)

// Cache TTLs per metric bucket.
const (
	ttlQuote      = 30 * time.Second // real-time price
	ttlBeta       = time.Hour        // 1-year calculation
	ttlVolatility = time.Hour        // 30-day volatility
	ttlSparkline  = 30 * time.Minute // 60-day history
)

// Documented fallback values and thresholds. These are part of the
// contract: a calculator never fails, every failure path maps to one of
// these defaults.
const (
	betaFallback       = 1.0  // market-neutral
	volatilityFallback = 20.0 // percent
	rsiPeriod          = 14

	minBetaSamples      = 20
	minVolatilityPoints = 5
	volatilityWindow    = 30
)

// History range tokens for the market-data source.
const (
	periodWeek = "5d"
	periodTwoM = "3mo" // covers the trailing ~60 calendar days
	periodYear = "1y"
)

// MarketData is the market-data collaborator: daily OHLCV history for a
// relative period token, and a best-effort loosely-typed fundamentals
// record. Both may fail; calculators convert failures to their documented
// fallbacks.
type MarketData interface {
	History(symbol string, period string) ([]domain.Candle, error)
	Info(symbol string) (map[string]any, error)
}

// Config holds the service dependencies.
type Config struct {
	Cache           *cache.Cache
	Source          MarketData
	Benchmark       string // benchmark symbol for beta
	SparklinePoints int    // default sparkline length
	Log             zerolog.Logger
}

// Service computes derived metrics with cache-aside semantics. Concurrent
// misses for the same key may both fetch and both write; the later write
// wins, which is acceptable because values are interchangeable within the
// TTL window.
type Service struct {
	cache       *cache.Cache
	source      MarketData
	benchmark   string
	sparkPoints int
	log         zerolog.Logger
}

// NewService creates a metrics service.
func NewService(cfg Config) *Service {
	return &Service{
		cache:       cfg.Cache,
		source:      cfg.Source,
		benchmark:   strings.ToUpper(cfg.Benchmark),
		sparkPoints: cfg.SparklinePoints,
		log:         cfg.Log.With().Str("component", "metrics").Logger(),
	}
}

// Beta returns the symbol's beta against the benchmark, cached for an hour.
// Fallback 1.0 on fetch failure, insufficient aligned samples, or zero
// benchmark variance.
func (s *Service) Beta(symbol string) float64 {
	sym := strings.ToUpper(symbol)
	key := "beta:" + sym

	if v, ok := s.cache.Get(key); ok {
		return v.(float64)
	}

	beta := s.computeBeta(sym)
	s.cache.Set(key, beta, ttlBeta)
	return beta
}

func (s *Service) computeBeta(sym string) float64 {
	stock, err := s.source.History(sym, periodYear)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", sym).Msg("Beta: history fetch failed, using fallback")
		return betaFallback
	}

	market, err := s.source.History(s.benchmark, periodYear)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", s.benchmark).Msg("Beta: benchmark fetch failed, using fallback")
		return betaFallback
	}

	if len(stock) == 0 || len(market) == 0 {
		return betaFallback
	}

	marketByDate := make(map[string]float64)
	for _, r := range dailyReturns(market) {
		marketByDate[r.date] = r.ret
	}

	// Inner join on date: only days present in both series count.
	var stockReturns, marketReturns []float64
	for _, r := range dailyReturns(stock) {
		if mr, ok := marketByDate[r.date]; ok {
			stockReturns = append(stockReturns, r.ret)
			marketReturns = append(marketReturns, mr)
		}
	}

	if len(stockReturns) < minBetaSamples {
		return betaFallback
	}

	variance := formulas.Variance(marketReturns)
	if variance == 0 {
		return betaFallback
	}

	return formulas.Round(formulas.Covariance(stockReturns, marketReturns)/variance, 3)
}

// Volatility30d returns the annualized 30-day historical volatility in
// percent, cached for an hour. Fallback 20.0 on fetch failure or fewer
// than 5 price points.
func (s *Service) Volatility30d(symbol string) float64 {
	sym := strings.ToUpper(symbol)
	key := "vol30d:" + sym

	if v, ok := s.cache.Get(key); ok {
		return v.(float64)
	}

	vol := s.computeVolatility30d(sym)
	s.cache.Set(key, vol, ttlVolatility)
	return vol
}

func (s *Service) computeVolatility30d(sym string) float64 {
	candles, err := s.source.History(sym, periodTwoM)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", sym).Msg("Volatility: history fetch failed, using fallback")
		return volatilityFallback
	}
	if len(candles) < minVolatilityPoints {
		return volatilityFallback
	}

	returns := formulas.Returns(domain.Closes(candles))
	if len(returns) > volatilityWindow {
		returns = returns[len(returns)-volatilityWindow:]
	}

	return formulas.Round(formulas.AnnualizedVolatility(returns)*100, 2)
}

// Sparkline returns the last `points` closing prices, rounded to 4
// decimals and cached for 30 minutes. points <= 0 selects the configured
// default. An empty result is returned but never cached, so transient
// failures are retried on the next call.
func (s *Service) Sparkline(symbol string, points int) []float64 {
	sym := strings.ToUpper(symbol)
	if points <= 0 {
		points = s.sparkPoints
	}
	key := fmt.Sprintf("sparkline:%s:%d", sym, points)

	if v, ok := s.cache.Get(key); ok {
		return v.([]float64)
	}

	candles, err := s.source.History(sym, periodTwoM)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", sym).Msg("Sparkline: history fetch failed")
		return []float64{}
	}

	closes := domain.Closes(candles)
	if len(closes) > points {
		closes = closes[len(closes)-points:]
	}

	data := make([]float64, len(closes))
	for i, c := range closes {
		data[i] = formulas.Round(c, 4)
	}

	if len(data) > 0 {
		s.cache.Set(key, data, ttlSparkline)
	}
	return data
}

// Quote returns the normalized quote for a symbol, cached for 30 seconds.
func (s *Service) Quote(symbol string) Quote {
	sym := strings.ToUpper(symbol)
	key := "quote:" + sym

	if v, ok := s.cache.Get(key); ok {
		return v.(Quote)
	}

	q := s.assembleQuote(sym)
	s.cache.Set(key, q, ttlQuote)
	return q
}

// Full composes quote, beta, volatility and sparkline for one symbol and
// derives the volatility category. Each component consults its own cache
// bucket independently.
func (s *Service) Full(symbol string) FullQuote {
	sym := strings.ToUpper(symbol)

	quote := s.Quote(sym)
	beta := s.Beta(sym)
	vol := s.Volatility30d(sym)
	spark := s.Sparkline(sym, 0)

	return FullQuote{
		Quote:         quote,
		Beta:          beta,
		Volatility30d: vol,
		Sparkline:     spark,
		VolCategory:   classifyVolatility(beta, vol),
	}
}

// BatchFull applies Full to each symbol independently. A symbol whose
// processing fails entirely yields an ErrorRecord in its slot; siblings
// are unaffected and result order matches input order.
func (s *Service) BatchFull(symbols []string) []any {
	results := make([]any, 0, len(symbols))
	for _, symbol := range symbols {
		sym := strings.ToUpper(symbol)
		full, err := s.fullChecked(sym)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", sym).Msg("Batch: symbol failed")
			results = append(results, ErrorRecord{Symbol: sym, Error: err.Error()})
			continue
		}
		results = append(results, full)
	}
	return results
}

// fullChecked runs Full and converts a total quote failure (or a panic)
// into an error for batch isolation.
func (s *Service) fullChecked(sym string) (full FullQuote, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing %s: %v", sym, r)
		}
	}()

	full = s.Full(sym)
	if full.Error != "" {
		return FullQuote{}, errors.New(full.Error)
	}
	return full, nil
}

// ClearSymbol deletes the symbol's entries across the quote, beta,
// volatility and default-length sparkline buckets.
func (s *Service) ClearSymbol(symbol string) string {
	sym := strings.ToUpper(symbol)

	s.cache.Delete("quote:" + sym)
	s.cache.Delete("beta:" + sym)
	s.cache.Delete("vol30d:" + sym)
	s.cache.Delete(fmt.Sprintf("sparkline:%s:%d", sym, s.sparkPoints))

	s.log.Info().Str("symbol", sym).Msg("Cache entries cleared for symbol")
	return sym
}

// ClearAll wipes the entire cache.
func (s *Service) ClearAll() {
	s.cache.Clear()
	s.log.Info().Msg("Cache cleared")
}

// datedReturn is a daily percentage return labeled with the date of the
// later trading day.
type datedReturn struct {
	date string
	ret  float64
}

// dailyReturns computes day-over-day percentage returns keyed by date.
// Days following a zero close are skipped.
func dailyReturns(candles []domain.Candle) []datedReturn {
	if len(candles) < 2 {
		return nil
	}

	out := make([]datedReturn, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev == 0 {
			continue
		}
		out = append(out, datedReturn{
			date: candles[i].Date.Format("2006-01-02"),
			ret:  (candles[i].Close - prev) / prev,
		})
	}
	return out
}
