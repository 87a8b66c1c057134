package metrics

// Quote is a normalized quote record for a single symbol. Every numeric
// field has a documented fallback, so a Quote is always fully populated;
// a total upstream failure is reported in-band via Error.
type Quote struct {
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	PrevClose      float64  `json:"prevClose"`
	Change         float64  `json:"change"`
	ChangePct      float64  `json:"changePct"`
	High52w        float64  `json:"high52w"`
	Low52w         float64  `json:"low52w"`
	MA50           float64  `json:"ma50"`
	MA200          float64  `json:"ma200"`
	RSI            float64  `json:"rsi"`
	PE             *float64 `json:"pe"`
	DivYield       float64  `json:"divYield"`
	MarketCap      *float64 `json:"marketCap"`
	Sector         string   `json:"sector"`
	EarningsGrowth float64  `json:"earningsGrowth"`
	TargetPrice    *float64 `json:"targetPrice"`
	Volume         *int64   `json:"volume"`
	Error          string   `json:"error,omitempty"`
}

// FullQuote is a Quote enriched with the risk metrics and sparkline.
type FullQuote struct {
	Quote
	Beta          float64   `json:"beta"`
	Volatility30d float64   `json:"volatility30d"`
	Sparkline     []float64 `json:"sparkline"`
	VolCategory   string    `json:"volCategory"`
}

// ErrorRecord replaces a FullQuote in a batch result when processing of
// that symbol failed entirely.
type ErrorRecord struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}

// Volatility categories derived from beta and 30-day volatility.
const (
	VolCategoryLow    = "Low"
	VolCategoryMedium = "Medium"
	VolCategoryHigh   = "High"
)

// classifyVolatility buckets a symbol by its beta and annualized 30-day
// volatility (in percent).
func classifyVolatility(beta, volatility30d float64) string {
	switch {
	case beta > 1.2 || volatility30d > 25:
		return VolCategoryHigh
	case beta > 0.8 || volatility30d > 15:
		return VolCategoryMedium
	default:
		return VolCategoryLow
	}
}
