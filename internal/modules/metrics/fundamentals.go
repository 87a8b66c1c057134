package metrics

import "math"

// fundamentals is the strongly-typed projection of the loosely-structured
// upstream info payload. Absent or malformed fields project to nil; the
// untyped map never leaves this translation boundary.
type fundamentals struct {
	Price          *float64
	PrevClose      *float64
	High52w        *float64
	Low52w         *float64
	MA50           *float64
	MA200          *float64
	PE             *float64
	DividendYield  *float64
	MarketCap      *float64
	EarningsGrowth *float64
	TargetPrice    *float64
	Volume         *int64
	Sector         string
	Name           string
}

// parseFundamentals projects the raw info map into typed optional fields.
// Paired keys mirror the upstream aliases: the regular-market variants are
// consulted when the primary key is missing.
func parseFundamentals(info map[string]any) fundamentals {
	return fundamentals{
		Price:          firstFloat(info, "currentPrice", "regularMarketPrice"),
		PrevClose:      firstFloat(info, "previousClose", "regularMarketPreviousClose"),
		High52w:        firstFloat(info, "fiftyTwoWeekHigh"),
		Low52w:         firstFloat(info, "fiftyTwoWeekLow"),
		MA50:           firstFloat(info, "fiftyDayAverage"),
		MA200:          firstFloat(info, "twoHundredDayAverage"),
		PE:             firstFloat(info, "trailingPE", "forwardPE"),
		DividendYield:  firstFloat(info, "dividendYield"),
		MarketCap:      firstFloat(info, "marketCap"),
		EarningsGrowth: firstFloat(info, "earningsGrowth"),
		TargetPrice:    firstFloat(info, "targetMeanPrice"),
		Volume:         firstInt(info, "volume", "regularMarketVolume"),
		Sector:         getString(info, "sector"),
		Name:           firstString(info, "longName", "shortName"),
	}
}

// firstFloat returns the first key that coerces to a finite float64.
func firstFloat(m map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if v := getFloat(m, key); v != nil {
			return v
		}
	}
	return nil
}

// firstInt returns the first key that coerces to an int64.
func firstInt(m map[string]any, keys ...string) *int64 {
	for _, key := range keys {
		if v := getInt(m, key); v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first key holding a non-empty string.
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := getString(m, key); s != "" {
			return s
		}
	}
	return ""
}

func getFloat(m map[string]any, key string) *float64 {
	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	switch v := val.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

func getInt(m map[string]any, key string) *int64 {
	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	switch v := val.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		i := int64(v)
		return &i
	case int:
		i := int64(v)
		return &i
	case int64:
		return &v
	}
	return nil
}

func getString(m map[string]any, key string) string {
	if val, ok := m[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
