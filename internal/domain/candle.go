// Package domain holds the data types shared across modules.
package domain

import "time"

// Candle is a single daily OHLCV data point. Price histories are slices of
// candles in ascending date order; missing trading days are simply absent.
type Candle struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// Closes extracts the closing prices of a history, preserving order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
