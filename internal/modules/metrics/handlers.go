package metrics

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handlers exposes the metrics service over HTTP.
type Handlers struct {
	svc *Service
	log zerolog.Logger
}

// NewHandlers creates the HTTP handlers for the metrics module.
func NewHandlers(svc *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		svc: svc,
		log: log.With().Str("component", "metrics_handlers").Logger(),
	}
}

// symbolsRequest is the body of the batch endpoints.
type symbolsRequest struct {
	Symbols []string `json:"symbols"`
}

// clearRequest is the body of POST /cache/clear.
type clearRequest struct {
	Symbol string `json:"symbol"`
}

// HandleQuote returns a single normalized quote.
// GET /quote/{symbol}
func (h *Handlers) HandleQuote(w http.ResponseWriter, r *http.Request) {
	sym := chi.URLParam(r, "symbol")
	writeJSON(w, h.svc.Quote(sym))
}

// HandleQuotes returns one quote per requested symbol, same order.
// POST /quotes {"symbols": ["AAPL", "MSFT"]}
func (h *Handlers) HandleQuotes(w http.ResponseWriter, r *http.Request) {
	var req symbolsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	results := make([]Quote, 0, len(req.Symbols))
	for _, sym := range req.Symbols {
		results = append(results, h.svc.Quote(sym))
	}
	writeJSON(w, results)
}

// HandleBeta returns the symbol's beta against the benchmark.
// GET /beta/{symbol}
func (h *Handlers) HandleBeta(w http.ResponseWriter, r *http.Request) {
	sym := strings.ToUpper(chi.URLParam(r, "symbol"))
	writeJSON(w, map[string]any{
		"symbol": sym,
		"beta":   h.svc.Beta(sym),
	})
}

// HandleVolatility returns the symbol's annualized 30-day volatility.
// GET /volatility/{symbol}
func (h *Handlers) HandleVolatility(w http.ResponseWriter, r *http.Request) {
	sym := strings.ToUpper(chi.URLParam(r, "symbol"))
	writeJSON(w, map[string]any{
		"symbol":        sym,
		"volatility30d": h.svc.Volatility30d(sym),
	})
}

// HandleSparkline returns the recent closing prices for trend display.
// GET /sparkline/{symbol}
func (h *Handlers) HandleSparkline(w http.ResponseWriter, r *http.Request) {
	sym := strings.ToUpper(chi.URLParam(r, "symbol"))
	writeJSON(w, map[string]any{
		"symbol": sym,
		"data":   h.svc.Sparkline(sym, 0),
	})
}

// HandleFull returns the full record for one symbol.
// GET /full/{symbol}
func (h *Handlers) HandleFull(w http.ResponseWriter, r *http.Request) {
	sym := chi.URLParam(r, "symbol")
	writeJSON(w, h.svc.Full(sym))
}

// HandleBatchFull returns full records for each symbol, with per-symbol
// failures isolated to their result slot.
// POST /batch_full {"symbols": [...]}
func (h *Handlers) HandleBatchFull(w http.ResponseWriter, r *http.Request) {
	var req symbolsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()
	h.log.Info().
		Str("batch_id", batchID).
		Int("symbols", len(req.Symbols)).
		Msg("Processing batch full request")

	results := h.svc.BatchFull(req.Symbols)

	h.log.Debug().
		Str("batch_id", batchID).
		Int("results", len(results)).
		Msg("Batch full request complete")

	writeJSON(w, results)
}

// HandleCacheClear busts cache entries: a body with a symbol clears that
// symbol's buckets, an empty body clears everything.
// POST /cache/clear {"symbol": "AAPL"}
func (h *Handlers) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	// Tolerate an empty or absent body; it means "clear all".
	var req clearRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Symbol != "" {
		cleared := h.svc.ClearSymbol(req.Symbol)
		writeJSON(w, map[string]string{"cleared": cleared})
		return
	}

	h.svc.ClearAll()
	writeJSON(w, map[string]string{"cleared": "all"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
