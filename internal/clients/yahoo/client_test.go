package yahoo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL(zerolog.Nop(), srv.URL)
}

func TestClient_Info(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quoteResponse": {
				"result": [{
					"symbol": "AAPL",
					"currentPrice": 182.5,
					"longName": "Apple Inc.",
					"sector": "Technology",
					"marketCap": 2800000000000
				}],
				"error": null
			}
		}`))
	})

	info, err := c.Info("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 182.5, info["currentPrice"])
	assert.Equal(t, "Apple Inc.", info["longName"])
}

func TestClient_Info_NoResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [], "error": null}}`))
	})

	_, err := c.Info("NOPE")
	assert.Error(t, err)
}

func TestClient_Info_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [], "error": {"code": "Not Found"}}}`))
	})

	_, err := c.Info("NOPE")
	assert.Error(t, err)
}

func TestClient_Info_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.Info("AAPL")
	assert.Error(t, err)
}

func TestClient_History(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "5d", r.URL.Query().Get("range"))

		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1700000000, 1700086400, 1700172800],
					"indicators": {
						"quote": [{
							"open":   [100.0, 101.0, 0],
							"high":   [102.0, 103.0, 0],
							"low":    [99.0, 100.5, 0],
							"close":  [101.5, 102.5, 0],
							"volume": [1000, 2000, 0]
						}],
						"adjclose": [{"adjclose": [101.0, 102.0, 0]}]
					}
				}],
				"error": null
			}
		}`))
	})

	candles, err := c.History("AAPL", "5d")
	require.NoError(t, err)
	// The all-zero third row is a null placeholder and must be dropped.
	require.Len(t, candles, 2)
	assert.Equal(t, 101.5, candles[0].Close)
	assert.Equal(t, 102.0, candles[1].AdjClose)
	assert.Equal(t, int64(2000), candles[1].Volume)
}

func TestClient_History_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	})

	candles, err := c.History("NOPE", "1y")
	require.NoError(t, err)
	assert.Empty(t, candles)
}
