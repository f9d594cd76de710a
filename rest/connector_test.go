package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cryptoconnect/coinbasepro/types"
)

func TestGetBarsParsesCandleRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1704067140, 100.0, 102.0, 101.0, 101.5, 5.0]]`))
	}))
	defer server.Close()

	connector := NewConnector(server.URL, nil)

	rows, err := connector.GetBars(context.Background(), "BTC-USD", 60, "2023-12-31T23:58:55Z", "2023-12-31T23:59:00Z")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1704067140.0, row[0])
	assert.Equal(t, 100.0, row[1])
	assert.Equal(t, 102.0, row[2])
	assert.Equal(t, 101.0, row[3])
	assert.Equal(t, 101.5, row[4])
	assert.Equal(t, 5.0, row[5])
}

func TestGetBarsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	connector := NewConnector(server.URL, nil)

	rows, err := connector.GetBars(context.Background(), "BTC-USD", 60, "start", "end")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClassifyOrderResponseSuccess(t *testing.T) {
	resp := classifyOrderResponse([]byte(`{"id":"abc","status":"pending"}`))
	assert.Equal(t, types.CodeSuccess, resp.Code)
	assert.Equal(t, "abc", resp.OrderID)
}

func TestClassifyOrderResponseInsufficientFunds(t *testing.T) {
	resp := classifyOrderResponse([]byte(`{"message":"Insufficient funds"}`))
	assert.Equal(t, types.CodeInsufficientFunds, resp.Code)
}

func TestClassifyOrderResponseUnauthorized(t *testing.T) {
	for _, msg := range []string{"Unauthorized.", "Invalid API Key", "invalid signature", "Invalid Passphrase", "invalid timestamp"} {
		resp := classifyOrderResponse([]byte(`{"message":"` + msg + `"}`))
		assert.Equal(t, types.CodeUnauthorized, resp.Code)
	}
}

func TestPlaceOrderTracksRateLimitHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerRateLimitRemaining, "7")
		w.Header().Set(headerRateLimitReset, "1704067200")
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer server.Close()

	connector := NewConnector(server.URL, nil)

	assert.Equal(t, int64(-1), connector.GetRateLimit())

	_, err := connector.PlaceOrder(context.Background(), types.NewMarketOrder("", "BTC-USD", types.SideBuy, decimal.NewFromInt(1)))
	require.NoError(t, err)

	assert.Equal(t, int64(7), connector.GetRateLimit())
	assert.Equal(t, int64(1704067200), connector.GetRateLimitResetAt().Unix())
}
