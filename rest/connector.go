package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/go-cryptoconnect/coinbasepro/auth"
	"github.com/go-cryptoconnect/coinbasepro/log"
	"github.com/go-cryptoconnect/coinbasepro/types"
)

// clientOIDCounter is the process-local, monotonically increasing
// source of client_oid values for newly placed orders.
var clientOIDCounter atomic.Uint64

// Connector is the REST connector: a public session for market data
// and a private session pre-registered with the auth decorator.
type Connector struct {
	public  *Session
	private *Session
}

// NewConnector builds a Connector over baseURL, signing private calls
// with a.
func NewConnector(baseURL string, a *auth.Auth) *Connector {
	return &Connector{
		public:  NewPublicSession(baseURL),
		private: NewPrivateSession(baseURL, a),
	}
}

// GetRateLimit returns the remaining request count the exchange
// reported on the last private-session response.
//
// Default value: -1
func (c *Connector) GetRateLimit() int64 {
	return c.private.GetRateLimit()
}

// GetRateLimitResetAt returns the local time at which the private
// session's rate-limit window resets.
func (c *Connector) GetRateLimitResetAt() time.Time {
	return c.private.GetRateLimitResetAt()
}

// GetProducts fetches every tradeable product.
func (c *Connector) GetProducts(ctx context.Context) ([]types.Product, error) {
	return get[[]types.Product](ctx, c.public, "/products", nil)
}

// barRow is the raw wire shape of one candle row:
// [epochSec, low, high, open, close, volume].
type barRow [6]float64

// GetBars fetches candles for productID between startISO and endISO at
// the given granularity (seconds), using an isolated session so
// concurrent callers never share one TCP stream.
func (c *Connector) GetBars(ctx context.Context, productID string, granularity int, startISO, endISO string) ([]barRow, error) {
	params := url.Values{
		"granularity": {strconv.Itoa(granularity)},
		"start":       {startISO},
		"end":         {endISO},
	}

	raw, err := get[json.RawMessage](ctx, c.public.Isolated(), fmt.Sprintf("/products/%s/candles", productID), params)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var rows []barRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("rest: unexpected candle response shape: %w", err)
	}
	return rows, nil
}

// PlaceOrder submits order and classifies the response.
func (c *Connector) PlaceOrder(ctx context.Context, order types.Order) (types.OrderResponse, error) {
	body := map[string]any{
		"client_oid": newClientOID(),
		"product_id": order.ProductID,
		"side":       order.Side.Value,
		"size":       order.Size.String(),
	}
	if order.IsMarket() {
		body["type"] = "market"
	} else {
		body["type"] = "limit"
		body["price"] = order.Price.String()
	}

	raw, err := postRaw(ctx, c.private, "/orders", body)
	if err != nil {
		return types.OrderResponse{}, err
	}

	return classifyOrderResponse(raw), nil
}

type orderResponseWire struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func classifyOrderResponse(raw []byte) types.OrderResponse {
	var wire orderResponseWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		log.Logger().Error().Err(err).Str("body", string(raw)).Msg("rest: could not decode order response")
		return types.OrderResponse{Code: types.CodeUnforeseenFailure, Message: string(raw)}
	}

	if wire.Message == "" {
		return types.OrderResponse{Code: types.CodeSuccess, OrderID: wire.ID}
	}

	switch wire.Message {
	case "Insufficient funds":
		return types.OrderResponse{Code: types.CodeInsufficientFunds, Message: wire.Message}
	case "product_id is not a valid product":
		return types.OrderResponse{Code: types.CodeInvalidProduct, Message: wire.Message}
	case "Unauthorized.", "Invalid API Key", "invalid signature", "Invalid Passphrase", "invalid timestamp":
		return types.OrderResponse{Code: types.CodeUnauthorized, Message: wire.Message}
	default:
		log.Logger().Error().Str("message", wire.Message).Msg("rest: unforeseen order-placement failure")
		return types.OrderResponse{Code: types.CodeUnforeseenFailure, Message: wire.Message}
	}
}

// GetOrder fetches one order's current state.
func (c *Connector) GetOrder(ctx context.Context, orderID string) (types.OrderDetails, error) {
	return get[types.OrderDetails](ctx, c.private, "/orders/"+orderID, nil)
}

// GetAllOrders fetches orders, optionally filtered by product and
// status. Pass "" for productID or status to omit that filter.
func (c *Connector) GetAllOrders(ctx context.Context, productID, status string) ([]types.OrderDetails, error) {
	params := url.Values{}
	if productID != "" {
		params.Set("product_id", productID)
	}
	if status != "" {
		params.Set("status", status)
	}
	return get[[]types.OrderDetails](ctx, c.private, "/orders", params)
}

// CancelOrder cancels a single order by ID.
func (c *Connector) CancelOrder(ctx context.Context, orderID string) (bool, error) {
	_, err := httpDelete[json.RawMessage](ctx, c.private, "/orders/"+orderID, nil)
	return err == nil, err
}

// CancelAllOrders cancels every open order, optionally scoped to one
// product, returning the canceled order IDs.
func (c *Connector) CancelAllOrders(ctx context.Context, productID string) ([]string, error) {
	params := url.Values{}
	if productID != "" {
		params.Set("product_id", productID)
	}
	return httpDelete[[]string](ctx, c.private, "/orders", params)
}
