package types

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Order is the request we send to place a new order. A non-zero Price
// makes it a limit order; a zero Price makes it a market order (see
// IsMarket).
type Order struct {
	ClientOID string
	ProductID string
	Side      Side
	Price     decimal.Decimal
	Size      decimal.Decimal
}

// NewLimitOrder builds a limit order request.
func NewLimitOrder(clientOID, productID string, side Side, price, size decimal.Decimal) Order {
	return Order{ClientOID: clientOID, ProductID: productID, Side: side, Price: price, Size: size}
}

// NewMarketOrder builds a market order request (zero price).
func NewMarketOrder(clientOID, productID string, side Side, size decimal.Decimal) Order {
	return Order{ClientOID: clientOID, ProductID: productID, Side: side, Size: size}
}

// IsMarket reports whether this order carries no limit price.
func (o Order) IsMarket() bool {
	return o.Price.IsZero()
}

// OrderResponse is the outcome of a place-order REST call, classified
// from the raw response body alone; the HTTP status code is not used.
type OrderResponse struct {
	Code    ResponseCode
	OrderID string
	Message string
}

// OrderDetails is the full state of one of our own orders as returned
// by the order-lookup endpoints.
type OrderDetails struct {
	OrderID      string
	ClientOID    string
	ProductID    string
	Type         string
	Side         Side
	Status       OrderStatusCode
	EpochTimeNs  uint64
	Price        decimal.Decimal
	Size         decimal.Decimal
	FilledSize   decimal.Decimal
	FillFees     decimal.Decimal
	Settled      bool
}

type orderDetailsWire struct {
	OrderID    string `json:"id"`
	ClientOID  string `json:"client_oid"`
	ProductID  string `json:"product_id"`
	Type       string `json:"type"`
	Side       string `json:"side"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	Price      string `json:"price"`
	Size       string `json:"size"`
	FilledSize string `json:"filled_size"`
	FillFees   string `json:"fill_fees"`
	Settled    bool   `json:"settled"`
}

// UnmarshalJSON parses the REST wire shape, converting string-encoded
// decimal fields and the side/status enums.
func (d *OrderDetails) UnmarshalJSON(data []byte) error {
	var wire orderDetailsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	d.OrderID = wire.OrderID
	d.ClientOID = wire.ClientOID
	d.ProductID = wire.ProductID
	d.Type = wire.Type
	if side := ParseSide(wire.Side); side != nil {
		d.Side = *side
	}
	if status := ParseOrderStatusCode(wire.Status); status != nil {
		d.Status = *status
	}
	if createdAt, err := time.Parse(time.RFC3339Nano, wire.CreatedAt); err == nil {
		d.EpochTimeNs = uint64(createdAt.UnixNano())
	}
	d.Price, _ = decimal.NewFromString(wire.Price)
	d.Size, _ = decimal.NewFromString(wire.Size)
	d.FilledSize, _ = decimal.NewFromString(wire.FilledSize)
	d.FillFees, _ = decimal.NewFromString(wire.FillFees)
	d.Settled = wire.Settled

	return nil
}
