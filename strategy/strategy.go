// Package strategy defines the callback contract the adapter drives
// and the narrow handle a strategy uses to call back into the
// adapter, without either side needing to import the other.
package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/go-cryptoconnect/coinbasepro/types"
)

// Handle is the adapter capability surface exposed to a strategy. It
// exists so Strategy implementations do not need to import the
// adapter package, breaking what would otherwise be a strategy <->
// adapter import cycle — the adapter owns the strategy, not the other
// way around.
type Handle interface {
	// UpdateUniverse unsubscribes the current universe, replaces it
	// with productIDs, then subscribes to the new set.
	UpdateUniverse(productIDs []string)

	// LookupProduct returns product details, or (zero, false) if
	// productID is unknown.
	LookupProduct(productID string) (types.Product, bool)

	// PlaceLimitOrder submits a limit order.
	PlaceLimitOrder(productID string, side types.Side, price, size decimal.Decimal) (types.OrderResponse, error)

	// PlaceMarketOrder submits a market order.
	PlaceMarketOrder(productID string, side types.Side, size decimal.Decimal) (types.OrderResponse, error)

	// CancelOrder cancels a single order by ID.
	CancelOrder(orderID string) (bool, error)

	// GetOrder fetches one order's current state.
	GetOrder(orderID string) (types.OrderDetails, error)

	// GetAllOrders fetches orders, optionally filtered by product and
	// status. Pass "" for productID or status to omit that filter.
	GetAllOrders(productID, status string) ([]types.OrderDetails, error)
}

// Strategy is the callback contract the adapter drives. onInit is
// called from the adapter constructor, before any I/O; onStart after
// the WebSocket is connected but before the poller and feeder loops
// start. Event callbacks run synchronously on the feeder goroutine and
// must not block indefinitely.
type Strategy interface {
	OnInit(handle Handle)
	OnStart()
	OnBar(bar types.Bar)
	OnTick(tick types.Tick)
	OnTrade(trade types.Trade)
	OnOrderStatus(status types.OrderStatusEvent)
	OnTransaction(txn types.TransactionEvent)
	OnExit()
}
