package types

import "github.com/orsinium-labs/enum"

// Side is the direction of an order: BUY or SELL.
type Side enum.Member[string]

var (
	SideBuy  = Side{Value: "buy"}
	SideSell = Side{Value: "sell"}

	sides = enum.NewBuilder(SideBuy, SideSell).Build()
)

// ParseSide parses the wire representation of a side, returning nil when
// unrecognized.
func ParseSide(raw string) *Side { return sides.Parse(raw) }

// OrderStatusCode is the lifecycle status of one of our own orders as
// reported by the order channel.
type OrderStatusCode enum.Member[string]

var (
	StatusReceived = OrderStatusCode{Value: "received"}
	StatusOpen     = OrderStatusCode{Value: "open"}
	StatusDone     = OrderStatusCode{Value: "done"}

	orderStatuses = enum.NewBuilder(StatusReceived, StatusOpen, StatusDone).Build()
)

// ParseOrderStatusCode parses the wire representation of an order status.
func ParseOrderStatusCode(raw string) *OrderStatusCode { return orderStatuses.Parse(raw) }

// ResponseCode classifies the outcome of a place-order REST call.
type ResponseCode enum.Member[string]

var (
	CodeSuccess            = ResponseCode{Value: "SUCCESS"}
	CodeUnauthorized       = ResponseCode{Value: "UNAUTHORIZED"}
	CodeInsufficientFunds  = ResponseCode{Value: "INSUFFICIENT_FUNDS"}
	CodeInvalidProduct     = ResponseCode{Value: "INVALID_PRODUCT"}
	CodeUnforeseenFailure  = ResponseCode{Value: "UNFORESEEN_FAILURE"}
	CodeEmpty              = ResponseCode{Value: "EMPTY"}
)
