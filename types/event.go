package types

// Event is the tagged union fed to a strategy: a Bar, Tick, Trade,
// OrderStatusEvent or TransactionEvent. The unexported methods seal the
// interface so the only implementations are the ones defined in this
// package, letting a consumer's type switch be exhaustive.
type Event interface {
	EpochTimeNs() uint64
	ProductID() string

	sealed()
}

type eventBase struct {
	epochTimeNs uint64
	productID   string
}

func (e eventBase) EpochTimeNs() uint64 { return e.epochTimeNs }
func (e eventBase) ProductID() string   { return e.productID }
func (e eventBase) sealed()             {}

// Bar is one closed OHLCV candle for a product.
type Bar struct {
	eventBase

	Open, High, Low, Close, Volume float64
}

// NewBar constructs a Bar event.
func NewBar(productID string, epochTimeNs uint64, open, high, low, close, volume float64) Bar {
	return Bar{
		eventBase: eventBase{epochTimeNs: epochTimeNs, productID: productID},
		Open:      open,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    volume,
	}
}

// Tick is a best-bid/ask update for a product. IsBuySide reports which
// side of the book the update that produced this Tick came from.
type Tick struct {
	eventBase

	BidPrice, BidSize float64
	AskPrice, AskSize float64
	IsBuySide         bool
}

// NewTick constructs a Tick event.
func NewTick(productID string, epochTimeNs uint64, bidPrice, bidSize, askPrice, askSize float64, isBuySide bool) Tick {
	return Tick{
		eventBase: eventBase{epochTimeNs: epochTimeNs, productID: productID},
		BidPrice:  bidPrice,
		BidSize:   bidSize,
		AskPrice:  askPrice,
		AskSize:   askSize,
		IsBuySide: isBuySide,
	}
}

// Trade is a public match on a product's order book.
type Trade struct {
	eventBase

	Price, Size float64
	IsBuySide   bool
}

// NewTrade constructs a Trade event.
func NewTrade(productID string, epochTimeNs uint64, price, size float64, isBuySide bool) Trade {
	return Trade{
		eventBase: eventBase{epochTimeNs: epochTimeNs, productID: productID},
		Price:     price,
		Size:      size,
		IsBuySide: isBuySide,
	}
}

// OrderStatusEvent reports a lifecycle transition for one of our own
// orders (received, open or done).
type OrderStatusEvent struct {
	eventBase

	OrderID      string
	Status       OrderStatusCode
	QuantityLeft float64
}

// NewOrderStatusEvent constructs an OrderStatusEvent.
func NewOrderStatusEvent(productID string, epochTimeNs uint64, orderID string, status OrderStatusCode, quantityLeft float64) OrderStatusEvent {
	return OrderStatusEvent{
		eventBase:    eventBase{epochTimeNs: epochTimeNs, productID: productID},
		OrderID:      orderID,
		Status:       status,
		QuantityLeft: quantityLeft,
	}
}

// TransactionEvent reports a fill against one of our own orders.
type TransactionEvent struct {
	eventBase

	OrderID         string
	Price, Quantity float64
}

// NewTransactionEvent constructs a TransactionEvent.
func NewTransactionEvent(productID string, epochTimeNs uint64, orderID string, price, quantity float64) TransactionEvent {
	return TransactionEvent{
		eventBase: eventBase{epochTimeNs: epochTimeNs, productID: productID},
		OrderID:   orderID,
		Price:     price,
		Quantity:  quantity,
	}
}
