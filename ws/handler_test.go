package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cryptoconnect/coinbasepro/queue"
	"github.com/go-cryptoconnect/coinbasepro/types"
)

func TestSnapshotThenL2UpdateEmitsTick(t *testing.T) {
	q := queue.New[types.Event]()
	h := NewHandler(q)

	h.OnMessage([]byte(`{"type":"snapshot","product_id":"BTC-USD","bids":[["100","1.0"]],"asks":[["101","2.0"]]}`))
	h.OnMessage([]byte(`{"type":"l2update","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","changes":[["buy","99.5","3.0"]]}`))

	require.Equal(t, 1, q.Len())
	event := q.Dequeue()

	tick, ok := event.(types.Tick)
	require.True(t, ok)
	assert.Equal(t, "BTC-USD", tick.ProductID())
	assert.Equal(t, 99.5, tick.BidPrice)
	assert.Equal(t, 101.0, tick.AskPrice)
	assert.Equal(t, 3.0, tick.BidSize)
	assert.Equal(t, 2.0, tick.AskSize)
	assert.True(t, tick.IsBuySide)
	assert.Equal(t, uint64(1704067200000000000), tick.EpochTimeNs())
}

func TestL2UpdateBeforeSnapshotIsDropped(t *testing.T) {
	q := queue.New[types.Event]()
	h := NewHandler(q)

	h.OnMessage([]byte(`{"type":"l2update","product_id":"ETH-USD","time":"2024-01-01T00:00:00.000Z","changes":[["buy","99.5","3.0"]]}`))

	assert.Equal(t, 0, q.Len())
}

func TestZeroVolumeL2UpdateIsDropped(t *testing.T) {
	q := queue.New[types.Event]()
	h := NewHandler(q)

	h.OnMessage([]byte(`{"type":"snapshot","product_id":"BTC-USD","bids":[["100","1.0"]],"asks":[["101","2.0"]]}`))
	h.OnMessage([]byte(`{"type":"l2update","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","changes":[["sell","101","0"]]}`))

	assert.Equal(t, 0, q.Len())
}

func TestMatchAsMakerThenDoneClearsSelfOrder(t *testing.T) {
	q := queue.New[types.Event]()
	h := NewHandler(q)

	h.OnMessage([]byte(`{"type":"received","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","order_id":"A","size":"1.0"}`))
	assert.True(t, h.selfOrders.Has("A"))

	h.OnMessage([]byte(`{"type":"match","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","maker_order_id":"A","taker_order_id":"B","size":"0.5","price":"100"}`))
	h.OnMessage([]byte(`{"type":"done","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","order_id":"A"}`))

	assert.False(t, h.selfOrders.Has("A"))

	require.Equal(t, 3, q.Len())
	_ = q.Dequeue() // received -> OrderStatusEvent

	txn, ok := q.Dequeue().(types.TransactionEvent)
	require.True(t, ok)
	assert.Equal(t, "A", txn.OrderID)
	assert.Equal(t, 100.0, txn.Price)
	assert.Equal(t, 0.5, txn.Quantity)
}

func TestMatchWithoutReceivedUsesTaker(t *testing.T) {
	q := queue.New[types.Event]()
	h := NewHandler(q)

	h.OnMessage([]byte(`{"type":"match","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","maker_order_id":"A","taker_order_id":"B","size":"0.5","price":"100"}`))

	require.Equal(t, 1, q.Len())
	txn, ok := q.Dequeue().(types.TransactionEvent)
	require.True(t, ok)
	assert.Equal(t, "B", txn.OrderID)
}

func TestReceivedEmitsReceivedStatusNotOpen(t *testing.T) {
	q := queue.New[types.Event]()
	h := NewHandler(q)

	h.OnMessage([]byte(`{"type":"received","product_id":"BTC-USD","time":"2024-01-01T00:00:00.000Z","order_id":"A","size":"1.0"}`))

	event, ok := q.Dequeue().(types.OrderStatusEvent)
	require.True(t, ok)
	assert.Equal(t, types.StatusReceived, event.Status)
}
