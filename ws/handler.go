package ws

import (
	"github.com/goccy/go-json"
	"github.com/smallnest/safemap"

	"github.com/go-cryptoconnect/coinbasepro/log"
	"github.com/go-cryptoconnect/coinbasepro/queue"
	"github.com/go-cryptoconnect/coinbasepro/types"
	"github.com/go-cryptoconnect/coinbasepro/util"
)

// trackedTick is the top-of-book state the handler maintains per
// product, built from the initial snapshot and mutated in place by
// subsequent l2update frames.
type trackedTick struct {
	bidPrice, bidSize float64
	askPrice, askSize float64
}

// Handler decodes incoming WebSocket frames into domain events and
// enqueues them. It owns the tick tracker and the self-order-id set
// exclusively — nothing else touches them, so no locking is needed
// beyond what safemap already provides.
type Handler struct {
	queue       *queue.Queue[types.Event]
	tickTracker *safemap.SafeMap[string, *trackedTick]
	selfOrders  *safemap.SafeMap[string, struct{}]
}

// NewHandler constructs a Handler that enqueues decoded events onto q.
func NewHandler(q *queue.Queue[types.Event]) *Handler {
	return &Handler{
		queue:       q,
		tickTracker: safemap.New[string, *trackedTick](),
		selfOrders:  safemap.New[string, struct{}](),
	}
}

type frameEnvelope struct {
	Type string `json:"type"`
}

// OnMessage decodes one frame and dispatches it by type. A decode or
// shape error is logged and the frame dropped; it never propagates,
// so a single malformed message cannot kill the stream loop.
func (h *Handler) OnMessage(frame []byte) {
	var envelope frameEnvelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		log.Logger().Error().Err(err).Str("frame", string(frame)).Msg("ws: could not decode frame envelope")
		return
	}

	switch envelope.Type {
	case "subscriptions":
		log.Logger().Info().Str("frame", string(frame)).Msg("subscription event")
	case "snapshot":
		h.handleSnapshot(frame)
	case "l2update":
		h.handleL2Update(frame)
	case "ticker":
		h.handleTicker(frame)
	case "received":
		h.handleReceived(frame)
	case "open":
		h.handleOpen(frame)
	case "done":
		h.handleDone(frame)
	case "match":
		h.handleMatch(frame)
	case "error":
		log.Logger().Error().Str("frame", string(frame)).Msg("ws: received error frame")
	default:
		log.Logger().Warn().Str("type", envelope.Type).Msg("Unrecognized event")
	}
}

type snapshotFrame struct {
	ProductID string     `json:"product_id"`
	Bids      [][]string `json:"bids"`
	Asks      [][]string `json:"asks"`
}

func (h *Handler) handleSnapshot(frame []byte) {
	var snap snapshotFrame
	if err := json.Unmarshal(frame, &snap); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode snapshot frame")
		return
	}

	tick := &trackedTick{}
	if len(snap.Bids) > 0 {
		tick.bidPrice = util.MustFloat64(snap.Bids[0][0])
		tick.bidSize = util.MustFloat64(snap.Bids[0][1])
	}
	if len(snap.Asks) > 0 {
		tick.askPrice = util.MustFloat64(snap.Asks[0][0])
		tick.askSize = util.MustFloat64(snap.Asks[0][1])
	}

	h.tickTracker.Set(snap.ProductID, tick)
}

type l2UpdateFrame struct {
	ProductID string     `json:"product_id"`
	Time      string     `json:"time"`
	Changes   [][]string `json:"changes"`
}

func (h *Handler) handleL2Update(frame []byte) {
	var update l2UpdateFrame
	if err := json.Unmarshal(frame, &update); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode l2update frame")
		return
	}

	tick, exists := h.tickTracker.Get(update.ProductID)
	if !exists {
		return
	}
	if len(update.Changes) == 0 {
		return
	}

	change := update.Changes[0]
	side, price, volume := change[0], util.MustFloat64(change[1]), util.MustFloat64(change[2])
	if volume == 0 {
		return
	}

	var isBuySide bool
	switch side {
	case "buy":
		tick.bidPrice, tick.bidSize = price, volume
		isBuySide = true
	case "sell":
		tick.askPrice, tick.askSize = price, volume
	default:
		return
	}

	epochTimeNs := parseISOToEpochNs(update.Time)
	h.queue.Enqueue(types.NewTick(update.ProductID, epochTimeNs, tick.bidPrice, tick.bidSize, tick.askPrice, tick.askSize, isBuySide))
}

type tickerFrame struct {
	ProductID string `json:"product_id"`
	Time      string `json:"time"`
	Price     string `json:"price"`
	LastSize  string `json:"last_size"`
	Side      string `json:"side"`
}

func (h *Handler) handleTicker(frame []byte) {
	var ticker tickerFrame
	if err := json.Unmarshal(frame, &ticker); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode ticker frame")
		return
	}

	epochTimeNs := parseISOToEpochNs(ticker.Time)
	isBuySide := ticker.Side == "buy"
	h.queue.Enqueue(types.NewTrade(ticker.ProductID, epochTimeNs, util.MustFloat64(ticker.Price), util.MustFloat64(ticker.LastSize), isBuySide))
}

type orderStatusFrame struct {
	ProductID     string `json:"product_id"`
	Time          string `json:"time"`
	OrderID       string `json:"order_id"`
	Size          string `json:"size"`
	RemainingSize string `json:"remaining_size"`
}

func (h *Handler) handleReceived(frame []byte) {
	var received orderStatusFrame
	if err := json.Unmarshal(frame, &received); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode received frame")
		return
	}

	h.selfOrders.Set(received.OrderID, struct{}{})

	epochTimeNs := parseISOToEpochNs(received.Time)
	h.queue.Enqueue(types.NewOrderStatusEvent(received.ProductID, epochTimeNs, received.OrderID, types.StatusReceived, util.MustFloat64(received.Size)))
}

func (h *Handler) handleOpen(frame []byte) {
	var open orderStatusFrame
	if err := json.Unmarshal(frame, &open); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode open frame")
		return
	}

	epochTimeNs := parseISOToEpochNs(open.Time)
	h.queue.Enqueue(types.NewOrderStatusEvent(open.ProductID, epochTimeNs, open.OrderID, types.StatusOpen, util.MustFloat64(open.RemainingSize)))
}

func (h *Handler) handleDone(frame []byte) {
	var done orderStatusFrame
	if err := json.Unmarshal(frame, &done); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode done frame")
		return
	}

	h.selfOrders.Remove(done.OrderID)

	epochTimeNs := parseISOToEpochNs(done.Time)
	h.queue.Enqueue(types.NewOrderStatusEvent(done.ProductID, epochTimeNs, done.OrderID, types.StatusDone, 0))
}

type matchFrame struct {
	ProductID     string `json:"product_id"`
	Time          string `json:"time"`
	MakerOrderID  string `json:"maker_order_id"`
	TakerOrderID  string `json:"taker_order_id"`
	Size          string `json:"size"`
	Price         string `json:"price"`
}

func (h *Handler) handleMatch(frame []byte) {
	var match matchFrame
	if err := json.Unmarshal(frame, &match); err != nil {
		log.Logger().Error().Err(err).Msg("ws: could not decode match frame")
		return
	}

	orderID := match.TakerOrderID
	if h.selfOrders.Has(match.MakerOrderID) {
		orderID = match.MakerOrderID
	}

	epochTimeNs := parseISOToEpochNs(match.Time)
	h.queue.Enqueue(types.NewTransactionEvent(match.ProductID, epochTimeNs, orderID, util.MustFloat64(match.Price), util.MustFloat64(match.Size)))
}
