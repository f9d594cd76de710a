// Package adapter is the composition root: it owns every connector
// and drives the three worker loops (bars scheduler, stream connector,
// strategy feeder) that make up a running adapter.
package adapter

import (
	"context"
	"os"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/shopspring/decimal"

	"github.com/go-cryptoconnect/coinbasepro/auth"
	"github.com/go-cryptoconnect/coinbasepro/bars"
	"github.com/go-cryptoconnect/coinbasepro/log"
	"github.com/go-cryptoconnect/coinbasepro/queue"
	"github.com/go-cryptoconnect/coinbasepro/rest"
	"github.com/go-cryptoconnect/coinbasepro/strategy"
	"github.com/go-cryptoconnect/coinbasepro/types"
	"github.com/go-cryptoconnect/coinbasepro/universe"
	"github.com/go-cryptoconnect/coinbasepro/ws"
)

// Endpoints names the REST and WS hosts for one profile (sandbox or
// live).
type Endpoints struct {
	RESTBaseURL string
	WSURL       string
	PoolSize    int
	RatePerSec  float64
}

// SandboxEndpoints are CoinbasePro's sandbox hosts with a conservative
// 2-worker bar-query pool.
var SandboxEndpoints = Endpoints{
	RESTBaseURL: "https://api-public.sandbox.exchange.coinbase.com",
	WSURL:       "wss://ws-feed-public.sandbox.exchange.coinbase.com",
	PoolSize:    2,
	RatePerSec:  2,
}

// LiveEndpoints are CoinbasePro's production hosts with an 8-worker
// bar-query pool, sized to stay under the public 10 req/s cap.
var LiveEndpoints = Endpoints{
	RESTBaseURL: "https://api.exchange.coinbase.com",
	WSURL:       "wss://ws-feed.exchange.coinbase.com",
	PoolSize:    8,
	RatePerSec:  8,
}

// Adapter is the composition root wiring every component together and
// driving the worker loops.
type Adapter struct {
	auth      *auth.Auth
	connector *rest.Connector
	universe  *universe.Universe
	queue     *queue.Queue[types.Event]
	scheduler *bars.Scheduler
	stream    *ws.Connector
	handler   *ws.Handler
	wsURL     string

	products *csmap.CsMap[string, types.Product]

	strategy strategy.Strategy
}

// New constructs an Adapter. onInit is invoked synchronously before
// any I/O, per the strategy lifecycle contract.
func New(endpoints Endpoints, apiKey, secretKeyBase64, passphrase string, s strategy.Strategy) *Adapter {
	a := auth.New(apiKey, secretKeyBase64, passphrase)
	connector := rest.NewConnector(endpoints.RESTBaseURL, a)
	u := universe.New()
	q := queue.New[types.Event]()
	handler := ws.NewHandler(q)
	scheduler := bars.New(connector, u, q, endpoints.PoolSize, endpoints.RatePerSec)

	ad := &Adapter{
		auth:      a,
		connector: connector,
		universe:  u,
		queue:     q,
		scheduler: scheduler,
		handler:   handler,
		wsURL:     endpoints.WSURL,
		products:  csmap.Create[string, types.Product](),
		strategy:  s,
	}

	s.OnInit(ad)

	return ad
}

// Start loads the product table, connects the stream, runs the
// strategy's start callback, then spawns the bars scheduler, stream
// connector and strategy feeder goroutines while the calling goroutine
// waits for a worker failure. It returns an error only when loading
// products or connecting the stream fails; on a worker failure it calls
// the strategy's exit callback and exits the process with status 1.
func (a *Adapter) Start(ctx context.Context) error {
	if err := a.loadProducts(ctx); err != nil {
		return err
	}

	stream, err := ws.Connect(a.wsURL)
	if err != nil {
		return err
	}
	a.stream = stream

	a.strategy.OnStart()

	errs := make(chan error, 2)

	go func() {
		if err := a.scheduler.QueryBarsForever(ctx); err != nil {
			log.Logger().Error().Err(err).Msg("[ERROR] Scheduler bars querying failed.")
			errs <- err
		}
	}()

	go func() {
		if err := a.stream.StreamForever(a.handler); err != nil {
			log.Logger().Error().Err(err).Msg("[ERROR] Stream connector failed.")
			errs <- err
		}
	}()

	go a.feedStrategyForever()

	err = <-errs
	a.strategy.OnExit()
	os.Exit(1)
	return err
}

func (a *Adapter) loadProducts(ctx context.Context) error {
	products, err := a.connector.GetProducts(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		a.products.Store(p.ID, p)
	}

	return nil
}

// feedStrategyForever dequeues events and dispatches each to the
// matching strategy callback, synchronously, on this single consumer
// goroutine.
func (a *Adapter) feedStrategyForever() {
	for {
		event := a.queue.Dequeue()

		switch e := event.(type) {
		case types.Bar:
			a.strategy.OnBar(e)
		case types.Tick:
			a.strategy.OnTick(e)
		case types.Trade:
			a.strategy.OnTrade(e)
		case types.OrderStatusEvent:
			a.strategy.OnOrderStatus(e)
		case types.TransactionEvent:
			a.strategy.OnTransaction(e)
		}
	}
}

// UpdateUniverse implements strategy.Handle.
func (a *Adapter) UpdateUniverse(productIDs []string) {
	current := a.universe.ToSlice()
	_ = a.stream.UnsubscribeProducts(current, a.auth.APIKey, a.auth)

	a.universe.Update(productIDs...)

	_ = a.stream.SubscribeProducts(productIDs, a.auth.APIKey, a.auth)
}

// LookupProduct implements strategy.Handle.
func (a *Adapter) LookupProduct(productID string) (types.Product, bool) {
	return a.products.Load(productID)
}

// PlaceLimitOrder implements strategy.Handle.
func (a *Adapter) PlaceLimitOrder(productID string, side types.Side, price, size decimal.Decimal) (types.OrderResponse, error) {
	order := types.NewLimitOrder("", productID, side, price, size)
	return a.connector.PlaceOrder(context.Background(), order)
}

// PlaceMarketOrder implements strategy.Handle.
func (a *Adapter) PlaceMarketOrder(productID string, side types.Side, size decimal.Decimal) (types.OrderResponse, error) {
	order := types.NewMarketOrder("", productID, side, size)
	return a.connector.PlaceOrder(context.Background(), order)
}

// CancelOrder implements strategy.Handle.
func (a *Adapter) CancelOrder(orderID string) (bool, error) {
	return a.connector.CancelOrder(context.Background(), orderID)
}

// GetOrder implements strategy.Handle.
func (a *Adapter) GetOrder(orderID string) (types.OrderDetails, error) {
	return a.connector.GetOrder(context.Background(), orderID)
}

// GetAllOrders implements strategy.Handle.
func (a *Adapter) GetAllOrders(productID, status string) ([]types.OrderDetails, error) {
	return a.connector.GetAllOrders(context.Background(), productID, status)
}
