// Package bars drives synthetic minute-bar synthesis: the exchange's
// WebSocket feed carries no candle channel, so this scheduler polls
// REST once a minute, aligned to the :10 mark, for every product in
// the current universe.
package bars

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/go-cryptoconnect/coinbasepro/log"
	"github.com/go-cryptoconnect/coinbasepro/queue"
	"github.com/go-cryptoconnect/coinbasepro/rest"
	"github.com/go-cryptoconnect/coinbasepro/types"
	"github.com/go-cryptoconnect/coinbasepro/universe"
)

const (
	msInMinute = int64(60_000)
	granularity = 60
)

// Scheduler synthesizes Bar events for every product in universe once
// per minute, offsetting the query to the :10 mark so the exchange has
// had time to close and publish the prior minute's candle.
type Scheduler struct {
	connector *rest.Connector
	universe  *universe.Universe
	queue     *queue.Queue[types.Event]
	limiter   *rate.Limiter
	poolSize  int

	currentMinute int64
}

// New constructs a Scheduler. poolSize bounds how many products are
// queried concurrently per minute (8 live, 2 sandbox per spec); the
// rate limiter further bounds aggregate dispatch rate under the
// profile's request cap.
func New(connector *rest.Connector, u *universe.Universe, q *queue.Queue[types.Event], poolSize int, ratePerSecond float64) *Scheduler {
	return &Scheduler{
		connector: connector,
		universe:  u,
		queue:     q,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), poolSize),
		poolSize:  poolSize,
	}
}

// QueryBarsForever aligns to a :10 mark (starting at once when already
// inside the [:10, :50) window), runs the first batch, sleeps to the
// following minute's :10 mark, then queries every 60 seconds. It never
// returns under normal operation; ctx cancellation is the only exit.
func (s *Scheduler) QueryBarsForever(ctx context.Context) error {
	nowMs := time.Now().UnixMilli()
	s.currentMinute = nowMs / msInMinute
	offsetMs := nowMs - s.currentMinute*msInMinute

	switch {
	case offsetMs < 10_000:
		time.Sleep(time.Duration(10_000-offsetMs) * time.Millisecond)
	case offsetMs > 50_000:
		time.Sleep(time.Duration(msInMinute-offsetMs+10_000) * time.Millisecond)
		s.currentMinute++
	}

	go s.queryBatch(ctx, s.currentMinute)

	nextMs := (s.currentMinute+1)*msInMinute + 10_000
	time.Sleep(time.Duration(nextMs-time.Now().UnixMilli()) * time.Millisecond)
	s.currentMinute++
	go s.queryBatch(ctx, s.currentMinute)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.currentMinute++
			go s.queryBatch(ctx, s.currentMinute)
		}
	}
}

// queryBatch fetches the most recently closed minute bar for every
// product currently in the universe. minute is the ticker-loop's
// currentMinute value at dispatch time, captured by the caller so this
// goroutine never reads that field concurrently with the loop's
// increment.
func (s *Scheduler) queryBatch(ctx context.Context, minute int64) {
	batchID := uuid.New()

	end := epochToISO((minute - 1) * 60)
	start := epochToISO((minute-1)*60 - 5)

	products := s.universe.ToSlice()

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.poolSize)

	for _, productID := range products {
		wg.Add(1)
		sem <- struct{}{}
		go func(productID string) {
			defer wg.Done()
			defer func() { <-sem }()
			s.queryOne(ctx, batchID, productID, start, end)
		}(productID)
	}

	wg.Wait()
}

func (s *Scheduler) queryOne(ctx context.Context, batchID uuid.UUID, productID, start, end string) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}

	rows, err := s.connector.GetBars(ctx, productID, granularity, start, end)
	if err != nil {
		log.Logger().Error().Str("batch", batchID.String()).Str("product", productID).Err(err).Msg("bars: query failed")
		return
	}
	if len(rows) == 0 {
		log.Logger().Debug().Str("batch", batchID.String()).Str("product", productID).Msg("bars: no bars received")
		return
	}

	row := rows[0]
	epochSec, low, high, open, close, volume := row[0], row[1], row[2], row[3], row[4], row[5]
	epochTimeNs := uint64(epochSec+60) * uint64(time.Second)

	bar := types.NewBar(productID, epochTimeNs, open, high, low, close, volume)
	s.queue.Enqueue(bar)

	log.Logger().Debug().Str("batch", batchID.String()).Str("product", productID).Msg("bars: enqueued")
}

func epochToISO(epochSec float64) string {
	return time.Unix(int64(epochSec), 0).UTC().Format(time.RFC3339)
}
