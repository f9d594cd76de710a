package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-cryptoconnect/coinbasepro/strategy"
	"github.com/go-cryptoconnect/coinbasepro/types"
)

type recordingStrategy struct {
	bars   []types.Bar
	ticks  []types.Tick
	handle strategy.Handle
}

func (r *recordingStrategy) OnInit(h strategy.Handle)             { r.handle = h }
func (r *recordingStrategy) OnStart()                             {}
func (r *recordingStrategy) OnBar(bar types.Bar)                  { r.bars = append(r.bars, bar) }
func (r *recordingStrategy) OnTick(tick types.Tick)               { r.ticks = append(r.ticks, tick) }
func (r *recordingStrategy) OnTrade(types.Trade)                  {}
func (r *recordingStrategy) OnOrderStatus(types.OrderStatusEvent) {}
func (r *recordingStrategy) OnTransaction(types.TransactionEvent) {}
func (r *recordingStrategy) OnExit()                              {}

func TestFeedStrategyForeverDispatchesByType(t *testing.T) {
	s := &recordingStrategy{}
	a := New(SandboxEndpoints, "key", "c2VjcmV0", "pass", s)

	require.NotNil(t, s.handle)

	go a.feedStrategyForever()

	bar := types.NewBar("BTC-USD", 1, 1, 2, 0, 1, 10)
	a.queue.Enqueue(bar)

	require.Eventually(t, func() bool { return len(s.bars) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, bar, s.bars[0])
}

func TestLookupProductReturnsFalseWhenMissing(t *testing.T) {
	s := &recordingStrategy{}
	a := New(SandboxEndpoints, "key", "c2VjcmV0", "pass", s)

	_, ok := a.LookupProduct("UNKNOWN-PRODUCT")
	assert.False(t, ok)
}

func TestOnInitReceivesHandleBeforeAnyIO(t *testing.T) {
	s := &recordingStrategy{}
	_ = New(SandboxEndpoints, "key", "c2VjcmV0", "pass", s)

	require.NotNil(t, s.handle)
	_, ok := s.handle.LookupProduct("BTC-USD")
	assert.False(t, ok)
}
