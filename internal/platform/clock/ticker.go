package clock

import (
	"context"
	"sync"
	"time"
)

// Ticker is a re-armable periodic task publishing the current time. At most
// one tick loop runs at any moment; Arm cancels the previous loop first.
type Ticker struct {
	clock  Clock
	period time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ch     chan time.Time
}

func NewTicker(clk Clock, period time.Duration) *Ticker {
	if period <= 0 {
		period = time.Second
	}
	return &Ticker{clock: clk, period: period, ch: make(chan time.Time, 1)}
}

// C delivers ticks. Slow readers only ever see the latest tick.
func (t *Ticker) C() <-chan time.Time {
	return t.ch
}

func (t *Ticker) Arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done
	go t.loop(ctx, done)
}

func (t *Ticker) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Ticker) stopLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
}

func (t *Ticker) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	tk := time.NewTicker(t.period)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			now := t.clock.Now()
			select {
			case t.ch <- now:
			default:
				// drop the stale tick and publish the fresh one
				select {
				case <-t.ch:
				default:
				}
				select {
				case t.ch <- now:
				default:
				}
			}
		}
	}
}
