package balance

import (
	"context"
	"sync"
	"time"
)

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 16

// Poller refetches an owner's balance each time it is triggered. Every
// trigger launches exactly one fetch; overlapping fetches are neither
// merged nor ordered, so Latest holds whichever completed last.
type Poller struct {
	fetcher *Fetcher
	owner   Owner

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	triggers uint64
	latest   Update
	subs     []chan Update
	closed   bool
}

// NewPoller creates a poller for owner. Fetches run under ctx until Close.
func NewPoller(ctx context.Context, fetcher *Fetcher, owner Owner) *Poller {
	ctx, cancel := context.WithCancel(ctx)
	return &Poller{
		fetcher: fetcher,
		owner:   owner,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Trigger launches one fetch and returns its trigger number. It returns 0
// once the poller is closed.
func (p *Poller) Trigger() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0
	}

	p.triggers++
	n := p.triggers
	p.wg.Add(1)
	go p.fetch(n)
	return n
}

// Triggers returns how many fetches have been launched.
func (p *Poller) Triggers() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.triggers
}

func (p *Poller) fetch(n uint64) {
	defer p.wg.Done()

	u := Update{
		Trigger:   n,
		Balance:   p.fetcher.FetchBalance(p.ctx, p.owner),
		UpdatedAt: time.Now(),
	}
	// A fetch cut short by Close is not a result.
	if p.ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	p.latest = u
	subs := append([]chan Update(nil), p.subs...)
	p.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- u:
		case <-p.ctx.Done():
			return
		}
	}
}

// Latest returns the most recently completed update. Trigger is 0 before
// any fetch completes.
func (p *Poller) Latest() Update {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Subscribe returns a channel receiving every completed update. The channel
// is closed by Close.
func (p *Poller) Subscribe() <-chan Update {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Update, subscriberBuffer)
	if p.closed {
		close(ch)
		return ch
	}
	p.subs = append(p.subs, ch)
	return ch
}

// Run triggers immediately and then every interval until ctx ends or the
// poller is closed.
func (p *Poller) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.Trigger()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.Trigger()
		}
	}
}

// Wait blocks until all launched fetches have finished.
func (p *Poller) Wait() {
	p.wg.Wait()
}

// Close cancels in-flight fetches, waits for them, and closes subscriber
// channels. Latest keeps the last update completed before Close.
func (p *Poller) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		close(ch)
	}
	p.subs = nil
}
