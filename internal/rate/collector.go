package rate

import (
	"context"
	"sync"

	"bankrates/internal/adapters"
	"bankrates/internal/domain"
)

const defaultWorkers = 4

type fetchResult struct {
	quote domain.Quote
	ok    bool
}

// Collector fetches every configured bank's quote and assembles a snapshot.
type Collector struct {
	source  adapters.RateSource
	workers int
}

// Collect returns the quotes of all banks that answered, in endpoints order. Banks that
// could not be read are left out; if none answered the snapshot is empty.
func (c *Collector) Collect(ctx context.Context, endpoints []domain.BankEndpoint) domain.Snapshot {
	if len(endpoints) == 0 {
		return domain.Snapshot{}
	}

	// STEP 1: queue endpoint indexes, each worker takes the next one until the queue is drained
	workQueue := make(chan int, len(endpoints))
	for i := range endpoints {
		workQueue <- i
	}
	close(workQueue)

	// STEP 2: every worker writes into the slot of the endpoint it processed, so no locking is needed
	results := make([]fetchResult, len(endpoints))

	var wg sync.WaitGroup
	for i := 0; i < min(c.workers, len(endpoints)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.runWorker(ctx, workQueue, endpoints, results)
		}()
	}
	wg.Wait()

	// STEP 3: keeping successful results only, in configured order, one per bank
	snapshot := make(domain.Snapshot, 0, len(endpoints))
	seen := make(map[string]struct{}, len(endpoints))
	for i, res := range results {
		if !res.ok || !res.quote.Valid() {
			continue
		}
		bank := endpoints[i].Bank
		if _, dup := seen[bank]; dup {
			continue
		}
		seen[bank] = struct{}{}
		snapshot = append(snapshot, domain.BankQuote{Bank: bank, Quote: res.quote})
	}
	return snapshot
}

func (c *Collector) runWorker(ctx context.Context, workQueue <-chan int, endpoints []domain.BankEndpoint, results []fetchResult) {
	for idx := range workQueue {
		if ctx.Err() != nil {
			return
		}
		quote, ok := c.source.Fetch(ctx, endpoints[idx])
		results[idx] = fetchResult{quote: quote, ok: ok}
	}
}

func NewCollector(source adapters.RateSource, workers int) *Collector {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Collector{source: source, workers: workers}
}
