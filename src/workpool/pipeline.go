package workpool

import "sync"

// RowGroup is one chunk partitioner job input (spec's "row group"):
// already-filtered scanline bytes for a row-aligned range, plus the
// preset dictionary carried over from the previous group's filtering.
// FilteredBytes is RowCount filter-type-byte-plus-stride records
// concatenated; PriorDictionary is the previous group's trailing
// filtered bytes, truncated to 32 KiB, or nil for group 0.
type RowGroup struct {
	Index           uint64
	FilteredBytes   []byte
	RowCount        int
	PriorDictionary []byte
}

// GroupResult is one completed job's output. Compressed is raw DEFLATE
// bytes (never a final block); Adler32 and FilteredBytesLen describe only
// this group's own filtered bytes, for the reassembler's rolling combine.
// The next group's PriorDictionary is derived straight from
// RowGroup.FilteredBytes by the sequential partitioner, not from this
// result, since filtering (and therefore the dictionary tail) never
// depends on compression finishing.
type GroupResult struct {
	Index            uint64
	Compressed       []byte
	Adler32          uint32
	FilteredBytesLen int64
	Err              error
}

// JobFunc compresses one RowGroup into a GroupResult. It must be a pure
// function of its input — jobs never read or write encoder state, so
// they can run on any worker in any order.
type JobFunc func(RowGroup) GroupResult

// Pipeline binds one Pool to a single job stream: it owns the
// max_in_flight backpressure semaphore and the completion channel one
// Encoder's reassembler drains. Multiple Pipelines (one per Encoder) can
// share a single Pool.
type Pipeline struct {
	pool    *Pool
	fn      JobFunc
	sem     chan struct{}
	results chan GroupResult
	wg      sync.WaitGroup
}

// NewPipeline creates a pipeline bound to pool, running fn for every
// submitted group. maxInFlight bounds the number of groups that may be
// outstanding (submitted but whose result has not yet been sent on
// Results) at once — spec's max(2, 2*workers). Results itself buffers up
// to maxInFlight further completed results.
func NewPipeline(pool *Pool, maxInFlight int, fn JobFunc) *Pipeline {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Pipeline{
		pool:    pool,
		fn:      fn,
		sem:     make(chan struct{}, maxInFlight),
		results: make(chan GroupResult, maxInFlight),
	}
}

// Results returns the channel a reassembler goroutine should drain.
// Results can arrive in any order; it is the receiver's job (see
// png.reassembler) to reorder them by Index before acting on them. The
// channel closes once Wait has collected every submitted job's result.
func (pl *Pipeline) Results() <-chan GroupResult {
	return pl.results
}

// Submit blocks until fewer than maxInFlight groups are outstanding,
// then schedules g on the pool. This blocking is write_image_rows's
// backpressure: callers producing rows faster than workers can compress
// them stall here instead of buffering unboundedly.
func (pl *Pipeline) Submit(g RowGroup) {
	pl.sem <- struct{}{}
	pl.wg.Add(1)
	pl.pool.Go(func() {
		defer pl.wg.Done()
		defer func() { <-pl.sem }()
		pl.results <- pl.fn(g)
	})
}

// Wait blocks until every submitted job has pushed its result onto
// Results, then closes it. Call this once, after the last Submit.
func (pl *Pipeline) Wait() {
	pl.wg.Wait()
	close(pl.results)
}
