package engine

import "sync"

// shutdownBarrier is the "shutdown barrier sized W+2" spec.md §4.4
// names: the producer, each of the W consumers, and the main goroutine
// all rendezvous here exactly once, after the sentinel chunk has been
// seen and the overflow buffer has been drained. A sync.WaitGroup gives
// this for free: every party calls arrive, which both counts down and
// (via Wait) blocks until every other party has also arrived — the
// same "arrive_and_wait" the original's std::barrier provides, just
// single-generation, which is all a one-shot shutdown needs.
type shutdownBarrier struct {
	wg sync.WaitGroup
}

func newShutdownBarrier(parties int) *shutdownBarrier {
	b := &shutdownBarrier{}
	b.wg.Add(parties)
	return b
}

// arriveAndWait decrements the party count and blocks until every party
// has called arriveAndWait.
func (b *shutdownBarrier) arriveAndWait() {
	b.wg.Done()
	b.wg.Wait()
}
