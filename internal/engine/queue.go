package engine

import "sync"

// chunkQueue is the bounded FIFO of spec.md §4.4/§5: at most M chunks
// resident, a waiting counter shared with the put/get condition
// variables, and an adaptive M that grows when consumers are starved
// and shrinks when they're not.
//
// This is deliberately a hand-rolled mutex+condvar queue rather than a
// buffered channel: spec.md's put/get algorithm (§4.4) ties queue
// admission to whether a consumer is *currently waiting*, which a plain
// buffered channel has no way to observe. This is squarely inside
// spec.md §1's "THE CORE" — the concurrency coordination is the
// documented hard part, not an ambient concern with a library
// substitute (see DESIGN.md).
type chunkQueue struct {
	mu     sync.Mutex
	canPut *sync.Cond
	canGet *sync.Cond

	items   []Chunk
	waiting int

	m, minM, maxM int
	stopped       bool
}

// newChunkQueue builds a queue for w consumers, with M starting at 3w
// clamped to [2w, 5w] per spec.md §4.4.
func newChunkQueue(w int) *chunkQueue {
	if w < 1 {
		w = 1
	}
	q := &chunkQueue{
		m:    clamp(3*w, 2*w, 5*w),
		minM: 2 * w,
		maxM: 5 * w,
	}
	q.canPut = sync.NewCond(&q.mu)
	q.canGet = sync.NewCond(&q.mu)
	return q
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// put blocks until the queue has room (len < M) or a consumer is
// already waiting at the get side, then enqueues c and adjusts M once
// for this chunk: grown if a consumer was starved, shrunk otherwise.
// put refuses to enqueue once stop has been requested — reporting that
// via ok=false rather than admitting the chunk anyway — so a stop
// request (e.g. a consumer aborting on a malformed line) caps the
// queue at M chunks for the rest of the run instead of letting an
// unblocked producer race ahead through the whole file (spec.md's I4
// and the §5 resident-memory bound both hold only if admission stops
// the instant stop is requested, not just once the queue drains).
func (q *chunkQueue) put(c Chunk) (ok bool) {
	q.mu.Lock()
	for len(q.items) >= q.m && q.waiting == 0 && !q.stopped {
		q.canPut.Wait()
	}
	if q.stopped {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, c)
	if q.waiting > 0 {
		q.m = clamp(q.m+1, q.minM, q.maxM)
	} else {
		q.m = clamp(q.m-1, q.minM, q.maxM)
	}
	q.mu.Unlock()
	q.canGet.Signal()
	return true
}

// get blocks until the queue is non-empty or stop has been requested,
// then dequeues the front chunk. ok is false only when stop is set and
// the queue is empty, meaning there is nothing left to process.
func (q *chunkQueue) get() (c Chunk, ok bool) {
	q.mu.Lock()
	q.waiting++
	for len(q.items) == 0 && !q.stopped {
		q.canGet.Wait()
	}
	q.waiting--
	if len(q.items) == 0 {
		q.mu.Unlock()
		return Chunk{}, false
	}
	c, q.items = q.items[0], q.items[1:]
	q.mu.Unlock()
	q.canPut.Signal()
	return c, true
}

// requestStop sets the stop flag and wakes every blocked put/get
// waiter so they can observe it. Idempotent.
func (q *chunkQueue) requestStop() {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	q.canGet.Broadcast()
	q.canPut.Broadcast()
}

// isStopped reports whether stop has been requested, so a producer can
// check it between chunks and bail out promptly instead of waiting to
// find out the hard way via a refused put.
func (q *chunkQueue) isStopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopped
}
