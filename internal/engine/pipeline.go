package engine

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pipeline is the Aggregator/Pipeline component of spec.md §4.4: one
// producer goroutine, Workers consumer goroutines, one Shard per
// consumer, a bounded queue between them, and a shutdown barrier.
//
// The goroutine lifecycle and error propagation are handled by
// golang.org/x/sync/errgroup, the teacher's own dependency
// (weirdgiraffe-1brc's Solve uses errgroup.WithContext exactly this
// way for its producer + N workers). The queue/barrier/overflow
// machinery underneath is spec-mandated and has no library
// equivalent — see DESIGN.md.
type Pipeline struct {
	// Workers is W, the number of consumer goroutines. New sets it to
	// runtime.NumCPU() (spec.md §6's logical-core-count default),
	// falling back to 1 if the runtime reports nothing usable; Run
	// treats any value below 1 as 1.
	Workers int
	// Stride is the mapper chunk size in bytes. Zero selects
	// DefaultStride().
	Stride int
}

// New returns a Pipeline configured with the host's logical core count.
func New() *Pipeline {
	w := runtime.NumCPU()
	if w < 1 {
		w = 1
	}
	return &Pipeline{Workers: w}
}

// Run ingests path end to end and returns the merged per-name
// aggregates, ready for report.go to render.
func (p *Pipeline) Run(path string) (map[string]MetaInfo, error) {
	w := p.Workers
	if w < 1 {
		w = 1
	}

	mapper, err := OpenMapper(path, p.Stride)
	if err != nil {
		return nil, err
	}
	defer mapper.Close()

	shards := make([]*Shard, w)
	for i := range shards {
		shards[i] = NewShard()
	}

	q := newBoundedQueue(w)
	barrier := newShutdownBarrier(w + 2)
	overflow := &overflowBuffer{}

	eg, ctx := errgroup.WithContext(context.Background())

	eg.Go(func() error {
		return runProducer(ctx, mapper, q, overflow, barrier)
	})
	for i := 0; i < w; i++ {
		id := i
		eg.Go(func() error {
			return runConsumer(ctx, q, shards[id], overflow, barrier)
		})
	}

	barrier.arriveAndWait()
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return mergeShards(shards), nil
}

// overflowBuffer accumulates the head and tail of every chunk, in file
// order, so that lines split across a chunk boundary are reassembled
// before parsing. Written only by the producer; read only by the one
// consumer that dequeues the sentinel, after the queue's own
// lock/unlock has established a happens-before edge between the last
// producer write and that read (see runConsumer).
type overflowBuffer struct {
	buf []byte
}

// boundedQueue is chunkQueue under the name this file uses it by; kept
// as a distinct alias so the pipeline-level code reads in terms of the
// spec's vocabulary while queue.go stays a self-contained, reusable
// bounded queue of Chunk values.
type boundedQueue = chunkQueue

func newBoundedQueue(w int) *boundedQueue { return newChunkQueue(w) }

// sentinelChunk is the "single distinguished empty chunk" spec.md §4.4
// names: a body chunk with a nil byte slice and Sentinel set, produced
// exactly once per run after the mapper is exhausted.
func sentinelChunk() Chunk { return Chunk{Offset: -1, Bytes: nil, Sentinel: true} }

func runProducer(ctx context.Context, m *Mapper, q *boundedQueue, overflow *overflowBuffer, barrier *shutdownBarrier) error {
	for chunk := range m.Chunks(ctx) {
		// q.isStopped() is checked alongside ctx.Err() because a
		// consumer that hits a malformed line calls requestStop()
		// directly, well before errgroup's ctx is ever cancelled (that
		// only happens once every goroutine, including this one, has
		// returned). Without this check the producer would keep
		// pulling chunks from the mapper and folding them into
		// overflow for the rest of the file after an abort.
		if ctx.Err() != nil || q.isStopped() {
			break
		}

		first := bytes.IndexByte(chunk.Bytes, '\n')
		if first == -1 {
			// No newline anywhere in this window: the whole thing is
			// interior to a line that started earlier and continues
			// past this chunk. Fold it into the overflow buffer and
			// move on without enqueuing an empty body.
			overflow.buf = append(overflow.buf, chunk.Bytes...)
			continue
		}
		last := bytes.LastIndexByte(chunk.Bytes, '\n')

		overflow.buf = append(overflow.buf, chunk.Bytes[:first+1]...)
		overflow.buf = append(overflow.buf, chunk.Bytes[last+1:]...)

		if body := chunk.Bytes[first+1 : last+1]; len(body) > 0 {
			if !q.put(Chunk{Offset: chunk.Offset + first + 1, Bytes: body}) {
				break
			}
		}
	}

	q.put(sentinelChunk())
	barrier.arriveAndWait()
	return nil
}

func runConsumer(ctx context.Context, q *boundedQueue, shard *Shard, overflow *overflowBuffer, barrier *shutdownBarrier) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvariantViolated, r)
			q.requestStop()
			barrier.arriveAndWait()
		}
	}()

	for {
		chunk, ok := q.get()
		if !ok {
			barrier.arriveAndWait()
			return nil
		}
		if chunk.Sentinel {
			scanLines(overflow.buf, shard)
			q.requestStop()
			barrier.arriveAndWait()
			return nil
		}
		if ctx.Err() != nil {
			barrier.arriveAndWait()
			return nil
		}
		scanLines(chunk.Bytes, shard)
	}
}

// scanLines walks a body of complete `name;value\n`-terminated lines
// and folds each one into shard. This is the "line scanner" spec.md
// §4.4 describes: it never straddles a boundary, because the pipeline
// only ever calls it with either a chunk's interior body or the fully
// reassembled overflow buffer.
func scanLines(body []byte, shard *Shard) {
	for len(body) > 0 {
		nl := bytes.IndexByte(body, '\n')
		var line []byte
		if nl == -1 {
			line, body = body, nil
		} else {
			line, body = body[:nl], body[nl+1:]
		}
		if len(line) == 0 {
			continue
		}
		sep := bytes.IndexByte(line, ';')
		if sep < 0 {
			panic(fmt.Sprintf("malformed line, no separator: %q", line))
		}
		shard.accept(line[:sep], parseTenths(line[sep+1:]))
	}
}
