package png

import (
	"container/heap"

	"github.com/mac/mtpng-go/src/compress"
	"github.com/mac/mtpng-go/src/workpool"
)

// resultHeap orders out-of-order workpool.GroupResult values by Index so
// the reassembler can drain them in stream order. Shaped directly on
// compress.nodeHeap (src/compress/huffman_tree.go): same five methods, same
// "slice that is also a heap.Interface" idiom, just ordered on Index
// instead of Huffman weight.
type resultHeap []workpool.GroupResult

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return h[i].Index < h[j].Index }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(workpool.GroupResult)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// idatSoftCap is the approximate number of compressed bytes the
// reassembler buffers before flushing an IDAT chunk. mtpng's sample tool
// uses 256 KiB IDAT chunks by default; there's nothing magic about the
// number beyond "small enough that a streaming consumer sees chunks at a
// steady pace, large enough that chunk framing overhead is negligible".
const idatSoftCap = 256 * 1024

// reassembler is C6: it receives workpool.GroupResult values in whatever
// order worker goroutines finish them, reorders them by Index using
// resultHeap, and emits a strictly ordered byte stream: zlib header once,
// then each group's raw DEFLATE bytes back to back, combining each group's
// Adler-32 with compress.Adler32Combine as it goes, buffered into IDAT
// chunks of roughly idatSoftCap bytes, finishing with the final empty
// block and the Adler-32 footer.
type reassembler struct {
	sink    Sink
	level   int
	pending resultHeap

	nextIndex    uint64
	headerSent   bool
	adler        uint32
	haveAdler    bool
	buf          []byte
	totalFiltLen int64
	err          error
}

func newReassembler(sink Sink, level int) *reassembler {
	return &reassembler{sink: sink, level: level}
}

// push accepts one group's result, arriving in any order, and drains as
// much of the now-contiguous prefix as is available.
func (r *reassembler) push(res workpool.GroupResult) error {
	if r.err != nil {
		return r.err
	}
	if res.Err != nil {
		r.err = wrapError(KindCompressorFailure, "worker failed to compress group", res.Err)
		return r.err
	}

	heap.Push(&r.pending, res)
	return r.drain()
}

// drain emits every result at the front of the heap whose Index matches
// nextIndex, in order, stopping at the first gap.
func (r *reassembler) drain() error {
	for len(r.pending) > 0 && r.pending[0].Index == r.nextIndex {
		res := heap.Pop(&r.pending).(workpool.GroupResult)

		if !r.headerSent {
			hdr, err := compress.ZlibHeaderBytes(32768, compress.FLEVELForCompressionLevel(r.level))
			if err != nil {
				r.err = wrapError(KindCompressorFailure, "failed to build zlib header", err)
				return r.err
			}
			r.buf = append(r.buf, hdr...)
			r.headerSent = true
		}

		r.buf = append(r.buf, res.Compressed...)

		if r.haveAdler {
			r.adler = compress.Adler32Combine(r.adler, res.Adler32, res.FilteredBytesLen)
		} else {
			r.adler = res.Adler32
			r.haveAdler = true
		}
		r.totalFiltLen += res.FilteredBytesLen

		if err := r.flushIDAT(idatSoftCap); err != nil {
			return err
		}

		r.nextIndex++
	}
	return nil
}

// flushIDAT writes a single IDAT chunk containing r.buf if it has grown
// past threshold, or unconditionally if threshold is 0 (used by finish).
func (r *reassembler) flushIDAT(threshold int) error {
	if len(r.buf) == 0 || (threshold > 0 && len(r.buf) < threshold) {
		return nil
	}
	chunk := &Chunk{chunkType: ChunkIDAT, Data: r.buf}
	if _, err := chunk.WriteTo(asWriter(r.sink)); err != nil {
		r.err = wrapError(KindSinkFailure, "failed to write IDAT chunk", err)
		return r.err
	}
	r.buf = nil
	return nil
}

// finish closes out the logical DEFLATE stream: a final empty fixed
// Huffman block, the Adler-32 footer, flushes whatever remains of buf into
// a last IDAT chunk, then writes IEND.
func (r *reassembler) finish() error {
	if r.err != nil {
		return r.err
	}
	if len(r.pending) > 0 {
		return newError(KindInvalidState, "reassembler finished with out-of-order groups still pending")
	}

	if !r.headerSent {
		// Zero rows is already rejected upstream (TooLittleData), but an
		// empty image (0 groups) still needs a valid, empty zlib stream.
		hdr, err := compress.ZlibHeaderBytes(32768, compress.FLEVELForCompressionLevel(r.level))
		if err != nil {
			return wrapError(KindCompressorFailure, "failed to build zlib header", err)
		}
		r.buf = append(r.buf, hdr...)
		r.headerSent = true
		r.adler = compress.Adler32(nil)
		r.haveAdler = true
	}

	final, err := compress.FinalEmptyBlock()
	if err != nil {
		return wrapError(KindCompressorFailure, "failed to build final empty block", err)
	}
	r.buf = append(r.buf, final...)

	footer := compress.ZlibFooterBytes(r.adler)
	r.buf = append(r.buf, footer[:]...)

	if err := r.flushIDAT(0); err != nil {
		return err
	}

	chunk := &Chunk{chunkType: ChunkIEND, Data: nil}
	if _, err := chunk.WriteTo(asWriter(r.sink)); err != nil {
		return wrapError(KindSinkFailure, "failed to write IEND chunk", err)
	}

	if err := r.sink.Flush(); err != nil {
		return wrapError(KindSinkFailure, "sink flush failed", err)
	}
	return nil
}

// asWriter adapts a Sink to the io.Writer-shaped interface Chunk.WriteTo
// expects, routing through checkedWrite so short writes surface as
// KindSinkFailure rather than a silently truncated stream.
type sinkWriter struct{ sink Sink }

func (w sinkWriter) Write(p []byte) (int, error) {
	if err := checkedWrite(w.sink, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func asWriter(sink Sink) sinkWriter {
	return sinkWriter{sink: sink}
}
