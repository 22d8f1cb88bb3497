package png

import (
	"bytes"
	"runtime"

	"github.com/mac/mtpng-go/src/compress"
	"github.com/mac/mtpng-go/src/workpool"
)

// encoderState is C7's lifecycle: Created -> HeaderWritten -> PaletteWritten?
// -> TransparencyWritten? -> RowsStreaming -> Finished, with Poisoned
// reachable from anywhere once a call fails.
type encoderState int

const (
	stateCreated encoderState = iota
	stateHeaderWritten
	statePaletteWritten
	stateTransparencyWritten
	stateRowsStreaming
	stateFinished
	statePoisoned
)

// Encoder is the streaming PNG encoder: the state machine and public
// facade that drives the chunk partitioner, the worker pool pipeline, and
// the reassembler in lockstep. Construct with NewEncoderStream for true
// row-at-a-time streaming, or with NewEncoder for the one-shot
// whole-image convenience wrapper built on top of it.
type Encoder struct {
	sink   Sink
	header *Header
	opts   Options
	state  encoderState

	ownedPool *workpool.Pool
	pipeline  *workpool.Pipeline
	part      *partitioner
	reasm     *reassembler

	resultsDone chan struct{}
	consumeErr  error

	rowsWritten int
	stride      int
}

// NewEncoderStream validates header and opts and returns an Encoder ready
// for WriteHeader. Nothing is written to sink until WriteHeader is called.
func NewEncoderStream(sink Sink, header *Header, opts Options) (*Encoder, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Encoder{sink: sink, header: header, opts: opts, state: stateCreated}, nil
}

func (e *Encoder) poison(err error) error {
	e.state = statePoisoned
	return err
}

func (e *Encoder) requireState(allowed ...encoderState) error {
	if e.state == statePoisoned {
		return ErrPoisoned
	}
	for _, s := range allowed {
		if e.state == s {
			return nil
		}
	}
	return newError(KindInvalidState, "operation not permitted in the encoder's current state")
}

// WriteHeader writes the PNG signature and IHDR chunk, then brings up the
// worker pool, compression pipeline, chunk partitioner, and reassembler
// that every later call drives.
func (e *Encoder) WriteHeader() error {
	if err := e.requireState(stateCreated); err != nil {
		return err
	}

	if err := checkedWrite(e.sink, Signature()); err != nil {
		return e.poison(err)
	}
	if err := WriteIHDR(asWriter(e.sink), e.header); err != nil {
		return e.poison(err)
	}

	pool := e.opts.ThreadPool
	if pool == nil {
		pool = workpool.NewPool(runtime.GOMAXPROCS(0))
		e.ownedPool = pool
	} else if err := pool.Retain(); err != nil {
		return e.poison(wrapError(KindInvalidState, "thread pool already released", err))
	}

	// max(2, 2*workers): enough in-flight groups that a worker finishing
	// early never starves while a slow group is still compressing, without
	// letting an unbounded number of filtered-but-uncompressed groups pile
	// up in memory.
	maxInFlight := pool.Workers() * 2
	if maxInFlight < 2 {
		maxInFlight = 2
	}

	level := e.opts.resolvedLevel()
	strategy := e.opts.Strategy
	stride := e.header.Stride()

	e.pipeline = workpool.NewPipeline(pool, maxInFlight, func(g workpool.RowGroup) workpool.GroupResult {
		resolved := resolveStrategy(strategy, g.FilteredBytes, stride)
		backend := compress.NewCompressor(resolved)
		compressed, err := backend.Compress(g.FilteredBytes, compress.Params{
			Level:      level,
			Strategy:   resolved,
			Dictionary: g.PriorDictionary,
			Final:      false,
		})
		if err != nil {
			return workpool.GroupResult{Index: g.Index, Err: err}
		}
		return workpool.GroupResult{
			Index:            g.Index,
			Compressed:       compressed,
			Adler32:          compress.Adler32(g.FilteredBytes),
			FilteredBytesLen: int64(len(g.FilteredBytes)),
		}
	})

	e.part = newPartitioner(e.header, e.opts.resolvedChunkSize(), e.opts.FilterStrategy)
	e.reasm = newReassembler(e.sink, level)
	e.stride = stride

	e.resultsDone = make(chan struct{})
	go func() {
		defer close(e.resultsDone)
		for res := range e.pipeline.Results() {
			if err := e.reasm.push(res); err != nil && e.consumeErr == nil {
				e.consumeErr = err
			}
		}
	}()

	e.state = stateHeaderWritten
	return nil
}

// WritePalette writes a PLTE chunk. Required before WriteImageRows for
// Indexed images; optional ("suggested palette") for Truecolor and
// TruecolorAlpha; rejected for Greyscale and GreyscaleAlpha.
func (e *Encoder) WritePalette(palette Palette) error {
	if err := e.requireState(stateHeaderWritten); err != nil {
		return err
	}
	if err := ValidatePLTEAllowed(e.header.ColorType); err != nil {
		return e.poison(err)
	}
	if err := WritePLTE(asWriter(e.sink), palette); err != nil {
		return e.poison(err)
	}
	e.state = statePaletteWritten
	return nil
}

// WriteTransparency writes a tRNS chunk. trns is a 2-byte grey threshold
// for Greyscale, a 6-byte RGB threshold for Truecolor, or a per-palette-
// entry alpha array for Indexed (which must follow WritePalette).
func (e *Encoder) WriteTransparency(trns []byte) error {
	if err := e.requireState(stateHeaderWritten, statePaletteWritten); err != nil {
		return err
	}
	if e.header.ColorType == ColorIndexed && e.state != statePaletteWritten {
		return e.poison(newError(KindInvalidState, "tRNS for indexed color must follow PLTE"))
	}
	if err := ValidateTRNSForColorType(e.header.ColorType, trns); err != nil {
		return e.poison(err)
	}
	chunk := &Chunk{chunkType: ChunkTRNS, Data: trns}
	if _, err := chunk.WriteTo(asWriter(e.sink)); err != nil {
		return e.poison(wrapError(KindSinkFailure, "failed to write tRNS chunk", err))
	}
	e.state = stateTransparencyWritten
	return nil
}

// WriteImageRows feeds raw, unfiltered scanline bytes into the encoder.
// rows must be a whole number of scanlines (len(rows) a multiple of the
// header's stride); a partial row is KindTooMuchData. Rows are filtered
// immediately and accumulated into row groups, which are submitted to the
// worker pool as soon as each reaches the configured chunk size.
// WriteImageRows may be called any number of times; it may block if the
// pipeline's in-flight group limit is reached (backpressure).
func (e *Encoder) WriteImageRows(rows []byte) error {
	if err := e.requireState(stateHeaderWritten, statePaletteWritten, stateTransparencyWritten, stateRowsStreaming); err != nil {
		return err
	}
	if PLTERequired(e.header.ColorType) && e.state == stateHeaderWritten {
		return e.poison(newError(KindInvalidState, "indexed color requires WritePalette before image rows"))
	}
	e.state = stateRowsStreaming

	if e.stride == 0 || len(rows)%e.stride != 0 {
		return e.poison(newError(KindTooMuchData, "row data is not a whole multiple of the image stride"))
	}

	for offset := 0; offset+e.stride <= len(rows); offset += e.stride {
		if e.rowsWritten >= int(e.header.Height) {
			return e.poison(newError(KindTooMuchData, "more rows written than the header's height"))
		}
		row := rows[offset : offset+e.stride]
		if g, ok := e.part.addRow(row); ok {
			e.pipeline.Submit(g)
		}
		e.rowsWritten++
	}
	return nil
}

// Finish flushes any partial row group, waits for every outstanding
// compression job and the reassembler's consumer goroutine, writes the
// closing DEFLATE block, Adler-32 footer, and IEND chunk, and flushes the
// sink. The Encoder is unusable (other than Release) afterward.
func (e *Encoder) Finish() error {
	if err := e.requireState(stateHeaderWritten, statePaletteWritten, stateTransparencyWritten, stateRowsStreaming); err != nil {
		return err
	}
	if e.rowsWritten != int(e.header.Height) {
		return e.poison(newError(KindTooLittleData, "finish called before all image rows were written"))
	}

	if g, ok := e.part.flush(); ok {
		e.pipeline.Submit(g)
	}
	e.pipeline.Wait()
	<-e.resultsDone

	if e.consumeErr != nil {
		return e.poison(e.consumeErr)
	}
	if err := e.reasm.finish(); err != nil {
		return e.poison(err)
	}

	e.state = stateFinished
	return e.releasePool()
}

func (e *Encoder) releasePool() error {
	if e.ownedPool != nil {
		return e.ownedPool.Release()
	}
	if e.opts.ThreadPool != nil {
		return e.opts.ThreadPool.Release()
	}
	return nil
}

// Release tears down the encoder's resources (its owned or retained
// thread pool reference) without requiring Finish to have succeeded. It
// is safe to call after Finish, or instead of it when abandoning a
// partially-written stream.
func (e *Encoder) Release() error {
	if e.state == stateFinished {
		return nil
	}
	e.state = statePoisoned
	if e.pipeline == nil {
		// WriteHeader never ran (or failed before retaining/creating a
		// pool): there is nothing to release.
		return nil
	}
	return e.releasePool()
}

// NewEncoder is the one-shot convenience constructor: width x height,
// 8-bit color. Pair with Encode for callers that already have the whole
// image in memory and don't need true streaming or a shared thread pool.
func NewEncoder(width, height int, colorType ColorType) (*Encoder, error) {
	header := NewHeader(width, height)
	header.SetColor(colorType, 8)
	return NewEncoderStream(nil, header, BalancedOptions())
}

// Encode runs the full Created->Finished lifecycle over an in-memory
// pixel buffer (raw, unfiltered, row-major, BytesPerPixel(colorType)
// bytes per pixel) and returns the complete PNG byte stream.
func (e *Encoder) Encode(pixels []byte) ([]byte, error) {
	bpp := BytesPerPixel(e.header.ColorType)
	expected := int(e.header.Width) * int(e.header.Height) * bpp
	if len(pixels) != expected {
		return nil, newError(KindInvalidParam, "pixel data length does not match width*height*bytesPerPixel")
	}

	var buf bytes.Buffer
	e.sink = WriterSink(&buf)
	e.state = stateCreated
	e.rowsWritten = 0

	if err := e.WriteHeader(); err != nil {
		return nil, err
	}
	if err := e.WriteImageRows(pixels); err != nil {
		return nil, err
	}
	if err := e.Finish(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
