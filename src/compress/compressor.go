package compress

// Strategy selects the DEFLATE encoding strategy for a chunk of filtered
// scanline bytes, mirroring the zlib/mtpng strategy knobs exposed by
// Options.Strategy.
type Strategy int

const (
	// StrategyAdaptive is resolved to StrategyDefault or StrategyFiltered
	// before reaching a Compressor, based on how many rows in the group
	// chose a non-None PNG filter (see png.resolveStrategy). A Compressor
	// implementation is never asked to handle StrategyAdaptive directly.
	StrategyAdaptive Strategy = iota
	// StrategyDefault uses the backend's normal match-and-Huffman pipeline.
	StrategyDefault
	// StrategyFiltered biases the match finder away from very short matches,
	// which tends to help data that has already been filtered (PNG scanline
	// prediction residuals behave this way).
	StrategyFiltered
	// StrategyHuffman disables LZ77 matching entirely and Huffman-codes the
	// literal stream only.
	StrategyHuffman
	// StrategyRLE restricts matches to distance 1 (run-length style), the
	// zlib Z_RLE strategy.
	StrategyRLE
	// StrategyFixed always uses the RFC1951 fixed Huffman tables, skipping
	// the dynamic table construction; LZ77 matching still runs as usual.
	StrategyFixed
)

// Params configures one Compressor.Compress call.
type Params struct {
	// Level is the compression level, 1 (fastest) through 9 (smallest).
	Level int
	// Strategy selects the encoding strategy.
	Strategy Strategy
	// Dictionary is up to 32 KiB of bytes that precede Data in the logical
	// stream; back-references may reach into it but it is never itself
	// emitted. Pass nil for the first chunk of a stream.
	Dictionary []byte
	// Final marks this as the last raw DEFLATE block group of the stream.
	// When false, the backend must emit only non-final blocks and end on a
	// byte boundary (a sync flush), so a later call with a new Dictionary
	// slice of this call's trailing bytes produces a bit-identical
	// continuation of the same deflate stream.
	Final bool
}

// Compressor is the abstract DEFLATE back end C2 consumes. Exactly one
// implementation runs per chunk-partitioner group, entirely within a
// worker goroutine, with no shared mutable state between calls other than
// what Params carries in explicitly. This indirection is what lets the
// pipeline swap backends (see klauspostBackend and nativeBackend) without
// the filter bank, partitioner, or reassembler knowing which one is in
// use.
type Compressor interface {
	// Compress returns raw DEFLATE block bytes (no zlib header/trailer) for
	// data, honoring Params as described above.
	Compress(data []byte, params Params) ([]byte, error)
}

// NewCompressor returns the Compressor implementation appropriate for
// strategy: klauspostBackend handles everything compress/flate covers
// (Default, Filtered, Huffman); nativeBackend handles the two strategies
// it doesn't (RLE, Fixed). strategy must already be resolved — never pass
// StrategyAdaptive here.
func NewCompressor(strategy Strategy) Compressor {
	switch strategy {
	case StrategyRLE, StrategyFixed:
		return NewNativeBackend()
	default:
		return NewKlauspostBackend()
	}
}
