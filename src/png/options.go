package png

import (
	"github.com/mac/mtpng-go/src/compress"
	"github.com/mac/mtpng-go/src/workpool"
)

// FilterStrategy selects how addRow picks a PNG filter type per scanline.
type FilterStrategy int

const (
	FilterStrategyNone FilterStrategy = iota
	FilterStrategySub
	FilterStrategyUp
	FilterStrategyAverage
	FilterStrategyPaeth
	// FilterStrategyMinSum tries every filter per row and keeps whichever
	// minimizes the sum of absolute filtered byte values.
	FilterStrategyMinSum
	// FilterStrategyAdaptive is an alias for FilterStrategyMinSum: the full
	// five-filter search, matching libpng's default heuristic.
	FilterStrategyAdaptive
	// FilterStrategyAdaptiveFast restricts the search to None/Sub/Up for
	// speed, trading a little ratio for roughly half the filter cost.
	FilterStrategyAdaptiveFast
)

// minChunkSize is the smallest row-group size Options.ChunkSize accepts:
// below this, per-group overhead (a zlib sync flush, a preset dictionary
// copy, a worker dispatch) stops paying for itself.
const minChunkSize = 32768

// Options configures one Encoder run: the shared worker pool it submits
// compression jobs to, the filter and DEFLATE strategy, the compression
// level, and the row-group size the chunk partitioner targets.
type Options struct {
	// ThreadPool is the shared workpool.Pool compression jobs run on. A nil
	// pool means WriteHeader creates a private single-encoder pool sized to
	// runtime.GOMAXPROCS(0) and releases it on Finish/Release.
	ThreadPool *workpool.Pool

	// FilterStrategy selects the per-row PNG filter heuristic.
	FilterStrategy FilterStrategy

	// Strategy selects the DEFLATE strategy passed to the Compressor.
	// compress.StrategyAdaptive (the zero value) is resolved per group by
	// resolveStrategy based on how many rows in that group picked a
	// non-None filter.
	Strategy compress.Strategy

	// CompressionLevel is 1 (fastest) through 9 (smallest).
	CompressionLevel int

	// ChunkSize is the target number of filtered bytes (filter byte + row
	// data) per row group before it is handed to a worker. Zero resolves
	// to minChunkSize. Values below minChunkSize are rejected by Validate.
	ChunkSize int
}

// FastOptions favors encode speed: low compression level, the cheap
// filter heuristic.
func FastOptions() Options {
	return Options{
		FilterStrategy:   FilterStrategyAdaptiveFast,
		Strategy:         compress.StrategyAdaptive,
		CompressionLevel: 1,
		ChunkSize:        minChunkSize,
	}
}

// BalancedOptions is the default: full adaptive filtering at a mid
// compression level.
func BalancedOptions() Options {
	return Options{
		FilterStrategy:   FilterStrategyAdaptive,
		Strategy:         compress.StrategyAdaptive,
		CompressionLevel: 6,
		ChunkSize:        minChunkSize,
	}
}

// MaxOptions favors output size over speed.
func MaxOptions() Options {
	return Options{
		FilterStrategy:   FilterStrategyAdaptive,
		Strategy:         compress.StrategyAdaptive,
		CompressionLevel: 9,
		ChunkSize:        minChunkSize,
	}
}

// Validate checks the option values an Encoder can't silently default its
// way around.
func (o Options) Validate() error {
	if o.ChunkSize != 0 && o.ChunkSize < minChunkSize {
		return newError(KindInvalidParam, "chunk size must be at least 32768 bytes")
	}
	if o.CompressionLevel < 0 || o.CompressionLevel > 9 {
		return newError(KindInvalidParam, "compression level must be between 0 and 9")
	}
	return nil
}

func (o Options) resolvedChunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return minChunkSize
}

func (o Options) resolvedLevel() int {
	if o.CompressionLevel <= 0 {
		return 6
	}
	return o.CompressionLevel
}

// resolveStrategy maps compress.StrategyAdaptive onto StrategyDefault or
// StrategyFiltered for one row group, based on how many of its rows chose
// a non-None PNG filter: mostly-filtered data tends to compress better
// with the match finder biased away from short matches (StrategyFiltered);
// mostly-None data looks more like the original pixels, where the normal
// pipeline (StrategyDefault) wins more often. Strategies other than
// StrategyAdaptive pass through unchanged.
func resolveStrategy(requested compress.Strategy, filteredBytes []byte, stride int) compress.Strategy {
	if requested != compress.StrategyAdaptive {
		return requested
	}

	rowLen := stride + 1
	if rowLen <= 0 || len(filteredBytes) == 0 {
		return compress.StrategyDefault
	}

	total := 0
	nonNone := 0
	for offset := 0; offset+rowLen <= len(filteredBytes); offset += rowLen {
		total++
		if filteredBytes[offset] != byte(FilterNone) {
			nonNone++
		}
	}
	if total == 0 {
		return compress.StrategyDefault
	}
	if nonNone*2 >= total {
		return compress.StrategyFiltered
	}
	return compress.StrategyDefault
}
