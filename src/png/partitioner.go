package png

import "github.com/mac/mtpng-go/src/workpool"

// maxDictionary is the largest preset dictionary a DEFLATE window can
// reference: 32 KiB, the same window size the zlib header advertises.
const maxDictionary = 32768

// partitioner is C3+C4 fused: it accumulates raw scanlines as they are
// handed to WriteImageRows, filters each one immediately (this is why it
// is sequential rather than itself running on the worker pool — see
// closeGroup and dictionaryTail below), and groups consecutive filtered scanlines into
// workpool.RowGroup values once their size reaches chunkSize. Only the
// compression step that follows is parallel.
type partitioner struct {
	header    *Header
	chunkSize int
	filterSel FilterStrategy

	stride int
	bpp    int

	prevRow []byte // raw bytes of the previously filtered row
	rowsIn  int    // raw rows consumed so far

	groupFiltered []byte // filtered bytes (filter byte + row) accumulated for the open group
	groupRows     int
	nextIndex     uint64

	priorGroupFiltered []byte // tail (<=32KiB) of the previous group's filtered bytes
}

func newPartitioner(h *Header, chunkSize int, filterSel FilterStrategy) *partitioner {
	return &partitioner{
		header:    h,
		chunkSize: chunkSize,
		filterSel: resolveDefaultFilterStrategy(h.ColorType, filterSel),
		stride:    h.Stride(),
		bpp:       h.FilterBytesPerPixel(),
	}
}

// resolveDefaultFilterStrategy pins the adaptive heuristics to FilterNone
// for indexed-color images: filtering disturbs the palette-index relationship
// the way it exploits sample-value correlation for truecolor/greyscale data,
// so None is the only filter PNG's own recommendation endorses for Indexed.
// An explicit (non-adaptive) FilterStrategy is left alone — that is the
// caller overriding the heuristic, not relying on it.
func resolveDefaultFilterStrategy(colorType ColorType, requested FilterStrategy) FilterStrategy {
	if colorType != ColorIndexed {
		return requested
	}
	if requested == FilterStrategyAdaptive || requested == FilterStrategyAdaptiveFast {
		return FilterStrategyNone
	}
	return requested
}

// addRow filters one raw scanline (exactly stride bytes) and appends it to
// the open group, returning a completed RowGroup whenever the group has
// grown to at least chunkSize filtered bytes. ok is false when the group
// is still accumulating.
func (p *partitioner) addRow(row []byte) (workpool.RowGroup, bool) {
	filterType, filtered := SelectFilterWithStrategy(row, p.prevRow, p.bpp, p.filterSel)

	p.groupFiltered = append(p.groupFiltered, byte(filterType))
	p.groupFiltered = append(p.groupFiltered, filtered...)
	p.groupRows++

	// prevRow must be the raw row, not the filtered one: Sub/Up/Average/
	// Paeth all predict from raw neighboring bytes.
	rowCopy := make([]byte, len(row))
	copy(rowCopy, row)
	p.prevRow = rowCopy
	p.rowsIn++

	if len(p.groupFiltered) < p.chunkSize {
		return workpool.RowGroup{}, false
	}
	return p.closeGroup(), true
}

// closeGroup finalizes the currently accumulating group into a RowGroup,
// carries forward its dictionary tail for the next group, and resets
// accumulation state.
func (p *partitioner) closeGroup() workpool.RowGroup {
	g := workpool.RowGroup{
		Index:           p.nextIndex,
		FilteredBytes:   p.groupFiltered,
		RowCount:        p.groupRows,
		PriorDictionary: p.priorGroupFiltered,
	}

	p.priorGroupFiltered = dictionaryTail(p.groupFiltered)
	p.nextIndex++
	p.groupFiltered = nil
	p.groupRows = 0

	return g
}

// flush returns the final, possibly short, group if any bytes are still
// pending, or ok=false if the stream ended on an exact group boundary.
func (p *partitioner) flush() (workpool.RowGroup, bool) {
	if len(p.groupFiltered) == 0 {
		return workpool.RowGroup{}, false
	}
	return p.closeGroup(), true
}

// dictionaryTail returns the trailing up-to-32KiB slice of data, copied so
// later appends to the group's backing array can't corrupt it.
func dictionaryTail(data []byte) []byte {
	start := 0
	if len(data) > maxDictionary {
		start = len(data) - maxDictionary
	}
	tail := make([]byte, len(data)-start)
	copy(tail, data[start:])
	return tail
}
