package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/flate"
)

// klauspostBackend implements Compressor on top of
// github.com/klauspost/compress/flate, which is the only DEFLATE
// implementation in the retrieved corpus that supports both a preset
// dictionary (NewWriterDict) and a byte-aligned, non-final sync flush
// (Flush, as opposed to Close). Every call constructs a fresh *flate.Writer
// rather than reusing one across groups: each chunk-partitioner group is
// compressed on its own worker goroutine with no shared encoder state, and
// continuity across groups comes entirely from the preset dictionary, not
// from a shared LZ77 window.
type klauspostBackend struct{}

// NewKlauspostBackend returns the klauspost/compress-backed Compressor.
func NewKlauspostBackend() Compressor {
	return klauspostBackend{}
}

func (klauspostBackend) Compress(data []byte, params Params) ([]byte, error) {
	level := params.Level
	if level < 1 {
		level = 1
	} else if level > 9 {
		level = 9
	}

	// Go's flate has no direct equivalent of zlib's Z_FILTERED strategy
	// (bias the match finder away from very short matches, which tends to
	// help already-filtered data); StrategyFiltered and StrategyDefault
	// both fall through to the normal level-driven pipeline. StrategyHuffman
	// maps onto flate.HuffmanOnly, which disables LZ77 matching entirely.
	if params.Strategy == StrategyHuffman {
		level = flate.HuffmanOnly
	}

	var buf bytes.Buffer
	var zw *flate.Writer
	var err error
	if len(params.Dictionary) > 0 {
		zw, err = flate.NewWriterDict(&buf, level, params.Dictionary)
	} else {
		zw, err = flate.NewWriter(&buf, level)
	}
	if err != nil {
		return nil, fmt.Errorf("compress: klauspost backend: %w", err)
	}

	if len(data) > 0 {
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("compress: klauspost backend write: %w", err)
		}
	}

	if params.Final {
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("compress: klauspost backend close: %w", err)
		}
	} else {
		if err := zw.Flush(); err != nil {
			return nil, fmt.Errorf("compress: klauspost backend flush: %w", err)
		}
	}

	return buf.Bytes(), nil
}
