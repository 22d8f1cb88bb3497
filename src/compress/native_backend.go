package compress

import (
	"bytes"
	"fmt"
	"io"
)

// nativeBackend is the from-scratch LZ77 + Huffman DEFLATE path, adapted
// from the teacher's single-shot encoder (deflate_encoder.go's fixed/dynamic
// auto-picker lives on here as writeAutoBlock) to support a preset
// dictionary and non-final, byte-aligned block emission. It serves two
// strategies the klauspost-backed Compressor has no matching concept for:
//
//   - StrategyRLE: matches are restricted to distance 1 (run-length only),
//     approximating zlib's Z_RLE, written with whichever of the fixed and
//     dynamic Huffman tables comes out smaller.
//   - StrategyFixed: full LZ77 matching, but always written with the
//     RFC1951 fixed Huffman tables rather than a per-block dynamic table.
type nativeBackend struct {
	lz77 *LZ77Encoder
}

// NewNativeBackend returns the pure-Go fallback Compressor.
func NewNativeBackend() Compressor {
	return &nativeBackend{lz77: NewLZ77Encoder()}
}

func (n *nativeBackend) Compress(data []byte, params Params) ([]byte, error) {
	var buf bytes.Buffer

	switch params.Strategy {
	case StrategyRLE:
		tokens := buildRLETokens(params.Dictionary, data)
		if err := writeAutoBlock(&buf, params.Final, tokens); err != nil {
			return nil, fmt.Errorf("compress: native backend: %w", err)
		}
	case StrategyFixed:
		tokens := n.lz77.EncodeWithDict(params.Dictionary, data)
		if err := WriteFixedBlock(&buf, params.Final, tokens); err != nil {
			return nil, fmt.Errorf("compress: native backend: %w", err)
		}
	default:
		return nil, fmt.Errorf("compress: native backend does not support strategy %d", params.Strategy)
	}

	// A fixed/dynamic Huffman block's end-of-block code only tells a reader
	// where the block's symbols stop; it says nothing about byte alignment.
	// The reassembler concatenates groups back to back and appends a single
	// FinalEmptyBlock after the last one, so a non-final block here must itself end on a byte
	// boundary a reader can resynchronize on: an empty, non-final stored
	// block (DEFLATE sync flush), exactly what klauspostBackend's Flush
	// produces on the primary path.
	if !params.Final {
		if err := WriteStoredBlock(&buf, nil, false); err != nil {
			return nil, fmt.Errorf("compress: native backend: sync flush: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// writeAutoBlock writes tokens with whichever of the fixed and dynamic
// Huffman tables produces the smaller block, the same auto-pick the
// teacher's single-shot DeflateEncoder.EncodeAuto used.
func writeAutoBlock(w io.Writer, final bool, tokens []Token) error {
	var fixedBuf bytes.Buffer
	if err := WriteFixedBlock(&fixedBuf, final, tokens); err != nil {
		return err
	}

	var dynamicBuf bytes.Buffer
	if err := WriteDynamicBlock(&dynamicBuf, final, tokens); err != nil {
		// Dynamic table construction failed; fall back to the fixed block.
		_, err := w.Write(fixedBuf.Bytes())
		return err
	}

	if dynamicBuf.Len() < fixedBuf.Len() {
		_, err := w.Write(dynamicBuf.Bytes())
		return err
	}
	_, err := w.Write(fixedBuf.Bytes())
	return err
}

// buildRLETokens tokenizes data using only distance-1 back-references,
// falling back to literals for runs shorter than DEFLATE's minimum match
// length. dict supplies the "previous byte" context for the first byte of
// data, the same role prior_dictionary plays for the full LZ77 path.
func buildRLETokens(dict, data []byte) []Token {
	if len(data) == 0 {
		return nil
	}

	var prev byte
	havePrev := false
	if len(dict) > 0 {
		prev = dict[len(dict)-1]
		havePrev = true
	}

	var tokens []Token
	i := 0
	for i < len(data) {
		runLen := 0
		if havePrev {
			for i+runLen < len(data) && runLen < maxMatchLength && data[i+runLen] == prev {
				runLen++
			}
		}

		if runLen >= minMatchLength {
			tokens = append(tokens, TokenMatch(1, uint16(runLen)))
			i += runLen
			prev = data[i-1]
			havePrev = true
		} else {
			tokens = append(tokens, TokenLiteral(data[i]))
			prev = data[i]
			havePrev = true
			i++
		}
	}

	return tokens
}
