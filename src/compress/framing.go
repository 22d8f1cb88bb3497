package compress

import "bytes"

// FinalEmptyBlock returns the bytes of the single empty, final, fixed
// Huffman DEFLATE block the reassembler appends exactly once at the end
// of a stream: BFINAL=1, BTYPE=01 (fixed), immediately followed by the
// end-of-block symbol and byte-padded with zero bits. It closes the
// logical DEFLATE stream built from the concatenation of every group's
// non-final compressed bytes without re-opening a new block of real data.
func FinalEmptyBlock() ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteFixedBlock(&buf, true, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
