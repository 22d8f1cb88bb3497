package png

import (
	"encoding/binary"
	"io"
)

// ihdrBytes returns the 13-byte IHDR payload for h, which must already
// have passed Validate.
func ihdrBytes(h *Header) []byte {
	result := make([]byte, 13)
	binary.BigEndian.PutUint32(result[0:4], h.Width)
	binary.BigEndian.PutUint32(result[4:8], h.Height)
	result[8] = h.BitDepth
	result[9] = uint8(h.ColorType)
	result[10] = 0 // compression method: always 0 (DEFLATE)
	result[11] = 0 // filter method: always 0
	result[12] = 0 // interlace method: always 0 (Adam7 is out of scope)
	return result
}

// WriteIHDR validates h and writes its IHDR chunk to w.
func WriteIHDR(w io.Writer, h *Header) error {
	if err := h.Validate(); err != nil {
		return err
	}
	chunk := &Chunk{chunkType: ChunkIHDR, Data: ihdrBytes(h)}
	_, err := chunk.WriteTo(w)
	return err
}
