package png

import (
	"encoding/binary"
	"io"

	"github.com/mac/mtpng-go/src/compress"
)

// WriteTRNS writes alpha values for palette entries.
// Only needed if palette has transparency.
// The alpha values correspond to each palette entry in order.
func WriteTRNS(w io.Writer, alphaValues []uint8) error {
	if len(alphaValues) == 0 {
		return nil
	}
	if len(alphaValues) > 256 {
		return ErrInvalidChunkData
	}

	data := make([]byte, len(alphaValues))
	for i, a := range alphaValues {
		data[i] = a
	}

	length := uint32(len(data))
	if err := binary.Write(w, binary.BigEndian, length); err != nil {
		return err
	}

	if err := binary.Write(w, nil, []byte("tRNS")); err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	crc := compress.CRC32(append([]byte("tRNS"), data...))
	if err := binary.Write(w, binary.BigEndian, crc); err != nil {
		return err
	}

	return nil
}

// TRNSChunkData returns the raw tRNS chunk data without chunk wrapper.
func TRNSChunkData(alphaValues []uint8) []byte {
	if len(alphaValues) == 0 || len(alphaValues) > 256 {
		return nil
	}

	data := make([]byte, len(alphaValues))
	for i, a := range alphaValues {
		data[i] = a
	}

	return data
}

// ExtractAlphaFromPixels returns one alpha value per palette entry and whether
// any transparency exists. pixels is not read: every entry is reported as
// fully opaque (255) and the second result is always false.
func ExtractAlphaFromPixels(pixels []byte, palette Palette) ([]uint8, bool) {
	alphaValues := make([]uint8, palette.NumColors)
	hasTransparency := false

	for i := 0; i < palette.NumColors; i++ {
		alphaValues[i] = 255 // Default to fully opaque
	}

	return alphaValues, hasTransparency
}

// ValidateTRNS checks if tRNS data is valid for a given palette.
func ValidateTRNS(alphaValues []uint8, paletteSize int) error {
	if len(alphaValues) > paletteSize {
		return ErrInvalidChunkData
	}
	return nil
}

// ValidateTRNSForColorType checks tRNS byte-length rules per color type:
// Greyscale carries a single 2-byte grey-sample transparency threshold,
// Truecolor a 6-byte RGB threshold (2 bytes per channel), Indexed a
// 1-256 byte per-palette-entry alpha array (see ValidateTRNS for the
// stricter "no longer than the palette" check once the palette size is
// known). GreyscaleAlpha and TruecolorAlpha already carry alpha per pixel
// and never take a tRNS chunk.
func ValidateTRNSForColorType(colorType ColorType, trns []byte) error {
	switch colorType {
	case ColorGrayscale:
		if len(trns) != 2 {
			return newError(KindInvalidParam, "tRNS for greyscale must be exactly 2 bytes")
		}
	case ColorRGB:
		if len(trns) != 6 {
			return newError(KindInvalidParam, "tRNS for truecolor must be exactly 6 bytes")
		}
	case ColorIndexed:
		if len(trns) == 0 || len(trns) > 256 {
			return newError(KindInvalidParam, "tRNS for indexed color must be 1-256 bytes")
		}
	default:
		return newError(KindInvalidParam, "tRNS is not allowed for color types that already carry alpha")
	}
	return nil
}
