package png

// Header is the Header-object model spec §9 adopts over encoder-level
// size/color setters: width, height, color type, and bit depth, plus the
// quantities derived from them that the rest of the pipeline needs.
//
// Per mtpng_header_set_color's own documentation ("If you do not call
// this function, mtpng will assume you want truecolor with alpha at
// 8-bit depth"), NewHeader defaults ColorType/BitDepth to
// (TruecolorAlpha, 8) until SetColor overrides them.
type Header struct {
	Width     uint32
	Height    uint32
	ColorType ColorType
	BitDepth  uint8
}

// NewHeader returns a Header for width x height defaulting to
// (ColorRGBA, 8) — this project's TruecolorAlpha-at-8-bit default.
func NewHeader(width, height int) *Header {
	return &Header{
		Width:     uint32(width),
		Height:    uint32(height),
		ColorType: ColorRGBA,
		BitDepth:  8,
	}
}

// SetSize overrides width/height.
func (h *Header) SetSize(width, height int) {
	h.Width = uint32(width)
	h.Height = uint32(height)
}

// SetColor overrides color type and bit depth.
func (h *Header) SetColor(colorType ColorType, bitDepth uint8) {
	h.ColorType = colorType
	h.BitDepth = bitDepth
}

// Validate checks width/height bounds and the (ColorType, BitDepth)
// combination against PNG Table 11.1. This is the check write_header
// runs before emitting IHDR.
func (h *Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return newError(KindInvalidParam, "width and height must be nonzero")
	}
	if h.Width > 0x7FFFFFFF || h.Height > 0x7FFFFFFF {
		return newError(KindInvalidParam, "width/height exceed 2^31-1")
	}

	allowed := ValidBitDepths(h.ColorType)
	if allowed == nil {
		return newError(KindInvalidParam, "unknown color type")
	}
	for _, d := range allowed {
		if d == h.BitDepth {
			return nil
		}
	}
	return newError(KindInvalidParam, "bit depth not valid for color type")
}

// Channels returns the number of samples per pixel for the header's
// color type: 1 for Greyscale/Indexed, 2 for GreyscaleAlpha, 3 for
// Truecolor, 4 for TruecolorAlpha.
func (h *Header) Channels() int {
	switch h.ColorType {
	case ColorGrayscale, ColorIndexed:
		return 1
	case ColorGrayscaleAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	default:
		return 1
	}
}

// BitsPerPixel is Channels() * BitDepth.
func (h *Header) BitsPerPixel() int {
	return h.Channels() * int(h.BitDepth)
}

// FilterBytesPerPixel is "bpp rounded up, minimum 1" per spec §4.3: the
// pixel-wise offset the filter bank's "left" byte reference uses. For
// sub-byte bit depths (1/2/4-bit Greyscale or Indexed) this is always 1,
// since a "pixel" narrower than a byte still only predicts from the
// single preceding byte.
func (h *Header) FilterBytesPerPixel() int {
	bits := h.BitsPerPixel()
	bpp := (bits + 7) / 8
	if bpp < 1 {
		bpp = 1
	}
	return bpp
}

// Stride is the number of raw raster bytes per row: ceil(width * depth *
// channels / 8).
func (h *Header) Stride() int {
	bits := int(h.Width) * h.BitsPerPixel()
	return (bits + 7) / 8
}
