//go:build js && wasm

package wasm

import (
	"bytes"
	"fmt"
	"syscall/js"

	"github.com/mac/mtpng-go/src/png"
)

/**
 * HandleEncodePng converts JS arguments to Go and calls EncodePng.
 * Expected arguments: (pixels: Uint8Array, width: number, height: number, colorType: number, preset: number, lossy: boolean)
 */
func HandleEncodePng(this js.Value, args []js.Value) any {
	if len(args) < 6 {
		return js.ValueOf("invalid arguments")
	}

	pixelsJS := args[0]
	width := args[1].Int()
	height := args[2].Int()
	colorType := args[3].Int()
	preset := args[4].Int()
	lossy := args[5].Bool()

	// Copy JS buffer to Go slice
	pixels := make([]byte, pixelsJS.Get("length").Int())
	js.CopyBytesToGo(pixels, pixelsJS)

	// Call the actual implementation
	output, err := EncodePng(pixels, width, height, colorType, preset, lossy)
	if err != nil {
		return js.ValueOf(fmt.Sprintf("error: %v", err))
	}

	// Copy Go slice back to JS
	dst := js.Global().Get("Uint8Array").New(len(output))
	js.CopyBytesToJS(dst, output)

	return dst
}

/**
 * HandleBytesPerPixel returns the bytes per pixel for a given color type.
 * Expected arguments: (colorType: number)
 */
func HandleBytesPerPixel(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	colorType := args[0].Int()
	return js.ValueOf(BytesPerPixel(colorType))
}

/**
 * EncodePng encodes pixels as a PNG image using this project's streaming
 * PNG encoder. preset selects the speed/size tradeoff (0=fast,
 * 1=balanced, 2=max); lossy is accepted for interface stability with the
 * JS caller but has no effect — this encoder is always lossless.
 * Returns PNG file bytes ready to be written to a file or used in a
 * browser.
 */
func EncodePng(pixels []byte, width, height int, colorType, preset int, lossy bool) ([]byte, error) {
	var pngColorType png.ColorType
	switch colorType {
	case 0:
		pngColorType = png.ColorGrayscale
	case 2:
		pngColorType = png.ColorRGB
	case 6:
		pngColorType = png.ColorRGBA
	default:
		return nil, fmt.Errorf("unsupported color type: %d", colorType)
	}

	header := png.NewHeader(width, height)
	header.SetColor(pngColorType, 8)

	var buf bytes.Buffer
	encoder, err := png.NewEncoderStream(png.WriterSink(&buf), header, presetOptions(preset))
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	if err := encoder.WriteHeader(); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := encoder.WriteImageRows(pixels); err != nil {
		return nil, fmt.Errorf("failed to write image rows: %w", err)
	}
	if err := encoder.Finish(); err != nil {
		return nil, fmt.Errorf("failed to finish encode: %w", err)
	}

	return buf.Bytes(), nil
}

// presetOptions maps the JS-side preset enum (0=fast, 1=balanced,
// 2=max) onto this project's Options presets, defaulting to Balanced
// for anything else.
func presetOptions(preset int) png.Options {
	switch preset {
	case 0:
		return png.FastOptions()
	case 2:
		return png.MaxOptions()
	default:
		return png.BalancedOptions()
	}
}

/**
 * BytesPerPixel returns bytes per pixel based on color type.
 * 2 = RGB, 6 = RGBA
 */
func BytesPerPixel(colorType int) int {
	switch colorType {
	case 2: // RGB
		return 3
	case 6: // RGBA
		return 4
	default:
		return 4
	}
}
