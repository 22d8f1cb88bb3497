package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/mac/mtpng-go/src/compress"
	"github.com/mac/mtpng-go/src/png"
	"github.com/mac/mtpng-go/src/quantize"
	"github.com/mac/mtpng-go/src/workpool"
)

func main() {
	var (
		inputFile    = flag.String("input", "", "Input image file (PNG or JPEG)")
		outputFile   = flag.String("output", "", "Output PNG file (default: input with .png extension)")
		threads      = flag.Int("t", 0, "Worker thread count (0: runtime.GOMAXPROCS)")
		filterName   = flag.String("f", "adaptive", "Filter strategy: none, sub, up, average, paeth, adaptive, adaptivefast")
		strategyName = flag.String("s", "adaptive", "DEFLATE strategy: adaptive, default, filtered, huffman, rle, fixed")
		level        = flag.String("l", "default", "Compression level 1-9, or one of fast, default, high")
		chunkSize    = flag.Int("c", 0, "Target row-group size in bytes (0: use the filter/strategy default)")
		quantizeTo   = flag.Int("quantize", 0, "Reduce to an indexed palette of at most N colors before encoding (0: disabled)")
		dither       = flag.Bool("dither", false, "Apply Floyd-Steinberg dithering when -quantize is set (opaque input only; ignored when the input has alpha)")
	)
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: -input is required\n")
		flag.Usage()
		os.Exit(1)
	}

	if *outputFile == "" {
		*outputFile = (*inputFile)[:len(*inputFile)-len(getExt(*inputFile))] + ".png"
	}

	file, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Decoded %s image: %dx%d\n", format, img.Bounds().Dx(), img.Bounds().Dy())

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	colorType, pixels := toRGBAPixels(img, bounds, width, height)

	header := png.NewHeader(width, height)
	var palette *png.Palette
	var trns []byte

	if *quantizeTo > 0 {
		header.SetColor(png.ColorIndexed, 8)
		indexed, pal, alpha := quantizeImage(pixels, colorType, *quantizeTo, *dither)
		pixels = indexed
		palette = &pal
		trns = alpha
		fmt.Printf("Quantized to %d palette colors\n", pal.NumColors)
	} else {
		header.SetColor(colorType, 8)
	}

	levelVal, err := resolveLevelPreset(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := buildOptions(*filterName, *strategyName, levelVal, *chunkSize, *threads)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outFile, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	sink := png.WriterSink(outFile)
	enc, err := png.NewEncoderStream(sink, header, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating encoder: %v\n", err)
		os.Exit(1)
	}

	if err := enc.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		os.Exit(1)
	}

	if palette != nil {
		if err := enc.WritePalette(*palette); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing palette: %v\n", err)
			os.Exit(1)
		}
		if trns != nil {
			if err := enc.WriteTransparency(trns); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing transparency: %v\n", err)
				os.Exit(1)
			}
		}
	}

	if err := enc.WriteImageRows(pixels); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image rows: %v\n", err)
		enc.Release()
		os.Exit(1)
	}

	if err := enc.Finish(); err != nil {
		fmt.Fprintf(os.Stderr, "Error finishing encode: %v\n", err)
		os.Exit(1)
	}

	info, err := outFile.Stat()
	size := int64(-1)
	if err == nil {
		size = info.Size()
	}
	fmt.Printf("Successfully compressed to %s (%d bytes)\n", *outputFile, size)
}

// toRGBAPixels normalizes any decoded image into this project's 8-bit
// RGB/RGBA raster layout, preferring RGB when every pixel is fully opaque
// so the common photographic case doesn't carry a wasted alpha channel.
func toRGBAPixels(img image.Image, bounds image.Rectangle, width, height int) (png.ColorType, []byte) {
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	if !quantize.HasAlpha(rgba.Pix, png.ColorRGBA) {
		rgb := make([]byte, width*height*3)
		for i, j := 0, 0; i < len(rgba.Pix); i, j = i+4, j+3 {
			rgb[j] = rgba.Pix[i]
			rgb[j+1] = rgba.Pix[i+1]
			rgb[j+2] = rgba.Pix[i+2]
		}
		return png.ColorRGB, rgb
	}

	return png.ColorRGBA, rgba.Pix
}

// quantizeImage reduces truecolor pixels to an indexed palette and, for
// RGBA input, splits the alpha channel into a tRNS chunk keyed by palette
// index order rather than carrying a fourth sample through the filter
// bank.
func quantizeImage(pixels []byte, colorType png.ColorType, maxColors int, dither bool) ([]byte, png.Palette, []byte) {
	if colorType == png.ColorRGBA {
		opt := quantize.OptimizeAlpha(pixels, colorType)
		indexed, palette := quantize.QuantizeWithAlpha(opt, int(colorType), maxColors)
		alphaTable := make([]byte, palette.NumColors)
		for i := range alphaTable {
			alphaTable[i] = 255
		}
		bpp := png.BytesPerPixel(colorType)
		for i, idx := range indexed {
			a := pixels[i*bpp+3]
			if a < alphaTable[idx] {
				alphaTable[idx] = a
			}
		}
		return indexed, palette, alphaTable
	}

	if dither {
		indexed, palette := quantize.QuantizeWithDithering(pixels, int(colorType), maxColors)
		return indexed, palette, nil
	}

	indexed, palette := quantize.Quantize(pixels, int(colorType), maxColors)
	return indexed, palette, nil
}

func buildOptions(filterName, strategyName string, level, chunkSize, threads int) (png.Options, error) {
	b := png.NewOptionsBuilder()

	switch strings.ToLower(filterName) {
	case "none":
		b.FilterStrategy(png.FilterStrategyNone)
	case "sub":
		b.FilterStrategy(png.FilterStrategySub)
	case "up":
		b.FilterStrategy(png.FilterStrategyUp)
	case "average":
		b.FilterStrategy(png.FilterStrategyAverage)
	case "paeth":
		b.FilterStrategy(png.FilterStrategyPaeth)
	case "adaptivefast":
		b.FilterStrategy(png.FilterStrategyAdaptiveFast)
	case "adaptive", "":
		b.FilterStrategy(png.FilterStrategyAdaptive)
	default:
		return png.Options{}, fmt.Errorf("unknown filter strategy %q", filterName)
	}

	switch strings.ToLower(strategyName) {
	case "default":
		b.Strategy(compress.StrategyDefault)
	case "filtered":
		b.Strategy(compress.StrategyFiltered)
	case "huffman":
		b.Strategy(compress.StrategyHuffman)
	case "rle":
		b.Strategy(compress.StrategyRLE)
	case "fixed":
		b.Strategy(compress.StrategyFixed)
	case "adaptive", "":
		b.Strategy(compress.StrategyAdaptive)
	default:
		return png.Options{}, fmt.Errorf("unknown DEFLATE strategy %q", strategyName)
	}

	b.CompressionLevel(level)

	if chunkSize > 0 {
		b.ChunkSize(chunkSize)
	}

	if threads > 0 {
		b.ThreadPool(workpool.NewPool(threads))
	}

	opts := b.Build()
	if err := opts.Validate(); err != nil {
		return png.Options{}, err
	}
	return opts, nil
}

// resolveLevelPreset maps mtpng.h's named presets (FAST=1, DEFAULT=6,
// HIGH=9) onto the -l flag, on top of the full 1-9 range.
func resolveLevelPreset(level string) (int, error) {
	switch strings.ToLower(level) {
	case "fast":
		return 1, nil
	case "default", "":
		return 6, nil
	case "high":
		return 9, nil
	}

	n, err := strconv.Atoi(level)
	if err != nil || n < 1 || n > 9 {
		return 0, fmt.Errorf("invalid compression level %q: want 1-9, fast, default, or high", level)
	}
	return n, nil
}

func getExt(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
