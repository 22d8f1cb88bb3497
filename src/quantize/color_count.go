package quantize

import (
	"sort"

	"github.com/mac/mtpng-go/src/png"
)

// colorKey is used as a map key for color counting.
type colorKey struct {
	r, g, b uint8
}

// CountColors counts the frequency of each unique color in the pixel data.
// colorType: 2=RGB, 6=RGBA
// Returns an unordered map of png.Color to count (ToColorWithCountSlice
// sorts it by count descending).
func CountColors(pixels []byte, colorType int) map[png.Color]int {
	colorMap := make(map[png.Color]int)

	bpp := png.BytesPerPixel(png.ColorType(colorType))

	for i := 0; i < len(pixels); i += bpp {
		c := png.Color{
			R: pixels[i],
			G: pixels[i+1],
			B: pixels[i+2],
		}
		colorMap[c]++
	}

	return colorMap
}

// CountColorsWithAlpha counts colors by their RGB channels; alpha is not
// read. Each key's Count field is 1 and the map value holds the count.
func CountColorsWithAlpha(pixels []byte, colorType int) map[png.ColorWithCount]int {
	colorMap := make(map[png.ColorWithCount]int)

	bpp := png.BytesPerPixel(png.ColorType(colorType))

	for i := 0; i < len(pixels); i += bpp {
		cwc := png.ColorWithCount{
			Color: png.Color{
				R: pixels[i],
				G: pixels[i+1],
				B: pixels[i+2],
			},
			Count: 1,
		}
		colorMap[cwc]++
	}

	return colorMap
}

// ToColorWithCountSlice converts a color count map to a sorted slice.
func ToColorWithCountSlice(colorMap map[png.Color]int) []png.ColorWithCount {
	result := make([]png.ColorWithCount, 0, len(colorMap))

	for c, count := range colorMap {
		result = append(result, png.ColorWithCount{
			Color: c,
			Count: count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}

// UniqueColorCount returns the number of unique colors in the pixel data.
func UniqueColorCount(pixels []byte, colorType int) int {
	colorMap := make(map[colorKey]struct{})

	bpp := png.BytesPerPixel(png.ColorType(colorType))

	for i := 0; i < len(pixels); i += bpp {
		key := colorKey{
			r: pixels[i],
			g: pixels[i+1],
			b: pixels[i+2],
		}
		colorMap[key] = struct{}{}
	}

	return len(colorMap)
}
