package quantize

import (
	"errors"

	"github.com/mac/mtpng-go/src/png"
)

var ErrCannotReduceColorType = errors.New("png: cannot reduce color type for given pixels")

func ReduceToGrayscale(pixels []byte, width, height int, colorType png.ColorType) ([]byte, png.ColorType, error) {
	if !CanReduceToGrayscale(pixels, width, height, colorType) {
		return nil, colorType, ErrCannotReduceColorType
	}

	switch colorType {
	case png.ColorGrayscale:
		return pixels, png.ColorGrayscale, nil
	case png.ColorRGB:
		return reduceRGBToGrayscale(pixels, width, height), png.ColorGrayscale, nil
	case png.ColorRGBA:
		return reduceRGBAToGrayscale(pixels, width, height), png.ColorGrayscale, nil
	default:
		return nil, colorType, ErrCannotReduceColorType
	}
}

func reduceRGBToGrayscale(pixels []byte, width, height int) []byte {
	result := make([]byte, width*height)
	for i := 0; i < width*height; i++ {
		offset := i * 3
		result[i] = pixels[offset]
	}
	return result
}

func reduceRGBAToGrayscale(pixels []byte, width, height int) []byte {
	result := make([]byte, width*height)
	for i := 0; i < width*height; i++ {
		offset := i * 4
		result[i] = pixels[offset]
	}
	return result
}

func ReduceToRGB(pixels []byte, width, height int) ([]byte, png.ColorType, error) {
	if !CanReduceToRGB(pixels, width, height) {
		return nil, png.ColorRGBA, ErrCannotReduceColorType
	}

	result := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		srcOffset := i * 4
		dstOffset := i * 3
		result[dstOffset] = pixels[srcOffset]
		result[dstOffset+1] = pixels[srcOffset+1]
		result[dstOffset+2] = pixels[srcOffset+2]
	}
	return result, png.ColorRGB, nil
}
