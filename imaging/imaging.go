// Package imaging prepares raster page images for OCR.
//
// Scans arrive in many container formats and resolutions. [PrepareForOCR]
// decodes PNG, JPEG, GIF, TIFF, BMP and WEBP input, converts it to grayscale,
// upscales images that are too small for reliable recognition and re-encodes
// the result as PNG.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMinHeight is the page height in pixels below which images are
// upscaled before recognition.
const DefaultMinHeight = 1200

// maxScale bounds the upscale factor for tiny images.
const maxScale = 4.0

// ErrEmptyImage is returned for images with no pixels
var ErrEmptyImage = errors.New("image has no pixels")

// Decode decodes image data in any supported format and returns the image
// with its format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}

// PrepareForOCR returns a grayscale PNG of the image, scaled up so that it is
// at least minHeight pixels tall. A non-positive minHeight disables scaling.
func PrepareForOCR(data []byte, minHeight int) ([]byte, error) {
	src, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	dst := Grayscale(src, scaleFor(src.Bounds(), minHeight))

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Grayscale converts img to grayscale, resampling by scale.
func Grayscale(img image.Image, scale float64) *image.Gray {
	b := img.Bounds()
	w := int(float64(b.Dx())*scale + 0.5)
	h := int(float64(b.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func scaleFor(b image.Rectangle, minHeight int) float64 {
	if minHeight <= 0 || b.Dy() >= minHeight {
		return 1
	}
	scale := float64(minHeight) / float64(b.Dy())
	if scale > maxScale {
		scale = maxScale
	}
	return scale
}
