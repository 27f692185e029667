// Package batch implements the load side of the engine: per-folder image
// reading with skip/stride/cap limits, folder-local alpha normalization,
// folder-scoped resizing, and assembly of all folders into one flat frame
// sequence with a boundary index recording folder provenance.
package batch

import (
	"image"
)

// Frame is one decoded image. Pixels are always stored as NRGBA; HasAlpha
// records whether the alpha channel is meaningful (decoded from the source
// or synthesized opaque during group normalization).
type Frame struct {
	Image    *image.NRGBA
	HasAlpha bool
}

// Width returns the frame width in pixels.
func (f Frame) Width() int { return f.Image.Bounds().Dx() }

// Height returns the frame height in pixels.
func (f Frame) Height() int { return f.Image.Bounds().Dy() }

// Mask returns the frame's mask as inverted alpha: fully opaque pixels map
// to 0, fully transparent to 255. Frames without a meaningful alpha channel
// yield an all-zero mask.
func (f Frame) Mask() *image.Gray {
	b := f.Image.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if !f.HasAlpha {
		return mask
	}
	for y := 0; y < b.Dy(); y++ {
		src := f.Image.Pix[y*f.Image.Stride:]
		dst := mask.Pix[y*mask.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst[x] = 255 - src[x*4+3]
		}
	}
	return mask
}

// hasAlphaChannel reports whether a decoded image carries meaningful alpha.
// The pixel type alone cannot answer that: decoders hand back RGBA for some
// alpha-free sources, and orientation transforms return NRGBA regardless of
// what was decoded. An alpha-capable type therefore only counts when at
// least one pixel is actually non-opaque.
func hasAlphaChannel(img image.Image) bool {
	switch t := img.(type) {
	case *image.NRGBA:
		return !t.Opaque()
	case *image.NRGBA64:
		return !t.Opaque()
	case *image.RGBA:
		return !t.Opaque()
	case *image.RGBA64:
		return !t.Opaque()
	}
	return false
}
