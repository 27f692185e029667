package batch

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nrgbaFrame(w, h int, alpha uint8, hasAlpha bool) Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for p := 0; p < len(img.Pix); p += 4 {
		img.Pix[p+3] = alpha
	}
	return Frame{Image: img, HasAlpha: hasAlpha}
}

func TestFrame_Dimensions(t *testing.T) {
	f := nrgbaFrame(7, 3, 255, false)
	assert.Equal(t, 7, f.Width())
	assert.Equal(t, 3, f.Height())
}

func TestFrame_Mask_Inverted(t *testing.T) {
	f := nrgbaFrame(2, 2, 100, true)
	mask := f.Mask()
	assert.Equal(t, uint8(155), mask.Pix[0], "mask is inverted alpha")

	opaque := nrgbaFrame(2, 2, 255, true)
	assert.Equal(t, uint8(0), opaque.Mask().Pix[0])
}

func TestFrame_Mask_NoAlphaIsZero(t *testing.T) {
	f := nrgbaFrame(2, 2, 100, false)
	for _, p := range f.Mask().Pix {
		assert.Equal(t, uint8(0), p)
	}
}

func TestHasAlphaChannel(t *testing.T) {
	// Zero-valued NRGBA is fully transparent.
	nrgbaTransparent := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.True(t, hasAlphaChannel(nrgbaTransparent))

	// Orientation transforms return NRGBA even for alpha-free sources
	// (e.g. an EXIF-rotated JPEG); a fully opaque one carries no alpha.
	nrgbaOpaque := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for p := 3; p < len(nrgbaOpaque.Pix); p += 4 {
		nrgbaOpaque.Pix[p] = 255
	}
	assert.False(t, hasAlphaChannel(nrgbaOpaque))

	rgbaOpaque := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for p := 3; p < len(rgbaOpaque.Pix); p += 4 {
		rgbaOpaque.Pix[p] = 255
	}
	assert.False(t, hasAlphaChannel(rgbaOpaque))

	rgbaTransparent := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.True(t, hasAlphaChannel(rgbaTransparent))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	assert.False(t, hasAlphaChannel(gray))

	ycbcr := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420)
	assert.False(t, hasAlphaChannel(ycbcr))
}

func TestNormalizeAlpha_PropagatesWithinGroup(t *testing.T) {
	group := []Frame{
		nrgbaFrame(2, 2, 255, false),
		nrgbaFrame(2, 2, 128, true),
		nrgbaFrame(2, 2, 255, false),
	}
	out := NormalizeAlpha(group)
	for i, f := range out {
		assert.True(t, f.HasAlpha, "frame %d should gain alpha", i)
	}
}

func TestNormalizeAlpha_LeavesAlphaFreeGroup(t *testing.T) {
	group := []Frame{
		nrgbaFrame(2, 2, 255, false),
		nrgbaFrame(2, 2, 255, false),
	}
	out := NormalizeAlpha(group)
	for i, f := range out {
		assert.False(t, f.HasAlpha, "frame %d should stay alpha-free", i)
	}
}
