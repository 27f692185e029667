// Package imgio writes single frames in the supported still-image formats.
package imgio

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"

	"github.com/backmassage/framebatch/internal/config"
)

// Extension returns the file extension (without dot) for a format.
func Extension(format config.ImageFormat) string {
	return string(format)
}

// Save encodes img to path in the given format. Quality applies to jpg and
// webp (1..100); png ignores it.
func Save(path string, img image.Image, format config.ImageFormat, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	switch format {
	case config.FormatPNG:
		err = png.Encode(f, img)
	case config.FormatJPG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case config.FormatWebP:
		err = webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
	default:
		err = errors.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}
