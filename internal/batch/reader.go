package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kovidgoyal/imaging"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	// Registers the webp decoder so .webp sources decode like any other format.
	_ "github.com/chai2010/webp"

	"github.com/backmassage/framebatch/internal/logging"
)

// Supported image file extensions (lowercase, with leading dot).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Limits are the per-folder selection parameters applied before decoding.
type Limits struct {
	SkipFirst int // Entries dropped from the front of the sorted listing.
	EveryNth  int // Stride over the remainder; values < 1 mean 1.
	Cap       int // Truncate to at most Cap entries; 0 = unlimited.
}

// Reader resolves one directory into an ordered sequence of decoded frames.
type Reader struct {
	Limits       Limits
	ShowProgress bool
	Log          *logging.Logger
}

// ListImageFiles returns the image files directly inside dir, sorted
// lexicographically by filename. Enumeration order is the only ordering
// the engine ever uses; decode completion order never matters.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if imageExtensions[ext] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ApplyLimits applies skip, stride, and cap to a sorted file listing,
// in that order.
func ApplyLimits(files []string, l Limits) []string {
	if l.SkipFirst > 0 {
		if l.SkipFirst >= len(files) {
			return nil
		}
		files = files[l.SkipFirst:]
	}
	if l.EveryNth > 1 {
		var kept []string
		for i := 0; i < len(files); i += l.EveryNth {
			kept = append(kept, files[i])
		}
		files = kept
	}
	if l.Cap > 0 && len(files) > l.Cap {
		files = files[:l.Cap]
	}
	return files
}

// ReadFolder enumerates, filters, and decodes one directory. A missing
// directory, an empty post-filter listing, or zero decodable images all
// return an empty group with an error the caller logs as a warning; they
// must never abort a multi-folder run. Individual decode failures skip
// just that image.
func (r *Reader) ReadFolder(dir string) ([]Frame, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return nil, errors.Errorf("directory %s cannot be found", dir)
	}

	files, err := ListImageFiles(dir)
	if err != nil {
		return nil, err
	}
	files = ApplyLimits(files, r.Limits)
	if len(files) == 0 {
		return nil, errors.Errorf("no images in directory %s", dir)
	}

	var bar *progressbar.ProgressBar
	if r.ShowProgress {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(filepath.Base(dir)),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetPredictTime(false),
		)
	}

	frames := make([]Frame, 0, len(files))
	for _, path := range files {
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			r.Log.Warn("Cannot decode %s, skipping: %v", path, err)
			continue
		}
		frames = append(frames, Frame{
			Image:    imaging.Clone(img),
			HasAlpha: hasAlphaChannel(img),
		})
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if len(frames) == 0 {
		return nil, errors.Errorf("no decodable images in directory %s", dir)
	}
	return frames, nil
}
