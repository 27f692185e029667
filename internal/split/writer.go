// Package split re-partitions a flat frame sequence into per-folder outputs
// using the boundary index recorded at load time.
package split

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/backmassage/framebatch/internal/batch"
	"github.com/backmassage/framebatch/internal/config"
	"github.com/backmassage/framebatch/internal/encode"
	"github.com/backmassage/framebatch/internal/imgio"
	"github.com/backmassage/framebatch/internal/logging"
	"github.com/backmassage/framebatch/internal/naming"
)

// Result reports what one run of the writer produced.
type Result struct {
	Paths  []string // One entry per successfully written output group.
	Failed int      // Output groups that failed to write or encode.
}

// Writer writes output groups as image sequences or MP4 files.
type Writer struct {
	Cfg      *config.Config
	Log      *logging.Logger
	Resolver *naming.CollisionResolver
}

// NewWriter builds a Writer with a fresh collision resolver.
func NewWriter(cfg *config.Config, log *logging.Logger) *Writer {
	return &Writer{Cfg: cfg, Log: log, Resolver: naming.NewCollisionResolver()}
}

// Write slices frames by index and writes one output artifact per span.
//
// The external processing stage between load and save is assumed ordering-
// and count-preserving; the only defense possible here is the length check.
// A mismatch makes every span's mapping undefined, so it is a hard error and
// nothing is written. All other failures are per-folder: logged, counted,
// and siblings continue.
func (w *Writer) Write(ctx context.Context, frames []image.Image, index *batch.BoundaryIndex) (Result, error) {
	var res Result

	if err := index.Validate(len(frames)); err != nil {
		return res, err
	}

	outDir := w.Cfg.ResolvedOutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, errors.Wrapf(err, "create output directory %s", outDir)
	}

	for _, span := range index.Spans {
		if ctx.Err() != nil {
			w.Log.Warn("Interrupted")
			break
		}
		group := frames[span.Start : span.Start+span.Count]
		name := naming.OutputName(w.Cfg.FilenamePrefix, span.Label)

		path, err := w.writeGroup(ctx, group, outDir, name)
		if err != nil {
			w.Log.Error("Output %s failed: %v", name, err)
			res.Failed++
			continue
		}
		w.Log.Info("Wrote %d frames -> %s", len(group), path)
		res.Paths = append(res.Paths, path)
	}
	return res, nil
}

// WriteAll writes the whole sequence as a single artifact named by the
// prefix alone, without consulting a boundary index.
func (w *Writer) WriteAll(ctx context.Context, frames []image.Image) (Result, error) {
	var res Result
	if len(frames) == 0 {
		return res, errors.New("no frames to write")
	}

	outDir := w.Cfg.ResolvedOutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return res, errors.Wrapf(err, "create output directory %s", outDir)
	}

	path, err := w.writeGroup(ctx, frames, outDir, naming.Sanitize(w.Cfg.FilenamePrefix))
	if err != nil {
		res.Failed++
		return res, err
	}
	w.Log.Info("Wrote %d frames -> %s", len(frames), path)
	res.Paths = append(res.Paths, path)
	return res, nil
}

// writeGroup writes one output group under outDir as either an image
// sequence directory or a video file, resolving name collisions first.
func (w *Writer) writeGroup(ctx context.Context, group []image.Image, outDir, name string) (string, error) {
	switch w.Cfg.OutputFormat {
	case config.OutputMP4:
		target := w.Resolver.Resolve(filepath.Join(outDir, name+".mp4"))
		err := encode.Encode(ctx, group, target, encode.Options{
			FrameRate: w.Cfg.FrameRate,
			CRF:       w.Cfg.VideoCRF,
		})
		if err != nil {
			return "", err
		}
		return target, nil

	default:
		target := w.Resolver.Resolve(filepath.Join(outDir, name))
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", errors.Wrapf(err, "create %s", target)
		}
		ext := imgio.Extension(w.Cfg.ImageFormat)
		base := filepath.Base(target)
		for i, img := range group {
			framePath := filepath.Join(target, fmt.Sprintf("%s_%05d.%s", base, i, ext))
			if err := imgio.Save(framePath, img, w.Cfg.ImageFormat, w.Cfg.Quality); err != nil {
				return "", err
			}
		}
		return target, nil
	}
}
