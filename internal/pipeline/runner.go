// Package pipeline orchestrates the load, split, and summary stages of one
// run: directories in, per-folder outputs out.
package pipeline

import (
	"context"
	"image"
	"io/fs"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/backmassage/framebatch/internal/batch"
	"github.com/backmassage/framebatch/internal/config"
	"github.com/backmassage/framebatch/internal/display"
	"github.com/backmassage/framebatch/internal/logging"
	"github.com/backmassage/framebatch/internal/split"
)

// ErrNothingToProcess is returned when no directory yielded any frames.
var ErrNothingToProcess = errors.New("no images loaded from any directory")

// Run is the top-level entry point. It assembles the flat batch from the
// configured directories, hands the (identity-transformed) sequence to the
// split writer, and returns aggregate stats. The only run-level failures are
// an empty batch and a boundary/length mismatch; everything else degrades to
// per-folder warnings.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats
	stats.Dirs = len(cfg.Directories)

	assembler := &batch.Assembler{
		Reader: &batch.Reader{
			Limits: batch.Limits{
				SkipFirst: cfg.SkipFirstImages,
				EveryNth:  cfg.SelectEveryNth,
				Cap:       cfg.ImageLoadCap,
			},
			ShowProgress: !cfg.Verbose,
			Log:          log,
		},
		SizeCheck: cfg.SizeCheck,
		Log:       log,
	}

	b := assembler.Assemble(cfg.Directories)
	stats.Folders = len(b.Index.Spans)
	stats.FoldersSkipped = stats.Dirs - stats.Folders
	stats.Frames = len(b.Frames)

	if len(b.Frames) == 0 {
		return stats, ErrNothingToProcess
	}
	log.Info("Loaded %d frames from %d of %d directories", stats.Frames, stats.Folders, stats.Dirs)

	if cfg.DryRun {
		logDryRun(cfg, log, b)
		stats.Written = len(b.Index.Spans)
		return stats, nil
	}

	// The processing stage between load and save is external to this tool;
	// running standalone, the batch passes through unchanged.
	frames := make([]image.Image, len(b.Frames))
	for i, f := range b.Frames {
		frames[i] = f.Image
	}

	writer := split.NewWriter(cfg, log)
	var (
		res split.Result
		err error
	)
	if cfg.NoSplit {
		res, err = writer.WriteAll(ctx, frames)
	} else {
		res, err = writer.Write(ctx, frames, &b.Index)
	}
	if err != nil {
		return stats, err
	}

	stats.Written = len(res.Paths)
	stats.Failed = res.Failed
	for _, p := range res.Paths {
		stats.TotalOutputBytes += sizeOf(p)
	}

	logSummary(log, &stats)
	return stats, nil
}

func logDryRun(cfg *config.Config, log *logging.Logger, b *batch.Batch) {
	outDir := cfg.ResolvedOutputDir()
	if cfg.NoSplit {
		log.Info("[DRY] Would write %d frames -> %s", len(b.Frames), filepath.Join(outDir, cfg.FilenamePrefix))
		return
	}
	for _, s := range b.Index.Spans {
		name := cfg.FilenamePrefix + "_" + s.Label
		if cfg.OutputFormat == config.OutputMP4 {
			name += ".mp4"
		}
		log.Info("[DRY] Would write %d frames -> %s", s.Count, filepath.Join(outDir, name))
	}
}

// sizeOf returns the total byte size of a file or directory tree. Best
// effort; sizes are for the summary line only.
func sizeOf(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return nil
	})
	return total
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d written, %d failed, %d folders skipped", stats.Written, stats.Failed, stats.FoldersSkipped)
	log.Info("  Frames: %d", stats.Frames)
	log.Info("  Output size: %s", display.FormatBytes(stats.TotalOutputBytes))
}
