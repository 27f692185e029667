// Command framebatch loads images from an ordered list of directories into
// one flat batch, then re-splits it into per-source-folder outputs (image
// sequences or MP4). It parses flags, validates config and paths, and either
// runs system check (--check), prints the input fingerprint (--fingerprint),
// or runs the load/split pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/backmassage/framebatch/internal/batch"
	"github.com/backmassage/framebatch/internal/check"
	"github.com/backmassage/framebatch/internal/config"
	"github.com/backmassage/framebatch/internal/display"
	"github.com/backmassage/framebatch/internal/logging"
	"github.com/backmassage/framebatch/internal/pipeline"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "framebatch: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "framebatch: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "framebatch: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if cfg.CheckOnly {
		display.PrintBanner()
		check.RunCheck(log)
		os.Exit(0)
	}

	if cfg.Fingerprint {
		digest, err := batch.Fingerprint(cfg.Directories, batch.Limits{
			SkipFirst: cfg.SkipFirstImages,
			EveryNth:  cfg.SelectEveryNth,
			Cap:       cfg.ImageLoadCap,
		})
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		fmt.Println(digest)
		os.Exit(0)
	}

	display.PrintBanner()

	// Resolve and validate paths: output is created if needed and must not
	// sit inside any input directory.
	outDir := cfg.ResolvedOutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", outDir)
		os.Exit(1)
	}
	outputAbs, err := absPath(outDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", outDir)
		os.Exit(1)
	}
	var inputsAbs []string
	for _, dir := range cfg.Directories {
		if abs, err := absPath(dir); err == nil {
			inputsAbs = append(inputsAbs, abs)
		}
		// Missing inputs are handled (and warned about) per folder later.
	}
	if err := cfg.ValidatePaths(inputsAbs, outputAbs); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	if err := check.CheckDeps(cfg.OutputFormat == config.OutputMP4 && !cfg.DryRun); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("=== framebatch v%s (%s) ===", version, commit)
	log.Info("In:  %d directories", len(cfg.Directories))
	log.Info("Out: %s", outDir)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	if stats.Written == 0 {
		log.Error("No outputs were produced")
		os.Exit(1)
	}
}

// absPath returns the absolute path with symlinks resolved, for comparing
// input vs output hierarchy.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
