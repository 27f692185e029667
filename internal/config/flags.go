package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into load, save, behavior, display, and utility.
// Negated flags (e.g. --no-size-check) are applied after Parse so Config
// defaults hold unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, no directories).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("framebatch", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var negated negatedFlags

	defineLoadFlags(fs, cfg, &negated)
	defineSaveFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "framebatch v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noSizeCheck bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineLoadFlags registers the per-folder filter and normalization flags.
func defineLoadFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.noSizeCheck, "no-size-check", false, "Do not resize mismatched frames (mismatched folders are skipped)")
	fs.IntVar(&cfg.ImageLoadCap, "cap", cfg.ImageLoadCap, "Max images per folder (0 = unlimited)")
	fs.IntVar(&cfg.SkipFirstImages, "skip", cfg.SkipFirstImages, "Skip the first N images of each folder")
	fs.IntVar(&cfg.SelectEveryNth, "every", cfg.SelectEveryNth, "Keep every Nth remaining image")
	fs.IntVar(&cfg.SelectEveryNth, "n", cfg.SelectEveryNth, "Same as --every")
}

// defineSaveFlags registers output format, naming, and encoder quality flags.
func defineSaveFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&outputFormatValue{&cfg.OutputFormat}, "format", "Output format: images | mp4")
	fs.Var(&imageFormatValue{&cfg.ImageFormat}, "image-format", "Image encoding: png | jpg | webp")
	fs.StringVar(&cfg.FilenamePrefix, "prefix", cfg.FilenamePrefix, "Output name prefix")
	fs.StringVar(&cfg.FilenamePrefix, "p", cfg.FilenamePrefix, "Same as --prefix")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory (default: ./output)")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --out")
	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "Video frame rate")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "jpg/webp quality (1-100)")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.IntVar(&cfg.VideoCRF, "crf", cfg.VideoCRF, "Video CRF (0=lossless, 23=default, 51=worst)")
}

// defineBehaviorFlags registers no-split and dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.NoSplit, "no-split", false, "Save the whole batch as one artifact (ignore folder boundaries)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not write outputs")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --check, --fingerprint, --version, --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.Fingerprint, "fingerprint", false, "Print input fingerprint and exit")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noSizeCheck {
		cfg.SizeCheck = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs fills Directories from the positional args (cleaned),
// preserving argument order. Directory order is the sole determinant of batch
// order; nothing downstream reorders them.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("need at least one input directory")
	}
	cfg.Directories = cfg.Directories[:0]
	for _, a := range args {
		if p := CleanPath(a); p != "" {
			cfg.Directories = append(cfg.Directories, p)
		}
	}
	if len(cfg.Directories) == 0 {
		return fmt.Errorf("need at least one input directory")
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "framebatch v" + version + " - multi-directory image batcher and splitter"},
		{"", ""},
		{"  framebatch [OPTIONS] <dir_1> [dir_2 ... dir_50]", ""},
		{"", ""},
		{"Load", ""},
		{"  --cap <n>", "Max images per folder (0 = unlimited)"},
		{"  --skip <n>", "Skip the first N images of each folder"},
		{"  -n, --every <n>", "Keep every Nth remaining image (default: 1)"},
		{"  --no-size-check", "Skip folders with mismatched frame sizes instead of resizing"},
		{"", ""},
		{"Save", ""},
		{"  --format <images|mp4>", "Output format (default: images)"},
		{"  --image-format <fmt>", "Image encoding: png | jpg | webp (default: png)"},
		{"  -p, --prefix <name>", "Output name prefix (default: output)"},
		{"  -o, --out <dir>", "Output directory (default: ./output)"},
		{"  --fps <n>", "Video frame rate (default: 24)"},
		{"  -q, --quality <n>", "jpg/webp quality 1-100 (default: 95)"},
		{"  --crf <n>", "Video CRF 0-51 (default: 23)"},
		{"", ""},
		{"Behavior", ""},
		{"  --no-split", "Save the whole batch as one artifact"},
		{"  -d, --dry-run", "Preview only; do not write outputs"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, libx264, decoders)"},
		{"  --fingerprint", "Print input fingerprint and exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum types can be used with flag.Var.

type outputFormatValue struct{ p *OutputFormat }

func (o *outputFormatValue) String() string { return string(*o.p) }
func (o *outputFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "images":
		*o.p = OutputImages
	case "mp4":
		*o.p = OutputMP4
	default:
		return fmt.Errorf("invalid output format %q (use 'images' or 'mp4')", s)
	}
	return nil
}

type imageFormatValue struct{ p *ImageFormat }

func (i *imageFormatValue) String() string { return string(*i.p) }
func (i *imageFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "png":
		*i.p = FormatPNG
	case "jpg", "jpeg":
		*i.p = FormatJPG
	case "webp":
		*i.p = FormatWebP
	default:
		return fmt.Errorf("invalid image format %q (use 'png', 'jpg' or 'webp')", s)
	}
	return nil
}
