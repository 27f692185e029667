// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation for the load and save stages.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// OutputFormat selects how each folder's slice is written.
type OutputFormat string

const (
	OutputImages OutputFormat = "images" // Numbered image sequence per folder (default).
	OutputMP4    OutputFormat = "mp4"    // libx264 MP4 per folder via external ffmpeg.
)

// ImageFormat is the still-image encoding used for image-sequence output.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"  // Lossless (default).
	FormatJPG  ImageFormat = "jpg"  // JPEG at Quality.
	FormatWebP ImageFormat = "webp" // WebP at Quality.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultMaxPathCount caps how many source directories one run may combine.
const DefaultMaxPathCount = 50

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Load stage.
	Directories     []string // Ordered source directories (positional args).
	MaxPathCount    int      // Upper bound on len(Directories). Default: 50.
	SizeCheck       bool     // Default: true. Resize within a folder to its first frame's size.
	ImageLoadCap    int      // Max images per folder; 0 = unlimited.
	SkipFirstImages int      // Images dropped from the start of each folder.
	SelectEveryNth  int      // Stride over the remaining images. Default: 1.

	// Save stage.
	OutputFormat   OutputFormat // Default: "images".
	ImageFormat    ImageFormat  // Default: "png".
	FilenamePrefix string       // Default: "output".
	OutputDir      string       // Empty = "./output".
	FrameRate      int          // Default: 24. MP4 only.
	Quality        int          // 1..100, jpg/webp only. Default: 95.
	VideoCRF       int          // 0..51, MP4 only. Default: 23.

	// Behavior flags.
	NoSplit bool // Save the whole batch as one artifact, ignoring folder boundaries.
	DryRun  bool

	// Display and logging.
	Verbose     bool
	ColorMode   ColorMode // Default: "auto".
	LogFile     string    // Optional log file path.
	CheckOnly   bool      // Run --check diagnostics and exit.
	Fingerprint bool      // Print the input fingerprint and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		MaxPathCount:    DefaultMaxPathCount,
		SizeCheck:       true,
		ImageLoadCap:    0,
		SkipFirstImages: 0,
		SelectEveryNth:  1,
		OutputFormat:    OutputImages,
		ImageFormat:     FormatPNG,
		FilenamePrefix:  "output",
		OutputDir:       "",
		FrameRate:       24,
		Quality:         95,
		VideoCRF:        23,
		ColorMode:       ColorAuto,
	}
}

// CleanPath strips surrounding whitespace and quotes from a user-supplied
// directory path, then trailing slashes. Paths pasted from file managers and
// shells commonly carry both.
func CleanPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges. When not in CheckOnly mode
// it also requires at least one directory argument and enforces MaxPathCount.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case OutputImages, OutputMP4:
		// valid
	default:
		return errors.New("invalid output format (use 'images' or 'mp4')")
	}

	switch c.ImageFormat {
	case FormatPNG, FormatJPG, FormatWebP:
		// valid
	default:
		return errors.New("invalid image format (use 'png', 'jpg' or 'webp')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MaxPathCount < 1 {
		return errors.New("max path count must be at least 1")
	}
	if c.ImageLoadCap < 0 {
		return errors.New("image load cap must not be negative")
	}
	if c.SkipFirstImages < 0 {
		return errors.New("skip count must not be negative")
	}
	if c.SelectEveryNth < 1 {
		return errors.New("stride must be at least 1")
	}
	if c.FrameRate < 1 {
		return errors.New("frame rate must be at least 1")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return errors.New("quality must be in 1..100")
	}
	if c.VideoCRF < 0 || c.VideoCRF > 51 {
		return errors.New("video CRF must be in 0..51")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Directories) == 0 {
		return errors.New("need at least one input directory")
	}
	if len(c.Directories) > c.MaxPathCount {
		return fmt.Errorf("too many input directories (%d, max %d)", len(c.Directories), c.MaxPathCount)
	}
	return nil
}

// ResolvedOutputDir returns OutputDir, or the default "output" directory in
// the working directory when unset.
func (c *Config) ResolvedOutputDir() string {
	if strings.TrimSpace(c.OutputDir) != "" {
		return CleanPath(c.OutputDir)
	}
	return "output"
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) any resolved input directory, which would make a re-run discover its
// own outputs. All arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputsAbs []string, outputAbs string) error {
	sep := string(filepath.Separator)
	for _, in := range inputsAbs {
		if outputAbs == in || strings.HasPrefix(outputAbs+sep, in+sep) {
			return fmt.Errorf("output directory must not be inside input directory %s", in)
		}
	}
	return nil
}

// VisibleIndices returns the 1-based directory field indices a dynamic form
// should show for the given path count. The engine never holds form state;
// a UI layer recomputes this from the single integer. Counts are clamped to
// [1, maxPathCount].
func VisibleIndices(pathCount, maxPathCount int) []int {
	if pathCount < 1 {
		pathCount = 1
	}
	if pathCount > maxPathCount {
		pathCount = maxPathCount
	}
	out := make([]int, pathCount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
