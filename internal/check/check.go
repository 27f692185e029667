// Package check provides system diagnostics (--check mode) and pre-save
// dependency validation for the external ffmpeg encoder.
package check

import (
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/framebatch/internal/encode"
)

// ErrFfmpegNotFound is returned when mp4 output is requested but no ffmpeg
// binary can be located.
var ErrFfmpegNotFound = errors.New("ffmpeg not found (required for mp4 output)")

// Logger is the minimal logging interface needed by RunCheck. Defined here
// rather than importing the logging package so that check stays dependency-
// light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: ffmpeg availability and
// version, libx264 test encode, and the image decoders compiled in. This is
// informational only and does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	path := encode.LookPath()
	checkFfmpeg(log, path)
	checkX264(log, path)
	checkDecoders(log)
}

// checkFfmpeg verifies ffmpeg can be located and logs its version string.
func checkFfmpeg(log Logger, path string) {
	if path == "" {
		log.Error("ffmpeg not found (mp4 output unavailable)")
		return
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("ffmpeg found at %s but -version failed: %v", path, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Info("ffmpeg: %s (%s)", firstLine, path)
}

// checkX264 runs a minimal libx264 encode via the discovered binary to
// verify mp4 output would work.
func checkX264(log Logger, path string) {
	if path == "" {
		return
	}
	log.Info("Testing libx264...")
	if runSilent(path,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=64x64:d=0.1",
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		"-f", "null", "-",
	) {
		log.Info("libx264 works")
	} else {
		log.Error("libx264 test encode failed")
	}
}

// checkDecoders lists the still-image formats this build can read and write.
func checkDecoders(log Logger) {
	log.Info("Input formats: png, jpg, jpeg, gif, bmp, tif, tiff, webp")
	log.Info("Output formats: png, jpg, webp (images), mp4 (video)")
}

// CheckDeps is the pre-save validation: mp4 output needs a working ffmpeg.
// Image-sequence output has no external dependencies.
func CheckDeps(needVideo bool) error {
	if !needVideo {
		return nil
	}
	if encode.LookPath() == "" {
		return ErrFfmpegNotFound
	}
	return nil
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
