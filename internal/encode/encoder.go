// Package encode wraps the external ffmpeg process that turns one folder's
// frame sequence into a video file.
package encode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Options configure one encode invocation.
type Options struct {
	FrameRate int // Frames per second, > 0.
	CRF       int // 0 (lossless) .. 51 (worst).
}

// framePattern is the printf-style name for staged frames inside the temp dir.
const framePattern = "frame_%05d.png"

// LookPath finds the ffmpeg binary: PATH first, then common install
// locations. Returns empty if none is found.
func LookPath() string {
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p
	}
	for _, p := range []string{
		"/usr/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		`C:\ffmpeg\bin\ffmpeg.exe`,
		`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
	} {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// buildCmd assembles the ffmpeg invocation: image2 sequence input at the
// requested frame rate, libx264 at the requested CRF, yuv420p pixel format
// and medium preset for broad player compatibility. bin is the discovered
// ffmpeg binary; it replaces the bare "ffmpeg" the builder emits so that a
// binary found only at a fallback location is actually the one invoked.
func buildCmd(ctx context.Context, bin, pattern, outputPath string, opts Options) *exec.Cmd {
	cmd := ffmpeg.Input(pattern, ffmpeg.KwArgs{
		"framerate": opts.FrameRate,
	}).Output(outputPath, ffmpeg.KwArgs{
		"c:v":     "libx264",
		"crf":     opts.CRF,
		"pix_fmt": "yuv420p",
		"preset":  "medium",
	}).OverWriteOutput().Compile()

	return exec.CommandContext(ctx, bin, cmd.Args[1:]...)
}

// Encode stages frames as numbered PNGs in a temp directory and runs ffmpeg
// to produce outputPath. Failure is returned to the caller, who reports it
// for this folder and moves on; one folder's encode never aborts siblings.
func Encode(ctx context.Context, frames []image.Image, outputPath string, opts Options) error {
	bin := LookPath()
	if bin == "" {
		return errors.New("ffmpeg not found (install ffmpeg to export mp4)")
	}
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}

	tmp, err := os.MkdirTemp("", "framebatch-encode-")
	if err != nil {
		return errors.Wrap(err, "create temp frame dir")
	}
	defer os.RemoveAll(tmp)

	for i, img := range frames {
		path := filepath.Join(tmp, fmt.Sprintf(framePattern, i))
		if err := savePNG(path, img); err != nil {
			return err
		}
	}

	cmd := buildCmd(ctx, bin, filepath.Join(tmp, framePattern), outputPath, opts)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "ffmpeg failed: %s", lastLines(stderrBuf.String(), 5))
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "stage frame %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "stage frame %s", path)
	}
	return f.Close()
}

// lastLines trims ffmpeg's stderr to its tail, which carries the actual
// failure reason.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
