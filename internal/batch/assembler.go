package batch

import (
	"path/filepath"
	"strconv"

	"github.com/kovidgoyal/imaging"

	"github.com/backmassage/framebatch/internal/logging"
	"github.com/backmassage/framebatch/internal/naming"
)

// Batch is the flat concatenation of all folder groups in directory order,
// plus the boundary index that maps positions back to folders. After
// assembly the pair is handed off to downstream stages; the assembler keeps
// no reference.
type Batch struct {
	Frames []Frame
	Index  BoundaryIndex
}

// Assembler drives the reader over an ordered directory list and
// concatenates the results.
//
// Resize policy: when SizeCheck is set, every frame in a group is brought to
// the group's first frame's dimensions by aspect-preserving scale-to-cover
// with a center crop (Lanczos). The target is folder-scoped; groups from
// different folders may keep different dimensions. When SizeCheck is off, a
// dimension mismatch inside a group skips that group with a warning and
// leaves sibling folders untouched.
type Assembler struct {
	Reader    *Reader
	SizeCheck bool
	Log       *logging.Logger
}

// Assemble processes dirs in order and returns the flat batch and its
// boundary index. Folder-level failures are logged and skipped; an input
// where every folder fails yields an empty batch and an empty index, which
// callers treat as "nothing to process" rather than an error.
func (a *Assembler) Assemble(dirs []string) *Batch {
	out := &Batch{}
	labels := newLabelSet()

	for i, dir := range dirs {
		a.Log.Info("[%d/%d] %s", i+1, len(dirs), dir)

		frames, err := a.Reader.ReadFolder(dir)
		if err != nil {
			a.Log.Warn("Skipping folder: %v", err)
			continue
		}

		frames = NormalizeAlpha(frames)

		frames, ok := a.normalizeSizes(dir, frames)
		if !ok {
			continue
		}

		label := labels.claim(naming.Sanitize(filepath.Base(dir)))
		out.Index.Append(label, len(frames))
		out.Frames = append(out.Frames, frames...)
		a.Log.Info("  %s: %d frames (%dx%d)", label, len(frames), frames[0].Width(), frames[0].Height())
	}
	return out
}

// normalizeSizes enforces the group dimension invariant against the group's
// first frame. Returns false when the group must be skipped.
func (a *Assembler) normalizeSizes(dir string, frames []Frame) ([]Frame, bool) {
	w, h := frames[0].Width(), frames[0].Height()
	for i := range frames {
		if frames[i].Width() == w && frames[i].Height() == h {
			continue
		}
		if !a.SizeCheck {
			a.Log.Warn("Skipping folder %s: frame %d is %dx%d, group is %dx%d (size check disabled)",
				dir, i, frames[i].Width(), frames[i].Height(), w, h)
			return nil, false
		}
		a.Log.Debug("Resizing frame %d from %dx%d to %dx%d",
			i, frames[i].Width(), frames[i].Height(), w, h)
		frames[i].Image = imaging.Fill(frames[i].Image, w, h, imaging.Center, imaging.Lanczos)
	}
	return frames, true
}

// labelSet disambiguates folder labels when two active directories share a
// leaf name: the first keeps the bare name, later ones get "_2", "_3", ...
// so two folders never merge into one output artifact.
type labelSet struct {
	seen map[string]int
}

func newLabelSet() *labelSet {
	return &labelSet{seen: make(map[string]int)}
}

func (s *labelSet) claim(label string) string {
	s.seen[label]++
	if n := s.seen[label]; n > 1 {
		return s.claim(label + "_" + strconv.Itoa(n))
	}
	return label
}
