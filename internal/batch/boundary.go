package batch

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrFrameCountMismatch is returned when a sequence given to the split stage
// does not have the length the boundary index was built for. The mapping
// between frames and folders is undefined at that point, so the whole save
// stage aborts rather than writing misattributed outputs.
var ErrFrameCountMismatch = errors.New("frame count does not match boundary index")

// Span maps one contiguous run of the flat batch back to its source folder.
type Span struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	Count int    `json:"count"`
}

// BoundaryIndex records folder provenance for a flat batch: an ordered list
// of spans covering the batch with no gaps and no overlaps, in directory
// order. It is built once during assembly, carried opaquely through the
// external processing stage, and consumed once at split time. It holds no
// live resources and survives JSON serialization unchanged.
type BoundaryIndex struct {
	Spans []Span `json:"spans"`
}

// Append adds a span for the next count frames under label.
func (b *BoundaryIndex) Append(label string, count int) {
	b.Spans = append(b.Spans, Span{Label: label, Start: b.Total(), Count: count})
}

// Total returns the number of frames the index covers.
func (b *BoundaryIndex) Total() int {
	n := 0
	for _, s := range b.Spans {
		n += s.Count
	}
	return n
}

// Validate checks that the index exactly covers a sequence of n frames:
// spans contiguous, non-overlapping, counts positive, sum equal to n.
// A deserialized index is validated here before any split.
func (b *BoundaryIndex) Validate(n int) error {
	next := 0
	for i, s := range b.Spans {
		if s.Count <= 0 {
			return errors.Errorf("span %d (%s) has non-positive count %d", i, s.Label, s.Count)
		}
		if s.Start != next {
			return errors.Errorf("span %d (%s) starts at %d, want %d", i, s.Label, s.Start, next)
		}
		next += s.Count
	}
	if next != n {
		return errors.Wrapf(ErrFrameCountMismatch, "index covers %d frames, sequence has %d", next, n)
	}
	return nil
}

// Marshal serializes the index for transport across the external stage.
func (b *BoundaryIndex) Marshal() ([]byte, error) {
	return json.Marshal(b)
}

// UnmarshalBoundaryIndex restores an index serialized by Marshal.
func UnmarshalBoundaryIndex(data []byte) (*BoundaryIndex, error) {
	var b BoundaryIndex
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "decode boundary index")
	}
	return &b, nil
}
