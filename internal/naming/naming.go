// Package naming builds collision-free output names from the filename prefix
// and folder labels.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// invalidChars are characters replaced in output names; the set covers every
// filesystem the tool targets, not just the current one.
const invalidChars = `<>:"/\|?*`

// Sanitize replaces filesystem-hostile characters in name with underscores
// and trims trailing spaces and dots.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(invalidChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " .")
}

// OutputName joins the run's filename prefix with a folder label.
func OutputName(prefix, label string) string {
	return Sanitize(prefix) + "_" + label
}

// CollisionResolver hands out output paths, disambiguating duplicates with a
// numeric suffix. A path collides when it was already claimed during this
// run or when it already exists on disk from a prior run; either way the
// resolver picks the next free "_N" variant instead of silently reusing the
// name. It is used sequentially within a single run.
type CollisionResolver struct {
	claimed map[string]bool
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{claimed: make(map[string]bool)}
}

// Resolve returns the final output path for requested, appending "_2", "_3",
// ... before the extension until the candidate is free both in this run and
// on disk.
func (cr *CollisionResolver) Resolve(requested string) string {
	if cr.free(requested) {
		cr.claimed[requested] = true
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for counter := 2; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if cr.free(candidate) {
			cr.claimed[candidate] = true
			return candidate
		}
	}
}

func (cr *CollisionResolver) free(path string) bool {
	if cr.claimed[path] {
		return false
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}
