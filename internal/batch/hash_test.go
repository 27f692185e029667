package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_Stable(t *testing.T) {
	root := t.TempDir()
	dir := makeFolder(t, root, "a", 3, 4, 4)

	first, err := Fingerprint([]string{dir}, Limits{EveryNth: 1})
	require.NoError(t, err)
	second, err := Fingerprint([]string{dir}, Limits{EveryNth: 1})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	root := t.TempDir()
	dir := makeFolder(t, root, "a", 2, 4, 4)

	before, err := Fingerprint([]string{dir}, Limits{EveryNth: 1})
	require.NoError(t, err)

	writePNG(t, dir, "img_000.png", 4, 4, 99, 255)

	after, err := Fingerprint([]string{dir}, Limits{EveryNth: 1})
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprint_RespectsLimits(t *testing.T) {
	root := t.TempDir()
	dir := makeFolder(t, root, "a", 6, 4, 4)

	all, err := Fingerprint([]string{dir}, Limits{EveryNth: 1})
	require.NoError(t, err)
	capped, err := Fingerprint([]string{dir}, Limits{EveryNth: 1, Cap: 2})
	require.NoError(t, err)
	assert.NotEqual(t, all, capped, "different selections must fingerprint differently")
}

func TestFingerprint_IgnoresInvalidDirs(t *testing.T) {
	root := t.TempDir()
	dir := makeFolder(t, root, "a", 2, 4, 4)
	missing := filepath.Join(root, "missing")
	notADir := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	with, err := Fingerprint([]string{dir, missing, notADir}, Limits{EveryNth: 1})
	require.NoError(t, err)
	only, err := Fingerprint([]string{dir}, Limits{EveryNth: 1})
	require.NoError(t, err)
	assert.Equal(t, only, with)
}
