package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Fingerprint hashes the exact post-filter input set: for each directory, in
// order, the contents of every file that would be loaded under the given
// limits. Invalid or empty directories contribute nothing. Callers use the
// digest to detect whether a re-run would see different inputs.
func Fingerprint(dirs []string, limits Limits) (string, error) {
	outer := sha256.New()
	for _, dir := range dirs {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			continue
		}
		files, err := ListImageFiles(dir)
		if err != nil {
			continue
		}
		for _, path := range ApplyLimits(files, limits) {
			digest, err := hashFile(path)
			if err != nil {
				return "", err
			}
			outer.Write([]byte(digest))
		}
	}
	return hex.EncodeToString(outer.Sum(nil)), nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
