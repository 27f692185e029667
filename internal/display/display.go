// Package display holds the banner and summary formatting helpers.
package display

import (
	"fmt"
	"os"
)

// PrintBanner prints the ASCII art banner.
func PrintBanner() {
	fmt.Fprint(os.Stdout, ` _____                         ____        _       _
|  ___| __ __ _ _ __ ___   ___| __ )  __ _| |_ ___| |__
| |_ | '__/ _`+"`"+` | '_ `+"`"+` _ \ / _ \  _ \ / _`+"`"+` | __/ __| '_ \
|  _|| | | (_| | | | | | |  __/ |_) | (_| | || (__| | | |
|_|  |_|  \__,_|_| |_| |_|\___|____/ \__,_|\__\___|_| |_|
`)
	fmt.Fprintln(os.Stdout)
}

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}
