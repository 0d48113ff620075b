package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// manifestLine renders one concat demuxer entry. Single quotes cannot appear
// inside a quoted token, so each one closes the quote, adds an escaped quote
// and reopens.
func manifestLine(path string) string {
	return "file '" + strings.ReplaceAll(path, "'", `'\''`) + "'\n"
}

// writeManifest writes the concat list for files, in order, using absolute
// paths.
func writeManifest(path string, files []string) error {
	var b strings.Builder
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolve fragment path: %w", err)
		}
		b.WriteString(manifestLine(abs))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}
