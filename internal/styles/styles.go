// Package styles implements the appearance-configuration contract: an
// external stylesheet file wins when readable, the embedded default is
// used otherwise, and a missing file is never an error.
package styles

import (
	_ "embed"
	"os"
)

//go:embed default.css
var defaultSheet string

// Load returns the stylesheet text the shell should apply. The file at
// path is used when it can be read; any failure (missing, unreadable)
// silently falls back to the embedded default so startup never fails
// over appearance.
func Load(path string) string {
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			return string(b)
		}
	}
	return defaultSheet
}
