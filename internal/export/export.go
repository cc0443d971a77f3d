// Package export writes a finished run to disk.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sadopc/pomo/internal/store"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Write picks the format from the file extension of path.
func Write(path string, run *store.Run, entries []store.StageEntry) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ToCSV(run, entries, path)
	case ".json":
		return ToJSON(run, entries, path)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
