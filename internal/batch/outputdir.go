package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/invoicepack/pkg/logger"
)

// ErrOutputIsSource is returned when the output directory would be cleared
// together with the source documents.
var ErrOutputIsSource = errors.New("output directory is the source directory")

// PrepareOutputDir creates dir, or deletes the regular files directly inside
// it when it already exists. Subdirectories are left alone. It returns the
// number of files removed.
func PrepareOutputDir(dir string, log *logger.Logger) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("error reading output directory %s: %w", dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to clear output directory: %w", err)
		}
		log.Trace("Removed previous output: %s", entry.Name())
		removed++
	}

	if removed > 0 {
		log.Debug("Cleared %d file(s) from %s", removed, dir)
	}
	return removed, nil
}

// sameDir reports whether a and b name the same directory, following
// symlinks. A path that does not exist yet matches only by its absolute form.
func sameDir(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", b, err)
	}
	if absA == absB {
		return true, nil
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}
