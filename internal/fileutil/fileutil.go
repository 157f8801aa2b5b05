// Package fileutil holds file permission constants and write helpers for
// bundled output.
package fileutil

import (
	"fmt"
	"os"
)

// OwnerReadWrite is the file permission mode for bundled spec files,
// which may contain internal API details (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// WriteFile writes data to path and then forces mode, so a pre-existing
// file with looser permissions is tightened as well.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("fileutil: setting permissions on %s: %w", path, err)
	}
	return nil
}
