package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath validates and cleans an output file path.
// It resolves ".." components via filepath.Clean + filepath.Abs, rejects
// paths that resolve to symlinks and refuses any path that names one of
// the protected files (typically the bundle's entry document). New files in
// existing directories are accepted. Returns the cleaned absolute path.
func SanitizeOutputPath(path string, protected ...string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	for _, p := range protected {
		if p == "" {
			continue
		}
		pAbs, err := filepath.Abs(p)
		if err == nil && pAbs == abs {
			return "", fmt.Errorf("pathutil: refusing to overwrite input file: %s", abs)
		}
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
		}
	case os.IsNotExist(err):
		// New file
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}
