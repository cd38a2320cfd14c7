package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DebugPath returns where the raw output of f is kept when it fails to
// format. The .txt suffix keeps it out of the package build.
func (f GeneratedFile) DebugPath() string {
	return filepath.Join(f.Dir, strings.TrimSuffix(f.Filename, ".go")+".unformatted.txt")
}

// writeDebugUnformatted writes the unformatted content of file next to its
// intended output and returns the sidecar path. Files without a directory
// are skipped.
func writeDebugUnformatted(file GeneratedFile) (string, error) {
	if file.Dir == "" || file.Filename == "" {
		return "", nil
	}

	if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
		return "", fmt.Errorf("creating debug directory: %w", err)
	}

	path := file.DebugPath()
	if err := os.WriteFile(path, file.Content, filePerm); err != nil {
		return "", fmt.Errorf("writing debug file %s: %w", path, err)
	}

	return path, nil
}
