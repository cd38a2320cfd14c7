package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Path returns the destination of the file.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// WriteFiles writes all generated files into their package directories.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		err := os.MkdirAll(file.Dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(file.Path(), file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Path(), err)
		}
	}

	return nil
}

// Stale returns the paths of the files whose content on disk differs from
// the generated content, including files that do not exist yet.
func Stale(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		existing, err := os.ReadFile(file.Path())
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, file.Path())
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading file %s: %w", file.Path(), err)
		}

		if !bytes.Equal(existing, file.Content) {
			stale = append(stale, file.Path())
		}
	}

	return stale, nil
}
