package submit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirSaver writes artifacts into a local directory, the client-side stand-in
// for a browser download.
type DirSaver struct {
	Dir string
}

// NewDirSaver constructs a saver rooted at dir.
func NewDirSaver(dir string) (DirSaver, error) {
	if dir == "" {
		return DirSaver{}, errors.New("submit: output directory is required")
	}
	return DirSaver{Dir: dir}, nil
}

// Save writes the artifact, creating the directory when missing.
func (d DirSaver) Save(filename string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", d.Dir, err)
	}
	path := filepath.Join(d.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
