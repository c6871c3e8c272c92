package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// tempPattern names in-flight writes. Leftovers after a crash can be removed
// by matching it.
const tempPattern = ".tealgen-*.tmp"

// FilesystemSink writes files below a root directory.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite replaces existing files. When false, writing to an existing
	// path fails with ErrExists.
	Overwrite bool
}

// NewFilesystemSink returns a sink rooted at root that overwrites existing
// files.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root, Mode: 0644, Overwrite: true}
}

// WriteFile writes content atomically: the data goes to a temp file in the
// target directory which is then renamed (or hard-linked, when Overwrite is
// false) into place. Parent directories are created as needed.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create directories")
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmp.Name()
	// Removing an already renamed temp file is a no-op error.
	defer os.Remove(tmpPath)

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if writeErr != nil {
		return errors.Wrap(writeErr, "failed to write temp file")
	}
	if closeErr != nil {
		return errors.Wrap(closeErr, "failed to close temp file")
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return errors.Wrap(err, "failed to set file mode")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.Overwrite {
		if err := os.Rename(tmpPath, fullPath); err != nil {
			return errors.Wrap(err, "failed to rename temp file")
		}
		return nil
	}

	// Link fails with EEXIST instead of replacing the target.
	if err := os.Link(tmpPath, fullPath); err != nil {
		if errors.Is(err, os.ErrExist) {
			return errors.Wrapf(ErrExists, "%q", path)
		}
		return errors.Wrap(err, "failed to create file")
	}
	return nil
}

// resolve joins path to the root and checks the result stays inside it.
func (s *FilesystemSink) resolve(path string) (string, error) {
	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve root directory")
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve path")
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", errors.Newf("path escapes root directory: %q", path)
	}
	return fullPath, nil
}
