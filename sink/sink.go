// Package sink provides destinations for rendered declaration files.
package sink

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// OutputSink receives rendered files. Implementations must be safe for
// concurrent use.
type OutputSink interface {
	// WriteFile stores content under path, a clean slash-separated path
	// relative to the sink's root.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// ErrExists is returned by sinks that refuse to replace an existing file.
var ErrExists = errors.New("file already exists")

// ValidatePath rejects paths that are empty, absolute, not clean, or that
// could leave the sink's root.
func ValidatePath(path string) error {
	if path == "" || path == "." {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || hasDriveLetter(path) {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	if strings.Contains(path, `\`) {
		return errors.New("path must use / as separator")
	}
	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != path {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}

func hasDriveLetter(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
