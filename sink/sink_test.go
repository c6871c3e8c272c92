package sink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{"simple", "types.d.tl", ""},
		{"nested", "teal/game/types.d.tl", ""},
		{"dots in name", "a..b.d.tl", ""},
		{"empty", "", "empty"},
		{"dot", ".", "empty"},
		{"absolute", "/etc/types.d.tl", "absolute paths not allowed"},
		{"drive letter", "C:stuff.d.tl", "absolute paths not allowed"},
		{"traversal", "a/../b.d.tl", "path traversal not allowed"},
		{"leading traversal", "../b.d.tl", "path traversal not allowed"},
		{"only dotdot", "..", "path traversal not allowed"},
		{"backslash", `a\b.d.tl`, "separator"},
		{"current dir prefix", "./a.d.tl", "not clean"},
		{"double slash", "a//b.d.tl", "not clean"},
		{"trailing slash", "a/", "not clean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFilesystemSink(t *testing.T) {
	ctx := context.Background()

	t.Run("writes nested file", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		require.NoError(t, s.WriteFile(ctx, "teal/mod.d.tl", []byte("return mod\n")))
		got, err := os.ReadFile(filepath.Join(dir, "teal", "mod.d.tl"))
		require.NoError(t, err)
		assert.Equal(t, "return mod\n", string(got))
	})

	t.Run("file mode", func(t *testing.T) {
		for _, tc := range []struct {
			mode, want os.FileMode
		}{{0600, 0600}, {0, 0644}} {
			dir := t.TempDir()
			s := NewFilesystemSink(dir)
			s.Mode = tc.mode
			require.NoError(t, s.WriteFile(ctx, "m.d.tl", []byte("x")))
			info, err := os.Stat(filepath.Join(dir, "m.d.tl"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, info.Mode().Perm(), "mode %o", tc.mode)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		for _, content := range []string{"first", "second"} {
			require.NoError(t, s.WriteFile(ctx, "m.d.tl", []byte(content)))
		}
		got, _ := os.ReadFile(filepath.Join(dir, "m.d.tl"))
		assert.Equal(t, "second", string(got))
	})

	t.Run("no overwrite", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		s.Overwrite = false
		require.NoError(t, s.WriteFile(ctx, "m.d.tl", []byte("first")))
		err := s.WriteFile(ctx, "m.d.tl", []byte("second"))
		require.ErrorIs(t, err, ErrExists)
		got, _ := os.ReadFile(filepath.Join(dir, "m.d.tl"))
		assert.Equal(t, "first", string(got))
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		s := NewFilesystemSink(dir)
		s.Overwrite = false
		_ = s.WriteFile(ctx, "m.d.tl", []byte("a"))
		_ = s.WriteFile(ctx, "m.d.tl", []byte("b"))

		matches, err := filepath.Glob(filepath.Join(dir, tempPattern))
		require.NoError(t, err)
		assert.Empty(t, matches, "temp files left behind")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := NewFilesystemSink(t.TempDir())
		assert.ErrorIs(t, s.WriteFile(cctx, "m.d.tl", nil), context.Canceled)
	})

	t.Run("invalid path", func(t *testing.T) {
		s := NewFilesystemSink(t.TempDir())
		assert.Error(t, s.WriteFile(ctx, "../escape.d.tl", nil))
	})
}

func TestFilesystemSink_Concurrent(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("mod%d.d.tl", i%5)
			assert.NoError(t, s.WriteFile(ctx, path, []byte(path)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		path := fmt.Sprintf("mod%d.d.tl", i)
		got, err := os.ReadFile(filepath.Join(dir, path))
		require.NoError(t, err)
		assert.Equal(t, path, string(got))
	}
}

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySink()

	content := []byte("return m\n")
	require.NoError(t, s.WriteFile(ctx, "b.d.tl", content))
	require.NoError(t, s.WriteFile(ctx, "a.d.tl", []byte("a")))

	// Stored content is a copy.
	content[0] = 'X'
	got := s.Get("b.d.tl")
	assert.Equal(t, "return m\n", string(got))
	got[0] = 'Y'
	assert.Equal(t, "return m\n", string(s.Get("b.d.tl")), "Get() must return a copy")

	assert.Equal(t, []string{"a.d.tl", "b.d.tl"}, s.Paths())
	assert.Nil(t, s.Get("missing.d.tl"))

	s.Reset()
	assert.Empty(t, s.Paths())

	assert.Error(t, s.WriteFile(ctx, "/abs.d.tl", nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterSink(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	require.NoError(t, s.WriteFile(ctx, "a.d.tl", []byte("one\n")))
	require.NoError(t, s.WriteFile(ctx, "b.d.tl", []byte("two\n")))
	assert.Equal(t, "one\ntwo\n", buf.String())

	assert.Error(t, s.WriteFile(ctx, "", nil))

	err := NewWriterSink(failingWriter{}).WriteFile(ctx, "a.d.tl", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
