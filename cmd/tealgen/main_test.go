package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/broady/tealgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Counter struct {
	Count int
}

func (c *Counter) Incr() {}

func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	snap, err := tealgen.FromValues(Counter{}).Module("snap").Snapshot(context.Background())
	require.NoError(t, err)
	path := filepath.Join(dir, "snap.json")
	require.NoError(t, os.WriteFile(path, snap, 0644))
	return path
}

func TestRender_Stdout(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)

	var stdout, stderr bytes.Buffer
	err := run([]string{"--config", filepath.Join(dir, "none.toml"), "render", snap, "--module", "counter"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "global record counter\n\trecord Counter\n"), out)
	assert.Contains(t, out, "\t\tIncr: function(Counter):()\n")
	assert.True(t, strings.HasSuffix(out, "return counter\n"))
}

func TestRender_ConfigFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	outDir := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "tealgen.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
module = "fromfile"
out_dir = "`+filepath.ToSlash(outDir)+`"
out_file = "types/api.d.tl"
`), 0644))

	var stdout, stderr bytes.Buffer
	err := run([]string{"--config", cfgPath, "render", snap, "--local"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(filepath.Join(outDir, "types", "api.d.tl"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "local record fromfile\n"))

	err = run([]string{"--config", cfgPath, "render", snap, "-m", "flagged", "--out-file", "flagged.d.tl"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	data, err = os.ReadFile(filepath.Join(outDir, "flagged.d.tl"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "global record flagged\n"))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	noCfg := filepath.Join(dir, "none.toml")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--config", noCfg, "check", snap, "-m", "c"}, &stdout, &stderr))
	assert.Equal(t, snap+": ok\n", stdout.String())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"givenTypes":[{"kind":"class"}]}`), 0644))
	err := run([]string{"--config", noCfg, "check", bad, "-m", "c"}, &stdout, &stderr)
	assert.ErrorContains(t, err, "class")

	err = run([]string{"--config", noCfg, "check", snap}, &stdout, &stderr)
	assert.ErrorContains(t, err, "ModuleName")
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), strings.TrimSpace(embeddedVersion))
}

func TestVersionFrom(t *testing.T) {
	stamp := func(version string, settings ...debug.BuildSetting) *debug.BuildInfo {
		info := &debug.BuildInfo{Settings: settings}
		info.Main.Version = version
		return info
	}
	rev := debug.BuildSetting{Key: "vcs.revision", Value: "abc1234def"}

	tests := []struct {
		name string
		info *debug.BuildInfo
		want string
	}{
		{"no build info", nil, "0.1.0"},
		{"installed", stamp("v0.2.0", rev), "v0.2.0"},
		{"devel without vcs", stamp("(devel)"), "devel-0.1.0"},
		{"devel with revision", stamp("(devel)", rev), "devel-0.1.0+abc1234"},
		{"dirty checkout", stamp("", rev, debug.BuildSetting{Key: "vcs.modified", Value: "true"}), "devel-0.1.0+abc1234-dirty"},
		{"short revision ignored", stamp("(devel)", debug.BuildSetting{Key: "vcs.revision", Value: "abc"}), "devel-0.1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versionFrom("0.1.0", tt.info))
		})
	}
}
