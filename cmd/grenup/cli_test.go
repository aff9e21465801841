package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gren-lang/grenup/internal/gren"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	exited  bool
	exitVal int
}

func runCmd(t *testing.T, args ...string) *runResult {
	t.Helper()
	var result runResult
	Run(args, &runOpts{
		stdout:  &result.stdout,
		stderr:  &result.stderr,
		cmdName: "grenup",
		exitHandler: func(code int) {
			result.exited = true
			result.exitVal = code
		},
	})
	return &result
}

// testHome points HOME at a temp dir so commands resolve into it.
func testHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on HOME")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")
	// set for restoration, then unset so presence checks don't see it
	t.Setenv("GREN_BIN", "")
	os.Unsetenv("GREN_BIN")
	return home
}

// hostTarget resolves the default target for the test host, skipping on
// unsupported platforms.
func hostTarget(t *testing.T, home string) gren.Target {
	t.Helper()
	resolver := &gren.Resolver{}
	target, err := resolver.Resolve(gren.HostPlatform(), gren.Environ{}, home)
	if errors.Is(err, gren.ErrUnsupportedPlatform) {
		t.Skipf("unsupported host platform %s", gren.HostPlatform())
	}
	require.NoError(t, err)
	return target
}

func Test_versionCmd(t *testing.T) {
	result := runCmd(t, "version")
	require.False(t, result.exited)
	assert.Equal(t, "grenup: version unknown (gren compiler "+gren.CompilerVersion+")", strings.TrimSpace(result.stdout.String()))
}

func Test_whichCmd(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		testHome(t)
		t.Setenv("GREN_BIN", "/opt/custom/gren")
		result := runCmd(t, "which")
		require.False(t, result.exited)
		assert.Equal(t, filepath.FromSlash("/opt/custom/gren"), strings.TrimSpace(result.stdout.String()))
	})

	t.Run("cache path", func(t *testing.T) {
		home := testHome(t)
		target := hostTarget(t, home)
		result := runCmd(t, "which")
		require.False(t, result.exited)
		assert.Equal(t, target.LocalPath, strings.TrimSpace(result.stdout.String()))
	})
}

func Test_installCmd(t *testing.T) {
	t.Run("refuses override", func(t *testing.T) {
		testHome(t)
		t.Setenv("GREN_BIN", "/opt/custom/gren")
		result := runCmd(t, "install")
		require.True(t, result.exited)
		require.Equal(t, 1, result.exitVal)
		assert.Contains(t, result.stderr.String(), "nothing to install")
	})

	t.Run("rejects bad version", func(t *testing.T) {
		testHome(t)
		result := runCmd(t, "install", "--compiler-version", "not-a-version")
		require.True(t, result.exited)
		require.Equal(t, 1, result.exitVal)
		assert.Contains(t, result.stderr.String(), "invalid compiler version")
	})
}

func Test_cacheClearCmd(t *testing.T) {
	t.Run("empty cache", func(t *testing.T) {
		home := testHome(t)
		hostTarget(t, home)
		result := runCmd(t, "cache", "clear", "--force")
		require.False(t, result.exited)
		assert.Equal(t, "cache is empty", strings.TrimSpace(result.stdout.String()))
	})

	t.Run("clears installed versions", func(t *testing.T) {
		home := testHome(t)
		target := hostTarget(t, home)
		require.NoError(t, os.MkdirAll(filepath.Dir(target.LocalPath), 0o755))
		require.NoError(t, os.WriteFile(target.LocalPath, []byte("fake compiler"), 0o755))
		result := runCmd(t, "cache", "clear", "--force")
		require.False(t, result.exited)
		assert.NoFileExists(t, target.LocalPath)
	})
}
