package gren

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLaunch(t *testing.T) {
	ctx := context.Background()
	if runtime.GOOS == "windows" {
		t.Skip("test requires a posix shell")
	}

	t.Run("fresh cache downloads then delegates", func(t *testing.T) {
		ts, requests := serveArtifact(t, []byte("#!/bin/sh\nexit 7\n"))
		home := t.TempDir()
		opts := &LaunchOpts{
			Platform: Platform{OS: "linux", Arch: "amd64"},
			Env:      Environ{},
			Home:     home,
			BaseURL:  ts.URL,
		}
		code, err := Launch(ctx, nil, opts)
		require.NoError(t, err)
		require.Equal(t, 7, code)
		binPath := filepath.Join(home, ".cache", "gren", CompilerVersion, "bin", "gren")
		info, err := os.Stat(binPath)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

		// warm cache: the second run makes no network requests
		code, err = Launch(ctx, nil, opts)
		require.NoError(t, err)
		require.Equal(t, 7, code)
		require.EqualValues(t, 1, requests.Load())
	})

	t.Run("override runs directly", func(t *testing.T) {
		ts, requests := serveArtifact(t, []byte("unused"))
		script := writeScript(t, "exit 4")
		code, err := Launch(ctx, nil, &LaunchOpts{
			Platform: Platform{OS: "linux", Arch: "amd64"},
			Env:      Environ{"GREN_BIN": script},
			Home:     t.TempDir(),
			BaseURL:  ts.URL,
		})
		require.NoError(t, err)
		require.Equal(t, 4, code)
		require.Zero(t, requests.Load())
	})

	t.Run("missing override is not downloaded", func(t *testing.T) {
		ts, requests := serveArtifact(t, []byte("unused"))
		missing := filepath.Join(t.TempDir(), "gren")
		_, err := Launch(ctx, nil, &LaunchOpts{
			Platform: Platform{OS: "linux", Arch: "amd64"},
			Env:      Environ{"GREN_BIN": missing},
			Home:     t.TempDir(),
			BaseURL:  ts.URL,
		})
		require.ErrorIs(t, err, ErrNoRemoteSource)
		require.Zero(t, requests.Load())
	})

	t.Run("NO_COLOR reaches the compiler", func(t *testing.T) {
		script := writeScript(t, `test "$NO_COLOR" = "1" || exit 9
test -z "$FORCE_COLOR" || exit 8`)
		code, err := Launch(ctx, nil, &LaunchOpts{
			Platform: Platform{OS: "linux", Arch: "amd64"},
			Env:      Environ{"GREN_BIN": script, "NO_COLOR": "1"},
			Home:     t.TempDir(),
		})
		require.NoError(t, err)
		require.Zero(t, code)
	})

	t.Run("ambiguous redirect fails the launch", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Add("Location", "https://example.com/a")
			w.Header().Add("Location", "https://example.com/b")
			w.WriteHeader(http.StatusFound)
		}))
		t.Cleanup(ts.Close)
		_, err := Launch(ctx, nil, &LaunchOpts{
			Platform: Platform{OS: "linux", Arch: "amd64"},
			Env:      Environ{},
			Home:     t.TempDir(),
			BaseURL:  ts.URL,
		})
		require.ErrorContains(t, err, "missing or vague location header")
	})

	t.Run("unsupported platform does nothing", func(t *testing.T) {
		ts, requests := serveArtifact(t, []byte("unused"))
		home := t.TempDir()
		_, err := Launch(ctx, nil, &LaunchOpts{
			Platform: Platform{OS: "linux", Arch: "arm64"},
			Env:      Environ{},
			Home:     home,
			BaseURL:  ts.URL,
		})
		require.ErrorIs(t, err, ErrUnsupportedPlatform)
		require.Zero(t, requests.Load())
		require.NoDirExists(t, filepath.Join(home, ".cache"))
	})
}
