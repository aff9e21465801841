package gren

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gren-lang/grenup/internal/cache"
	"github.com/gren-lang/grenup/internal/ui"
)

// ErrNoRemoteSource is returned when the binary is missing and the target
// has nowhere to download it from.
var ErrNoRemoteSource = errors.New("not found and no remote source")

// InstallError is a terminal failure persisting a downloaded artifact.
type InstallError struct {
	Step string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install failed at %s: %v", e.Step, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// Installed reports whether the target's binary exists on disk. Mere
// existence is enough; contents are never verified.
func Installed(target Target) bool {
	_, err := os.Stat(target.LocalPath)
	return err == nil
}

// EnsureInstalled makes the target's binary available, downloading it on
// first use. Override targets are never downloaded; a missing override is
// ErrNoRemoteSource.
func EnsureInstalled(ctx context.Context, target Target) error {
	if Installed(target) {
		return nil
	}
	if target.RemoteURL == "" {
		return fmt.Errorf("%w: %s", ErrNoRemoteSource, target.LocalPath)
	}
	return Install(ctx, target)
}

// Install downloads the target's artifact and moves it into place. The
// binary is written to a temp file in the destination directory, made
// executable and renamed into place under the cache's version lock, so a
// racing reader never sees a partially-written binary.
func Install(ctx context.Context, target Target) error {
	binDir := filepath.Dir(target.LocalPath)
	err := os.MkdirAll(binDir, 0o755)
	if err != nil {
		return &InstallError{Step: "directory creation", Err: err}
	}
	versionCache := &cache.Cache{Root: target.CacheDir}
	return versionCache.WithLock(target.Version, func() error {
		// a racing invocation may have won the download while we waited
		if Installed(target) {
			return nil
		}
		err := writeArtifact(ctx, target, binDir)
		if err != nil {
			return err
		}
		ui.Infof("Downloaded gren %s\n", target.Version)
		return nil
	})
}

func writeArtifact(ctx context.Context, target Target, binDir string) (errOut error) {
	tmp, err := os.CreateTemp(binDir, ".gren-download-*")
	if err != nil {
		return &InstallError{Step: "write", Err: err}
	}
	defer func() {
		if errOut != nil {
			errOut = errors.Join(errOut, os.Remove(tmp.Name()))
		}
	}()
	err = downloadArtifact(ctx, target.RemoteURL, tmp)
	if err != nil {
		return errors.Join(err, tmp.Close())
	}
	err = tmp.Close()
	if err != nil {
		return &InstallError{Step: "write", Err: err}
	}
	err = os.Chmod(tmp.Name(), 0o755)
	if err != nil {
		return &InstallError{Step: "permission change", Err: err}
	}
	err = os.Rename(tmp.Name(), target.LocalPath)
	if err != nil {
		return &InstallError{Step: "rename", Err: err}
	}
	return nil
}
