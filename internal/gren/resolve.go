package gren

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Platform identifies an operating system and CPU architecture pair in
// GOOS/GOARCH terms.
type Platform struct {
	OS   string
	Arch string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// HostPlatform is the platform the launcher is running on.
func HostPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// artifacts maps supported platforms to release artifact names.
var artifacts = map[Platform]string{
	{OS: "windows", Arch: "amd64"}: "gren.exe",
	{OS: "darwin", Arch: "amd64"}:  "gren_mac",
	{OS: "darwin", Arch: "arm64"}:  "gren_mac_aarch64",
	{OS: "linux", Arch: "amd64"}:   "gren_linux",
}

// Source says how a Target's local binary comes to exist.
type Source int

const (
	// SourceRemote means the binary is downloaded into the cache on first use.
	SourceRemote Source = iota
	// SourceOverride means an operator pointed GREN_BIN at a pre-installed
	// binary. Nothing is ever downloaded for an override.
	SourceOverride
)

// Target is the resolved location of the compiler binary. Immutable once
// computed.
type Target struct {
	Source    Source
	LocalPath string
	// RemoteURL is empty for override targets.
	RemoteURL string
	// Version and CacheDir are set for remote targets only. CacheDir is the
	// root of the launcher's version cache.
	Version  string
	CacheDir string
}

// ErrUnsupportedPlatform is returned when no compiler release exists for
// the running platform/architecture.
var ErrUnsupportedPlatform = errors.New("platform/arch not supported")

// Resolver maps a platform and environment to an InstallTarget. It does no
// I/O.
type Resolver struct {
	// Version is the compiler version to resolve. Defaults to CompilerVersion.
	Version string
	// BaseURL is the release download base. Defaults to the gren release host.
	BaseURL string
}

// Resolve computes the Target for the given platform, environment snapshot
// and home directory.
//
// Resolution order: a GREN_BIN override wins on every platform and never
// yields a remote URL. Otherwise the platform must be one of the four
// supported pairs, and the binary lives at
// <cache-root>/gren/<version>/bin/<gren|gren.exe>.
func (r *Resolver) Resolve(plat Platform, env Environ, home string) (Target, error) {
	version := r.Version
	if version == "" {
		version = CompilerVersion
	}
	if _, err := semver.NewVersion(version); err != nil {
		return Target{}, fmt.Errorf("invalid compiler version %q: %v", version, err)
	}
	baseURL := r.BaseURL
	if baseURL == "" {
		baseURL = releaseHost
	}

	if override, ok := env["GREN_BIN"]; ok {
		return Target{
			Source:    SourceOverride,
			LocalPath: filepath.FromSlash(override),
		}, nil
	}

	artifact, ok := artifacts[plat]
	if !ok {
		return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, plat)
	}

	binName := "gren"
	if plat.OS == "windows" {
		binName = "gren.exe"
	}
	cacheDir := filepath.Join(cacheRoot(plat, env, home), "gren")
	return Target{
		Source:    SourceRemote,
		LocalPath: filepath.Join(cacheDir, version, "bin", binName),
		RemoteURL: fmt.Sprintf("%s/%s/%s", baseURL, version, artifact),
		Version:   version,
		CacheDir:  cacheDir,
	}, nil
}

// cacheRoot returns the OS-appropriate directory for cached application
// data: LOCALAPPDATA on windows, Library/Caches on darwin and
// XDG_CACHE_HOME elsewhere, each with the conventional home-relative
// fallback.
func cacheRoot(plat Platform, env Environ, home string) string {
	switch plat.OS {
	case "windows":
		if dir := env["LOCALAPPDATA"]; dir != "" {
			return filepath.FromSlash(dir)
		}
		return filepath.Join(home, "AppData", "Local")
	case "darwin":
		return filepath.Join(home, "Library", "Caches")
	default:
		if dir := env["XDG_CACHE_HOME"]; dir != "" {
			return filepath.FromSlash(dir)
		}
		return filepath.Join(home, ".cache")
	}
}
