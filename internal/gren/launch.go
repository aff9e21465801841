package gren

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gren-lang/grenup/internal/ui"
)

// LaunchOpts override the environment Launch derives its defaults from.
// Zero values mean "use the real thing"; tests fill these in.
type LaunchOpts struct {
	Platform Platform
	Env      Environ
	Home     string
	Version  string
	BaseURL  string
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// Launch is the whole launcher: resolve the compiler binary, install it if
// it's missing, then delegate to it. The returned int is the exit code the
// launcher process should finish with.
func Launch(ctx context.Context, args []string, opts *LaunchOpts) (int, error) {
	if opts == nil {
		opts = &LaunchOpts{}
	}
	plat := opts.Platform
	if plat == (Platform{}) {
		plat = HostPlatform()
	}
	env := opts.Env
	if env == nil {
		env = SystemEnviron()
	}
	home := opts.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return 0, fmt.Errorf("cannot determine home directory: %v", err)
		}
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	resolver := &Resolver{Version: opts.Version, BaseURL: opts.BaseURL}
	target, err := resolver.Resolve(plat, env, home)
	if err != nil {
		return 0, err
	}
	if !Installed(target) {
		if target.RemoteURL == "" {
			return 0, fmt.Errorf("%w: %s", ErrNoRemoteSource, target.LocalPath)
		}
		ui.Infof("gren %s not found, downloading...\n", target.Version)
		err = Install(ctx, target)
		if err != nil {
			return 0, err
		}
	}
	return Run(ctx, target.LocalPath, args, detectColorMode(env), stdin, stdout, stderr)
}
