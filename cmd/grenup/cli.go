// Command grenup manages the compiler cache the gren launcher installs
// into: pre-install a compiler, print the resolved binary path, clear the
// cache.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gren-lang/grenup/internal/gren"
	"github.com/willabides/kongplete"
)

var kongVars = kong.Vars{
	"install_help":             `download and install the compiler if it isn't cached yet`,
	"install_force_help":       `re-download even if the compiler is already cached`,
	"compiler_version_help":    `compiler version to install instead of the pinned one`,
	"which_help":               `print the path the launcher would run`,
	"cache_clear_help":         `remove all cached compiler versions`,
	"cache_clear_force_help":   `don't ask for confirmation`,
	"version_help":             `show grenup and pinned compiler versions`,
	"install_completions_help": `install shell completions`,
	"compiler_version_default": gren.CompilerVersion,
}

type rootCmd struct {
	Install installCmd `kong:"cmd,help=${install_help}"`
	Which   whichCmd   `kong:"cmd,help=${which_help}"`
	Cache   cacheCmd   `kong:"cmd,help='manage the compiler cache'"`
	Version versionCmd `kong:"cmd,help=${version_help}"`

	InstallCompletions kongplete.InstallCompletions `kong:"cmd,help=${install_completions_help}"`
}

type runContext struct {
	stdout io.Writer
	stderr io.Writer
}

type runOpts struct {
	stdout      io.Writer
	stderr      io.Writer
	cmdName     string
	exitHandler func(int)
}

// Run parses args and runs the selected subcommand.
func Run(args []string, opts *runOpts) {
	if opts == nil {
		opts = &runOpts{}
	}
	runCtx := &runContext{
		stdout: opts.stdout,
		stderr: opts.stderr,
	}
	if runCtx.stdout == nil {
		runCtx.stdout = os.Stdout
	}
	if runCtx.stderr == nil {
		runCtx.stderr = os.Stderr
	}

	kongOptions := []kong.Option{
		kong.HelpOptions{Compact: true},
		kong.BindTo(runCtx, &runCtx),
		kongVars,
		kong.UsageOnError(),
		kong.Writers(runCtx.stdout, runCtx.stderr),
	}
	if opts.exitHandler != nil {
		kongOptions = append(kongOptions, kong.Exit(opts.exitHandler))
	}
	if opts.cmdName != "" {
		kongOptions = append(kongOptions, kong.Name(opts.cmdName))
	}

	var root rootCmd
	parser := kong.Must(&root, kongOptions...)
	kongplete.Complete(parser)

	kongCtx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	kongCtx.FatalIfErrorf(kongCtx.Run())
}

// resolveTarget resolves the compiler binary the way the launcher would.
func resolveTarget(version string) (gren.Target, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return gren.Target{}, err
	}
	resolver := &gren.Resolver{Version: version}
	return resolver.Resolve(gren.HostPlatform(), gren.SystemEnviron(), home)
}
