package gren

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

// ColorMode is the color preference forwarded to the compiler.
type ColorMode int

const (
	// ColorForced sets FORCE_COLOR=1 in the child environment.
	ColorForced ColorMode = iota
	// ColorSuppressed sets NO_COLOR=1 in the child environment.
	ColorSuppressed
)

// DelegationError is a failure to spawn the compiler at all, as opposed to
// the compiler running and exiting non-zero.
type DelegationError struct {
	Path string
	Err  error
}

func (e *DelegationError) Error() string {
	return fmt.Sprintf("failed running %s: %v", e.Path, e.Err)
}

func (e *DelegationError) Unwrap() error { return e.Err }

// detectColorMode enables color when stdout is an interactive terminal and
// NO_COLOR is unset.
func detectColorMode(env Environ) ColorMode {
	if env.IsSet("NO_COLOR") {
		return ColorSuppressed
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ColorForced
	}
	return ColorSuppressed
}

// overlayColorEnv merges the color preference over the inherited
// environment so the child sees exactly one of FORCE_COLOR or NO_COLOR.
func overlayColorEnv(environ []string, mode ColorMode) []string {
	merged := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, "FORCE_COLOR=") || strings.HasPrefix(kv, "NO_COLOR=") {
			continue
		}
		merged = append(merged, kv)
	}
	if mode == ColorForced {
		return append(merged, "FORCE_COLOR=1")
	}
	return append(merged, "NO_COLOR=1")
}

// Run spawns the compiler at path with args, waits for it to finish and
// returns its exit code. The launcher's own exit code mirrors the child's,
// so callers inspecting exit codes can't tell the launcher was in between.
func Run(ctx context.Context, path string, args []string, mode ColorMode, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = overlayColorEnv(os.Environ(), mode)
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, &DelegationError{Path: path, Err: err}
	}
	return 0, nil
}
