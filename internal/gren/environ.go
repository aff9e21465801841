package gren

import (
	"os"
	"strings"
)

// Environ is a snapshot of environment variables. The launcher reads it
// once at startup so resolution stays a pure function of its inputs.
type Environ map[string]string

// SystemEnviron snapshots the process environment.
func SystemEnviron() Environ {
	environ := os.Environ()
	env := make(Environ, len(environ))
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[key] = val
	}
	return env
}

// IsSet reports whether key is present, regardless of its value.
func (e Environ) IsSet(key string) bool {
	_, ok := e[key]
	return ok
}
