package main

import (
	"github.com/alecthomas/kong"
	"github.com/gren-lang/grenup/internal/gren"
)

// Version is set at build time.
var Version = "unknown"

type versionCmd struct{}

func (*versionCmd) Run(k *kong.Context) error {
	k.Printf("version %s (gren compiler %s)", Version, gren.CompilerVersion)
	return nil
}
