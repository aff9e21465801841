// Package gren implements the self-installing launcher for the Gren
// compiler: it resolves the platform-specific compiler binary, downloads
// and caches it on first use, and delegates execution to it.
package gren

// CompilerVersion is the compiler release this launcher is pinned to.
const CompilerVersion = "0.5.3"

// releaseHost is the base URL compiler binaries are downloaded from.
const releaseHost = "https://github.com/gren-lang/compiler/releases/download"
