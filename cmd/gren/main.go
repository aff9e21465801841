// Command gren launches the Gren compiler, downloading it on first use.
// Every argument is passed through to the compiler verbatim and the
// compiler's exit code becomes this process's exit code.
package main

import (
	"context"
	"os"

	"github.com/gren-lang/grenup/internal/gren"
	"github.com/gren-lang/grenup/internal/ui"
)

func main() {
	code, err := gren.Launch(context.Background(), os.Args[1:], nil)
	if err != nil {
		ui.Errorf("gren: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
