package main

import (
	"context"
	"fmt"

	"github.com/gren-lang/grenup/internal/cache"
	"github.com/gren-lang/grenup/internal/gren"
)

type installCmd struct {
	Force           bool   `kong:"help=${install_force_help}"`
	CompilerVersion string `kong:"name='compiler-version',default=${compiler_version_default},help=${compiler_version_help}"`
}

func (c *installCmd) Run(ctx *runContext) error {
	target, err := resolveTarget(c.CompilerVersion)
	if err != nil {
		return err
	}
	if target.Source == gren.SourceOverride {
		return fmt.Errorf("GREN_BIN points at %s; nothing to install", target.LocalPath)
	}
	if c.Force {
		versionCache := &cache.Cache{Root: target.CacheDir}
		err = versionCache.Evict(target.Version)
		if err != nil {
			return err
		}
	}
	err = gren.EnsureInstalled(context.Background(), target)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.stdout, target.LocalPath)
	return nil
}

type whichCmd struct{}

func (c *whichCmd) Run(ctx *runContext) error {
	target, err := resolveTarget("")
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.stdout, target.LocalPath)
	return nil
}
