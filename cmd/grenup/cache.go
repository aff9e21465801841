package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gren-lang/grenup/internal/cache"
	"github.com/gren-lang/grenup/internal/gren"
)

type cacheCmd struct {
	Clear cacheClearCmd `kong:"cmd,help=${cache_clear_help}"`
}

type cacheClearCmd struct {
	Force bool `kong:"help=${cache_clear_force_help}"`
}

func (c *cacheClearCmd) Run(ctx *runContext) error {
	// resolve without the override so we always land on the cache location
	env := gren.SystemEnviron()
	delete(env, "GREN_BIN")
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	resolver := &gren.Resolver{}
	target, err := resolver.Resolve(gren.HostPlatform(), env, home)
	if err != nil {
		return err
	}
	versionCache := &cache.Cache{Root: target.CacheDir}
	versions, err := versionCache.Versions()
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Fprintln(ctx.stdout, "cache is empty")
		return nil
	}
	confirmed := c.Force
	if !confirmed {
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Remove %d cached compiler version(s) under %s?", len(versions), target.CacheDir),
		}
		err = survey.AskOne(prompt, &confirmed)
		if err != nil {
			return err
		}
	}
	if !confirmed {
		return nil
	}
	return versionCache.Clear()
}
