package recipe

import (
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// followAliases walks same_with references starting at platform. It returns
// the concrete entry, or found=false when a key along the chain is missing.
func followAliases[T any](entries map[string]T, platform string, alias func(T) (string, bool)) (entry T, found bool, err error) {
	visited := make(map[string]bool)
	chain := make([]string, 0, 2)

	current := platform
	for {
		if visited[current] {
			chain = append(chain, current)
			return entry, false, errors.Newf(errors.ErrCycleDetected,
				"alias cycle detected: %s", strings.Join(chain, " -> ")).
				WithDetail("platform", platform).
				WithDetail("chain", chain)
		}
		visited[current] = true
		chain = append(chain, current)

		next, ok := entries[current]
		if !ok {
			return entry, false, nil
		}

		target, isAlias := alias(next)
		if !isAlias {
			return next, true, nil
		}
		current = target
	}
}

// ResolveRecipe returns the concrete recipe an application uses on platform.
// It returns nil without error when no recipe resolves for the platform.
func ResolveRecipe(app types.Application, platform string) (*types.ConcreteRecipe, error) {
	entry, found, err := followAliases(app.Recipe, platform, func(r types.PlatformRecipe) (string, bool) {
		return r.SameWith, r.IsAlias()
	})
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithDetail("application", app.Name)
		}
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return entry.Concrete, nil
}

// ResolvePlatformConfig returns the concrete platform configuration for
// platform, or nil without error when none resolves.
func ResolvePlatformConfig(configs map[string]types.PlatformConfig, platform string) (*types.ConcretePlatformConfig, error) {
	entry, found, err := followAliases(configs, platform, func(c types.PlatformConfig) (string, bool) {
		return c.SameWith, c.IsAlias()
	})
	if err != nil || !found {
		return nil, err
	}
	return entry.Concrete, nil
}

// Validate resolves every alias declared in the document so cycles are
// reported before anything runs. Dangling aliases are allowed: they
// resolve to "not found" and the application is skipped on that platform.
func Validate(doc *types.Document) error {
	for _, platform := range sortedKeys(doc.PlatformConfig) {
		if _, err := ResolvePlatformConfig(doc.PlatformConfig, platform); err != nil {
			return err
		}
	}

	for _, app := range doc.Applications {
		if app.Name == "" {
			return errors.New(errors.ErrConfigValid, "application without a name")
		}
		for _, platform := range app.Platforms() {
			if _, err := ResolveRecipe(app, platform); err != nil {
				return err
			}
		}
	}

	return nil
}
