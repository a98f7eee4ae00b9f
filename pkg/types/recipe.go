package types

import (
	"maps"
	"slices"
)

// Application is a named unit of installation with one recipe per platform
type Application struct {
	Name   string                    `yaml:"name"`
	Recipe map[string]PlatformRecipe `yaml:"recipe"`
}

// Platforms returns the platform ids the application declares, sorted
func (a Application) Platforms() []string {
	return slices.Sorted(maps.Keys(a.Recipe))
}

// PlatformRecipe is either an alias to another platform's recipe
// (SameWith set) or a concrete recipe.
type PlatformRecipe struct {
	SameWith string
	Concrete *ConcreteRecipe
}

// IsAlias reports whether the entry defers to another platform
func (r PlatformRecipe) IsAlias() bool {
	return r.Concrete == nil
}

// AliasOf creates an alias recipe entry
func AliasOf(platform string) PlatformRecipe {
	return PlatformRecipe{SameWith: platform}
}

// ConcreteOf creates a concrete recipe entry
func ConcreteOf(recipe ConcreteRecipe) PlatformRecipe {
	return PlatformRecipe{Concrete: &recipe}
}

// MarshalYAML writes the entry back in document form
func (r PlatformRecipe) MarshalYAML() (interface{}, error) {
	if r.IsAlias() {
		return map[string]string{"same_with": r.SameWith}, nil
	}
	return r.Concrete, nil
}

// ConcreteRecipe is the ordered list of operations for one application on one
// platform, optionally guarded by an installed-check predicate.
type ConcreteRecipe struct {
	SkipIf     *CommandConfig `yaml:"skip_if,omitempty"`
	Operations []Operation    `yaml:"operations"`
}

// HasPackageInstall reports whether the recipe still holds unexpanded
// package installs
func (r *ConcreteRecipe) HasPackageInstall() bool {
	for _, op := range r.Operations {
		if op.Kind == OperationPackageInstall {
			return true
		}
	}
	return false
}

// PlatformConfig is the global, per-platform configuration: either an alias or
// the template used to expand package installs.
type PlatformConfig struct {
	SameWith string
	Concrete *ConcretePlatformConfig
}

// IsAlias reports whether the entry defers to another platform
func (c PlatformConfig) IsAlias() bool {
	return c.Concrete == nil
}

// MarshalYAML writes the entry back in document form
func (c PlatformConfig) MarshalYAML() (interface{}, error) {
	if c.IsAlias() {
		return map[string]string{"same_with": c.SameWith}, nil
	}
	return c.Concrete, nil
}

// ConcretePlatformConfig holds the package install template of a platform.
// Command arguments equal to ${package} are replaced by the package name.
type ConcretePlatformConfig struct {
	PackageInstall []Operation `yaml:"package_install"`
}

// Document is a complete, loaded configuration
type Document struct {
	PlatformConfig map[string]PlatformConfig `yaml:"platform_config"`
	Applications   []Application             `yaml:"application"`
}

// Application returns the application with the given name
func (d *Document) Application(name string) (Application, bool) {
	for _, app := range d.Applications {
		if app.Name == name {
			return app, true
		}
	}
	return Application{}, false
}
