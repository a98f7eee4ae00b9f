// Package types defines the configuration model shared by every dosetup
// component: applications and their per-platform recipes, the operations a
// recipe is made of, command arguments, the global platform configuration and
// the results produced by an install run.
//
// Recipe and platform-config entries are either aliases (same_with) that defer
// to another platform's entry, or concrete definitions. The loader in
// pkg/config builds this model; pkg/recipe resolves aliases and expands
// package installs; pkg/executor consumes the result.
package types
