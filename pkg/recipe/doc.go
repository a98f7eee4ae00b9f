// Package recipe resolves platform aliases and expands package installs.
//
// Recipes and platform configs may alias another platform with same_with.
// Resolution follows the chain until a concrete entry, reporting "not found"
// when a key is missing and ErrCycleDetected when the chain revisits a
// platform. Expansion then replaces every package install operation, in place,
// with the platform's package install template.
package recipe
