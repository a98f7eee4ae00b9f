package recipe

import (
	"maps"
	"slices"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// PackagePlaceholder is replaced by the package name in template arguments.
// Only arguments equal to it are replaced; "foo-${package}" is left alone.
const PackagePlaceholder = "${package}"

// Expand replaces every package install operation in the document with the
// platform's package install template. It fails with
// ErrPlatformConfigNotFound when a recipe needs a template its platform does
// not have; in that case no recipe is modified.
func Expand(doc *types.Document) error {
	type update struct {
		recipe     *types.ConcreteRecipe
		operations []types.Operation
	}
	var updates []update

	for _, app := range doc.Applications {
		for _, platform := range app.Platforms() {
			entry := app.Recipe[platform]
			if entry.IsAlias() || !entry.Concrete.HasPackageInstall() {
				continue
			}

			template, err := ResolvePlatformConfig(doc.PlatformConfig, platform)
			if err != nil {
				return err
			}
			if template == nil {
				return errors.Newf(errors.ErrPlatformConfigNotFound,
					"platform config not found for %q (needed by %q)", platform, app.Name).
					WithDetail("platform", platform).
					WithDetail("application", app.Name)
			}
			if err := checkTemplate(platform, template); err != nil {
				return err
			}

			updates = append(updates, update{
				recipe:     entry.Concrete,
				operations: ExpandOperations(entry.Concrete.Operations, template.PackageInstall),
			})
		}
	}

	for _, u := range updates {
		u.recipe.Operations = u.operations
	}
	return nil
}

// ExpandOperations returns a new operation list where each package install is
// replaced, at its position, by the template instantiated for its package.
// All other operations keep their relative order.
func ExpandOperations(operations []types.Operation, template []types.Operation) []types.Operation {
	expanded := make([]types.Operation, 0, len(operations))
	for _, op := range operations {
		if op.Kind != types.OperationPackageInstall {
			expanded = append(expanded, op)
			continue
		}
		expanded = append(expanded, PackageInstallOperations(template, op.PackageName)...)
	}
	return expanded
}

// PackageInstallOperations instantiates a package install template for one
// package. The template is cloned and never modified.
func PackageInstallOperations(template []types.Operation, packageName string) []types.Operation {
	operations := types.CloneOperations(template)
	for i := range operations {
		// the package name only ever appears in command arguments
		cmd := operations[i].Command
		if operations[i].Kind != types.OperationCommand || cmd == nil {
			continue
		}
		for j, arg := range cmd.Args {
			if arg.IsLiteral() && arg.Value == PackagePlaceholder {
				cmd.Args[j] = types.Literal(packageName)
			}
		}
	}
	return operations
}

// checkTemplate rejects templates that would leave package installs behind
func checkTemplate(platform string, template *types.ConcretePlatformConfig) error {
	for i, op := range template.PackageInstall {
		if op.Kind == types.OperationPackageInstall {
			return errors.Newf(errors.ErrConfigValid,
				"package_install template for %q contains a package install at step %d", platform, i+1).
				WithDetail("platform", platform)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
