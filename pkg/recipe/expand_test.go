package recipe_test

import (
	"testing"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/recipe"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func aptTemplate() []types.Operation {
	return []types.Operation{
		types.CommandOperation(types.CommandConfig{
			Command: types.Literal("apt-get"),
			AsRoot:  boolPtr(true),
			Args:    types.Arguments{types.Literal("install"), types.Literal("-y"), types.Literal("${package}")},
		}),
	}
}

func linuxDocument(ops ...types.Operation) *types.Document {
	return &types.Document{
		PlatformConfig: map[string]types.PlatformConfig{
			"linux": {Concrete: &types.ConcretePlatformConfig{PackageInstall: aptTemplate()}},
		},
		Applications: []types.Application{
			{Name: "git", Recipe: map[string]types.PlatformRecipe{"linux": concrete(ops...)}},
		},
	}
}

func TestExpand_SinglePackage(t *testing.T) {
	doc := linuxDocument(types.PackageInstallOperation("git"))

	require.NoError(t, recipe.Expand(doc))

	got, err := recipe.ResolveRecipe(doc.Applications[0], "linux")
	require.NoError(t, err)
	require.Len(t, got.Operations, 1)

	op := got.Operations[0]
	assert.Equal(t, types.OperationCommand, op.Kind)
	assert.Equal(t, "apt-get", op.Command.Command.Value)
	assert.True(t, op.Command.Elevated())
	assert.Equal(t, []string{"install", "-y", "git"}, op.Command.Args.Values())
}

func TestExpand_PreservesOrder(t *testing.T) {
	doc := &types.Document{
		PlatformConfig: map[string]types.PlatformConfig{
			"linux": {Concrete: &types.ConcretePlatformConfig{PackageInstall: []types.Operation{
				types.CommandOperation(types.CommandConfig{
					Command: types.Literal("apt-get"),
					Args:    types.Arguments{types.Literal("update")},
				}),
				types.CommandOperation(types.CommandConfig{
					Command: types.Literal("apt-get"),
					Args:    types.Arguments{types.Literal("install"), types.Literal("${package}")},
				}),
			}}},
		},
		Applications: []types.Application{
			{Name: "tools", Recipe: map[string]types.PlatformRecipe{"linux": concrete(
				echo("first"),
				types.PackageInstallOperation("git"),
				echo("middle"),
				types.PackageInstallOperation("curl"),
				types.PackageInstallOperation("zsh"),
				echo("last"),
			)}},
		},
	}

	require.NoError(t, recipe.Expand(doc))

	ops := doc.Applications[0].Recipe["linux"].Concrete.Operations
	var got [][]string
	for _, op := range ops {
		require.Equal(t, types.OperationCommand, op.Kind)
		got = append(got, append([]string{op.Command.Command.Value}, op.Command.Args.Values()...))
	}

	assert.Equal(t, [][]string{
		{"echo", "first"},
		{"apt-get", "update"},
		{"apt-get", "install", "git"},
		{"echo", "middle"},
		{"apt-get", "update"},
		{"apt-get", "install", "curl"},
		{"apt-get", "update"},
		{"apt-get", "install", "zsh"},
		{"echo", "last"},
	}, got)
}

func TestExpand_ExactPlaceholderOnly(t *testing.T) {
	template := []types.Operation{
		types.CommandOperation(types.CommandConfig{
			Command: types.Literal("${package}"),
			Args: types.Arguments{
				types.Literal("foo-${package}"),
				types.Literal("${package}"),
				types.Path("${package}"),
				types.Literal("${package} "),
			},
		}),
		types.LinkOperation(types.Path("${package}"), types.Path("~/x")),
	}

	got := recipe.PackageInstallOperations(template, "git")
	require.Len(t, got, 2)

	cmd := got[0].Command
	assert.Equal(t, "${package}", cmd.Command.Value, "the command itself is not substituted")
	assert.Equal(t, []string{"foo-${package}", "git", "${package}", "${package} "}, cmd.Args.Values())
	assert.True(t, cmd.Args[2].IsPath())
	assert.Equal(t, "${package}", got[1].Original.Value)

	// The template is untouched
	assert.Equal(t, "${package}", template[0].Command.Args[1].Value)
}

func TestExpand_TemplateNotShared(t *testing.T) {
	doc := linuxDocument(
		types.PackageInstallOperation("git"),
		types.PackageInstallOperation("curl"),
	)

	require.NoError(t, recipe.Expand(doc))

	ops := doc.Applications[0].Recipe["linux"].Concrete.Operations
	require.Len(t, ops, 2)
	assert.NotSame(t, ops[0].Command, ops[1].Command)
	assert.Equal(t, "git", ops[0].Command.Args[2].Value)
	assert.Equal(t, "curl", ops[1].Command.Args[2].Value)

	tmpl := doc.PlatformConfig["linux"].Concrete.PackageInstall
	assert.Equal(t, "${package}", tmpl[0].Command.Args[2].Value)
}

func TestExpand_ThroughPlatformAlias(t *testing.T) {
	doc := linuxDocument()
	doc.PlatformConfig["ubuntu"] = types.PlatformConfig{SameWith: "linux"}
	doc.Applications[0].Recipe["ubuntu"] = concrete(types.PackageInstallOperation("git"))

	require.NoError(t, recipe.Expand(doc))

	ops := doc.Applications[0].Recipe["ubuntu"].Concrete.Operations
	require.Len(t, ops, 1)
	assert.Equal(t, []string{"install", "-y", "git"}, ops[0].Command.Args.Values())
}

func TestExpand_PlatformConfigNotFound(t *testing.T) {
	doc := &types.Document{
		PlatformConfig: map[string]types.PlatformConfig{
			"linux": {Concrete: &types.ConcretePlatformConfig{PackageInstall: aptTemplate()}},
		},
		Applications: []types.Application{
			{Name: "git", Recipe: map[string]types.PlatformRecipe{
				"linux": concrete(types.PackageInstallOperation("git")),
			}},
			{Name: "brew-only", Recipe: map[string]types.PlatformRecipe{
				"macos": concrete(types.PackageInstallOperation("wget")),
			}},
		},
	}

	err := recipe.Expand(doc)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPlatformConfigNotFound))
	assert.Equal(t, "macos", errors.GetErrorDetails(err)["platform"])

	// Fail-fast without partial expansion
	linuxOps := doc.Applications[0].Recipe["linux"].Concrete.Operations
	require.Len(t, linuxOps, 1)
	assert.Equal(t, types.OperationPackageInstall, linuxOps[0].Kind)
}

func TestExpand_PlatformConfigCycle(t *testing.T) {
	doc := linuxDocument()
	doc.PlatformConfig["a"] = types.PlatformConfig{SameWith: "a"}
	doc.Applications[0].Recipe["a"] = concrete(types.PackageInstallOperation("git"))

	err := recipe.Expand(doc)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCycleDetected))
}

func TestExpand_RecipesWithoutPackagesNeedNoPlatformConfig(t *testing.T) {
	doc := &types.Document{
		Applications: []types.Application{
			{Name: "dotfiles", Recipe: map[string]types.PlatformRecipe{
				"linux": concrete(types.LinkOperation(types.Path("~/a"), types.Path("~/b"))),
				"arch":  types.AliasOf("linux"),
			}},
		},
	}

	require.NoError(t, recipe.Expand(doc))
	assert.Len(t, doc.Applications[0].Recipe["linux"].Concrete.Operations, 1)
}

func TestExpand_RejectsRecursiveTemplate(t *testing.T) {
	doc := linuxDocument(types.PackageInstallOperation("git"))
	doc.PlatformConfig["linux"] = types.PlatformConfig{Concrete: &types.ConcretePlatformConfig{
		PackageInstall: []types.Operation{types.PackageInstallOperation("${package}")},
	}}

	err := recipe.Expand(doc)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestExpand_IsIdempotent(t *testing.T) {
	doc := linuxDocument(types.PackageInstallOperation("git"))

	require.NoError(t, recipe.Expand(doc))
	require.NoError(t, recipe.Expand(doc))

	assert.Len(t, doc.Applications[0].Recipe["linux"].Concrete.Operations, 1)
}

func TestExpandOperations_EmptyTemplateRemovesPlaceholder(t *testing.T) {
	got := recipe.ExpandOperations([]types.Operation{
		echo("a"),
		types.PackageInstallOperation("git"),
		echo("b"),
	}, nil)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Command.Args[0].Value)
	assert.Equal(t, "b", got[1].Command.Args[0].Value)
}
