package executor_test

import (
	stderrors "errors"
	"os/exec"
	"testing"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/executor"
	"github.com/arthur-debert/dosetup/pkg/platform"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPlatform implements platform.ExecutionPlatform for testing
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) Name() string { return "mock" }

func (m *MockPlatform) Command(cfg types.CommandConfig) (*exec.Cmd, error) {
	args := m.Called(cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*exec.Cmd), args.Error(1)
}

func (m *MockPlatform) Execute(op types.Operation) error {
	args := m.Called(op)
	return args.Error(0)
}

func (m *MockPlatform) CreateLink(original, link types.Argument) error {
	args := m.Called(original, link)
	return args.Error(0)
}

func (m *MockPlatform) IsInstalled(predicate types.CommandConfig) (bool, error) {
	args := m.Called(predicate)
	return args.Bool(0), args.Error(1)
}

// RefreshingPlatform also implements platform.EnvironmentRefresher
type RefreshingPlatform struct {
	MockPlatform
}

func (m *RefreshingPlatform) RefreshEnvironment() error {
	args := m.Called()
	return args.Error(0)
}

func newExecutor(p platform.ExecutionPlatform, reporter executor.Reporter) *executor.Executor {
	logger := zerolog.Nop()
	return executor.New(executor.Options{Platform: p, Reporter: reporter, Logger: &logger})
}

func cmd(name string, args ...string) types.CommandConfig {
	cfg := types.CommandConfig{Command: types.Literal(name)}
	for _, arg := range args {
		cfg.Args = append(cfg.Args, types.Literal(arg))
	}
	return cfg
}

func described(description string) interface{} {
	return mock.MatchedBy(func(op types.Operation) bool {
		return op.Description() == description
	})
}

func app(name string, recipes map[string]types.PlatformRecipe) types.Application {
	return types.Application{Name: name, Recipe: recipes}
}

func linuxOnly(r types.ConcreteRecipe) map[string]types.PlatformRecipe {
	return map[string]types.PlatformRecipe{"linux": types.ConcreteOf(r)}
}

func TestRun_GitconfigAndCurl(t *testing.T) {
	linkErr := errors.New(errors.ErrLinkPrecheck, "cannot link to /home/u/dotfiles/gitconfig")
	curlCheck := cmd("which", "curl")

	doc := &types.Document{Applications: []types.Application{
		app("gitconfig", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
			types.LinkOperation(types.Path("~/dotfiles/gitconfig"), types.Path("~/.gitconfig")),
		}})),
		app("curl", linuxOnly(types.ConcreteRecipe{
			SkipIf: &curlCheck,
			Operations: []types.Operation{
				types.CommandOperation(cmd("echo", "install", "curl")),
			},
		})),
	}}

	p := &MockPlatform{}
	p.On("Execute", described("link: ~/.gitconfig -> ~/dotfiles/gitconfig")).Return(linkErr)
	p.On("IsInstalled", curlCheck).Return(false, nil)
	p.On("Execute", described("command: echo install curl")).Return(nil)

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, types.Summary{Success: 1, Skip: 0, Failure: 1}, result.Summary())
	assert.True(t, result.HasFailures())

	gitconfig, ok := result.Result("gitconfig")
	require.True(t, ok)
	assert.Equal(t, types.OutcomeFailure, gitconfig.Outcome)
	assert.True(t, errors.IsErrorCode(gitconfig.Error, errors.ErrLinkPrecheck))

	curl, ok := result.Result("curl")
	require.True(t, ok)
	assert.Equal(t, types.OutcomeSuccess, curl.Outcome)
	assert.Len(t, curl.Steps, 1)

	p.AssertExpectations(t)
}

func TestRun_SkipIfInstalled(t *testing.T) {
	check := cmd("which", "git")
	doc := &types.Document{Applications: []types.Application{
		app("git", linuxOnly(types.ConcreteRecipe{
			SkipIf:     &check,
			Operations: []types.Operation{types.CommandOperation(cmd("install-git"))},
		})),
	}}

	p := &MockPlatform{}
	p.On("IsInstalled", check).Return(true, nil)

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, types.Summary{Skip: 1}, result.Summary())
	assert.Empty(t, result.Applications[0].Steps)
	p.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestRun_SkipIfError(t *testing.T) {
	check := cmd("which", "git")
	doc := &types.Document{Applications: []types.Application{
		app("git", linuxOnly(types.ConcreteRecipe{
			SkipIf:     &check,
			Operations: []types.Operation{types.CommandOperation(cmd("install-git"))},
		})),
	}}

	predicateErr := errors.New(errors.ErrPredicateExecution, "which not found")
	p := &MockPlatform{}
	p.On("IsInstalled", check).Return(false, predicateErr)

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	require.Len(t, result.Applications, 1)
	assert.Equal(t, types.OutcomeFailure, result.Applications[0].Outcome)
	assert.Equal(t, predicateErr, result.Applications[0].Error)
	p.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestRun_SkipIfNotInstalledRunsOperations(t *testing.T) {
	check := cmd("which", "git")
	doc := &types.Document{Applications: []types.Application{
		app("git", linuxOnly(types.ConcreteRecipe{
			SkipIf:     &check,
			Operations: []types.Operation{types.CommandOperation(cmd("install-git"))},
		})),
	}}

	p := &MockPlatform{}
	p.On("IsInstalled", check).Return(false, nil)
	p.On("Execute", described("command: install-git")).Return(nil).Once()

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, types.Summary{Success: 1}, result.Summary())
	p.AssertExpectations(t)
}

func TestRun_FirstFailureAbortsApplication(t *testing.T) {
	doc := &types.Document{Applications: []types.Application{
		app("tools", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
			types.CommandOperation(cmd("step", "1")),
			types.CommandOperation(cmd("step", "2")),
			types.CommandOperation(cmd("step", "3")),
		}})),
		app("after", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
			types.CommandOperation(cmd("step", "4")),
		}})),
	}}

	code := 2
	stepErr := errors.ExecutionFailed(&code, stderrors.New("exit status 2"))

	p := &MockPlatform{}
	p.On("Execute", described("command: step 1")).Return(nil)
	p.On("Execute", described("command: step 2")).Return(stepErr)
	p.On("Execute", described("command: step 4")).Return(nil)

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	tools := result.Applications[0]
	assert.Equal(t, types.OutcomeFailure, tools.Outcome)
	require.Len(t, tools.Steps, 2)
	assert.True(t, tools.Steps[0].Success())
	assert.False(t, tools.Steps[1].Success())
	assert.Equal(t, 1, tools.Steps[1].Index)

	exitCode, ok := errors.ExitCode(tools.Error)
	require.True(t, ok)
	assert.Equal(t, 2, exitCode)

	assert.Equal(t, types.OutcomeSuccess, result.Applications[1].Outcome)
	p.AssertNotCalled(t, "Execute", described("command: step 3"))
}

func TestRun_ApplicationsWithoutRecipeAreNotTallied(t *testing.T) {
	doc := &types.Document{Applications: []types.Application{
		app("mac-only", map[string]types.PlatformRecipe{
			"macos": types.ConcreteOf(types.ConcreteRecipe{Operations: []types.Operation{
				types.CommandOperation(cmd("brew", "install", "x")),
			}}),
		}),
		app("aliased", map[string]types.PlatformRecipe{
			"linux":  types.ConcreteOf(types.ConcreteRecipe{Operations: []types.Operation{types.CommandOperation(cmd("true"))}}),
			"ubuntu": types.AliasOf("linux"),
		}),
		app("dangling", map[string]types.PlatformRecipe{"ubuntu": types.AliasOf("debian")}),
	}}

	p := &MockPlatform{}
	p.On("Execute", described("command: true")).Return(nil)

	result, err := newExecutor(p, nil).Run(doc, "ubuntu")
	require.NoError(t, err)

	require.Len(t, result.Applications, 1)
	assert.Equal(t, "aliased", result.Applications[0].Name)
	assert.Equal(t, "ubuntu", result.Platform)
	assert.Equal(t, 1, result.Summary().Total())
}

func TestRun_PackageInstallIsExpanded(t *testing.T) {
	asRoot := true
	doc := &types.Document{
		PlatformConfig: map[string]types.PlatformConfig{
			"linux": {Concrete: &types.ConcretePlatformConfig{PackageInstall: []types.Operation{
				types.CommandOperation(types.CommandConfig{
					Command: types.Literal("apt-get"),
					AsRoot:  &asRoot,
					Args:    types.Arguments{types.Literal("install"), types.Literal("-y"), types.Literal("${package}")},
				}),
			}}},
		},
		Applications: []types.Application{
			app("git", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
				types.PackageInstallOperation("git"),
			}})),
		},
	}

	p := &MockPlatform{}
	p.On("Execute", described("command: (root) apt-get install -y git")).Return(nil).Once()

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, types.Summary{Success: 1}, result.Summary())
	p.AssertExpectations(t)
}

func TestRun_DocumentErrorsAbortBeforeExecution(t *testing.T) {
	tests := []struct {
		name string
		doc  *types.Document
		code errors.ErrorCode
	}{
		{
			name: "missing platform config",
			doc: &types.Document{Applications: []types.Application{
				app("ok", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{types.CommandOperation(cmd("true"))}})),
				app("git", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{types.PackageInstallOperation("git")}})),
			}},
			code: errors.ErrPlatformConfigNotFound,
		},
		{
			name: "recipe cycle",
			doc: &types.Document{Applications: []types.Application{
				app("ok", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{types.CommandOperation(cmd("true"))}})),
				app("loop", map[string]types.PlatformRecipe{
					"a": types.AliasOf("b"),
					"b": types.AliasOf("a"),
				}),
			}},
			code: errors.ErrCycleDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &MockPlatform{}

			result, err := newExecutor(p, nil).Run(tt.doc, "linux")
			assert.Nil(t, result)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			p.AssertNotCalled(t, "Execute", mock.Anything)
		})
	}
}

func TestRun_RefreshesEnvironmentAfterEachStep(t *testing.T) {
	doc := &types.Document{Applications: []types.Application{
		app("tools", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
			types.CommandOperation(cmd("winget", "install", "Go")),
			types.CommandOperation(cmd("go", "version")),
		}})),
	}}

	p := &RefreshingPlatform{}
	p.On("Execute", described("command: winget install Go")).Return(nil)
	p.On("Execute", described("command: go version")).Return(nil)
	p.On("RefreshEnvironment").Return(stderrors.New("registry unavailable")).Twice()

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, types.Summary{Success: 1}, result.Summary(), "refresh errors are not fatal")
	p.AssertExpectations(t)
}

func TestRun_RefreshesEnvironmentAfterFailedStep(t *testing.T) {
	doc := &types.Document{Applications: []types.Application{
		app("tools", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
			types.CommandOperation(cmd("broken")),
		}})),
	}}

	p := &RefreshingPlatform{}
	p.On("Execute", described("command: broken")).Return(errors.ExecutionFailed(nil, nil))
	p.On("RefreshEnvironment").Return(nil).Once()

	result, err := newExecutor(p, nil).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, types.Summary{Failure: 1}, result.Summary())
	p.AssertExpectations(t)
}

func TestRun_DryRunFlagIsRecorded(t *testing.T) {
	logger := zerolog.Nop()
	e := executor.New(executor.Options{Platform: &MockPlatform{}, Logger: &logger, DryRun: true})

	result, err := e.Run(&types.Document{}, "linux")
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Empty(t, result.Applications)
}

// recordingReporter records notifications as strings
type recordingReporter struct {
	events []string
}

func (r *recordingReporter) ApplicationStarted(name string) {
	r.events = append(r.events, "start "+name)
}

func (r *recordingReporter) StepStarted(name string, index int, op types.Operation) {
	r.events = append(r.events, "step "+name+" "+op.Description())
}

func (r *recordingReporter) StepFinished(name string, step types.StepResult) {
	status := "ok"
	if !step.Success() {
		status = "failed"
	}
	r.events = append(r.events, "done "+name+" "+status)
}

func (r *recordingReporter) ApplicationFinished(result types.ApplicationResult) {
	r.events = append(r.events, "finish "+result.Name+" "+string(result.Outcome))
}

func (r *recordingReporter) RunFinished(result *types.RunResult) {
	r.events = append(r.events, "run "+result.Summary().String())
}

func TestRun_ReporterEvents(t *testing.T) {
	check := cmd("which", "zsh")
	doc := &types.Document{Applications: []types.Application{
		app("zsh", linuxOnly(types.ConcreteRecipe{
			SkipIf:     &check,
			Operations: []types.Operation{types.CommandOperation(cmd("install-zsh"))},
		})),
		app("mac-only", map[string]types.PlatformRecipe{"macos": types.AliasOf("linux")}),
		app("vim", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
			types.CommandOperation(cmd("install-vim")),
			types.CommandOperation(cmd("configure-vim")),
		}})),
	}}

	p := &MockPlatform{}
	p.On("IsInstalled", check).Return(true, nil)
	p.On("Execute", described("command: install-vim")).Return(nil)
	p.On("Execute", described("command: configure-vim")).Return(stderrors.New("boom"))

	reporter := &recordingReporter{}
	_, err := newExecutor(p, reporter).Run(doc, "linux")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start zsh",
		"finish zsh skip",
		"start vim",
		"step vim command: install-vim",
		"done vim ok",
		"step vim command: configure-vim",
		"done vim failed",
		"finish vim failure",
		"run 0 success, 1 skip, 1 failure",
	}, reporter.events)
}

func TestPrepare(t *testing.T) {
	doc := &types.Document{
		PlatformConfig: map[string]types.PlatformConfig{
			"linux": {Concrete: &types.ConcretePlatformConfig{PackageInstall: []types.Operation{
				types.CommandOperation(cmd("pkg", "${package}")),
			}}},
		},
		Applications: []types.Application{
			app("git", linuxOnly(types.ConcreteRecipe{Operations: []types.Operation{
				types.PackageInstallOperation("git"),
			}})),
		},
	}

	require.NoError(t, executor.Prepare(doc))
	ops := doc.Applications[0].Recipe["linux"].Concrete.Operations
	require.Len(t, ops, 1)
	assert.Equal(t, "command: pkg git", ops[0].Description())
}
