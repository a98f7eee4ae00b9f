package executor

import (
	"time"

	"github.com/arthur-debert/dosetup/pkg/logging"
	"github.com/arthur-debert/dosetup/pkg/platform"
	"github.com/arthur-debert/dosetup/pkg/recipe"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	Platform platform.ExecutionPlatform
	Reporter Reporter
	Logger   *zerolog.Logger

	// DryRun is recorded on the run result. Wrap Platform with
	// platform.NewDryRun to keep operations from running.
	DryRun bool
}

// Executor runs the recipes of a document on one platform
type Executor struct {
	platform platform.ExecutionPlatform
	reporter Reporter
	logger   zerolog.Logger
	dryRun   bool
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	return &Executor{
		platform: opts.Platform,
		reporter: reporter,
		logger:   logger,
		dryRun:   opts.DryRun,
	}
}

// Prepare validates the document and expands its package installs. The
// document is modified in place and is ready to run afterwards.
func Prepare(doc *types.Document) error {
	if err := recipe.Validate(doc); err != nil {
		return err
	}
	return recipe.Expand(doc)
}

// Run installs every application of doc that has a recipe for platformID.
// Configuration and expansion errors are returned before anything runs;
// application failures are only recorded in the result.
func (e *Executor) Run(doc *types.Document, platformID string) (*types.RunResult, error) {
	start := time.Now()

	prepared := logging.LogOperationStart(e.logger, "prepare")
	err := Prepare(doc)
	prepared()
	if err != nil {
		e.logger.Error().Err(err).Msg("Document rejected")
		return nil, err
	}

	e.logger.Info().
		Str("platform", platformID).
		Str("strategy", e.platform.Name()).
		Int("applications", len(doc.Applications)).
		Bool("dry_run", e.dryRun).
		Msg("Starting installation")

	result := &types.RunResult{Platform: platformID, DryRun: e.dryRun}
	for _, app := range doc.Applications {
		appResult, ok := e.Install(app, platformID)
		if !ok {
			continue
		}
		result.Add(appResult)
	}
	result.Duration = time.Since(start)

	e.logger.Info().
		Str("summary", result.Summary().String()).
		Dur("duration", result.Duration).
		Msg("Installation finished")
	e.reporter.RunFinished(result)

	return result, nil
}

// Install runs one application. It returns false when the application has no
// recipe for the platform, in which case nothing is reported.
func (e *Executor) Install(app types.Application, platformID string) (types.ApplicationResult, bool) {
	logger := e.logger.With().Str("application", app.Name).Str("platform", platformID).Logger()

	concrete, err := recipe.ResolveRecipe(app, platformID)
	if err == nil && concrete == nil {
		logger.Debug().Msg("No recipe for platform, skipping")
		return types.ApplicationResult{}, false
	}

	start := time.Now()
	result := types.ApplicationResult{Name: app.Name, Platform: platformID}
	e.reporter.ApplicationStarted(app.Name)

	finish := func(outcome types.Outcome, err error) (types.ApplicationResult, bool) {
		result.Outcome = outcome
		result.Error = err
		result.Duration = time.Since(start)

		event := logger.Info()
		if outcome == types.OutcomeFailure {
			event = logger.Warn().Err(err)
		}
		event.Str("outcome", string(outcome)).Dur("duration", result.Duration).Msg("Application finished")

		e.reporter.ApplicationFinished(result)
		return result, true
	}

	if err != nil {
		return finish(types.OutcomeFailure, err)
	}

	if concrete.SkipIf != nil {
		installed, err := e.platform.IsInstalled(*concrete.SkipIf)
		if err != nil {
			return finish(types.OutcomeFailure, err)
		}
		if installed {
			logger.Info().Msg("Already installed")
			return finish(types.OutcomeSkip, nil)
		}
	}

	for i, op := range concrete.Operations {
		step := e.executeStep(app.Name, i, op)
		result.Steps = append(result.Steps, step)
		if step.Error != nil {
			return finish(types.OutcomeFailure, step.Error)
		}
	}

	return finish(types.OutcomeSuccess, nil)
}

// executeStep runs one operation and refreshes the environment afterwards
// when the platform needs it
func (e *Executor) executeStep(name string, index int, op types.Operation) types.StepResult {
	e.reporter.StepStarted(name, index, op)

	start := time.Now()
	err := e.platform.Execute(op)
	step := types.StepResult{
		Index:     index,
		Operation: op,
		Error:     err,
		Duration:  time.Since(start),
	}

	e.logger.Debug().
		Str("application", name).
		Int("step", index+1).
		Str("operation", op.Description()).
		Dur("duration", step.Duration).
		Bool("success", err == nil).
		Msg("Step finished")

	if refresher, ok := e.platform.(platform.EnvironmentRefresher); ok {
		if refreshErr := refresher.RefreshEnvironment(); refreshErr != nil {
			e.logger.Warn().Err(refreshErr).Msg("Failed to refresh environment")
		}
	}

	e.reporter.StepFinished(name, step)
	return step
}
