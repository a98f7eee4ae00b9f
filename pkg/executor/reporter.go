package executor

import "github.com/arthur-debert/dosetup/pkg/types"

// Reporter receives progress notifications during a run
type Reporter interface {
	ApplicationStarted(name string)
	StepStarted(name string, index int, op types.Operation)
	StepFinished(name string, step types.StepResult)
	ApplicationFinished(result types.ApplicationResult)
	RunFinished(result *types.RunResult)
}

// NopReporter ignores every notification
type NopReporter struct{}

func (NopReporter) ApplicationStarted(string)                   {}
func (NopReporter) StepStarted(string, int, types.Operation)    {}
func (NopReporter) StepFinished(string, types.StepResult)       {}
func (NopReporter) ApplicationFinished(types.ApplicationResult) {}
func (NopReporter) RunFinished(*types.RunResult)                {}
