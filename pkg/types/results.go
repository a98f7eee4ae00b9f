package types

import (
	"fmt"
	"time"
)

// Outcome is the final state of an application after a run
type Outcome string

const (
	// OutcomeSuccess means every operation succeeded
	OutcomeSuccess Outcome = "success"

	// OutcomeSkip means the installed-check reported the application present
	OutcomeSkip Outcome = "skip"

	// OutcomeFailure means the installed-check or an operation failed
	OutcomeFailure Outcome = "failure"
)

// StepResult is the result of executing a single operation
type StepResult struct {
	// Index is the zero-based position of the operation in the recipe
	Index int

	// Operation that was executed
	Operation Operation

	// Error contains any error that occurred during execution
	Error error

	// Duration is how long the operation took
	Duration time.Duration
}

// Success reports whether the step completed without error
func (s StepResult) Success() bool {
	return s.Error == nil
}

// ApplicationResult is the result of installing one application
type ApplicationResult struct {
	Name     string
	Platform string
	Outcome  Outcome

	// Error is the first failure that caused OutcomeFailure
	Error error

	// Steps holds one entry per executed operation, in order
	Steps []StepResult

	Duration time.Duration
}

// Summary is the aggregate tally of a run
type Summary struct {
	Success int
	Skip    int
	Failure int
}

// Total returns the number of tallied applications
func (s Summary) Total() int {
	return s.Success + s.Skip + s.Failure
}

// String renders the tally as "N success, N skip, N failure"
func (s Summary) String() string {
	return fmt.Sprintf("%d success, %d skip, %d failure", s.Success, s.Skip, s.Failure)
}

// RunResult collects the application results of a run in declaration order.
// Applications without a recipe for the target platform are not included.
type RunResult struct {
	Platform     string
	DryRun       bool
	Applications []ApplicationResult
	Duration     time.Duration
}

// Add appends an application result
func (r *RunResult) Add(result ApplicationResult) {
	r.Applications = append(r.Applications, result)
}

// Summary tallies the application outcomes
func (r *RunResult) Summary() Summary {
	var s Summary
	for _, app := range r.Applications {
		switch app.Outcome {
		case OutcomeSuccess:
			s.Success++
		case OutcomeSkip:
			s.Skip++
		case OutcomeFailure:
			s.Failure++
		}
	}
	return s
}

// HasFailures reports whether any application failed
func (r *RunResult) HasFailures() bool {
	return r.Summary().Failure > 0
}

// Result returns the result for the named application
func (r *RunResult) Result(name string) (ApplicationResult, bool) {
	for _, app := range r.Applications {
		if app.Name == name {
			return app, true
		}
	}
	return ApplicationResult{}, false
}
