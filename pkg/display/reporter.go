package display

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dosetup/pkg/style"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// TextReporter prints progress as plain or styled text
type TextReporter struct {
	writer io.Writer
	markup *style.MarkupParser
	color  bool
}

// NewTextReporter creates a reporter writing to w
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	markup := style.NewPlainParser()
	if color {
		markup = style.NewMarkupParser()
	}
	return &TextReporter{writer: w, markup: markup, color: color}
}

func (r *TextReporter) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprint(r.writer, r.markup.Render(fmt.Sprintf(format, args...)))
}

// ApplicationStarted implements executor.Reporter
func (r *TextReporter) ApplicationStarted(name string) {
	r.printf("[title]install `%s`[/title]\n", name)
}

// StepStarted implements executor.Reporter
func (r *TextReporter) StepStarted(_ string, index int, op types.Operation) {
	r.printf("[muted]STEP %d:[/muted] %s\n", index+1, describeOperation(op))
}

// StepFinished implements executor.Reporter
func (r *TextReporter) StepFinished(_ string, step types.StepResult) {
	if step.Error != nil {
		r.printf("  [error]%s[/error]\n", step.Error)
	}
}

// ApplicationFinished implements executor.Reporter
func (r *TextReporter) ApplicationFinished(result types.ApplicationResult) {
	switch result.Outcome {
	case types.OutcomeSkip:
		r.printf("[skip]`%s` is already installed, skipped[/skip]\n\n", result.Name)
	case types.OutcomeFailure:
		if len(result.Steps) == 0 && result.Error != nil {
			// installed-check failure: no step reported it
			r.printf("  [error]%s[/error]\n", result.Error)
		}
		r.printf("[error]failed to install `%s`[/error]\n\n", result.Name)
	default:
		r.printf("[success]installed `%s`[/success]\n\n", result.Name)
	}
}

// RunFinished implements executor.Reporter
func (r *TextReporter) RunFinished(result *types.RunResult) {
	summary := result.Summary()
	header := "Summary"
	if result.DryRun {
		header += " (dry run)"
	}
	r.printf("[bold]%s:[/bold] [success]%d success[/success], [skip]%d skip[/skip], [error]%d failure[/error]\n",
		header, summary.Success, summary.Skip, summary.Failure)

	if !r.color {
		return
	}
	for _, app := range result.Applications {
		_, _ = fmt.Fprintf(r.writer, "%s %s\n", style.Badge(app.Outcome), app.Name)
	}
}

// describeOperation renders an operation with markup for its parts
func describeOperation(op types.Operation) string {
	switch op.Kind {
	case types.OperationCommand:
		if op.Command == nil {
			return op.Description()
		}
		return "[command]" + op.Command.String() + "[/command]"
	case types.OperationLink:
		return fmt.Sprintf("link [path]%s[/path] -> [path]%s[/path]", op.Link.Value, op.Original.Value)
	default:
		return op.Description()
	}
}
