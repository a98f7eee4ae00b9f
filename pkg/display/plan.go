package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/executor"
	"github.com/arthur-debert/dosetup/pkg/style"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"
)

// PlanFormat selects how a plan is rendered
type PlanFormat string

const (
	PlanText     PlanFormat = "text"
	PlanMarkdown PlanFormat = "markdown"
	PlanYAML     PlanFormat = "yaml"
)

// ParsePlanFormat parses a --format value
func ParsePlanFormat(s string) (PlanFormat, error) {
	switch strings.ToLower(s) {
	case "", "text", "plain":
		return PlanText, nil
	case "markdown", "md":
		return PlanMarkdown, nil
	case "yaml", "yml":
		return PlanYAML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown plan format %q", s).
			WithDetail("format", s)
	}
}

// PlanOptions controls plan rendering
type PlanOptions struct {
	Format PlanFormat

	// Color styles text output and renders markdown through glamour
	Color bool
}

// RenderPlan writes plan to w
func RenderPlan(w io.Writer, plan *executor.Plan, opts PlanOptions) error {
	switch opts.Format {
	case PlanYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode plan")
		}
		return enc.Close()
	case PlanMarkdown:
		md := PlanMarkdownText(plan)
		if opts.Color {
			md = renderMarkdown(md)
		}
		_, err := io.WriteString(w, md)
		return err
	default:
		markup := style.NewPlainParser()
		if opts.Color {
			markup = style.NewMarkupParser()
		}
		_, err := io.WriteString(w, markup.Render(planText(plan)))
		return err
	}
}

func planText(plan *executor.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[title]Plan for %s[/title]\n", plan.Platform)
	if len(plan.Applications) == 0 {
		b.WriteString("[muted]No applications have a recipe for this platform[/muted]\n")
		return b.String()
	}

	for _, app := range plan.Applications {
		fmt.Fprintf(&b, "\n[bold]%s[/bold]\n", app.Name)
		if app.SkipIf != nil {
			fmt.Fprintf(&b, "  [muted]skipped when[/muted] [command]%s[/command] [muted]succeeds[/muted]\n", app.SkipIf.String())
		}
		if len(app.Operations) == 0 {
			b.WriteString("  [muted](no operations)[/muted]\n")
		}
		for i, op := range app.Operations {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, describeOperation(op))
		}
	}
	return b.String()
}

// PlanMarkdownText renders plan as a markdown document
func PlanMarkdownText(plan *executor.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Plan for `%s`\n", plan.Platform)
	if len(plan.Applications) == 0 {
		b.WriteString("\nNo applications have a recipe for this platform.\n")
		return b.String()
	}

	for _, app := range plan.Applications {
		fmt.Fprintf(&b, "\n## %s\n\n", app.Name)
		if app.SkipIf != nil {
			fmt.Fprintf(&b, "Skipped when `%s` succeeds.\n\n", app.SkipIf.String())
		}
		if len(app.Operations) == 0 {
			b.WriteString("_No operations._\n")
		}
		for i, op := range app.Operations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, markdownOperation(op))
		}
	}
	return b.String()
}

func markdownOperation(op types.Operation) string {
	switch op.Kind {
	case types.OperationCommand:
		if op.Command == nil {
			return op.Description()
		}
		return "`" + op.Command.String() + "`"
	case types.OperationLink:
		return fmt.Sprintf("link `%s` -> `%s`", op.Link.Value, op.Original.Value)
	default:
		return op.Description()
	}
}

// renderMarkdown falls back to the raw markdown when glamour fails
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
