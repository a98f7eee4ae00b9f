package style_test

import (
	"testing"

	"github.com/arthur-debert/dosetup/pkg/style"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPlainParser(t *testing.T) {
	p := style.NewPlainParser()

	tests := []struct {
		input string
		want  string
	}{
		{"[error]failed[/error] to install", "failed to install"},
		{"[success]ok[/success] and [skip]skipped[/skip]", "ok and skipped"},
		{"no tags", "no tags"},
		{"[unknown]kept[/unknown]", "[unknown]kept[/unknown]"},
		{"[error]mismatch[/success]", "[error]mismatch[/success]"},
		{"[path]~/.gitconfig[/path] -> [path]~/dotfiles/gitconfig[/path]", "~/.gitconfig -> ~/dotfiles/gitconfig"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Render(tt.input))
		})
	}
}

func TestMarkupParser_CustomStyle(t *testing.T) {
	p := style.NewPlainParser()
	p.AddStyle("custom", lipgloss.NewStyle())

	assert.Equal(t, "x", p.Render("[custom]x[/custom]"))
}

func TestMarkupParser_StyledContainsText(t *testing.T) {
	assert.Contains(t, style.Render("[error]failed[/error]"), "failed")
	assert.NotContains(t, style.Render("[error]failed[/error]"), "[error]")
}

func TestOutcomeTag(t *testing.T) {
	assert.Equal(t, "success", style.OutcomeTag(types.OutcomeSuccess))
	assert.Equal(t, "error", style.OutcomeTag(types.OutcomeFailure))
	assert.Equal(t, "skip", style.OutcomeTag(types.OutcomeSkip))
	assert.Equal(t, "muted", style.OutcomeTag(types.Outcome("other")))
}

func TestBadge(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	assert.Equal(t, " SUCCESS ", style.Badge(types.OutcomeSuccess))
	assert.Equal(t, " SKIP    ", style.Badge(types.OutcomeSkip))
	assert.Equal(t, " FAILURE ", style.Badge(types.OutcomeFailure))
}
