package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// FormatError renders err with a red "Error:" prefix followed by its
// structured details, one per line and sorted by key
func FormatError(err error, color bool) string {
	renderer := lipgloss.NewRenderer(io.Discard)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	prefix := renderer.NewStyle().Foreground(style.ErrorColor).Bold(true).Render("Error:")
	muted := renderer.NewStyle().Foreground(style.MutedColor)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", prefix, err)

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(muted.Render(fmt.Sprintf("  %s: %v", k, details[k])))
		b.WriteString("\n")
	}
	return b.String()
}

// PrintError writes err to w, styled when w is a color terminal
func PrintError(w io.Writer, err error) {
	_, _ = io.WriteString(w, FormatError(err, colorEnabled(w)))
}
