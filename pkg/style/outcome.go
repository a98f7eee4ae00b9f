package style

import (
	"strings"

	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/pterm/pterm"
)

// OutcomeStyle returns the badge style for an application outcome
func OutcomeStyle(outcome types.Outcome) *pterm.Style {
	switch outcome {
	case types.OutcomeSuccess:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.OutcomeFailure:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case types.OutcomeSkip:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// OutcomeTag returns the markup tag used for an outcome
func OutcomeTag(outcome types.Outcome) string {
	switch outcome {
	case types.OutcomeSuccess:
		return "success"
	case types.OutcomeFailure:
		return "error"
	case types.OutcomeSkip:
		return "skip"
	default:
		return "muted"
	}
}

// Badge renders a fixed-width outcome badge, e.g. " SKIP    "
func Badge(outcome types.Outcome) string {
	return OutcomeStyle(outcome).Sprintf(" %-7s ", strings.ToUpper(string(outcome)))
}
