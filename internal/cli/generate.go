package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dosetup/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// GenCompletion writes the completion script for shell
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf(MsgErrUnknownShell, shell)
	}
}

// ManHeader is the header of the generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DOSETUP",
		Section: "1",
		Source:  "dosetup " + version.Version,
		Manual:  "dosetup manual",
	}
}
