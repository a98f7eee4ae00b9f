package cli

import (
	"github.com/arthur-debert/dosetup/pkg/config"
	"github.com/arthur-debert/dosetup/pkg/display"
	"github.com/arthur-debert/dosetup/pkg/executor"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "plan <recipe-file> [platform]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			planFormat, err := display.ParsePlanFormat(format)
			if err != nil {
				return err
			}

			doc, err := config.LoadDocument(args[0])
			if err != nil {
				return err
			}
			plan, err := executor.BuildPlan(doc, a.platformID(args, 1))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return display.RenderPlan(out, plan, display.PlanOptions{
				Format: planFormat,
				Color:  colorEnabled(out),
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(display.PlanText), MsgFlagFormat)

	return cmd
}
