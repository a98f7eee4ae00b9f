package cli

import (
	"github.com/arthur-debert/dosetup/pkg/config"
	"github.com/arthur-debert/dosetup/pkg/display"
	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/executor"
	"github.com/arthur-debert/dosetup/pkg/logging"
	"github.com/arthur-debert/dosetup/pkg/platform"
	"github.com/spf13/cobra"
)

func newInstallCmd(a *app) *cobra.Command {
	var (
		dryRun      bool
		failOnError bool
	)

	cmd := &cobra.Command{
		Use:     "install <recipe-file> [platform]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.LoadDocument(args[0])
			if err != nil {
				return err
			}
			platformID := a.platformID(args, 1)

			target := a.platform(cmd)
			if dryRun {
				target = platform.NewDryRun(target, logging.GetLogger("dry-run"))
			}

			out := cmd.OutOrStdout()
			ex := executor.New(executor.Options{
				Platform: target,
				Reporter: display.NewTextReporter(out, colorEnabled(out)),
				DryRun:   dryRun,
			})
			result, err := ex.Run(doc, platformID)
			if err != nil {
				return err
			}

			if a.settings.FailOnError && result.HasFailures() {
				summary := result.Summary()
				return errors.Newf(errors.ErrExecutionFailed, MsgErrApplicationsFailed, summary.Failure, summary.Total()).
					WithDetail("platform", platformID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, MsgFlagFailOnError)

	return cmd
}
