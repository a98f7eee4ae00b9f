// Package cli builds the dosetup command tree.
package cli

import (
	"fmt"

	"github.com/arthur-debert/dosetup/internal/version"
	"github.com/arthur-debert/dosetup/pkg/config"
	"github.com/arthur-debert/dosetup/pkg/logging"
	"github.com/arthur-debert/dosetup/pkg/platform"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// app holds state shared by every command of one invocation
type app struct {
	verbosity  int
	configPath string
	settings   *config.Settings
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "dosetup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", MsgFlagConfig)

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	return rootCmd
}

// setup loads settings, applying command flags as overrides, then configures
// logging. Logging still goes to the console when settings cannot be loaded.
func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]interface{}{}
	if f := cmd.Flags().Lookup("fail-on-error"); f != nil && f.Changed {
		value, err := cmd.Flags().GetBool("fail-on-error")
		if err != nil {
			return err
		}
		overrides["fail_on_error"] = value
	}

	settings, err := config.LoadSettings(config.LoadOptions{
		Path:      a.configPath,
		Overrides: overrides,
	})
	if err != nil {
		logging.SetupLoggerWithFile(a.verbosity, false)
		return err
	}
	a.settings = settings

	logging.SetupLoggerWithFile(a.verbosity, settings.LogFile)
	log.Debug().
		Str("command", cmd.Name()).
		Str("platform", settings.Platform).
		Msg("Command started")
	return nil
}

// platformID returns the platform argument at index i, or the configured
// platform when it is absent
func (a *app) platformID(args []string, i int) string {
	if len(args) > i && args[i] != "" {
		return args[i]
	}
	return a.settings.Platform
}

// platform builds the native execution strategy for the running OS
func (a *app) platform(cmd *cobra.Command) platform.ExecutionPlatform {
	logger := logging.GetLogger("platform")
	return platform.New(platform.Options{
		Logger:           &logger,
		ElevationCommand: a.settings.Elevation.Command,
		Shell:            a.settings.Windows.Shell,
		Stdin:            cmd.InOrStdin(),
		Stdout:           cmd.OutOrStdout(),
		Stderr:           cmd.ErrOrStderr(),
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dosetup version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}
