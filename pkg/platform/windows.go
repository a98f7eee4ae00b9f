package platform

import (
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/filesystem"
	"github.com/arthur-debert/dosetup/pkg/paths"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// Windows runs every invocation through PowerShell's Start-Process.
// Elevated commands go through UAC (-Verb RunAs).
type Windows struct {
	runner
	resolver *paths.Resolver
	fs       filesystem.FS
	shell    string

	environ func() ([]string, error)
	setenv  func(key, value string) error
}

// NewWindows creates the Windows strategy
func NewWindows(opts Options) *Windows {
	opts = opts.withDefaults()
	return &Windows{
		runner:   newRunner(opts),
		resolver: opts.Resolver,
		fs:       opts.FS,
		shell:    opts.Shell,
		environ:  userEnvironment,
		setenv:   os.Setenv,
	}
}

// Name implements ExecutionPlatform
func (w *Windows) Name() string {
	return "windows"
}

// Command builds a PowerShell invocation that starts the program, waits for
// it and exits with its exit code
func (w *Windows) Command(cfg types.CommandConfig) (*exec.Cmd, error) {
	command, err := w.resolver.Resolve(cfg.Command)
	if err != nil {
		return nil, err
	}
	args, err := w.resolver.ResolveAll(cfg.Args)
	if err != nil {
		return nil, err
	}
	return w.powershell(startProcessScript(command, args, cfg.Elevated())), nil
}

// Execute implements ExecutionPlatform
func (w *Windows) Execute(op types.Operation) error {
	return executeOperation(w, w.runner, op)
}

// IsInstalled implements ExecutionPlatform
func (w *Windows) IsInstalled(predicate types.CommandConfig) (bool, error) {
	return installedCheck(w, w.runner, predicate)
}

// CreateLink starts an elevated PowerShell that runs New-Item. Only the exit
// status of the elevated shell is observed; a failing New-Item that still
// lets the shell exit 0 is not detected.
func (w *Windows) CreateLink(original, link types.Argument) error {
	source, target, err := w.checkLink(original, link)
	if err != nil {
		return err
	}

	w.logger.Info().
		Str("original", source).
		Str("link", target).
		Msg("Creating symbolic link")

	cmd := w.powershell(linkScript(w.shell, source, target))
	if err := w.run(cmd); err != nil {
		linkErr := errors.Wrapf(err, errors.ErrLinkCreate, "failed to link %s -> %s", target, source).
			WithDetail("original", source).
			WithDetail("link", target)
		if code, ok := errors.ExitCode(err); ok {
			linkErr.WithDetail(errors.DetailExitCode, code)
		}
		return linkErr
	}
	return nil
}

func (w *Windows) checkLink(original, link types.Argument) (string, string, error) {
	return resolveLink(w.resolver, w.fs, original, link)
}

// RefreshEnvironment copies the user's current environment block into the
// process environment. Variables that disappeared are left in place.
func (w *Windows) RefreshEnvironment() error {
	entries, err := w.environ()
	if err != nil {
		return errors.Wrap(err, errors.ErrEnvironmentRefresh, "failed to read user environment")
	}
	applied, err := applyEnvironment(entries, w.setenv)
	if err != nil {
		return err
	}
	w.logger.Debug().Int("variables", applied).Msg("Environment refreshed")
	return nil
}

func (w *Windows) powershell(script string) *exec.Cmd {
	return exec.Command(w.shell, "-NoProfile", "-Command", script)
}

// startProcessScript renders a Start-Process call for file and args
func startProcessScript(file string, args []string, elevated bool) string {
	var b strings.Builder
	b.WriteString("$p = Start-Process -FilePath ")
	b.WriteString(psQuote(file))

	if len(args) > 0 {
		quoted := make([]string, len(args))
		for i, arg := range args {
			quoted[i] = psQuote(processArgument(arg))
		}
		b.WriteString(" -ArgumentList ")
		b.WriteString(strings.Join(quoted, ","))
	}

	if elevated {
		b.WriteString(" -Verb RunAs")
	} else {
		b.WriteString(" -NoNewWindow")
	}
	b.WriteString(" -Wait -PassThru; if (-not $p) { exit 1 }; exit $p.ExitCode")
	return b.String()
}

// linkScript starts an elevated shell that creates the link
func linkScript(shell, original, link string) string {
	inner := "New-Item -ItemType SymbolicLink -Path " + psQuote(link) + " -Value " + psQuote(original)
	return startProcessScript(shell, []string{"-NoProfile", "-Command", inner}, true)
}

// psQuote renders s as a single-quoted PowerShell string
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// processArgument quotes an argument the way the C runtime splits a command
// line. Start-Process joins -ArgumentList with spaces, so arguments holding
// whitespace or quotes are wrapped in quotes; quotes are escaped and runs of
// backslashes before a quote or the closing quote are doubled.
func processArgument(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\"") {
		return arg
	}

	var b strings.Builder
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(arg); i++ {
		switch arg[i] {
		case '\\':
			slashes++
		case '"':
			b.WriteString(strings.Repeat(`\`, slashes+1))
			slashes = 0
		default:
			slashes = 0
		}
		b.WriteByte(arg[i])
	}
	b.WriteString(strings.Repeat(`\`, slashes))
	b.WriteByte('"')
	return b.String()
}

// applyEnvironment sets every NAME=value entry. Values may contain '=';
// entries without a name (such as "=C:=C:\") are skipped.
func applyEnvironment(entries []string, setenv func(key, value string) error) (int, error) {
	applied := 0
	for _, entry := range entries {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		if err := setenv(name, value); err != nil {
			return applied, errors.Wrapf(err, errors.ErrEnvironmentRefresh, "failed to set %s", name).
				WithDetail("variable", name)
		}
		applied++
	}
	return applied, nil
}
