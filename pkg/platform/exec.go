package platform

import (
	stderrors "errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/rs/zerolog"
)

// runner holds what every strategy needs to start child processes
type runner struct {
	logger zerolog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRunner(opts Options) runner {
	return runner{
		logger: *opts.Logger,
		stdin:  opts.Stdin,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
	}
}

// FormatArgv renders an argument vector with every element quoted, so the
// logged form is unambiguous and stable
func FormatArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = fmt.Sprintf("%q", arg)
	}
	return strings.Join(quoted, " ")
}

// run executes cmd with the runner's standard streams and waits for it.
// A non-zero exit becomes ErrExecutionFailed carrying the exit code.
func (r runner) run(cmd *exec.Cmd) error {
	start := time.Now()
	r.logger.Info().
		Str("invocation", FormatArgv(cmd.Args)).
		Msg("Executing command")

	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	r.logger.Debug().
		Str("invocation", FormatArgv(cmd.Args)).
		Dur("duration", time.Since(start)).
		Bool("success", err == nil).
		Msg("Command finished")
	if err != nil {
		return executionError(err)
	}
	return nil
}

// probe runs cmd detached from the terminal and reports whether it exited 0
func (r runner) probe(cmd *exec.Cmd) (bool, error) {
	r.logger.Debug().
		Str("invocation", FormatArgv(cmd.Args)).
		Msg("Checking installed state")

	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		r.logger.Debug().
			Int("exit_code", exitErr.ExitCode()).
			Msg("Predicate reported not installed")
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrPredicateExecution,
		"failed to run installed check %s", FormatArgv(cmd.Args))
}

func executionError(err error) error {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		// -1 means the process was killed or never reported a status
		if code := exitErr.ExitCode(); code >= 0 {
			return errors.ExecutionFailed(&code, err)
		}
	}
	return errors.ExecutionFailed(nil, err)
}

// commandLinker is the strategy-specific half of Execute
type commandLinker interface {
	Command(cfg types.CommandConfig) (*exec.Cmd, error)
	CreateLink(original, link types.Argument) error
}

// executeOperation dispatches one expanded operation to a strategy
func executeOperation(p commandLinker, r runner, op types.Operation) error {
	switch op.Kind {
	case types.OperationCommand:
		if op.Command == nil {
			return errors.New(errors.ErrInvalidInput, "command operation without a command")
		}
		cmd, err := p.Command(*op.Command)
		if err != nil {
			return err
		}
		return r.run(cmd)
	case types.OperationLink:
		return p.CreateLink(op.Original, op.Link)
	default:
		return errors.Newf(errors.ErrUnsupportedOperation,
			"operation %q cannot be executed", op.Description()).
			WithDetail("kind", string(op.Kind))
	}
}

// installedCheck builds and probes a predicate
func installedCheck(p commandLinker, r runner, predicate types.CommandConfig) (bool, error) {
	cmd, err := p.Command(predicate)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrPredicateExecution, "failed to build installed check")
	}
	return r.probe(cmd)
}
