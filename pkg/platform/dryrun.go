package platform

import (
	"os/exec"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/rs/zerolog"
)

// DryRun wraps a platform and logs what would happen instead of doing it.
// Installed checks always report "not installed" so every step is shown.
type DryRun struct {
	target ExecutionPlatform
	logger zerolog.Logger
}

// NewDryRun wraps target
func NewDryRun(target ExecutionPlatform, logger zerolog.Logger) *DryRun {
	return &DryRun{target: target, logger: logger}
}

// Name implements ExecutionPlatform
func (d *DryRun) Name() string {
	return d.target.Name()
}

// Command implements ExecutionPlatform
func (d *DryRun) Command(cfg types.CommandConfig) (*exec.Cmd, error) {
	return d.target.Command(cfg)
}

// Execute builds the invocation and logs it without running it
func (d *DryRun) Execute(op types.Operation) error {
	switch op.Kind {
	case types.OperationCommand:
		if op.Command == nil {
			return errors.New(errors.ErrInvalidInput, "command operation without a command")
		}
		cmd, err := d.target.Command(*op.Command)
		if err != nil {
			return err
		}
		d.logger.Info().
			Str("invocation", FormatArgv(cmd.Args)).
			Msg("Would execute command")
		return nil
	case types.OperationLink:
		return d.CreateLink(op.Original, op.Link)
	default:
		return errors.Newf(errors.ErrUnsupportedOperation,
			"operation %q cannot be executed", op.Description()).
			WithDetail("kind", string(op.Kind))
	}
}

// linkChecker resolves link endpoints and runs the read-only precheck
// without creating anything
type linkChecker interface {
	checkLink(original, link types.Argument) (string, string, error)
}

// CreateLink resolves the endpoints and checks the original through the
// wrapped strategy, then logs the link it would create
func (d *DryRun) CreateLink(original, link types.Argument) error {
	source, target := original.Value, link.Value
	if checker, ok := d.target.(linkChecker); ok {
		var err error
		if source, target, err = checker.checkLink(original, link); err != nil {
			return err
		}
	}
	d.logger.Info().
		Str("original", source).
		Str("link", target).
		Msg("Would create symbolic link")
	return nil
}

// IsInstalled logs the predicate and reports not installed
func (d *DryRun) IsInstalled(predicate types.CommandConfig) (bool, error) {
	cmd, err := d.target.Command(predicate)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrPredicateExecution, "failed to build installed check")
	}
	d.logger.Info().
		Str("invocation", FormatArgv(cmd.Args)).
		Msg("Would check installed state")
	return false, nil
}
