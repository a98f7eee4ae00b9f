package platform

import (
	"os/exec"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/filesystem"
	"github.com/arthur-debert/dosetup/pkg/paths"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// Unix runs commands directly and elevates them with a wrapper command
type Unix struct {
	runner
	resolver  *paths.Resolver
	fs        filesystem.FS
	elevation []string
}

// NewUnix creates the Unix strategy
func NewUnix(opts Options) *Unix {
	opts = opts.withDefaults()
	elevation := strings.Fields(opts.ElevationCommand)
	if len(elevation) == 0 {
		elevation = []string{DefaultElevationCommand}
	}
	return &Unix{
		runner:    newRunner(opts),
		resolver:  opts.Resolver,
		fs:        opts.FS,
		elevation: elevation,
	}
}

// Name implements ExecutionPlatform
func (u *Unix) Name() string {
	return "unix"
}

// Command builds "<cmd> args..." or, for as_root commands,
// "<elevation> <cmd> args...".
func (u *Unix) Command(cfg types.CommandConfig) (*exec.Cmd, error) {
	command, err := u.resolver.Resolve(cfg.Command)
	if err != nil {
		return nil, err
	}
	args, err := u.resolver.ResolveAll(cfg.Args)
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(u.elevation)+len(args)+1)
	if cfg.Elevated() {
		argv = append(argv, u.elevation...)
	}
	argv = append(argv, command)
	argv = append(argv, args...)

	return exec.Command(argv[0], argv[1:]...), nil
}

// Execute implements ExecutionPlatform
func (u *Unix) Execute(op types.Operation) error {
	return executeOperation(u, u.runner, op)
}

// IsInstalled implements ExecutionPlatform
func (u *Unix) IsInstalled(predicate types.CommandConfig) (bool, error) {
	return installedCheck(u, u.runner, predicate)
}

// CreateLink creates a native symbolic link. The original must exist.
func (u *Unix) CreateLink(original, link types.Argument) error {
	source, target, err := u.checkLink(original, link)
	if err != nil {
		return err
	}

	u.logger.Info().
		Str("original", source).
		Str("link", target).
		Msg("Creating symbolic link")

	if err := u.fs.Symlink(source, target); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "failed to link %s -> %s", target, source).
			WithDetail("original", source).
			WithDetail("link", target)
	}
	return nil
}

func (u *Unix) checkLink(original, link types.Argument) (string, string, error) {
	return resolveLink(u.resolver, u.fs, original, link)
}

// resolveLink resolves both link endpoints and checks that the original
// exists
func resolveLink(resolver *paths.Resolver, fs filesystem.FS, original, link types.Argument) (string, string, error) {
	source, err := resolver.Resolve(original)
	if err != nil {
		return "", "", err
	}
	target, err := resolver.Resolve(link)
	if err != nil {
		return "", "", err
	}

	if _, err := fs.Stat(source); err != nil {
		return "", "", errors.Wrapf(err, errors.ErrLinkPrecheck, "cannot link to %s", source).
			WithDetail("original", source).
			WithDetail("link", target)
	}
	return source, target, nil
}
