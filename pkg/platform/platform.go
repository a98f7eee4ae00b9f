package platform

import (
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/dosetup/pkg/filesystem"
	"github.com/arthur-debert/dosetup/pkg/logging"
	"github.com/arthur-debert/dosetup/pkg/paths"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultElevationCommand prefixes elevated commands on Unix
	DefaultElevationCommand = "sudo"

	// DefaultShell runs every invocation on Windows
	DefaultShell = "powershell.exe"
)

// ExecutionPlatform runs expanded operations on one kind of host
type ExecutionPlatform interface {
	// Name identifies the strategy in logs and reports
	Name() string

	// Command builds the invocation for a command configuration without
	// running it
	Command(cfg types.CommandConfig) (*exec.Cmd, error)

	// Execute runs a single expanded operation
	Execute(op types.Operation) error

	// CreateLink creates a symbolic link at link pointing to original
	CreateLink(original, link types.Argument) error

	// IsInstalled runs an installed-check predicate
	IsInstalled(predicate types.CommandConfig) (bool, error)
}

// EnvironmentRefresher is implemented by platforms whose process environment
// must be re-read after each operation
type EnvironmentRefresher interface {
	RefreshEnvironment() error
}

// Options configures a platform strategy. Zero values get defaults.
type Options struct {
	Resolver *paths.Resolver
	FS       filesystem.FS
	Logger   *zerolog.Logger

	// ElevationCommand is split on whitespace and prefixed to as_root
	// commands. With the default "sudo" the resolved command is argv[1];
	// extra words such as "sudo -E" are kept in front of it, so the
	// command moves to a later position.
	ElevationCommand string
	Shell            string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) withDefaults() Options {
	if o.Resolver == nil {
		o.Resolver = paths.NewResolver()
	}
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Logger == nil {
		logger := logging.GetLogger("platform")
		o.Logger = &logger
	}
	if o.ElevationCommand == "" {
		o.ElevationCommand = DefaultElevationCommand
	}
	if o.Shell == "" {
		o.Shell = DefaultShell
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

// New returns the strategy native to the running binary
func New(opts Options) ExecutionPlatform {
	return newNative(opts.withDefaults())
}
