package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
)

// HomeDirFunc looks up the user's home directory
type HomeDirFunc func() (string, error)

// Resolver turns recipe arguments into runtime strings.
// It holds no state besides the home-directory lookup.
type Resolver struct {
	home HomeDirFunc
}

// NewResolver creates a resolver using the process's home directory
func NewResolver() *Resolver {
	return &Resolver{home: GetHomeDirectory}
}

// NewResolverWithHome creates a resolver with a custom home lookup
func NewResolverWithHome(home HomeDirFunc) *Resolver {
	if home == nil {
		home = GetHomeDirectory
	}
	return &Resolver{home: home}
}

// Resolve returns the runtime value of an argument
func (r *Resolver) Resolve(arg types.Argument) (string, error) {
	if arg.IsPath() {
		return r.ResolvePath(arg.Value)
	}
	return arg.Value, nil
}

// ResolveAll resolves a list of arguments, preserving order
func (r *Resolver) ResolveAll(args types.Arguments) ([]string, error) {
	resolved := make([]string, 0, len(args))
	for _, arg := range args {
		value, err := r.Resolve(arg)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, value)
	}
	return resolved, nil
}

// ResolvePath expands a leading "~/" to the home directory.
// The remainder is appended verbatim; nothing else is expanded.
func (r *Resolver) ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, HomePrefix) {
		return path, nil
	}

	home, err := r.home()
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrArgumentResolve) {
			return "", err
		}
		return "", errors.Wrapf(err, errors.ErrArgumentResolve, "cannot expand %s", path).
			WithDetail("path", path)
	}
	if home == "" {
		return "", errors.Newf(errors.ErrArgumentResolve, "cannot expand %s: empty home directory", path).
			WithDetail("path", path)
	}

	sep := string(filepath.Separator)
	return strings.TrimSuffix(home, sep) + sep + path[len(HomePrefix):], nil
}

// ExpandHome expands a leading "~/" using the process's home directory
func ExpandHome(path string) (string, error) {
	return NewResolver().ResolvePath(path)
}
