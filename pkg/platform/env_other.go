//go:build !windows

package platform

import "github.com/arthur-debert/dosetup/pkg/errors"

func userEnvironment() ([]string, error) {
	return nil, errors.New(errors.ErrEnvironmentRefresh, "user environment blocks only exist on windows")
}
