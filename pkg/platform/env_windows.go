//go:build windows

package platform

import "golang.org/x/sys/windows"

// userEnvironment reads the environment block of the current user, which
// reflects changes installers made to the registry after this process started
func userEnvironment() ([]string, error) {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return nil, err
	}
	defer func() { _ = token.Close() }()

	return token.Environ(false)
}
