//go:build !windows

package platform

func newNative(opts Options) ExecutionPlatform {
	return NewUnix(opts)
}
