// Package filesystem provides the filesystem used for link creation.
//
// It wraps an afero.Fs so the operating system filesystem and test
// filesystems share one interface. Symlinks are only supported by
// filesystems implementing afero.Linker (the OS filesystem does).
package filesystem
