// Package platform executes expanded recipe operations on the host.
//
// ExecutionPlatform hides the differences between operating systems: how a
// command line is built (including privilege elevation), how symbolic links
// are created and whether the process environment needs refreshing after a
// step. New returns the strategy native to the running binary; callers never
// branch on the operating system themselves.
//
// The Unix strategy runs commands directly and prefixes elevated ones with an
// elevation wrapper (sudo by default). The Windows strategy runs everything
// through PowerShell's Start-Process so that elevation goes through UAC, and
// re-reads the user environment after each step so that PATH changes made by
// installers become visible to later steps.
package platform
