// Package paths resolves recipe arguments to the strings handed to the
// operating system, and locates dosetup's own files.
//
// # Argument resolution
//
// Literal arguments are returned unchanged. Path arguments starting with the
// exact prefix "~/" have that prefix replaced by the user's home directory;
// every other path value, including "~", "~user/x" and absolute paths, is
// returned as written:
//
//	r := paths.NewResolver()
//	r.Resolve(types.Path("~/.gitconfig"))  // /home/user/.gitconfig
//	r.Resolve(types.Path("~user/x"))       // ~user/x
//	r.Resolve(types.Literal("~/x"))        // ~/x
//
// Failing to determine the home directory is an ErrArgumentResolve error.
//
// # Files
//
// The settings file lives under the XDG config directory
// ($XDG_CONFIG_HOME/dosetup/config.toml), overridable with DOSETUP_CONFIG_DIR.
package paths
