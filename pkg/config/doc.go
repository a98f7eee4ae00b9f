// Package config loads the two kinds of input dosetup reads: its own settings
// and recipe documents.
//
// Settings are layered with koanf. Built-in defaults come first, then the
// settings file ($XDG_CONFIG_HOME/dosetup/config.toml or an explicit path),
// then DOSETUP_* environment variables and finally command line overrides.
//
// Recipe documents are YAML or TOML. They are parsed into a generic tree and
// then decoded by shape: an entry holding same_with is an alias, an operation
// holding command is a command, one holding original and link is a link and
// one holding package_name is a package install.
package config
