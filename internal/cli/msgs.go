package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install applications from a declarative recipe file"
	MsgVersionShort    = "Print version information"
	MsgInstallShort    = "Install every application that has a recipe for the platform"
	MsgPlanShort       = "Show the operations install would run"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Flags
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Settings file (default $XDG_CONFIG_HOME/dosetup/config.toml)"
	MsgFlagDryRun      = "Log what would run without running it"
	MsgFlagFailOnError = "Exit with an error when any application fails"
	MsgFlagFormat      = "Output format: text, markdown or yaml"

	// Error messages
	MsgErrApplicationsFailed = "%d of %d application(s) failed to install"
	MsgErrUnknownShell       = "unknown shell %q, supported shells: bash, zsh, fish, powershell"
)

// Long messages
const (
	MsgRootLong = `dosetup installs applications on a fresh machine from a declarative recipe file.

Each application declares a recipe per platform: commands to run, symbolic
links to create and packages to install, optionally guarded by a command that
reports whether the application is already installed. Platforms can share
recipes through same_with aliases, and package installs expand to the package
manager commands declared under platform_config.`

	MsgInstallLong = `Install loads the recipe file, expands package installs and runs every
application that has a recipe for the platform, in the order they are declared.

The platform defaults to the "platform" setting, which itself defaults to the
running operating system (linux, macos or windows). A failing step stops its
application but not the run. A summary is printed at the end.`

	MsgInstallExample = `  dosetup install setup.yaml
  dosetup install setup.yaml ubuntu
  dosetup install setup.toml macos --dry-run`

	MsgPlanLong = `Plan resolves and expands the recipe file exactly like install, then prints
the operations each application would run without running anything.`

	MsgPlanExample = `  dosetup plan setup.yaml ubuntu
  dosetup plan setup.yaml --format markdown`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(dosetup completion bash)

Zsh:
  $ dosetup completion zsh > "${fpath[1]}/_dosetup"

Fish:
  $ dosetup completion fish | source

PowerShell:
  PS> dosetup completion powershell | Out-String | Invoke-Expression`
)

// MsgUsageTemplate replaces cobra's default usage template
const MsgUsageTemplate = `{{boldUpper "usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

{{boldUpper "examples"}}:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "commands"}}:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
