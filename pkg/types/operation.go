package types

import (
	"fmt"
	"strings"
)

// OperationKind defines the kind of recipe operation
type OperationKind string

const (
	// OperationCommand runs an external command
	OperationCommand OperationKind = "command"

	// OperationLink creates a symbolic link
	OperationLink OperationKind = "link"

	// OperationPackageInstall installs a package through the platform's
	// package manager. It only exists before expansion.
	OperationPackageInstall OperationKind = "package_install"
)

// CommandConfig describes a single command invocation
type CommandConfig struct {
	// Command is the program to run
	Command Argument

	// AsRoot requests elevation; nil means false
	AsRoot *bool

	// Args are passed to the program in order; nil means no arguments
	Args Arguments
}

// Elevated reports whether the command must run with elevated privileges
func (c CommandConfig) Elevated() bool {
	return c.AsRoot != nil && *c.AsRoot
}

// Clone returns a deep copy of the command configuration
func (c CommandConfig) Clone() CommandConfig {
	out := CommandConfig{
		Command: c.Command,
		Args:    c.Args.Clone(),
	}
	if c.AsRoot != nil {
		asRoot := *c.AsRoot
		out.AsRoot = &asRoot
	}
	return out
}

// String renders the command as it appears in the recipe, without resolution
func (c CommandConfig) String() string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Elevated() {
		parts = append(parts, "(root)")
	}
	parts = append(parts, c.Command.String())
	for _, arg := range c.Args {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ")
}

// MarshalYAML writes the command back in document form
func (c CommandConfig) MarshalYAML() (interface{}, error) {
	out := map[string]interface{}{"command": c.Command}
	if c.AsRoot != nil {
		out["as_root"] = *c.AsRoot
	}
	if c.Args != nil {
		out["args"] = c.Args
	}
	return out, nil
}

// Operation is one step of a recipe. Exactly the fields belonging to Kind
// are meaningful.
type Operation struct {
	Kind OperationKind

	// Command is set for OperationCommand
	Command *CommandConfig

	// Original and Link are set for OperationLink
	Original Argument
	Link     Argument

	// PackageName is set for OperationPackageInstall
	PackageName string
}

// CommandOperation creates a command operation
func CommandOperation(cfg CommandConfig) Operation {
	return Operation{Kind: OperationCommand, Command: &cfg}
}

// LinkOperation creates a link operation
func LinkOperation(original, link Argument) Operation {
	return Operation{Kind: OperationLink, Original: original, Link: link}
}

// PackageInstallOperation creates a package install placeholder
func PackageInstallOperation(packageName string) Operation {
	return Operation{Kind: OperationPackageInstall, PackageName: packageName}
}

// Clone returns a deep copy of the operation
func (o Operation) Clone() Operation {
	out := o
	if o.Command != nil {
		cfg := o.Command.Clone()
		out.Command = &cfg
	}
	return out
}

// Description returns a human-readable description of the operation
func (o Operation) Description() string {
	switch o.Kind {
	case OperationCommand:
		if o.Command == nil {
			return "command: <empty>"
		}
		return "command: " + o.Command.String()
	case OperationLink:
		return fmt.Sprintf("link: %s -> %s", o.Link.Value, o.Original.Value)
	case OperationPackageInstall:
		return "package install: " + o.PackageName
	default:
		return fmt.Sprintf("unknown operation %q", string(o.Kind))
	}
}

// MarshalYAML writes the operation back in its shape-discriminated form
func (o Operation) MarshalYAML() (interface{}, error) {
	switch o.Kind {
	case OperationCommand:
		if o.Command == nil {
			return nil, fmt.Errorf("command operation without command")
		}
		return o.Command.MarshalYAML()
	case OperationLink:
		return map[string]interface{}{
			"original": Path(o.Original.Value),
			"link":     Path(o.Link.Value),
		}, nil
	case OperationPackageInstall:
		return map[string]string{"package_name": o.PackageName}, nil
	default:
		return nil, fmt.Errorf("unknown operation kind %q", string(o.Kind))
	}
}

// CloneOperations deep-copies an operation list
func CloneOperations(ops []Operation) []Operation {
	if ops == nil {
		return nil
	}
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Clone()
	}
	return out
}
