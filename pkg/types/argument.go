package types

import "fmt"

// ArgumentKind distinguishes literal arguments from path arguments
type ArgumentKind string

const (
	// ArgumentLiteral is passed through unchanged
	ArgumentLiteral ArgumentKind = "literal"

	// ArgumentPath gets home-directory expansion before use
	ArgumentPath ArgumentKind = "path"
)

// Argument is a command argument, link endpoint or command name.
// The zero value is an empty literal.
type Argument struct {
	Kind  ArgumentKind
	Value string
}

// Literal creates a literal argument
func Literal(value string) Argument {
	return Argument{Kind: ArgumentLiteral, Value: value}
}

// Path creates a path argument
func Path(value string) Argument {
	return Argument{Kind: ArgumentPath, Value: value}
}

// IsPath reports whether the argument is subject to path expansion
func (a Argument) IsPath() bool {
	return a.Kind == ArgumentPath
}

// IsLiteral reports whether the argument is a literal
func (a Argument) IsLiteral() bool {
	return !a.IsPath()
}

// String returns a short description, used in logs and plans
func (a Argument) String() string {
	if a.IsPath() {
		return fmt.Sprintf("path(%s)", a.Value)
	}
	return a.Value
}

// MarshalYAML writes the argument back in document form:
// a bare string for literals and {path: ...} for paths.
func (a Argument) MarshalYAML() (interface{}, error) {
	if a.IsPath() {
		return map[string]string{"path": a.Value}, nil
	}
	return a.Value, nil
}

// Arguments is an ordered argument list
type Arguments []Argument

// Clone returns an independent copy of the list
func (args Arguments) Clone() Arguments {
	if args == nil {
		return nil
	}
	out := make(Arguments, len(args))
	copy(out, args)
	return out
}

// Values returns the raw (unresolved) values of the arguments
func (args Arguments) Values() []string {
	values := make([]string, len(args))
	for i, arg := range args {
		values[i] = arg.Value
	}
	return values
}
