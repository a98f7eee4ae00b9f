package config

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

// location describes where in the document a value sits, for error messages
type location struct {
	application string
	platform    string
	operation   int // 1-based, 0 when not inside an operation list
	field       string
}

func (l location) String() string {
	s := ""
	if l.application != "" {
		s += fmt.Sprintf("application %q ", l.application)
	}
	if l.platform != "" {
		s += fmt.Sprintf("platform %q ", l.platform)
	}
	if l.field != "" {
		s += l.field + " "
	}
	if l.operation > 0 {
		s += fmt.Sprintf("operation %d ", l.operation)
	}
	if s == "" {
		return "document"
	}
	return s[:len(s)-1]
}

func (l location) errorf(format string, args ...interface{}) *errors.Error {
	e := errors.Newf(errors.ErrConfigParse, "%s: %s", l, fmt.Sprintf(format, args...))
	if l.application != "" {
		e.WithDetail("application", l.application)
	}
	if l.platform != "" {
		e.WithDetail("platform", l.platform)
	}
	if l.operation > 0 {
		e.WithDetail("operation", l.operation)
	}
	return e
}

// DecodeDocument turns a generic tree (as produced by the YAML or TOML
// parsers) into a document. A top-level list is read as the application
// list of a document without platform configuration.
func DecodeDocument(tree interface{}) (*types.Document, error) {
	doc := &types.Document{PlatformConfig: map[string]types.PlatformConfig{}}
	root := location{}

	switch t := tree.(type) {
	case nil:
		return doc, nil
	case []interface{}:
		apps, err := decodeApplications(t)
		if err != nil {
			return nil, err
		}
		doc.Applications = apps
		return doc, nil
	}

	top, ok := asMap(tree)
	if !ok {
		return nil, root.errorf("expected a mapping or a list of applications, got %s", describe(tree))
	}

	for _, key := range sortedKeys(top) {
		switch key {
		case "platform_config", "application":
		default:
			return nil, root.errorf("unknown key %q", key)
		}
	}

	if raw, ok := top["platform_config"]; ok && raw != nil {
		configs, err := decodePlatformConfigs(raw)
		if err != nil {
			return nil, err
		}
		doc.PlatformConfig = configs
	}

	if raw, ok := top["application"]; ok && raw != nil {
		list, ok := raw.([]interface{})
		if !ok {
			return nil, root.errorf("application must be a list, got %s", describe(raw))
		}
		apps, err := decodeApplications(list)
		if err != nil {
			return nil, err
		}
		doc.Applications = apps
	}

	return doc, nil
}

func decodePlatformConfigs(raw interface{}) (map[string]types.PlatformConfig, error) {
	entries, ok := asMap(raw)
	if !ok {
		return nil, location{}.errorf("platform_config must be a mapping, got %s", describe(raw))
	}

	configs := make(map[string]types.PlatformConfig, len(entries))
	for _, platform := range sortedKeys(entries) {
		loc := location{platform: platform, field: "platform_config"}

		entry, ok := asMap(entries[platform])
		if !ok {
			return nil, loc.errorf("expected a mapping, got %s", describe(entries[platform]))
		}

		if target, isAlias, err := decodeAlias(loc, entry); err != nil {
			return nil, err
		} else if isAlias {
			configs[platform] = types.PlatformConfig{SameWith: target}
			continue
		}

		if err := onlyKeys(loc, entry, "package_install"); err != nil {
			return nil, err
		}
		ops, err := decodeOperations(loc, entry["package_install"])
		if err != nil {
			return nil, err
		}
		configs[platform] = types.PlatformConfig{
			Concrete: &types.ConcretePlatformConfig{PackageInstall: ops},
		}
	}
	return configs, nil
}

func decodeApplications(list []interface{}) ([]types.Application, error) {
	apps := make([]types.Application, 0, len(list))
	for i, raw := range list {
		app, err := decodeApplication(i, raw)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func decodeApplication(index int, raw interface{}) (types.Application, error) {
	loc := location{field: fmt.Sprintf("application #%d", index+1)}

	entry, ok := asMap(raw)
	if !ok {
		return types.Application{}, loc.errorf("expected a mapping, got %s", describe(raw))
	}
	if err := onlyKeys(loc, entry, "name", "recipe"); err != nil {
		return types.Application{}, err
	}

	name, ok := entry["name"].(string)
	if !ok || name == "" {
		return types.Application{}, loc.errorf("name must be a non-empty string")
	}
	loc = location{application: name}

	recipes, ok := asMap(entry["recipe"])
	if !ok {
		return types.Application{}, loc.errorf("recipe must be a mapping, got %s", describe(entry["recipe"]))
	}

	app := types.Application{Name: name, Recipe: make(map[string]types.PlatformRecipe, len(recipes))}
	for _, platform := range sortedKeys(recipes) {
		recipe, err := decodeRecipe(location{application: name, platform: platform}, recipes[platform])
		if err != nil {
			return types.Application{}, err
		}
		app.Recipe[platform] = recipe
	}
	return app, nil
}

func decodeRecipe(loc location, raw interface{}) (types.PlatformRecipe, error) {
	entry, ok := asMap(raw)
	if !ok {
		return types.PlatformRecipe{}, loc.errorf("expected a mapping, got %s", describe(raw))
	}

	if target, isAlias, err := decodeAlias(loc, entry); err != nil {
		return types.PlatformRecipe{}, err
	} else if isAlias {
		return types.AliasOf(target), nil
	}

	if err := onlyKeys(loc, entry, "skip_if", "operations"); err != nil {
		return types.PlatformRecipe{}, err
	}

	var recipe types.ConcreteRecipe
	if rawSkip, ok := entry["skip_if"]; ok && rawSkip != nil {
		skipLoc := loc
		skipLoc.field = "skip_if"
		cfg, err := decodeCommand(skipLoc, rawSkip)
		if err != nil {
			return types.PlatformRecipe{}, err
		}
		recipe.SkipIf = &cfg
	}

	rawOps, ok := entry["operations"]
	if !ok {
		return types.PlatformRecipe{}, loc.errorf("missing operations")
	}
	ops, err := decodeOperations(loc, rawOps)
	if err != nil {
		return types.PlatformRecipe{}, err
	}
	recipe.Operations = ops

	return types.ConcreteOf(recipe), nil
}

// decodeAlias recognizes {same_with: platform}
func decodeAlias(loc location, entry map[string]interface{}) (string, bool, error) {
	raw, ok := entry["same_with"]
	if !ok {
		return "", false, nil
	}
	if len(entry) != 1 {
		return "", false, loc.errorf("same_with cannot be combined with other keys")
	}
	target, ok := raw.(string)
	if !ok || target == "" {
		return "", false, loc.errorf("same_with must be a platform id, got %s", describe(raw))
	}
	return target, true, nil
}

func decodeOperations(loc location, raw interface{}) ([]types.Operation, error) {
	if raw == nil {
		return []types.Operation{}, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, loc.errorf("operations must be a list, got %s", describe(raw))
	}

	ops := make([]types.Operation, 0, len(list))
	for i, item := range list {
		opLoc := loc
		opLoc.operation = i + 1
		op, err := decodeOperation(opLoc, item)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// decodeOperation discriminates an operation by the keys it holds
func decodeOperation(loc location, raw interface{}) (types.Operation, error) {
	entry, ok := asMap(raw)
	if !ok {
		return types.Operation{}, loc.errorf("expected a mapping, got %s", describe(raw))
	}

	_, hasCommand := entry["command"]
	_, hasOriginal := entry["original"]
	_, hasLink := entry["link"]
	_, hasPackage := entry["package_name"]

	switch {
	case hasCommand:
		cfg, err := decodeCommand(loc, entry)
		if err != nil {
			return types.Operation{}, err
		}
		return types.CommandOperation(cfg), nil

	case hasOriginal && hasLink:
		if err := onlyKeys(loc, entry, "original", "link"); err != nil {
			return types.Operation{}, err
		}
		original, err := decodeLinkEndpoint(loc, "original", entry["original"])
		if err != nil {
			return types.Operation{}, err
		}
		link, err := decodeLinkEndpoint(loc, "link", entry["link"])
		if err != nil {
			return types.Operation{}, err
		}
		return types.LinkOperation(original, link), nil

	case hasPackage:
		if err := onlyKeys(loc, entry, "package_name"); err != nil {
			return types.Operation{}, err
		}
		name, ok := entry["package_name"].(string)
		if !ok || name == "" {
			return types.Operation{}, loc.errorf("package_name must be a non-empty string")
		}
		return types.PackageInstallOperation(name), nil
	}

	return types.Operation{}, loc.errorf("unrecognized operation with keys %v", sortedKeys(entry))
}

// rawCommand mirrors a command mapping before its arguments are typed
type rawCommand struct {
	Command interface{}   `mapstructure:"command"`
	AsRoot  *bool         `mapstructure:"as_root"`
	Args    []interface{} `mapstructure:"args"`
}

func decodeCommand(loc location, raw interface{}) (types.CommandConfig, error) {
	var rc rawCommand
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &rc,
		ErrorUnused: true,
	})
	if err != nil {
		return types.CommandConfig{}, errors.Wrap(err, errors.ErrInternal, "failed to create decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		e := loc.errorf("invalid command")
		e.Wrapped = err
		return types.CommandConfig{}, e
	}

	if rc.Command == nil {
		return types.CommandConfig{}, loc.errorf("missing command")
	}
	command, err := decodeArgument(loc, rc.Command)
	if err != nil {
		return types.CommandConfig{}, err
	}

	cfg := types.CommandConfig{Command: command, AsRoot: rc.AsRoot}
	if rc.Args != nil {
		cfg.Args = make(types.Arguments, 0, len(rc.Args))
		for _, rawArg := range rc.Args {
			arg, err := decodeArgument(loc, rawArg)
			if err != nil {
				return types.CommandConfig{}, err
			}
			cfg.Args = append(cfg.Args, arg)
		}
	}
	return cfg, nil
}

// decodeArgument reads "value" as a literal and {path: value} as a path.
// Numbers and booleans are accepted as literals in their printed form.
func decodeArgument(loc location, raw interface{}) (types.Argument, error) {
	switch v := raw.(type) {
	case string:
		return types.Literal(v), nil
	case int, int64, uint64, float64, bool:
		return types.Literal(fmt.Sprint(v)), nil
	}

	entry, ok := asMap(raw)
	if !ok {
		return types.Argument{}, loc.errorf("invalid argument %s", describe(raw))
	}
	path, ok := entry["path"].(string)
	if !ok || len(entry) != 1 {
		return types.Argument{}, loc.errorf("argument mappings must be {path: <string>}")
	}
	return types.Path(path), nil
}

// decodeLinkEndpoint accepts a bare string or {path: ...}; both are paths
func decodeLinkEndpoint(loc location, name string, raw interface{}) (types.Argument, error) {
	if s, ok := raw.(string); ok {
		return types.Path(s), nil
	}
	arg, err := decodeArgument(loc, raw)
	if err != nil {
		return types.Argument{}, err
	}
	if !arg.IsPath() {
		return types.Argument{}, loc.errorf("%s must be a path", name)
	}
	return arg, nil
}

func onlyKeys(loc location, entry map[string]interface{}, allowed ...string) error {
	for _, key := range sortedKeys(entry) {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			return loc.errorf("unknown key %q", key)
		}
	}
	return nil
}

// asMap normalizes the mapping types produced by the YAML and TOML parsers
func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch m := raw.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func describe(raw interface{}) string {
	if raw == nil {
		return "nothing"
	}
	switch raw.(type) {
	case string:
		return "a string"
	case []interface{}:
		return "a list"
	}
	if _, ok := asMap(raw); ok {
		return "a mapping"
	}
	return fmt.Sprintf("%T", raw)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
