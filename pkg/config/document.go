package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a recipe document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension; anything that is
// not .toml is read as YAML
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadDocument reads and decodes a recipe document
func LoadDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read recipe file %s", path).
			WithDetail("path", path)
	}

	doc, err := ParseDocument(data, FormatFromPath(path))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// ParseDocument decodes a recipe document from data
func ParseDocument(data []byte, format Format) (*types.Document, error) {
	var tree interface{}

	switch format {
	case FormatTOML:
		var table map[string]interface{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid TOML")
		}
		tree = table
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid YAML")
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown document format %q", format)
	}

	return DecodeDocument(tree)
}
