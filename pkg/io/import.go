package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/matzehuels/nestedheaders/pkg/errors"
)

// Format names accepted by [Import] and [Export].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFromPath returns the definition format implied by the extension of path.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported definition file extension %q (use .json, .toml, .yaml or .yml)", ext)
	}
}

// ReadJSON decodes and validates a JSON definition from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Definition, error) {
	var def Definition
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return def, def.Validate()
}

// ReadTOML decodes and validates a TOML definition from r.
func ReadTOML(r io.Reader) (Definition, error) {
	var def Definition
	if _, err := toml.NewDecoder(r).Decode(&def); err != nil {
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	return def, def.Validate()
}

// ReadYAML decodes and validates a YAML definition from r.
func ReadYAML(r io.Reader) (Definition, error) {
	var def Definition
	data, err := io.ReadAll(r)
	if err != nil {
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read yaml")
	}
	if err := yaml.UnmarshalStrict(data, &def); err != nil {
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return def, def.Validate()
}

// Read decodes a definition of the given format from r.
func Read(r io.Reader, format string) (Definition, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return Definition{}, errors.New(errors.ErrCodeUnsupported, "unsupported definition format %q", format)
	}
}

// Import reads the definition file at path, choosing the decoder from its
// extension.
func Import(path string) (Definition, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Definition{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Definition{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Definition{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Definition{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	return Read(f, format)
}
