package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/matzehuels/nestedheaders/pkg/errors"
)

// WriteJSON encodes def as indented JSON.
func WriteJSON(def Definition, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(def); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// WriteTOML encodes def as TOML.
func WriteTOML(def Definition, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(def); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// WriteYAML encodes def as YAML.
func WriteYAML(def Definition, w io.Writer) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
	}
	_, err = w.Write(data)
	return err
}

// Write encodes def in the given format.
func Write(def Definition, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return WriteJSON(def, w)
	case FormatTOML:
		return WriteTOML(def, w)
	case FormatYAML:
		return WriteYAML(def, w)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported definition format %q", format)
	}
}

// Export writes def to path in the format implied by its extension.
func Export(def Definition, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return Write(def, format, f)
}
