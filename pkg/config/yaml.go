package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes the YAML file at path into v. Fields of v absent from
// the file keep their current values, so v may be prefilled with defaults.
// Unknown keys are rejected.
func LoadYAML[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}
	return DecodeYAML(raw, v)
}

// DecodeYAML is LoadYAML for in-memory documents.
func DecodeYAML[T any](raw []byte, v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrDecodingFile, fmt.Errorf("%T: %w", v, err))
	}
	return nil
}
