// Package yamlutil decodes and encodes project configuration files.
// Decoding is always strict: a misspelled key in a project config is an
// error, not a silently ignored setting.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds a config document (1MB).
const MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeError is a YAML syntax or schema error. Its message quotes the
// offending source lines.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "yamlutil: " + yaml.FormatError(e.Err, false, true)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads at most MaxInputSize bytes from r and decodes them with
// UnmarshalStrict.
func Decode(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading: %w", err)
	}
	return UnmarshalStrict(data, v)
}

// UnmarshalStrict decodes data into v, rejecting unknown fields.
// Fields absent from data keep the values already in v.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// Marshal encodes v as block-style YAML with two-space indentation.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: encoding: %w", err)
	}
	return out, nil
}
