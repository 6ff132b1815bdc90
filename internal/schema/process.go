package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/model"
)

// ErrFileNotFound is returned when the input file does not exist.
var ErrFileNotFound = errors.New("input file not found")

// ErrInvalidEncoding is returned when the input is not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// ReadFile reads a JSON document from path.
// A leading UTF-8 or UTF-16 byte order mark is removed, and UTF-16 input is
// converted to UTF-8.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Input path comes from the command line
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if !utf8.Valid(text) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}
	return text, nil
}

// Load reads and decodes the JSON document at path.
func Load(path string) (Value, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Process extracts the schema of opts.Input and writes it to opts.Output.
//
// A missing input yields ErrFileNotFound and malformed JSON yields ErrDecode.
// The schema is fully encoded before the output file is touched, so no
// output is written on any failure. The parent directory of the output is
// created when missing.
func Process(opts config.SchemaOptions) error {
	v, err := Load(opts.Input)
	if err != nil {
		return err
	}

	data, err := Marshal(Extract(v), opts.Format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil { //nolint:gosec // Schema files are project artifacts
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}

// Status classifies an error returned by Process.
func Status(err error) model.RunStatus {
	switch {
	case err == nil:
		return model.RunSuccess
	case errors.Is(err, ErrFileNotFound):
		return model.RunNotFound
	case errors.Is(err, ErrDecode):
		return model.RunDecodeError
	default:
		return model.RunFailed
	}
}
