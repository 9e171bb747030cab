// Package codec encodes and decodes history stacks as JSON, YAML or TOML.
//
// The encoded document has two fields, current and history. With
// Options.OmitHistory only current is written; the stack in memory keeps
// its history either way.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/revertable/history"
)

// Errors returned by codec operations.
var (
	// ErrUnknownFormat indicates a format name that is not supported.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrNilStack indicates a decode target was nil.
	ErrNilStack = errors.New("nil stack")
)

// Format selects the document syntax.
type Format int

const (
	// JSON encodes with encoding/json.
	JSON Format = iota
	// YAML encodes with gopkg.in/yaml.v3.
	YAML
	// TOML encodes with go-toml.
	TOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name. Matching is case-insensitive and
// accepts "yml" for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options configures encoding.
type Options struct {
	// Format is the document syntax. Defaults to JSON.
	Format Format

	// OmitHistory drops the history field from encoded output.
	OmitHistory bool

	// Indent pretty-prints JSON output with the given indent string.
	Indent string
}

// currentOnly is the encoded shape when history is omitted.
type currentOnly[T any] struct {
	Current T `json:"current" yaml:"current" toml:"current"`
}

// Marshal encodes s according to opts.
func Marshal[T any](s *history.Stack[T], opts Options) ([]byte, error) {
	rec := s.Record()
	if opts.OmitHistory {
		return encode(currentOnly[T]{Current: rec.Current}, opts)
	}
	return encode(rec, opts)
}

// Write encodes s to w.
func Write[T any](w io.Writer, s *history.Stack[T], opts Options) error {
	data, err := Marshal(s, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", opts.Format, err)
	}
	return nil
}

// Unmarshal decodes data into s, replacing its current value and history.
// Documents without a history field leave s with no pending snapshots.
// On error s is unchanged.
func Unmarshal[T any](data []byte, s *history.Stack[T], format Format) error {
	if s == nil {
		return ErrNilStack
	}

	var rec history.Record[T]
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(data, &rec)
	case YAML:
		err = yaml.Unmarshal(data, &rec)
	case TOML:
		err = toml.Unmarshal(data, &rec)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", format, err)
	}

	s.Restore(rec)
	return nil
}

// Read decodes a document from r into s.
func Read[T any](r io.Reader, s *history.Stack[T], format Format) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", format, err)
	}
	return Unmarshal(data, s, format)
}

func encode(v any, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case JSON:
		if opts.Indent != "" {
			data, err = json.MarshalIndent(v, "", opts.Indent)
		} else {
			data, err = json.Marshal(v)
		}
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	case TOML:
		data, err = toml.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(opts.Format))
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	return data, nil
}
