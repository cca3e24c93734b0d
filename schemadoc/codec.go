package schemadoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/shipyard"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatOf picks the format from the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	}
	return "", shipyard.NewArgumentError("path", fmt.Sprintf("unsupported schema document %q", path))
}

// Load reads the document at path in the format its extension names.
func Load(path string) (*Document, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	d, err := Decode(bytes.NewReader(data), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path in the format its extension names.
func Save(path string, d *Document) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, d, f); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Decode reads one document from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	var d Document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&d); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&d); err != nil {
			return nil, err
		}
	default:
		return nil, shipyard.NewArgumentError("format", fmt.Sprintf("unknown format %q", f))
	}
	return &d, nil
}

// Encode writes d to w.
func Encode(w io.Writer, d *Document, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(d)
	}
	return shipyard.NewArgumentError("format", fmt.Sprintf("unknown format %q", f))
}

// =============================================================================
// Shorthands
// =============================================================================

// StringList is a list of names that may be written as a single string.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = []string{one}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. A bare string names a column.
func (o *Output) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = Output{Column: node.Value}
		return nil
	}
	type plain Output
	return node.Decode((*plain)(o))
}

// UnmarshalJSON implements json.Unmarshaler. A bare string names a column.
func (o *Output) UnmarshalJSON(data []byte) error {
	var column string
	if err := json.Unmarshal(data, &column); err == nil {
		*o = Output{Column: column}
		return nil
	}
	type plain Output
	return json.Unmarshal(data, (*plain)(o))
}
