package model

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for checklists.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name ("json", "yaml" or "yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", eris.Errorf("model: unsupported format %q", s)
}

// FormatFromPath infers a format from a file extension, falling back to def.
func FormatFromPath(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return def
}

// DecodeDocument reads exactly one document. Empty input yields an empty
// document; anything after the first document is an error.
func DecodeDocument(r io.Reader, f Format) (Document, error) {
	var dec interface{ Decode(any) error }
	switch f {
	case FormatJSON:
		dec = json.NewDecoder(r)
	case FormatYAML:
		dec = yaml.NewDecoder(r)
	default:
		return nil, eris.Errorf("model: unsupported format %q", f)
	}

	var doc Document
	err := dec.Decode(&doc)
	if errors.Is(err, io.EOF) {
		return Document{}, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "model: decode %s", f)
	}
	if err := ensureEOF(dec); err != nil {
		return nil, eris.Wrapf(err, "model: decode %s", f)
	}
	return doc, nil
}

// ErrTrailingData is returned when input holds more than one document.
var ErrTrailingData = errors.New("unexpected data after first document")

// ensureEOF fails unless dec has nothing left to decode.
func ensureEOF(dec interface{ Decode(any) error }) error {
	var extra any
	err := dec.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	return ErrTrailingData
}

// DecodeJSONBody decodes a single JSON value from r into v, rejecting
// trailing data.
func DecodeJSONBody(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return eris.Wrap(err, "model: decode json")
	}
	return eris.Wrap(ensureEOF(dec), "model: decode json")
}

// Decode reads a checklist, applying the same validation as
// ResearchScopesFromDocument.
func Decode(r io.Reader, f Format) (ResearchScopes, error) {
	doc, err := DecodeDocument(r, f)
	if err != nil {
		return ResearchScopes{}, err
	}
	return ResearchScopesFromDocument(doc)
}

// Encode writes v in the given format. Absent attributes are written as
// explicit nulls.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return eris.Wrap(enc.Encode(v), "model: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return eris.Wrap(err, "model: encode yaml")
		}
		return eris.Wrap(enc.Close(), "model: close yaml encoder")
	}
	return eris.Errorf("model: unsupported format %q", f)
}
