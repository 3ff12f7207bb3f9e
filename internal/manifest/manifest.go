// Package manifest edits package.json documents without disturbing the
// keys it does not touch.
//
// A Manifest is immutable: every edit returns a new value. Edits go through
// gjson/sjson on the raw document so key order and untouched values survive
// byte-for-byte; Bytes re-indents the result with two spaces.
package manifest

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	oerrors "github.com/carto/create/internal/errors"
)

// FileName is the manifest's file name at a project root.
const FileName = "package.json"

// DependencyBuckets are the top-level keys that map package names to
// version ranges.
var DependencyBuckets = []string{
	"dependencies",
	"devDependencies",
	"optionalDependencies",
	"peerDependencies",
}

var indent = &pretty.Options{Width: 0, Indent: "  "}

// Manifest is a parsed package.json.
type Manifest struct {
	raw []byte
}

// Parse validates data as a JSON object. location is only used in errors.
func Parse(data []byte, location string) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, oerrors.NewManifestParseError("invalid JSON", location)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, oerrors.NewManifestParseError("top-level value is not an object", location)
	}
	raw := make([]byte, len(data))
	copy(raw, data)
	return &Manifest{raw: raw}, nil
}

// RemoveDependencies deletes each name from every dependency bucket.
// Names that are not present are ignored.
func (m *Manifest) RemoveDependencies(names []string) (*Manifest, error) {
	out := m.raw
	for _, bucket := range DependencyBuckets {
		if !gjson.GetBytes(out, gjson.Escape(bucket)).IsObject() {
			continue
		}
		for _, name := range names {
			next, err := deleteAll(out, dependencyPath(bucket, name))
			if err != nil {
				return nil, oerrors.NewManifestParseError(err.Error(), bucket+"."+name)
			}
			out = next
		}
	}
	return &Manifest{raw: out}, nil
}

// RemoveFields deletes top-level fields. Absent fields are ignored.
func (m *Manifest) RemoveFields(fields []string) (*Manifest, error) {
	out := m.raw
	for _, field := range fields {
		next, err := deleteAll(out, gjson.Escape(field))
		if err != nil {
			return nil, oerrors.NewManifestParseError(err.Error(), field)
		}
		out = next
	}
	return &Manifest{raw: out}, nil
}

// WithName sets "name".
func (m *Manifest) WithName(name string) (*Manifest, error) {
	return m.set("name", name)
}

// WithPrivate sets "private".
func (m *Manifest) WithPrivate(private bool) (*Manifest, error) {
	return m.set("private", private)
}

// set assigns a top-level field. Duplicate keys are collapsed first so the
// assigned value is the one every JSON reader sees.
func (m *Manifest) set(field string, value interface{}) (*Manifest, error) {
	out := m.raw
	path := gjson.Escape(field)
	for occurrences(out, field) > 1 {
		next, err := sjson.DeleteBytes(out, path)
		if err != nil {
			return nil, oerrors.NewManifestParseError(err.Error(), field)
		}
		if bytes.Equal(next, out) {
			break
		}
		out = next
	}
	out, err := sjson.SetBytes(out, path, value)
	if err != nil {
		return nil, oerrors.NewManifestParseError(err.Error(), field)
	}
	return &Manifest{raw: out}, nil
}

// Bytes renders the manifest with two-space indentation and a trailing
// newline.
func (m *Manifest) Bytes() []byte {
	return pretty.PrettyOptions(m.raw, indent)
}

func dependencyPath(bucket, name string) string {
	return gjson.Escape(bucket) + "." + gjson.Escape(name)
}

// deleteAll removes every occurrence of path. sjson only deletes the first
// match, and a document may repeat a key.
func deleteAll(doc []byte, path string) ([]byte, error) {
	for gjson.GetBytes(doc, path).Exists() {
		next, err := sjson.DeleteBytes(doc, path)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(next, doc) {
			return nil, fmt.Errorf("cannot delete %s", path)
		}
		doc = next
	}
	return doc, nil
}

// occurrences counts the top-level keys named field.
func occurrences(doc []byte, field string) int {
	n := 0
	gjson.ParseBytes(doc).ForEach(func(key, _ gjson.Result) bool {
		if key.String() == field {
			n++
		}
		return true
	})
	return n
}

// DependsOn reports whether name is listed in one dependency bucket.
func (m *Manifest) DependsOn(bucket, name string) bool {
	return gjson.GetBytes(m.raw, dependencyPath(bucket, name)).Exists()
}
