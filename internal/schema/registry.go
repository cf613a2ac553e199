// Package schema provides centralized JSON schema versioning and
// deterministic encoding for this front end's structured output: the
// error reports internal/errors produces, each carrying enough
// structure for a caller to act on without re-parsing prose.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrorV1 tags every Report this front end produces (internal/errors).
const ErrorV1 = "lambdalisten.error/v1"

// Version is a parsed schema tag of the form family/vMAJOR[.REVISION].
// Compatibility is decided on Family and Major alone: a reader built
// for one major version accepts any revision of it.
type Version struct {
	Family string
	Major  int
}

// ParseVersion splits a schema tag into its family and major version.
// ok is false for a tag with no version suffix at all, which a reader
// must treat as incompatible rather than guess at.
func ParseVersion(tag string) (Version, bool) {
	i := strings.LastIndexByte(tag, '/')
	if i <= 0 {
		return Version{}, false
	}
	family, v := tag[:i], tag[i+1:]
	if len(v) < 2 || v[0] != 'v' {
		return Version{}, false
	}
	majorStr, _, _ := strings.Cut(v[1:], ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Version{}, false
	}
	return Version{Family: family, Major: major}, true
}

// Accepts reports whether output tagged got can be consumed by a reader
// expecting want: both tags must parse, name the same family, and agree
// on the major version. Revisions within a major version are forward
// compatible (a v1 reader accepts v1.0, v1.1, ...).
func Accepts(got, want string) bool {
	g, ok := ParseVersion(got)
	if !ok {
		return false
	}
	w, ok := ParseVersion(want)
	if !ok {
		return false
	}
	return g.Family == w.Family && g.Major == w.Major
}

// MarshalDeterministic marshals v to JSON with every object's keys
// sorted, so two runs over equal data produce byte-identical output.
// Report.ToJSON (internal/errors) encodes through it, so the report
// bytes the CLI stores in internal/cache are the same on every run.
func MarshalDeterministic(v any) ([]byte, error) {
	raw, err := encodeNoEscape(v)
	if err != nil {
		return nil, fmt.Errorf("schema: initial marshal failed: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("schema: re-decode failed: %w", err)
	}
	if _, ok := decoded.(map[string]any); !ok {
		// Not an object at the top level (a bare string, number, or
		// array); nothing to sort.
		return raw, nil
	}

	var buf bytes.Buffer
	if err := writeSorted(&buf, decoded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeNoEscape is json.Marshal without HTML escaping and without the
// trailing newline json.Encoder appends.
func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// writeSorted renders v into buf, recursing through objects in sorted
// key order and arrays in place. Everything else re-encodes as a
// primitive.
func writeSorted(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := encodeNoEscape(k)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := writeSorted(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeSorted(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		itemJSON, err := encodeNoEscape(val)
		if err != nil {
			return err
		}
		buf.Write(itemJSON)
		return nil
	}
}

// MustValidate checks that v's "schema" field, if present, is accepted
// by wantSchema. A value with no "schema" field passes unconditionally;
// this only guards the one artifact this front end actually versions.
func MustValidate(wantSchema string, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	got, ok := m["schema"].(string)
	if !ok {
		return nil
	}
	if !Accepts(got, wantSchema) {
		return fmt.Errorf("schema: mismatch: got %q, want %q", got, wantSchema)
	}
	return nil
}

// CompactMode selects FormatJSON's output style; the REPL's :compact
// command toggles it for a downstream tool that wants to parse the
// output rather than a human reading a terminal.
var CompactMode = false

// SetCompactMode enables or disables compact JSON output.
func SetCompactMode(enabled bool) {
	CompactMode = enabled
}

// FormatJSON renders data as compact or pretty-printed JSON depending
// on CompactMode.
func FormatJSON(data []byte) ([]byte, error) {
	if CompactMode {
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
