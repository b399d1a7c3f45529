package plan

import (
	"bytes"
	"os"
	"regexp"
	"strings"
)

// Frontmatter keys interpreted by the archiver. Every other key is kept as an
// opaque string.
const (
	KeyStatus             = "status"
	KeyQualityGatesPassed = "quality_gates_passed"
)

// StatusCompleted is the only status value that moves a plan to the archive.
const StatusCompleted = "completed"

// booleanKeys lists the keys whose values are coerced to booleans.
var booleanKeys = map[string]bool{
	KeyQualityGatesPassed: true,
}

var frontmatterBlock = regexp.MustCompile(`(?s)\A---\n(.*?)\n---`)

// ValueKind distinguishes the variants of a frontmatter Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
)

// Value is a single frontmatter value: either a trimmed string or, for the
// known boolean keys, a bool.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
}

// StringValue wraps s as a string Value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// BoolValue wraps b as a boolean Value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func (v Value) String() string {
	if v.Kind == KindBool {
		if v.Bool {
			return "true"
		}
		return "false"
	}
	return v.Str
}

// Frontmatter is the flat key/value header of a plan document. A key missing
// from the map is absent.
type Frontmatter map[string]Value

// Status returns the status attribute and whether it was present.
func (f Frontmatter) Status() (string, bool) {
	v, ok := f[KeyStatus]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// QualityGatesPassed reports the quality_gates_passed attribute, false when absent.
func (f Frontmatter) QualityGatesPassed() bool {
	v, ok := f[KeyQualityGatesPassed]
	return ok && v.Kind == KindBool && v.Bool
}

// ParseFrontmatter extracts the header block delimited by "---" lines at the
// start of content. It never fails: content without a header yields an empty
// Frontmatter.
func ParseFrontmatter(content []byte) Frontmatter {
	fm := Frontmatter{}

	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	match := frontmatterBlock.FindSubmatch(normalized)
	if match == nil {
		return fm
	}

	for _, line := range strings.Split(string(match[1]), "\n") {
		if !strings.Contains(line, ":") || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, value, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if booleanKeys[key] {
			fm[key] = BoolValue(parseBool(value))
			continue
		}
		fm[key] = StringValue(value)
	}

	return fm
}

// ReadFrontmatter reads path and parses its header. Read errors yield an
// empty Frontmatter.
func ReadFrontmatter(path string) Frontmatter {
	data, err := os.ReadFile(path)
	if err != nil {
		return Frontmatter{}
	}
	return ParseFrontmatter(data)
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}
