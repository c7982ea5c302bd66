package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Issue describes one location in an upstream payload that did not match the expected shape.
type Issue struct {
	Path     string // dotted path, e.g. "[2].acf.price"; empty for the document root
	Expected string
	Got      string
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s: expected %s, got %s", path, i.Expected, i.Got)
}

// ValidationError enumerates every shape violation found in a payload.
type ValidationError struct {
	Kind   Kind
	Issues []Issue
}

const maxIssuesInMessage = 5

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "content: invalid payload"
	}
	parts := make([]string, 0, maxIssuesInMessage)
	for i, issue := range e.Issues {
		if i == maxIssuesInMessage {
			parts = append(parts, fmt.Sprintf("and %d more", len(e.Issues)-maxIssuesInMessage))
			break
		}
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("content: invalid %s payload (%d issues): %s", e.Kind, len(e.Issues), strings.Join(parts, "; "))
}

// Paths returns the offending paths in report order.
func (e *ValidationError) Paths() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		out[i] = issue.Path
	}
	return out
}

// value is a decoded JSON node together with its location in the document.
type value struct {
	path    string
	raw     any
	present bool
}

func (v value) isNull() bool { return v.present && v.raw == nil }

func (v value) get(key string) value {
	m, ok := v.raw.(map[string]any)
	if !ok {
		return value{path: joinPath(v.path, key)}
	}
	raw, present := m[key]
	return value{path: joinPath(v.path, key), raw: raw, present: present}
}

func (v value) index(i int) value {
	items, _ := v.raw.([]any)
	if i < 0 || i >= len(items) {
		return value{path: fmt.Sprintf("%s[%d]", v.path, i)}
	}
	return value{path: fmt.Sprintf("%s[%d]", v.path, i), raw: items[i], present: true}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// checker accumulates issues while typed records are read out of decoded JSON.
// Reads never fail; mismatches are recorded and the zero value is returned.
type checker struct {
	issues []Issue
}

func (c *checker) fail(v value, expected string) {
	c.issues = append(c.issues, Issue{Path: v.path, Expected: expected, Got: describe(v)})
}

func (c *checker) object(v value) (map[string]any, bool) {
	m, ok := v.raw.(map[string]any)
	if !ok {
		c.fail(v, "object")
		return nil, false
	}
	return m, true
}

func (c *checker) array(v value) ([]any, bool) {
	items, ok := v.raw.([]any)
	if !ok {
		c.fail(v, "array")
		return nil, false
	}
	return items, true
}

func (c *checker) str(v value) string {
	s, ok := v.raw.(string)
	if !ok {
		c.fail(v, "string")
		return ""
	}
	return s
}

func (c *checker) optStr(v value) string {
	if !v.present {
		return ""
	}
	return c.str(v)
}

func (c *checker) number(v value) float64 {
	n, ok := v.raw.(json.Number)
	if !ok {
		c.fail(v, "number")
		return 0
	}
	f, err := n.Float64()
	if err != nil {
		c.fail(v, "number")
		return 0
	}
	return f
}

func (c *checker) integer(v value) int64 {
	n, ok := v.raw.(json.Number)
	if !ok {
		c.fail(v, "integer")
		return 0
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		c.fail(v, "integer")
		return 0
	}
	return i
}

func (c *checker) optBool(v value) bool {
	if !v.present {
		return false
	}
	b, ok := v.raw.(bool)
	if !ok {
		c.fail(v, "boolean")
		return false
	}
	return b
}

func (c *checker) rendered(v value) Rendered {
	if _, ok := c.object(v); !ok {
		return Rendered{}
	}
	return Rendered{Rendered: c.str(v.get("rendered"))}
}

func (c *checker) stringList(v value) []string {
	items, ok := c.array(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i := range items {
		out = append(out, c.str(v.index(i)))
	}
	return out
}

// describe renders the actual value found at v for an issue report.
func describe(v value) string {
	if !v.present {
		return "undefined"
	}
	switch t := v.raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean " + strconv.FormatBool(t)
	case json.Number:
		return "number " + t.String()
	case string:
		if len(t) > 40 {
			t = t[:40] + "…"
		}
		return "string " + strconv.Quote(t)
	case []any:
		return fmt.Sprintf("array(%d)", len(t))
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// decode parses a JSON document keeping numbers exact.
func decode(data []byte) (value, []Issue) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return value{}, []Issue{{Expected: "JSON document", Got: err.Error()}}
	}
	if dec.More() {
		return value{}, []Issue{{Expected: "single JSON document", Got: "trailing data"}}
	}
	return value{raw: raw, present: true}, nil
}
