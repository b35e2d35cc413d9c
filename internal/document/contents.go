package document

import (
	"errors"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Contents is the in-memory document: a mapping from string keys to
// JSON-compatible values (string, float64, bool, nil, map[string]any,
// []any) that remembers top-level insertion order across serialization
// round trips. Keys are case-sensitive.
type Contents struct {
	keys []string
	m    map[string]any
}

// NewContents returns an empty document.
func NewContents() *Contents {
	return &Contents{m: make(map[string]any)}
}

// FromMap builds Contents from a plain map. Go maps have no order, so
// keys are sorted to keep the initial serialization deterministic.
func FromMap(m map[string]any) *Contents {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	c := NewContents()
	for _, k := range keys {
		c.Set(k, m[k])
	}
	return c
}

// Get returns the value stored under a top-level key.
func (c *Contents) Get(key string) (any, bool) {
	v, ok := c.m[key]
	return v, ok
}

// Has reports whether the top-level key exists.
func (c *Contents) Has(key string) bool {
	_, ok := c.m[key]
	return ok
}

// Set stores a value under a top-level key, appending new keys to the
// key order.
func (c *Contents) Set(key string, value any) {
	if _, ok := c.m[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.m[key] = value
}

// Delete removes a top-level key. Reports whether the key was present.
func (c *Contents) Delete(key string) bool {
	if _, ok := c.m[key]; !ok {
		return false
	}
	delete(c.m, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the top-level keys in document order.
func (c *Contents) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of top-level keys.
func (c *Contents) Len() int {
	return len(c.m)
}

// ToMap returns a deep copy of the document as plain nested maps.
func (c *Contents) ToMap() map[string]any {
	out := make(map[string]any, len(c.m))
	for k, v := range c.m {
		out[k] = deepCopyValue(v)
	}
	return out
}

// Clone returns a deep copy preserving key order.
func (c *Contents) Clone() *Contents {
	out := NewContents()
	for _, k := range c.keys {
		out.Set(k, deepCopyValue(c.m[k]))
	}
	return out
}

// MarshalJSON serializes the document with keys in document order.
func (c *Contents) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, k := range c.keys {
		out, err = sjson.SetBytes(out, escapeKey(k), c.m[k])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalJSON parses a JSON object, recording top-level key order.
func (c *Contents) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return errors.New("document root must be a JSON object")
	}
	c.keys = nil
	c.m = make(map[string]any)
	root.ForEach(func(key, value gjson.Result) bool {
		c.Set(key.String(), value.Value())
		return true
	})
	return nil
}

// escapeKey protects a literal key from sjson path syntax, where dots and
// wildcards carry meaning.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// deepCopyValue copies nested maps and slices; scalars are returned as-is.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, sv := range t {
			out[k] = deepCopyValue(sv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, sv := range t {
			out[i] = deepCopyValue(sv)
		}
		return out
	default:
		return v
	}
}
