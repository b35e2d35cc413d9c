// Package group provides a thin typed accessor over one named sub-object
// of a document, for alias-style lookups. A Group composes over a
// document.File rather than subclassing it; all persistence semantics
// (reconciling writes, locking) come from the underlying file.
package group

import (
	"context"
	"sort"

	"github.com/statekit-labs/statekit/internal/document"
)

// Group addresses the entries of one named object inside a document.
type Group struct {
	file *document.File
	name string
}

// New binds a group accessor to a named sub-object of the file.
func New(file *document.File, name string) *Group {
	return &Group{file: file, name: name}
}

// Name returns the group's key within the document.
func (g *Group) Name() string {
	return g.name
}

// File returns the underlying document file.
func (g *Group) File() *document.File {
	return g.file
}

// Get returns the entry value, reporting absence instead of failing.
func (g *Group) Get(key string) (any, bool) {
	return g.file.Get(g.name + "." + key)
}

// GetString returns the entry as a string; non-strings count as absent.
func (g *Group) GetString(key string) (string, bool) {
	v, ok := g.Get(key)
	if !ok {
		return "", false
	}
	s, isString := v.(string)
	return s, isString
}

// Set stores an entry in the group, creating the group object on demand.
func (g *Group) Set(key string, value any) {
	g.file.Set(g.name+"."+key, value)
}

// Unset removes an entry. Reports whether anything was removed.
func (g *Group) Unset(key string) bool {
	return g.file.Unset(g.name + "." + key)
}

// Keys returns the group's entry keys, sorted.
func (g *Group) Keys() []string {
	m := g.members()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns a copy of the group's entries.
func (g *Group) All() map[string]any {
	m := g.members()
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Write persists the underlying document.
func (g *Group) Write(ctx context.Context) error {
	_, err := g.file.Write(ctx)
	return err
}

func (g *Group) members() map[string]any {
	v, ok := g.file.Get(g.name)
	if !ok {
		return nil
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		return nil
	}
	return m
}
