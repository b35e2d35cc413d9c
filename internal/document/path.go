package document

import "strings"

// Dot-path helpers. A key like "foo.color" addresses a nested property;
// intermediate objects are created on demand by setPath and traversed
// (reporting absence) by getPath. A plain key without dots addresses a
// top-level entry directly, so keys containing no dots never allocate.

// getPath returns the value addressed by a dot-separated path, or false
// if any segment is absent or a non-object is encountered mid-path.
func getPath(c *Contents, path string) (any, bool) {
	segs := strings.Split(path, ".")
	cur, ok := c.Get(segs[0])
	if !ok {
		return nil, false
	}
	for _, seg := range segs[1:] {
		m, isMap := cur.(map[string]any)
		if !isMap {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath stores a value at a dot-separated path, creating intermediate
// objects as needed. A non-object intermediate is replaced by an object.
func setPath(c *Contents, path string, value any) {
	segs := strings.Split(path, ".")
	if len(segs) == 1 {
		c.Set(path, value)
		return
	}

	top, ok := c.Get(segs[0])
	m, isMap := top.(map[string]any)
	if !ok || !isMap {
		m = make(map[string]any)
		c.Set(segs[0], m)
	}

	for _, seg := range segs[1 : len(segs)-1] {
		next, exists := m[seg]
		nm, nextIsMap := next.(map[string]any)
		if !exists || !nextIsMap {
			nm = make(map[string]any)
			m[seg] = nm
		}
		m = nm
	}
	m[segs[len(segs)-1]] = value
}

// unsetPath removes the deepest property addressed by the path. Reports
// whether anything was removed; absent paths are a no-op.
func unsetPath(c *Contents, path string) bool {
	segs := strings.Split(path, ".")
	if len(segs) == 1 {
		return c.Delete(path)
	}

	cur, ok := c.Get(segs[0])
	if !ok {
		return false
	}
	for _, seg := range segs[1 : len(segs)-1] {
		m, isMap := cur.(map[string]any)
		if !isMap {
			return false
		}
		cur, ok = m[seg]
		if !ok {
			return false
		}
	}
	m, isMap := cur.(map[string]any)
	if !isMap {
		return false
	}
	last := segs[len(segs)-1]
	if _, ok := m[last]; !ok {
		return false
	}
	delete(m, last)
	return true
}
