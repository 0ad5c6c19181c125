package validate

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment addresses one step into a decoded JSON document: either a
// map key or a slice index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key builds a segment addressing a map key.
func Key(k string) Segment { return Segment{key: k} }

// Index builds a segment addressing a slice index.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path is an ordered sequence of segments. The empty path addresses
// the document itself.
type Path []Segment

// Keys is shorthand for a path made of map keys only.
func Keys(keys ...string) Path {
	p := make(Path, len(keys))
	for i, k := range keys {
		p[i] = Key(k)
	}
	return p
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Resolve walks body one segment at a time and returns the addressed
// value. Absence (a missing key, an out-of-range index, or a
// non-container encountered mid-path) is an expected outcome and is
// reported via ok=false, never as an error. The body is not mutated.
func Resolve(body any, path Path) (any, bool) {
	current := body
	for _, seg := range path {
		switch c := current.(type) {
		case map[string]any:
			if seg.isIndex {
				return nil, false
			}
			v, ok := c[seg.key]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			if !seg.isIndex || seg.index < 0 || seg.index >= len(c) {
				return nil, false
			}
			current = c[seg.index]
		default:
			return nil, false
		}
	}
	return current, true
}

// setAt replaces the value addressed by a non-empty path. It assumes
// the path already resolved; a container that cannot be written at the
// final segment is a rule-configuration defect and fails loudly.
func setAt(body any, path Path, value any) error {
	parent, ok := Resolve(body, path[:len(path)-1])
	if !ok {
		return fmt.Errorf("validate: path %q no longer resolves", path)
	}
	last := path[len(path)-1]
	switch c := parent.(type) {
	case map[string]any:
		if last.isIndex {
			return fmt.Errorf("validate: rule path %q indexes into an object", path)
		}
		c[last.key] = value
	case []any:
		if !last.isIndex || last.index < 0 || last.index >= len(c) {
			return fmt.Errorf("validate: rule path %q does not address a writable slice element", path)
		}
		c[last.index] = value
	default:
		return fmt.Errorf("validate: rule path %q points into a non-container (%T)", path, parent)
	}
	return nil
}
