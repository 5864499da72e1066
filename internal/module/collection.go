package module

import (
	"iter"
	"slices"
	"sort"
	"strings"
)

// NameSet is a set of module names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names, ignoring empty strings.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Has reports whether name is in the set. A nil set contains nothing.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set containing the names of s and other.
func (s NameSet) Union(other NameSet) NameSet {
	out := make(NameSet, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Sorted returns the names in lexical order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Collection is an ordered sequence of modules with unique names.
type Collection struct {
	modules []*Module
	index   map[string]int
}

func newCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// add appends m unless a module with the same name is already present.
func (c *Collection) add(m *Module) {
	if _, dup := c.index[m.Name()]; dup {
		return
	}
	c.index[m.Name()] = len(c.modules)
	c.modules = append(c.modules, m)
}

// FromPaths builds one module per path in input order. When two paths
// resolve to the same name the first one wins.
func FromPaths(paths []string) (*Collection, error) {
	c := newCollection()
	for _, p := range paths {
		m, err := New(p)
		if err != nil {
			return nil, err
		}
		c.add(m)
	}
	return c, nil
}

// FromFilter keeps the universe entries whose name is in include (or include
// is empty) and not in exclude. Order follows the universe.
func FromFilter(universe []string, include, exclude NameSet) (*Collection, error) {
	c := newCollection()
	for _, p := range universe {
		m, err := New(p)
		if err != nil {
			return nil, err
		}
		if len(include) > 0 && !include.Has(m.Name()) {
			continue
		}
		if exclude.Has(m.Name()) {
			continue
		}
		c.add(m)
	}
	return c, nil
}

// Compare splits against other. Matched holds members of c whose name also
// appears in other; mismatched holds members of other whose name is absent
// from c. With c as the known universe, mismatched is what was asked for but
// does not exist.
func (c *Collection) Compare(other *Collection) (matched, mismatched *Collection) {
	matched, mismatched = newCollection(), newCollection()
	for m := range c.All() {
		if other.Contains(m.Name()) {
			matched.add(m)
		}
	}
	for m := range other.All() {
		if !c.Contains(m.Name()) {
			mismatched.add(m)
		}
	}
	return matched, mismatched
}

// IsEmpty reports whether the collection has no members.
func (c *Collection) IsEmpty() bool {
	return c == nil || len(c.modules) == 0
}

// Len returns the number of members.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.modules)
}

// Contains reports whether a module with the given name is a member.
func (c *Collection) Contains(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[name]
	return ok
}

// Get returns the member with the given name.
func (c *Collection) Get(name string) (*Module, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.modules[i], true
}

// Names returns member names in collection order.
func (c *Collection) Names() []string {
	names := make([]string, 0, c.Len())
	for m := range c.All() {
		names = append(names, m.Name())
	}
	return names
}

// Modules returns a copy of the members in collection order.
func (c *Collection) Modules() []*Module {
	if c == nil {
		return nil
	}
	return slices.Clone(c.modules)
}

// All yields the members in collection order. The sequence can be ranged
// over any number of times.
func (c *Collection) All() iter.Seq[*Module] {
	return func(yield func(*Module) bool) {
		if c == nil {
			return
		}
		for _, m := range c.modules {
			if !yield(m) {
				return
			}
		}
	}
}

// MissingNames returns the names that are not members, sorted.
func (c *Collection) MissingNames(names NameSet) []string {
	var missing []string
	for _, n := range names.Sorted() {
		if !c.Contains(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// String lists the member names.
func (c *Collection) String() string {
	return "Collection(" + strings.Join(c.Names(), ", ") + ")"
}
