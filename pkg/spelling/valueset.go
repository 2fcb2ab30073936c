package spelling

import "sort"

// maxSetDepth bounds the number of layers a lookup may walk before a set is flattened
const maxSetDepth = 8

// valueSet is a persistent set of strings keyed by a Comparer. Adding values
// creates a new layer on top of the receiver, which is never modified, so
// older sets stay valid and share their storage with newer ones.
type valueSet struct {
	cmp    Comparer
	items  map[string]string // key -> first value added under that key
	parent *valueSet
	depth  int
	size   int
}

func newValueSet(cmp Comparer, values []string) *valueSet {
	s := &valueSet{cmp: cmp, items: make(map[string]string, len(values))}
	for _, v := range values {
		if v == "" {
			continue
		}
		k := cmp.Key(v)
		if _, ok := s.items[k]; !ok {
			s.items[k] = v
		}
	}
	s.size = len(s.items)
	return s
}

func (s *valueSet) lookup(key string) (string, bool) {
	for layer := s; layer != nil; layer = layer.parent {
		if v, ok := layer.items[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Contains reports whether value is in the set
func (s *valueSet) Contains(value string) bool {
	if s == nil || value == "" {
		return false
	}
	_, ok := s.lookup(s.cmp.Key(value))
	return ok
}

// Len returns the number of values
func (s *valueSet) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// With returns a set that also contains values. The receiver is unchanged.
func (s *valueSet) With(values ...string) *valueSet {
	added := make(map[string]string)
	for _, v := range values {
		if v == "" {
			continue
		}
		k := s.cmp.Key(v)
		if _, ok := s.lookup(k); ok {
			continue
		}
		if _, ok := added[k]; !ok {
			added[k] = v
		}
	}

	if len(added) == 0 {
		return s
	}

	next := &valueSet{
		cmp:    s.cmp,
		items:  added,
		parent: s,
		depth:  s.depth + 1,
		size:   s.size + len(added),
	}

	if next.depth > maxSetDepth {
		return newValueSet(s.cmp, next.Values())
	}

	return next
}

// Each calls fn for every value until fn returns false
func (s *valueSet) Each(fn func(value string) bool) {
	if s == nil {
		return
	}
	for layer := s; layer != nil; layer = layer.parent {
		for _, v := range layer.items {
			if !fn(v) {
				return
			}
		}
	}
}

// Values returns the values sorted by key, then ordinally
func (s *valueSet) Values() []string {
	if s == nil {
		return nil
	}
	values := make([]string, 0, s.Len())
	s.Each(func(v string) bool {
		values = append(values, v)
		return true
	})
	sortValues(values, s.cmp)
	return values
}

func sortValues(values []string, cmp Comparer) {
	keyed := make([][2]string, len(values))
	for i, v := range values {
		keyed[i] = [2]string{cmp.Key(v), v}
	}

	sort.Slice(keyed, func(i, j int) bool {
		if keyed[i][0] != keyed[j][0] {
			return keyed[i][0] < keyed[j][0]
		}
		return keyed[i][1] < keyed[j][1]
	})

	for i := range keyed {
		values[i] = keyed[i][1]
	}
}
