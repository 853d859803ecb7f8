// Package workset holds the screen-scoped collections a user builds up while
// authoring an interview or a sale before anything is written to the store.
package workset

// OrderedSet keeps values in insertion order, unique by key.
type OrderedSet[K comparable, V any] struct {
	keyOf func(V) K
	items []V
	index map[K]int
}

func NewOrderedSet[K comparable, V any](keyOf func(V) K) *OrderedSet[K, V] {
	return &OrderedSet[K, V]{
		keyOf: keyOf,
		index: make(map[K]int),
	}
}

// Add appends v unless its key is already present. It reports whether v was added.
func (s *OrderedSet[K, V]) Add(v V) bool {
	k := s.keyOf(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Remove drops the entry with key k. Survivors keep their relative order.
func (s *OrderedSet[K, V]) Remove(k K) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.items); j++ {
		s.index[s.keyOf(s.items[j])] = j
	}
	return true
}

// Update replaces the value stored under k in place. Absent keys are ignored.
func (s *OrderedSet[K, V]) Update(k K, fn func(*V)) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	fn(&s.items[i])
	return true
}

func (s *OrderedSet[K, V]) Get(k K) (V, bool) {
	var zero V
	i, ok := s.index[k]
	if !ok {
		return zero, false
	}
	return s.items[i], true
}

func (s *OrderedSet[K, V]) Has(k K) bool {
	_, ok := s.index[k]
	return ok
}

// First returns the earliest inserted surviving value.
func (s *OrderedSet[K, V]) First() (V, bool) {
	var zero V
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[0], true
}

func (s *OrderedSet[K, V]) Len() int { return len(s.items) }

// Items returns a copy of the values in insertion order.
func (s *OrderedSet[K, V]) Items() []V {
	out := make([]V, len(s.items))
	copy(out, s.items)
	return out
}
