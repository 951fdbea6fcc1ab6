package pokemon

// Collection is an ordered, identity-unique sequence of Pokemon.
// The zero value is an empty collection. A Collection is never modified in
// place: Merge returns a new value and leaves the receiver untouched.
type Collection struct {
	items []Pokemon
	ids   map[int]struct{}
}

// NewCollection builds a collection from items, dropping repeated IDs.
func NewCollection(items ...Pokemon) Collection {
	return Collection{}.Merge(items)
}

// Len returns the number of Pokemon in the collection.
func (c Collection) Len() int {
	return len(c.items)
}

// Contains reports whether a Pokemon with the given ID is present.
func (c Collection) Contains(id int) bool {
	_, ok := c.ids[id]
	return ok
}

// Items returns a copy of the collection in insertion order.
func (c Collection) Items() []Pokemon {
	out := make([]Pokemon, len(c.items))
	copy(out, c.items)
	return out
}

// Merge appends every Pokemon whose ID is not already present, keeping the
// order of incoming. A repeated ID inside incoming keeps its first occurrence.
func (c Collection) Merge(incoming []Pokemon) Collection {
	next := Collection{
		items: make([]Pokemon, len(c.items), len(c.items)+len(incoming)),
		ids:   make(map[int]struct{}, len(c.items)+len(incoming)),
	}
	copy(next.items, c.items)
	for id := range c.ids {
		next.ids[id] = struct{}{}
	}

	for _, p := range incoming {
		if _, seen := next.ids[p.ID]; seen {
			continue
		}
		next.ids[p.ID] = struct{}{}
		next.items = append(next.items, p)
	}
	return next
}

// Filter returns the Pokemon whose name contains term, case-insensitively.
// An empty term returns the whole collection in order.
func (c Collection) Filter(term string) []Pokemon {
	if term == "" {
		return c.Items()
	}

	out := make([]Pokemon, 0, len(c.items))
	for i := range c.items {
		if c.items[i].matchesTerm(term) {
			out = append(out, c.items[i])
		}
	}
	return out
}
