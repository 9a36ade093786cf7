package model

import (
	"iter"
	"sort"

	"github.com/seam-lang/seam/model/node"
)

// Trait is typed metadata attached to a shape: the shape id of the trait
// definition paired with a node value. Traits are immutable once attached.
type Trait struct {
	ID    ShapeId
	Value node.Node
	Loc   node.SourceLocation
}

// NewTrait returns a trait with the given definition id and value. A nil
// value is normalized to the null node, the representation used by
// annotation traits.
func NewTrait(id ShapeId, value node.Node) Trait {
	if value == nil {
		value = node.Null()
	}
	return Trait{ID: id, Value: value}
}

// Equal reports whether two traits have the same definition id and a
// structurally equal value. Source locations are ignored.
func (t Trait) Equal(other Trait) bool {
	return t.ID == other.ID && node.Equal(t.Value, other.Value)
}

// Traits is the set of traits attached to one shape, keyed by trait
// definition id. At most one trait per id. The zero value is an empty set.
type Traits struct {
	byID map[ShapeId]Trait
}

// NewTraits builds a trait set, rejecting duplicate trait ids.
func NewTraits(traits []Trait) (Traits, error) {
	if len(traits) == 0 {
		return Traits{}, nil
	}
	byID := make(map[ShapeId]Trait, len(traits))
	for _, t := range traits {
		if _, dup := byID[t.ID]; dup {
			return Traits{}, &DuplicateTraitError{Trait: t.ID}
		}
		byID[t.ID] = t
	}
	return Traits{byID: byID}, nil
}

// Len returns the number of attached traits.
func (ts Traits) Len() int { return len(ts.byID) }

// Get returns the trait with the given definition id, if attached.
func (ts Traits) Get(id ShapeId) (Trait, bool) {
	t, ok := ts.byID[id]
	return t, ok
}

// Has reports whether a trait with the given definition id is attached.
func (ts Traits) Has(id ShapeId) bool {
	_, ok := ts.byID[id]
	return ok
}

// All iterates traits sorted by definition id, so iteration is stable.
func (ts Traits) All() iter.Seq[Trait] {
	return func(yield func(Trait) bool) {
		ids := make([]ShapeId, 0, len(ts.byID))
		for id := range ts.byID {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })
		for _, id := range ids {
			if !yield(ts.byID[id]) {
				return
			}
		}
	}
}

// Equal reports whether two trait sets contain equal traits for the same
// ids, independent of attachment order.
func (ts Traits) Equal(other Traits) bool {
	if len(ts.byID) != len(other.byID) {
		return false
	}
	for id, t := range ts.byID {
		o, ok := other.byID[id]
		if !ok || !t.Equal(o) {
			return false
		}
	}
	return true
}
