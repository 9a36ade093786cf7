// Package diff computes the structural differences between two models:
// added, removed, and changed shapes and metadata. Detection runs once at
// construction; all query surfaces are pure, restartable projections.
package diff

import (
	"iter"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// ChangedShape pairs the old and new versions of a shape that share a
// shape id but are structurally unequal.
type ChangedShape struct {
	Old model.Shape
	New model.Shape
}

// ID returns the shared shape id.
func (c *ChangedShape) ID() model.ShapeId { return c.Old.ID() }

// ChangedTrait records a trait present on both sides of a changed shape
// with unequal values.
type ChangedTrait struct {
	Trait model.ShapeId
	Old   node.Node
	New   node.Node
}

// AddedTraits iterates traits attached to the new shape but not the old.
func (c *ChangedShape) AddedTraits() iter.Seq[model.Trait] {
	return func(yield func(model.Trait) bool) {
		for t := range c.New.Traits().All() {
			if !c.Old.Traits().Has(t.ID) {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// RemovedTraits iterates traits attached to the old shape but not the new.
func (c *ChangedShape) RemovedTraits() iter.Seq[model.Trait] {
	return func(yield func(model.Trait) bool) {
		for t := range c.Old.Traits().All() {
			if !c.New.Traits().Has(t.ID) {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// ChangedTraits iterates traits present on both sides with unequal values.
func (c *ChangedShape) ChangedTraits() iter.Seq[ChangedTrait] {
	return func(yield func(ChangedTrait) bool) {
		for t := range c.Old.Traits().All() {
			updated, ok := c.New.Traits().Get(t.ID)
			if !ok || t.Equal(updated) {
				continue
			}
			if !yield(ChangedTrait{Trait: t.ID, Old: t.Value, New: updated.Value}) {
				return
			}
		}
	}
}

// ChangedMember pairs the old and new versions of a named member of a
// changed aggregate shape.
type ChangedMember struct {
	Old *model.MemberShape
	New *model.MemberShape
}

// AddedMembers iterates members present in the new shape but not the old,
// by member name. Both sides must be member-bearing kinds for anything to
// be produced.
func (c *ChangedShape) AddedMembers() iter.Seq[*model.MemberShape] {
	return func(yield func(*model.MemberShape) bool) {
		oldMembers := shapeMembers(c.Old)
		for name, m := range shapeMembers(c.New) {
			if _, ok := oldMembers[name]; !ok {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// RemovedMembers iterates members present in the old shape but not the new.
func (c *ChangedShape) RemovedMembers() iter.Seq[*model.MemberShape] {
	return func(yield func(*model.MemberShape) bool) {
		newMembers := shapeMembers(c.New)
		for name, m := range shapeMembers(c.Old) {
			if _, ok := newMembers[name]; !ok {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// ChangedMembers iterates members present on both sides, by name, that are
// structurally unequal.
func (c *ChangedShape) ChangedMembers() iter.Seq[ChangedMember] {
	return func(yield func(ChangedMember) bool) {
		newMembers := shapeMembers(c.New)
		for name, m := range shapeMembers(c.Old) {
			updated, ok := newMembers[name]
			if !ok || model.ShapesEqual(m, updated) {
				continue
			}
			if !yield(ChangedMember{Old: m, New: updated}) {
				return
			}
		}
	}
}

func shapeMembers(s model.Shape) map[string]*model.MemberShape {
	out := map[string]*model.MemberShape{}
	switch v := s.(type) {
	case *model.ListShape:
		out["member"] = v.Member()
	case *model.SetShape:
		out["member"] = v.Member()
	case *model.MapShape:
		out["key"] = v.Key()
		out["value"] = v.Value()
	case *model.StructureShape:
		for m := range v.Members() {
			out[m.MemberName()] = m
		}
	case *model.UnionShape:
		for m := range v.Members() {
			out[m.MemberName()] = m
		}
	}
	return out
}
