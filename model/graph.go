package model

import "iter"

// Graph is the immutable mapping of shape ids to shapes, including member
// shapes. It is built once by a GraphBuilder and never mutated; structural
// changes produce a new Graph.
type Graph struct {
	shapes map[ShapeId]Shape
}

// Get returns the shape with the given id. Absence is not an error.
func (g *Graph) Get(id ShapeId) (Shape, bool) {
	s, ok := g.shapes[id]
	return s, ok
}

// Len returns the number of shapes, members included.
func (g *Graph) Len() int { return len(g.shapes) }

// All iterates every shape, members included. The sequence is restartable
// and stable for a given graph instance but otherwise unordered.
func (g *Graph) All() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for _, s := range g.shapes {
			if !yield(s) {
				return
			}
		}
	}
}

// OfKind iterates the shapes of one kind.
func (g *Graph) OfKind(kind ShapeKind) iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for _, s := range g.shapes {
			if s.ShapeKind() == kind {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Services iterates every service shape.
func (g *Graph) Services() iter.Seq[*ServiceShape] {
	return typedShapes[*ServiceShape](g, KindService)
}

// Resources iterates every resource shape.
func (g *Graph) Resources() iter.Seq[*ResourceShape] {
	return typedShapes[*ResourceShape](g, KindResource)
}

// Operations iterates every operation shape.
func (g *Graph) Operations() iter.Seq[*OperationShape] {
	return typedShapes[*OperationShape](g, KindOperation)
}

// Service returns the service shape with the given id, if present with
// that kind.
func (g *Graph) Service(id ShapeId) (*ServiceShape, bool) {
	s, ok := g.shapes[id].(*ServiceShape)
	return s, ok
}

// Structure returns the structure shape with the given id, if present with
// that kind.
func (g *Graph) Structure(id ShapeId) (*StructureShape, bool) {
	s, ok := g.shapes[id].(*StructureShape)
	return s, ok
}

// Resource returns the resource shape with the given id, if present with
// that kind.
func (g *Graph) Resource(id ShapeId) (*ResourceShape, bool) {
	s, ok := g.shapes[id].(*ResourceShape)
	return s, ok
}

// Operation returns the operation shape with the given id, if present with
// that kind.
func (g *Graph) Operation(id ShapeId) (*OperationShape, bool) {
	s, ok := g.shapes[id].(*OperationShape)
	return s, ok
}

func typedShapes[T Shape](g *Graph, kind ShapeKind) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, s := range g.shapes {
			if s.ShapeKind() == kind {
				if !yield(s.(T)) {
					return
				}
			}
		}
	}
}

// GraphBuilder assembles a Graph, enforcing the unique-shape-id invariant
// at construction time. Aggregate members are indexed automatically when
// their container is added.
type GraphBuilder struct {
	shapes map[ShapeId]Shape
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{shapes: map[ShapeId]Shape{}}
}

// Add indexes the given shapes and, for aggregate kinds, their members.
// Adding a shape whose id is already present fails with a
// DuplicateShapeError.
func (b *GraphBuilder) Add(shapes ...Shape) error {
	for _, s := range shapes {
		if err := b.addOne(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *GraphBuilder) addOne(s Shape) error {
	if _, dup := b.shapes[s.ID()]; dup {
		return &DuplicateShapeError{ID: s.ID()}
	}
	b.shapes[s.ID()] = s

	var members []*MemberShape
	switch v := s.(type) {
	case *ListShape:
		members = []*MemberShape{v.Member()}
	case *SetShape:
		members = []*MemberShape{v.Member()}
	case *MapShape:
		members = []*MemberShape{v.Key(), v.Value()}
	case *StructureShape:
		for m := range v.Members() {
			members = append(members, m)
		}
	case *UnionShape:
		for m := range v.Members() {
			members = append(members, m)
		}
	}
	for _, m := range members {
		if _, dup := b.shapes[m.ID()]; dup {
			return &DuplicateShapeError{ID: m.ID()}
		}
		b.shapes[m.ID()] = m
	}
	return nil
}

// Build freezes the builder's contents into a Graph. The builder must not
// be reused afterwards.
func (b *GraphBuilder) Build() *Graph {
	g := &Graph{shapes: b.shapes}
	b.shapes = nil
	return g
}
