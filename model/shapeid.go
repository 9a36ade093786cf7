// Package model defines the in-memory schema graph: shape identifiers,
// shapes and their kinds, attached traits, the immutable shape graph, and
// the Model container that pairs a graph with global metadata.
package model

import (
	"fmt"
	"strings"
)

// ShapeId is a fully qualified shape identifier of the form
// "namespace#name" with an optional "$member" suffix. ShapeIds are
// immutable values, comparable, and totally ordered by namespace, then
// name, then member.
type ShapeId struct {
	namespace string
	name      string
	member    string
}

// ParseShapeId parses an absolute shape id string.
func ParseShapeId(s string) (ShapeId, error) {
	hash := strings.Index(s, "#")
	if hash <= 0 || hash == len(s)-1 {
		return ShapeId{}, fmt.Errorf("invalid shape id %q: expected \"namespace#name\"", s)
	}
	namespace := s[:hash]
	rest := s[hash+1:]
	name := rest
	member := ""
	if dollar := strings.Index(rest, "$"); dollar >= 0 {
		name = rest[:dollar]
		member = rest[dollar+1:]
		if name == "" || member == "" {
			return ShapeId{}, fmt.Errorf("invalid shape id %q: empty name or member", s)
		}
	}
	if strings.ContainsAny(name, "#$") || strings.ContainsAny(member, "#$") {
		return ShapeId{}, fmt.Errorf("invalid shape id %q", s)
	}
	return ShapeId{namespace: namespace, name: name, member: member}, nil
}

// MustParseShapeId parses an absolute shape id string and panics on error.
// Intended for trait id constants and tests.
func MustParseShapeId(s string) ShapeId {
	id, err := ParseShapeId(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewShapeId composes a shape id from a namespace and name.
func NewShapeId(namespace, name string) ShapeId {
	return ShapeId{namespace: namespace, name: name}
}

// Namespace returns the namespace component.
func (id ShapeId) Namespace() string { return id.namespace }

// Name returns the name component.
func (id ShapeId) Name() string { return id.name }

// Member returns the member component, or "" for non-member ids.
func (id ShapeId) Member() string { return id.member }

// HasMember reports whether the id addresses a member.
func (id ShapeId) HasMember() bool { return id.member != "" }

// WithMember returns the id of the named member of this shape.
func (id ShapeId) WithMember(name string) ShapeId {
	return ShapeId{namespace: id.namespace, name: id.name, member: name}
}

// WithoutMember returns the id of the containing shape.
func (id ShapeId) WithoutMember() ShapeId {
	return ShapeId{namespace: id.namespace, name: id.name}
}

// IsEmpty reports whether the id is the zero value, used to represent
// absent optional references.
func (id ShapeId) IsEmpty() bool { return id == ShapeId{} }

// Compare orders ids lexicographically by namespace, name, then member.
func (id ShapeId) Compare(other ShapeId) int {
	if c := strings.Compare(id.namespace, other.namespace); c != 0 {
		return c
	}
	if c := strings.Compare(id.name, other.name); c != 0 {
		return c
	}
	return strings.Compare(id.member, other.member)
}

// String renders the absolute id.
func (id ShapeId) String() string {
	if id.member != "" {
		return id.namespace + "#" + id.name + "$" + id.member
	}
	return id.namespace + "#" + id.name
}
