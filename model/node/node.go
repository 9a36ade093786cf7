// Package node defines the dynamically typed value model used to carry
// trait values and model metadata. A Node is one of null, boolean, number,
// string, array, or object. Nodes are immutable after construction and
// safe to share across goroutines.
package node

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies the dynamic type of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SourceLocation tracks where a value came from in a source document.
// It is carried for diagnostics only and is excluded from equality.
type SourceLocation struct {
	File   string
	Line   int // 1-indexed
	Column int // 1-indexed
}

// None is the zero SourceLocation, used for programmatically built values.
var None = SourceLocation{}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Node is a value in the model's dynamic value tree.
type Node interface {
	Kind() Kind
	Source() SourceLocation
	node()
}

// NullNode is the null value.
type NullNode struct {
	Loc SourceLocation
}

// BooleanNode wraps a bool.
type BooleanNode struct {
	Value bool
	Loc   SourceLocation
}

// NumberNode wraps either an int64 or an arbitrary-precision decimal.
// Integer and decimal representations of the same numeric value compare
// equal.
type NumberNode struct {
	isInt bool
	i     int64
	dec   *apd.Decimal
	Loc   SourceLocation
}

// StringNode wraps a string.
type StringNode struct {
	Value string
	Loc   SourceLocation
}

// ArrayNode is an ordered sequence of nodes.
type ArrayNode struct {
	elements []Node
	Loc      SourceLocation
}

// ObjectNode is a string-keyed mapping of nodes. Keys are unique.
// Insertion order is preserved for serialization but does not participate
// in equality.
type ObjectNode struct {
	keys    []string
	entries map[string]Node
	Loc     SourceLocation
}

func (*NullNode) node()    {}
func (*BooleanNode) node() {}
func (*NumberNode) node()  {}
func (*StringNode) node()  {}
func (*ArrayNode) node()   {}
func (*ObjectNode) node()  {}

// Kind returns KindNull.
func (*NullNode) Kind() Kind { return KindNull }

// Kind returns KindBoolean.
func (*BooleanNode) Kind() Kind { return KindBoolean }

// Kind returns KindNumber.
func (*NumberNode) Kind() Kind { return KindNumber }

// Kind returns KindString.
func (*StringNode) Kind() Kind { return KindString }

// Kind returns KindArray.
func (*ArrayNode) Kind() Kind { return KindArray }

// Kind returns KindObject.
func (*ObjectNode) Kind() Kind { return KindObject }

func (n *NullNode) Source() SourceLocation    { return n.Loc }
func (n *BooleanNode) Source() SourceLocation { return n.Loc }
func (n *NumberNode) Source() SourceLocation  { return n.Loc }
func (n *StringNode) Source() SourceLocation  { return n.Loc }
func (n *ArrayNode) Source() SourceLocation   { return n.Loc }
func (n *ObjectNode) Source() SourceLocation  { return n.Loc }

// Null returns the null value.
func Null() *NullNode { return &NullNode{} }

// Bool returns a boolean node.
func Bool(v bool) *BooleanNode { return &BooleanNode{Value: v} }

// Int returns an integer number node.
func Int(v int64) *NumberNode { return &NumberNode{isInt: true, i: v} }

// Decimal returns a decimal number node. The decimal is not copied; the
// caller must not mutate it afterwards.
func Decimal(d *apd.Decimal) *NumberNode { return &NumberNode{dec: d} }

// ParseNumber parses a numeric literal into a number node, preferring the
// integer representation when the literal is integral and fits in an int64.
func ParseNumber(s string) (*NumberNode, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number literal %q: %w", s, err)
	}
	return Decimal(d), nil
}

// String returns a string node.
func String(v string) *StringNode { return &StringNode{Value: v} }

// Array returns an array node over the given elements. The slice is not
// copied; the caller must not mutate it afterwards.
func Array(elements ...Node) *ArrayNode { return &ArrayNode{elements: elements} }

// Object returns an empty object node.
func Object() *ObjectNode {
	return &ObjectNode{entries: map[string]Node{}}
}

// IsInt reports whether the number is held as an integer.
func (n *NumberNode) IsInt() bool { return n.isInt }

// Int returns the value as an int64 and whether it is exactly representable
// as one.
func (n *NumberNode) Int() (int64, bool) {
	if n.isInt {
		return n.i, true
	}
	i, err := n.dec.Int64()
	return i, err == nil
}

// Decimal returns the value as an arbitrary-precision decimal. The result
// must not be mutated.
func (n *NumberNode) Decimal() *apd.Decimal {
	if n.isInt {
		return apd.New(n.i, 0)
	}
	return n.dec
}

// Float returns the value as a float64, possibly losing precision.
func (n *NumberNode) Float() float64 {
	if n.isInt {
		return float64(n.i)
	}
	f, _ := n.dec.Float64()
	return f
}

// canonical renders the number so that equal values render identically,
// e.g. both Int(5) and Decimal("5.00") render as "5".
func (n *NumberNode) canonical() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	var d apd.Decimal
	d.Reduce(n.dec)
	return d.Text('f')
}

// Len returns the number of elements.
func (a *ArrayNode) Len() int { return len(a.elements) }

// Get returns the element at index i.
func (a *ArrayNode) Get(i int) Node { return a.elements[i] }

// Elements iterates the array in order.
func (a *ArrayNode) Elements() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, e := range a.elements {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of entries.
func (o *ObjectNode) Len() int { return len(o.keys) }

// Get returns the value for key, if present.
func (o *ObjectNode) Get(key string) (Node, bool) {
	v, ok := o.entries[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated.
func (o *ObjectNode) Keys() []string { return o.keys }

// Entries iterates the object in insertion order.
func (o *ObjectNode) Entries() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range o.keys {
			if !yield(k, o.entries[k]) {
				return
			}
		}
	}
}

// With returns a copy of the object with key set to value. Setting an
// existing key replaces its value in place; new keys append.
func (o *ObjectNode) With(key string, value Node) *ObjectNode {
	next := &ObjectNode{
		keys:    make([]string, len(o.keys), len(o.keys)+1),
		entries: make(map[string]Node, len(o.entries)+1),
		Loc:     o.Loc,
	}
	copy(next.keys, o.keys)
	for k, v := range o.entries {
		next.entries[k] = v
	}
	if _, exists := next.entries[key]; !exists {
		next.keys = append(next.keys, key)
	}
	next.entries[key] = value
	return next
}

// StringMember returns the string value of a member, or an error if the
// member is absent or not a string.
func (o *ObjectNode) StringMember(key string) (string, error) {
	v, ok := o.Get(key)
	if !ok {
		return "", fmt.Errorf("missing required member %q", key)
	}
	s, err := ExpectString(v)
	if err != nil {
		return "", fmt.Errorf("member %q: %w", key, err)
	}
	return s.Value, nil
}

// BoolMemberOrDefault returns the boolean value of a member, or false when
// the member is absent or not a boolean.
func (o *ObjectNode) BoolMemberOrDefault(key string) bool {
	v, ok := o.Get(key)
	if !ok {
		return false
	}
	b, ok := v.(*BooleanNode)
	return ok && b.Value
}

// OptionalStringMember returns the string value of a member and whether it
// is present as a string.
func (o *ObjectNode) OptionalStringMember(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(*StringNode)
	if !ok {
		return "", false
	}
	return s.Value, true
}
