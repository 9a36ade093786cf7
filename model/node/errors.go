package node

import "fmt"

// TypeError is returned by Expect* accessors when a node's dynamic kind
// does not match the requested kind.
type TypeError struct {
	Expected Kind
	Actual   Kind
	Loc      SourceLocation
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	if e.Loc == None {
		return fmt.Sprintf("expected %s node, found %s", e.Expected, e.Actual)
	}
	return fmt.Sprintf("expected %s node, found %s (%s)", e.Expected, e.Actual, e.Loc)
}

func mismatch(expected Kind, n Node) *TypeError {
	return &TypeError{Expected: expected, Actual: n.Kind(), Loc: n.Source()}
}

// ExpectObject returns n as an object node or a TypeError.
func ExpectObject(n Node) (*ObjectNode, error) {
	if o, ok := n.(*ObjectNode); ok {
		return o, nil
	}
	return nil, mismatch(KindObject, n)
}

// ExpectArray returns n as an array node or a TypeError.
func ExpectArray(n Node) (*ArrayNode, error) {
	if a, ok := n.(*ArrayNode); ok {
		return a, nil
	}
	return nil, mismatch(KindArray, n)
}

// ExpectString returns n as a string node or a TypeError.
func ExpectString(n Node) (*StringNode, error) {
	if s, ok := n.(*StringNode); ok {
		return s, nil
	}
	return nil, mismatch(KindString, n)
}

// ExpectNumber returns n as a number node or a TypeError.
func ExpectNumber(n Node) (*NumberNode, error) {
	if num, ok := n.(*NumberNode); ok {
		return num, nil
	}
	return nil, mismatch(KindNumber, n)
}

// ExpectBoolean returns n as a boolean node or a TypeError.
func ExpectBoolean(n Node) (*BooleanNode, error) {
	if b, ok := n.(*BooleanNode); ok {
		return b, nil
	}
	return nil, mismatch(KindBoolean, n)
}

// AsString returns the string value of n and whether n is a string node.
func AsString(n Node) (string, bool) {
	s, ok := n.(*StringNode)
	if !ok {
		return "", false
	}
	return s.Value, true
}

// AsObject returns n as an object node and whether n is one.
func AsObject(n Node) (*ObjectNode, bool) {
	o, ok := n.(*ObjectNode)
	return o, ok
}

// IsNull reports whether n is the null node.
func IsNull(n Node) bool {
	_, ok := n.(*NullNode)
	return ok
}
