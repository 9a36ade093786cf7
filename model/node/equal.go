package node

import (
	"sort"
	"strconv"
	"strings"
)

// Equal reports structural equality of two nodes. Array equality is
// order-sensitive, object equality is order-insensitive, and source
// locations are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *NullNode:
		return true
	case *BooleanNode:
		return av.Value == b.(*BooleanNode).Value
	case *StringNode:
		return av.Value == b.(*StringNode).Value
	case *NumberNode:
		bv := b.(*NumberNode)
		if av.isInt && bv.isInt {
			return av.i == bv.i
		}
		return av.Decimal().Cmp(bv.Decimal()) == 0
	case *ArrayNode:
		bv := b.(*ArrayNode)
		if len(av.elements) != len(bv.elements) {
			return false
		}
		for i := range av.elements {
			if !Equal(av.elements[i], bv.elements[i]) {
				return false
			}
		}
		return true
	case *ObjectNode:
		bv := b.(*ObjectNode)
		if len(av.entries) != len(bv.entries) {
			return false
		}
		for k, v := range av.entries {
			other, ok := bv.entries[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// HashKey returns a canonical string encoding of n such that two nodes are
// Equal iff their hash keys match. The key is suitable for use as a Go map
// key when nodes must be deduplicated or counted.
func HashKey(n Node) string {
	var sb strings.Builder
	writeHashKey(&sb, n)
	return sb.String()
}

func writeHashKey(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *NullNode:
		sb.WriteString("z")
	case *BooleanNode:
		if v.Value {
			sb.WriteString("b1")
		} else {
			sb.WriteString("b0")
		}
	case *NumberNode:
		sb.WriteString("n")
		sb.WriteString(v.canonical())
	case *StringNode:
		sb.WriteString("s")
		sb.WriteString(strconv.Itoa(len(v.Value)))
		sb.WriteString(":")
		sb.WriteString(v.Value)
	case *ArrayNode:
		sb.WriteString("a[")
		for _, e := range v.elements {
			writeHashKey(sb, e)
			sb.WriteString(",")
		}
		sb.WriteString("]")
	case *ObjectNode:
		// Keys are sorted so insertion order does not leak into the key.
		sorted := make([]string, len(v.keys))
		copy(sorted, v.keys)
		sort.Strings(sorted)
		sb.WriteString("o{")
		for _, k := range sorted {
			sb.WriteString(strconv.Itoa(len(k)))
			sb.WriteString(":")
			sb.WriteString(k)
			sb.WriteString("=")
			writeHashKey(sb, v.entries[k])
			sb.WriteString(",")
		}
		sb.WriteString("}")
	}
}
