package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"sort"
	"strconv"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// Serialize renders a model as a document node tree with fully sorted
// keys, so two serializations of equal models are byte-identical and
// serialized models diff cleanly.
func Serialize(m *model.Model) *node.ObjectNode {
	doc := node.Object().With(versionKey, node.String(FormatVersion))

	if keys := m.MetadataKeys(); len(keys) > 0 {
		meta := node.Object()
		for key, value := range m.Metadata() {
			meta = meta.With(key, value)
		}
		doc = doc.With(metadataKey, meta)
	}

	byNamespace := map[string][]model.Shape{}
	for s := range m.Graph().All() {
		// Members are serialized inside their containers.
		if s.ShapeKind() == model.KindMember {
			continue
		}
		ns := s.ID().Namespace()
		byNamespace[ns] = append(byNamespace[ns], s)
	}

	namespaces := make([]string, 0, len(byNamespace))
	for ns := range byNamespace {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	for _, ns := range namespaces {
		shapes := byNamespace[ns]
		sort.Slice(shapes, func(i, j int) bool { return shapes[i].ID().Compare(shapes[j].ID()) < 0 })
		shapesObj := node.Object()
		for _, s := range shapes {
			shapesObj = shapesObj.With(s.ID().Name(), shapeToNode(s))
		}
		doc = doc.With(ns, node.Object().With("shapes", shapesObj))
	}
	return doc
}

// EncodeJSON serializes a model to indented JSON.
func EncodeJSON(m *model.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, Serialize(m), 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func shapeToNode(s model.Shape) *node.ObjectNode {
	obj := node.Object().With("type", node.String(s.ShapeKind().String()))

	switch v := s.(type) {
	case *model.ListShape:
		obj = obj.With("member", memberToNode(v.Member()))
	case *model.SetShape:
		obj = obj.With("member", memberToNode(v.Member()))
	case *model.MapShape:
		obj = obj.With("key", memberToNode(v.Key()))
		obj = obj.With("value", memberToNode(v.Value()))
	case *model.StructureShape:
		obj = obj.With("members", membersToNode(v.Members()))
	case *model.UnionShape:
		obj = obj.With("members", membersToNode(v.Members()))
	case *model.OperationShape:
		if !v.Input().IsEmpty() {
			obj = obj.With("input", node.String(v.Input().String()))
		}
		if !v.Output().IsEmpty() {
			obj = obj.With("output", node.String(v.Output().String()))
		}
		obj = withRefList(obj, "errors", v.Errors())
	case *model.ResourceShape:
		if names := v.IdentifierNames(); len(names) > 0 {
			ids := node.Object()
			for _, name := range names {
				target, _ := v.Identifier(name)
				ids = ids.With(name, node.String(target.String()))
			}
			obj = obj.With("identifiers", ids)
		}
		obj = withRef(obj, "create", v.Create())
		obj = withRef(obj, "put", v.Put())
		obj = withRef(obj, "read", v.Read())
		obj = withRef(obj, "update", v.Update())
		obj = withRef(obj, "delete", v.Delete())
		obj = withRef(obj, "list", v.List())
		obj = withRefList(obj, "operations", v.Operations())
		obj = withRefList(obj, "resources", v.Resources())
	case *model.ServiceShape:
		obj = obj.With("version", node.String(v.Version()))
		obj = withRefList(obj, "operations", v.Operations())
		obj = withRefList(obj, "resources", v.Resources())
	}

	return withTraits(obj, s.Traits())
}

func memberToNode(m *model.MemberShape) *node.ObjectNode {
	obj := node.Object().With("target", node.String(m.Target().String()))
	return withTraits(obj, m.Traits())
}

func membersToNode(members iter.Seq[*model.MemberShape]) *node.ObjectNode {
	obj := node.Object()
	for m := range members {
		obj = obj.With(m.MemberName(), memberToNode(m))
	}
	return obj
}

func withTraits(obj *node.ObjectNode, traits model.Traits) *node.ObjectNode {
	if traits.Len() == 0 {
		return obj
	}
	traitsObj := node.Object()
	for t := range traits.All() {
		traitsObj = traitsObj.With(t.ID.String(), t.Value)
	}
	return obj.With("traits", traitsObj)
}

func withRef(obj *node.ObjectNode, key string, ref model.ShapeId) *node.ObjectNode {
	if ref.IsEmpty() {
		return obj
	}
	return obj.With(key, node.String(ref.String()))
}

func withRefList(obj *node.ObjectNode, key string, refs []model.ShapeId) *node.ObjectNode {
	if len(refs) == 0 {
		return obj
	}
	elements := make([]node.Node, 0, len(refs))
	for _, ref := range refs {
		elements = append(elements, node.String(ref.String()))
	}
	return obj.With(key, node.Array(elements...))
}

// writeJSON renders a node tree as indented JSON, preserving object key
// insertion order. The stdlib encoder cannot be used directly because Go
// maps do not hold an order and the document's key order is meaningful
// output.
func writeJSON(buf *bytes.Buffer, n node.Node, depth int) error {
	switch v := n.(type) {
	case *node.NullNode:
		buf.WriteString("null")
	case *node.BooleanNode:
		buf.WriteString(strconv.FormatBool(v.Value))
	case *node.NumberNode:
		if i, ok := v.Int(); ok && v.IsInt() {
			buf.WriteString(strconv.FormatInt(i, 10))
		} else {
			buf.WriteString(v.Decimal().Text('f'))
		}
	case *node.StringNode:
		escaped, err := json.Marshal(v.Value)
		if err != nil {
			return err
		}
		buf.Write(escaped)
	case *node.ArrayNode:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		i := 0
		for e := range v.Elements() {
			writeIndent(buf, depth+1)
			if err := writeJSON(buf, e, depth+1); err != nil {
				return err
			}
			if i++; i < v.Len() {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case *node.ObjectNode:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		i := 0
		for key, value := range v.Entries() {
			writeIndent(buf, depth+1)
			escaped, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(escaped)
			buf.WriteString(": ")
			if err := writeJSON(buf, value, depth+1); err != nil {
				return err
			}
			if i++; i < v.Len() {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported node kind %s", n.Kind())
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
