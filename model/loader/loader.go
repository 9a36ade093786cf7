// Package loader reads and writes the textual model document format: a
// JSON or YAML document carrying a format version, global metadata, and
// per-namespace shape definitions. The loader assembles documents into
// immutable Models; the serializer writes Models back out with fully
// sorted keys so serialized models diff cleanly.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// FormatVersion is the document format version this loader reads and
// writes.
const FormatVersion = "1.0"

// versionKey and metadataKey are the two reserved top-level document keys;
// every other top-level key names a namespace.
const (
	versionKey  = "seam"
	metadataKey = "metadata"
)

// Load reads a model document from disk, choosing the YAML front end for
// .yaml/.yml files and JSON otherwise.
func Load(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return LoadYAML(data, path)
	}
	return LoadJSON(data, path)
}

// LoadJSON assembles a model from a JSON document. filename is used in
// diagnostics only.
func LoadJSON(data []byte, filename string) (*model.Model, error) {
	doc, err := parseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return assemble(doc, filename)
}

// LoadYAML assembles a model from a YAML document. filename is used in
// diagnostics only.
func LoadYAML(data []byte, filename string) (*model.Model, error) {
	doc, err := parseYAML(data, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return assemble(doc, filename)
}

// parseJSON converts a JSON document into a node tree. Numbers decode
// through json.Number so integer and decimal representations survive.
func parseJSON(data []byte) (node.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return fromJSONValue(raw)
}

func fromJSONValue(v any) (node.Node, error) {
	switch t := v.(type) {
	case nil:
		return node.Null(), nil
	case bool:
		return node.Bool(t), nil
	case string:
		return node.String(t), nil
	case json.Number:
		return node.ParseNumber(t.String())
	case []any:
		elements := make([]node.Node, 0, len(t))
		for _, e := range t {
			converted, err := fromJSONValue(e)
			if err != nil {
				return nil, err
			}
			elements = append(elements, converted)
		}
		return node.Array(elements...), nil
	case map[string]any:
		obj := node.Object()
		for k, e := range t {
			converted, err := fromJSONValue(e)
			if err != nil {
				return nil, err
			}
			obj = obj.With(k, converted)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value %T", v)
	}
}

func assemble(doc node.Node, filename string) (*model.Model, error) {
	root, err := node.ExpectObject(doc)
	if err != nil {
		return nil, err
	}
	version, err := root.StringMember(versionKey)
	if err != nil {
		return nil, fmt.Errorf("not a model document: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("unsupported model format version %q", version)
	}

	metadata := map[string]node.Node{}
	if metaNode, ok := root.Get(metadataKey); ok {
		metaObj, err := node.ExpectObject(metaNode)
		if err != nil {
			return nil, fmt.Errorf("metadata: %w", err)
		}
		for key, value := range metaObj.Entries() {
			metadata[key] = value
		}
	}

	builder := model.NewGraphBuilder()
	for key, value := range root.Entries() {
		if key == versionKey || key == metadataKey {
			continue
		}
		if err := assembleNamespace(builder, key, value); err != nil {
			return nil, fmt.Errorf("%s: namespace %s: %w", filename, key, err)
		}
	}
	return model.NewModel(builder.Build(), metadata), nil
}

func assembleNamespace(builder *model.GraphBuilder, namespace string, value node.Node) error {
	obj, err := node.ExpectObject(value)
	if err != nil {
		return err
	}
	shapesNode, ok := obj.Get("shapes")
	if !ok {
		return nil
	}
	shapes, err := node.ExpectObject(shapesNode)
	if err != nil {
		return fmt.Errorf("shapes: %w", err)
	}
	for name, shapeNode := range shapes.Entries() {
		shapeID := model.NewShapeId(namespace, name)
		shape, err := decodeShape(shapeID, shapeNode)
		if err != nil {
			return fmt.Errorf("shape %s: %w", shapeID, err)
		}
		if err := builder.Add(shape); err != nil {
			return err
		}
	}
	return nil
}

func decodeShape(shapeID model.ShapeId, n node.Node) (model.Shape, error) {
	obj, err := node.ExpectObject(n)
	if err != nil {
		return nil, err
	}
	typeName, err := obj.StringMember("type")
	if err != nil {
		return nil, err
	}
	kind, err := model.ParseShapeKind(typeName)
	if err != nil {
		return nil, err
	}
	def, err := decodeShapeDef(obj, n.Source())
	if err != nil {
		return nil, err
	}

	switch {
	case kind.IsSimple():
		return model.NewSimple(kind, shapeID, def)
	case kind == model.KindList || kind == model.KindSet:
		member, err := decodeNamedMember(shapeID, obj, "member")
		if err != nil {
			return nil, err
		}
		if kind == model.KindList {
			return model.NewList(shapeID, member, def)
		}
		return model.NewSet(shapeID, member, def)
	case kind == model.KindMap:
		key, err := decodeNamedMember(shapeID, obj, "key")
		if err != nil {
			return nil, err
		}
		value, err := decodeNamedMember(shapeID, obj, "value")
		if err != nil {
			return nil, err
		}
		return model.NewMap(shapeID, key, value, def)
	case kind == model.KindStructure || kind == model.KindUnion:
		members, err := decodeMemberMap(shapeID, obj)
		if err != nil {
			return nil, err
		}
		if kind == model.KindStructure {
			return model.NewStructure(shapeID, members, def)
		}
		return model.NewUnion(shapeID, members, def)
	case kind == model.KindOperation:
		return decodeOperation(shapeID, obj, def)
	case kind == model.KindResource:
		return decodeResource(shapeID, obj, def)
	case kind == model.KindService:
		return decodeService(shapeID, obj, def)
	default:
		return nil, fmt.Errorf("shape type %q cannot be declared directly", typeName)
	}
}

func decodeShapeDef(obj *node.ObjectNode, loc node.SourceLocation) (model.ShapeDef, error) {
	def := model.ShapeDef{Source: loc}
	traitsNode, ok := obj.Get("traits")
	if !ok {
		return def, nil
	}
	traitsObj, err := node.ExpectObject(traitsNode)
	if err != nil {
		return def, fmt.Errorf("traits: %w", err)
	}
	for rawID, value := range traitsObj.Entries() {
		traitID, err := model.ParseShapeId(rawID)
		if err != nil {
			return def, fmt.Errorf("traits: %w", err)
		}
		def.Traits = append(def.Traits, model.NewTrait(traitID, value))
	}
	return def, nil
}

// decodeMemberTarget accepts the shorthand string form "ns#Target" as well
// as the full object form {"target": ..., "traits": {...}}.
func decodeMemberTarget(container model.ShapeId, name string, n node.Node) (*model.MemberShape, error) {
	if target, ok := node.AsString(n); ok {
		targetID, err := model.ParseShapeId(target)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", name, err)
		}
		return model.NewMember(container, name, targetID, model.ShapeDef{Source: n.Source()})
	}
	obj, err := node.ExpectObject(n)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	rawTarget, err := obj.StringMember("target")
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	targetID, err := model.ParseShapeId(rawTarget)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	def, err := decodeShapeDef(obj, n.Source())
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", name, err)
	}
	return model.NewMember(container, name, targetID, def)
}

func decodeNamedMember(container model.ShapeId, obj *node.ObjectNode, name string) (*model.MemberShape, error) {
	n, ok := obj.Get(name)
	if !ok {
		return nil, fmt.Errorf("missing required member %q", name)
	}
	return decodeMemberTarget(container, name, n)
}

func decodeMemberMap(container model.ShapeId, obj *node.ObjectNode) ([]*model.MemberShape, error) {
	membersNode, ok := obj.Get("members")
	if !ok {
		return nil, nil
	}
	membersObj, err := node.ExpectObject(membersNode)
	if err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	var members []*model.MemberShape
	for name, n := range membersObj.Entries() {
		member, err := decodeMemberTarget(container, name, n)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func decodeOptionalRef(obj *node.ObjectNode, key string) (model.ShapeId, error) {
	raw, ok := obj.OptionalStringMember(key)
	if !ok {
		return model.ShapeId{}, nil
	}
	return model.ParseShapeId(raw)
}

func decodeRefList(obj *node.ObjectNode, key string) ([]model.ShapeId, error) {
	n, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	arr, err := node.ExpectArray(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	var out []model.ShapeId
	for e := range arr.Elements() {
		raw, err := node.ExpectString(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		parsed, err := model.ParseShapeId(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

func decodeOperation(shapeID model.ShapeId, obj *node.ObjectNode, def model.ShapeDef) (model.Shape, error) {
	input, err := decodeOptionalRef(obj, "input")
	if err != nil {
		return nil, err
	}
	output, err := decodeOptionalRef(obj, "output")
	if err != nil {
		return nil, err
	}
	errors, err := decodeRefList(obj, "errors")
	if err != nil {
		return nil, err
	}
	return model.NewOperation(shapeID, model.OperationDef{
		Input:    input,
		Output:   output,
		Errors:   errors,
		ShapeDef: def,
	})
}

func decodeResource(shapeID model.ShapeId, obj *node.ObjectNode, def model.ShapeDef) (model.Shape, error) {
	resDef := model.ResourceDef{ShapeDef: def}

	if idsNode, ok := obj.Get("identifiers"); ok {
		idsObj, err := node.ExpectObject(idsNode)
		if err != nil {
			return nil, fmt.Errorf("identifiers: %w", err)
		}
		resDef.Identifiers = map[string]model.ShapeId{}
		for name, target := range idsObj.Entries() {
			raw, err := node.ExpectString(target)
			if err != nil {
				return nil, fmt.Errorf("identifier %q: %w", name, err)
			}
			parsed, err := model.ParseShapeId(raw.Value)
			if err != nil {
				return nil, fmt.Errorf("identifier %q: %w", name, err)
			}
			resDef.Identifiers[name] = parsed
		}
	}

	var err error
	refs := []struct {
		key  string
		dest *model.ShapeId
	}{
		{"create", &resDef.Create},
		{"put", &resDef.Put},
		{"read", &resDef.Read},
		{"update", &resDef.Update},
		{"delete", &resDef.Delete},
		{"list", &resDef.List},
	}
	for _, ref := range refs {
		if *ref.dest, err = decodeOptionalRef(obj, ref.key); err != nil {
			return nil, fmt.Errorf("%s: %w", ref.key, err)
		}
	}
	if resDef.Operations, err = decodeRefList(obj, "operations"); err != nil {
		return nil, err
	}
	if resDef.Resources, err = decodeRefList(obj, "resources"); err != nil {
		return nil, err
	}
	return model.NewResource(shapeID, resDef)
}

func decodeService(shapeID model.ShapeId, obj *node.ObjectNode, def model.ShapeDef) (model.Shape, error) {
	version, err := obj.StringMember("version")
	if err != nil {
		return nil, err
	}
	operations, err := decodeRefList(obj, "operations")
	if err != nil {
		return nil, err
	}
	resources, err := decodeRefList(obj, "resources")
	if err != nil {
		return nil, err
	}
	return model.NewService(shapeID, model.ServiceDef{
		Version:    version,
		Operations: operations,
		Resources:  resources,
		ShapeDef:   def,
	})
}
