package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/seam-lang/seam/model/node"
)

// parseYAML converts a YAML document into a node tree, carrying line and
// column positions through to the node source locations.
func parseYAML(data []byte, filename string) (node.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return node.Null(), nil
		}
		return fromYAMLNode(root.Content[0], filename)
	}
	return fromYAMLNode(&root, filename)
}

func fromYAMLNode(y *yaml.Node, filename string) (node.Node, error) {
	loc := node.SourceLocation{File: filename, Line: y.Line, Column: y.Column}

	switch y.Kind {
	case yaml.ScalarNode:
		return fromYAMLScalar(y, loc)
	case yaml.SequenceNode:
		elements := make([]node.Node, 0, len(y.Content))
		for _, c := range y.Content {
			converted, err := fromYAMLNode(c, filename)
			if err != nil {
				return nil, err
			}
			elements = append(elements, converted)
		}
		arr := node.Array(elements...)
		arr.Loc = loc
		return arr, nil
	case yaml.MappingNode:
		obj := node.Object()
		for i := 0; i+1 < len(y.Content); i += 2 {
			keyNode := y.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := fromYAMLNode(y.Content[i+1], filename)
			if err != nil {
				return nil, err
			}
			obj = obj.With(keyNode.Value, value)
		}
		obj.Loc = loc
		return obj, nil
	case yaml.AliasNode:
		return fromYAMLNode(y.Alias, filename)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", y.Line, y.Kind)
	}
}

func fromYAMLScalar(y *yaml.Node, loc node.SourceLocation) (node.Node, error) {
	switch y.Tag {
	case "!!null":
		return &node.NullNode{Loc: loc}, nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return &node.BooleanNode{Value: b, Loc: loc}, nil
	case "!!int", "!!float":
		n, err := node.ParseNumber(y.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		n.Loc = loc
		return n, nil
	default:
		return &node.StringNode{Value: y.Value, Loc: loc}, nil
	}
}
