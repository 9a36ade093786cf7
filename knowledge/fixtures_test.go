package knowledge

import (
	"testing"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
	"github.com/stretchr/testify/require"
)

func id(s string) model.ShapeId { return model.MustParseShapeId(s) }

func newModel(t *testing.T, shapes ...model.Shape) *model.Model {
	t.Helper()
	b := model.NewGraphBuilder()
	require.NoError(t, b.Add(shapes...))
	return model.NewModel(b.Build(), nil)
}

func simpleShape(t *testing.T, kind model.ShapeKind, shapeID string) *model.SimpleShape {
	t.Helper()
	s, err := model.NewSimple(kind, id(shapeID), model.ShapeDef{})
	require.NoError(t, err)
	return s
}

func memberShape(t *testing.T, container model.ShapeId, name, target string, traits ...model.Trait) *model.MemberShape {
	t.Helper()
	m, err := model.NewMember(container, name, id(target), model.ShapeDef{Traits: traits})
	require.NoError(t, err)
	return m
}

func structShape(t *testing.T, shapeID string, members ...*model.MemberShape) *model.StructureShape {
	t.Helper()
	s, err := model.NewStructure(id(shapeID), members, model.ShapeDef{})
	require.NoError(t, err)
	return s
}

func opShape(t *testing.T, shapeID string, def model.OperationDef) *model.OperationShape {
	t.Helper()
	op, err := model.NewOperation(id(shapeID), def)
	require.NoError(t, err)
	return op
}

func resourceShape(t *testing.T, shapeID string, def model.ResourceDef) *model.ResourceShape {
	t.Helper()
	r, err := model.NewResource(id(shapeID), def)
	require.NoError(t, err)
	return r
}

func serviceShape(t *testing.T, shapeID string, def model.ServiceDef) *model.ServiceShape {
	t.Helper()
	if def.Version == "" {
		def.Version = "2026-08-31"
	}
	svc, err := model.NewService(id(shapeID), def)
	require.NoError(t, err)
	return svc
}

func required() model.Trait {
	return model.NewTrait(model.RequiredTrait, node.Null())
}

func arnTrait(template string, extra ...func(*node.ObjectNode) *node.ObjectNode) model.Trait {
	value := node.Object().With("template", node.String(template))
	for _, f := range extra {
		value = f(value)
	}
	return model.NewTrait(model.ArnTrait, value)
}

func opIDs(ops []*model.OperationShape) []string {
	var out []string
	for _, op := range ops {
		out = append(out, op.ID().String())
	}
	return out
}

func resIDs(resources []*model.ResourceShape) []string {
	var out []string
	for _, r := range resources {
		out = append(out, r.ID().String())
	}
	return out
}
