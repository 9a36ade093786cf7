package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seam-lang/seam/diff"
	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

func id(s string) model.ShapeId { return model.MustParseShapeId(s) }

func buildModel(t *testing.T, metadata map[string]node.Node, shapes ...model.Shape) *model.Model {
	t.Helper()
	b := model.NewGraphBuilder()
	require.NoError(t, b.Add(shapes...))
	return model.NewModel(b.Build(), metadata)
}

func simpleShape(t *testing.T, kind model.ShapeKind, shapeID string, traits ...model.Trait) *model.SimpleShape {
	t.Helper()
	s, err := model.NewSimple(kind, id(shapeID), model.ShapeDef{Traits: traits})
	require.NoError(t, err)
	return s
}

func structShape(t *testing.T, shapeID string, members ...*model.MemberShape) *model.StructureShape {
	t.Helper()
	s, err := model.NewStructure(id(shapeID), members, model.ShapeDef{})
	require.NoError(t, err)
	return s
}

func memberShape(t *testing.T, container model.ShapeId, name, target string) *model.MemberShape {
	t.Helper()
	m, err := model.NewMember(container, name, id(target), model.ShapeDef{})
	require.NoError(t, err)
	return m
}

func TestDiffReport_Empty(t *testing.T) {
	m := buildModel(t, nil, simpleShape(t, model.KindString, "a#Name"))
	r := NewDiffReport(diff.Detect(m, m))
	assert.True(t, r.Empty())

	var buf bytes.Buffer
	r.Render(&buf, false)
	assert.Contains(t, buf.String(), "No differences found.")
}

func TestDiffReport_SortedSections(t *testing.T) {
	oldModel := buildModel(t, map[string]node.Node{"gone": node.Bool(true), "rev": node.Int(1)},
		simpleShape(t, model.KindString, "a#Removed"),
		simpleShape(t, model.KindInteger, "a#Kept", model.NewTrait(id("t#old"), node.Null())),
	)
	newer := buildModel(t, map[string]node.Node{"rev": node.Int(2), "fresh": node.Bool(true)},
		simpleShape(t, model.KindInteger, "a#Kept", model.NewTrait(id("t#new"), node.Null())),
		simpleShape(t, model.KindString, "a#ZAdded"),
		simpleShape(t, model.KindString, "a#Added"),
	)

	r := NewDiffReport(diff.Detect(oldModel, newer))
	require.False(t, r.Empty())

	require.Len(t, r.AddedShapes, 2)
	assert.Equal(t, "a#Added", r.AddedShapes[0].ID)
	assert.Equal(t, "a#ZAdded", r.AddedShapes[1].ID)

	require.Len(t, r.RemovedShapes, 1)
	assert.Equal(t, "a#Removed", r.RemovedShapes[0].ID)
	assert.Equal(t, "string", r.RemovedShapes[0].Kind)

	require.Len(t, r.ChangedShapes, 1)
	assert.Equal(t, "a#Kept", r.ChangedShapes[0].ID)
	assert.Equal(t, []string{"t#new"}, r.ChangedShapes[0].AddedTraits)
	assert.Equal(t, []string{"t#old"}, r.ChangedShapes[0].RemovedTraits)

	require.Len(t, r.AddedMetadata, 1)
	assert.Equal(t, "fresh", r.AddedMetadata[0].Key)
	require.Len(t, r.RemovedMetadata, 1)
	assert.Equal(t, "gone", r.RemovedMetadata[0].Key)
	require.Len(t, r.ChangedMetadata, 1)
	assert.Equal(t, "rev", r.ChangedMetadata[0].Key)
}

func TestDiffReport_MemberChanges(t *testing.T) {
	oldModel := buildModel(t, nil,
		simpleShape(t, model.KindString, "a#Name"),
		simpleShape(t, model.KindInteger, "a#Count"),
		structShape(t, "a#Input",
			memberShape(t, id("a#Input"), "kept", "a#Name"),
			memberShape(t, id("a#Input"), "retargeted", "a#Name"),
			memberShape(t, id("a#Input"), "dropped", "a#Name"),
		),
	)
	newer := buildModel(t, nil,
		simpleShape(t, model.KindString, "a#Name"),
		simpleShape(t, model.KindInteger, "a#Count"),
		structShape(t, "a#Input",
			memberShape(t, id("a#Input"), "kept", "a#Name"),
			memberShape(t, id("a#Input"), "retargeted", "a#Count"),
			memberShape(t, id("a#Input"), "grown", "a#Count"),
		),
	)

	r := NewDiffReport(diff.Detect(oldModel, newer))
	var change *ShapeChange
	for i := range r.ChangedShapes {
		if r.ChangedShapes[i].ID == "a#Input" {
			change = &r.ChangedShapes[i]
		}
	}
	require.NotNil(t, change)
	assert.Equal(t, []string{"grown"}, change.AddedMembers)
	assert.Equal(t, []string{"dropped"}, change.RemovedMembers)
	require.Len(t, change.ChangedMembers, 1)
	assert.Equal(t, MemberChange{Name: "retargeted", OldTarget: "a#Name", NewTarget: "a#Count"}, change.ChangedMembers[0])
}

func TestDiffReport_RenderText(t *testing.T) {
	oldModel := buildModel(t, nil, simpleShape(t, model.KindString, "a#Removed"))
	newer := buildModel(t, nil, simpleShape(t, model.KindString, "a#Added"))

	var buf bytes.Buffer
	NewDiffReport(diff.Detect(oldModel, newer)).Render(&buf, false)

	out := buf.String()
	assert.Contains(t, out, "+ shape a#Added (string)")
	assert.Contains(t, out, "- shape a#Removed (string)")
}

func TestDiffReport_RenderJSON(t *testing.T) {
	oldModel := buildModel(t, nil, simpleShape(t, model.KindString, "a#Removed"))
	newer := buildModel(t, nil, simpleShape(t, model.KindString, "a#Added"))

	var buf bytes.Buffer
	require.NoError(t, NewDiffReport(diff.Detect(oldModel, newer)).RenderJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "addedShapes")
	assert.Contains(t, decoded, "removedShapes")
	assert.NotContains(t, decoded, "changedShapes")
}
