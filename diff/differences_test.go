package diff

import (
	"testing"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type modelSpec struct {
	shapes   []model.Shape
	metadata map[string]node.Node
}

func buildModel(t *testing.T, spec modelSpec) *model.Model {
	t.Helper()
	b := model.NewGraphBuilder()
	require.NoError(t, b.Add(spec.shapes...))
	return model.NewModel(b.Build(), spec.metadata)
}

func simple(t *testing.T, kind model.ShapeKind, id string, traits ...model.Trait) *model.SimpleShape {
	t.Helper()
	s, err := model.NewSimple(kind, model.MustParseShapeId(id), model.ShapeDef{Traits: traits})
	require.NoError(t, err)
	return s
}

func member(t *testing.T, container model.ShapeId, name, target string, traits ...model.Trait) *model.MemberShape {
	t.Helper()
	m, err := model.NewMember(container, name, model.MustParseShapeId(target), model.ShapeDef{Traits: traits})
	require.NoError(t, err)
	return m
}

func collectIDs[T interface{ ID() model.ShapeId }](seq func(func(T) bool)) map[string]bool {
	out := map[string]bool{}
	for v := range seq {
		out[v.ID().String()] = true
	}
	return out
}

func TestDetect_SelfDiffIsEmpty(t *testing.T) {
	m := buildModel(t, modelSpec{
		shapes:   []model.Shape{simple(t, model.KindString, "ns#Str")},
		metadata: map[string]node.Node{"k": node.Int(1)},
	})

	d := Detect(m, m)

	assert.Empty(t, collectIDs(d.ChangedShapes()))
	assert.Empty(t, collectIDs(d.AddedShapes()))
	assert.Empty(t, collectIDs(d.RemovedShapes()))
	for range d.ChangedMetadata() {
		t.Fatal("self-diff produced changed metadata")
	}
	for range d.AddedMetadata() {
		t.Fatal("self-diff produced added metadata")
	}
	for range d.RemovedMetadata() {
		t.Fatal("self-diff produced removed metadata")
	}
}

func TestDetect_PartitionCompleteness(t *testing.T) {
	docTrait := model.MustParseShapeId("ns#doc")

	oldModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#Kept"),
		simple(t, model.KindString, "ns#Removed"),
		simple(t, model.KindString, "ns#Changed"),
	}})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#Kept"),
		simple(t, model.KindString, "ns#Added"),
		simple(t, model.KindString, "ns#Changed", model.NewTrait(docTrait, node.String("now documented"))),
	}})

	d := Detect(oldModel, newModel)

	added := collectIDs(d.AddedShapes())
	removed := collectIDs(d.RemovedShapes())
	changed := collectIDs(d.ChangedShapes())

	assert.Equal(t, map[string]bool{"ns#Added": true}, added)
	assert.Equal(t, map[string]bool{"ns#Removed": true}, removed)
	assert.Equal(t, map[string]bool{"ns#Changed": true}, changed)

	// Every id in the union falls in exactly one bucket; "ns#Kept" in none.
	for _, id := range []string{"ns#Kept", "ns#Added", "ns#Removed", "ns#Changed"} {
		count := 0
		for _, bucket := range []map[string]bool{added, removed, changed} {
			if bucket[id] {
				count++
			}
		}
		if id == "ns#Kept" {
			assert.Zero(t, count, id)
		} else {
			assert.Equal(t, 1, count, id)
		}
	}
}

func TestDetect_MetadataBucketsAreDisjoint(t *testing.T) {
	oldModel := buildModel(t, modelSpec{metadata: map[string]node.Node{
		"same":    node.String("v"),
		"changed": node.Int(1),
		"removed": node.Bool(true),
	}})
	newModel := buildModel(t, modelSpec{metadata: map[string]node.Node{
		"same":    node.String("v"),
		"changed": node.Int(2),
		"added":   node.Null(),
	}})

	d := Detect(oldModel, newModel)

	addedKeys := map[string]bool{}
	for k := range d.AddedMetadata() {
		addedKeys[k] = true
	}
	removedKeys := map[string]bool{}
	for k := range d.RemovedMetadata() {
		removedKeys[k] = true
	}
	changedKeys := map[string]bool{}
	for c := range d.ChangedMetadata() {
		changedKeys[c.Key] = true
	}

	assert.Equal(t, map[string]bool{"added": true}, addedKeys)
	assert.Equal(t, map[string]bool{"removed": true}, removedKeys)
	assert.Equal(t, map[string]bool{"changed": true}, changedKeys)
}

func TestChangedMetadata_CarriesBothValues(t *testing.T) {
	oldModel := buildModel(t, modelSpec{metadata: map[string]node.Node{"k": node.Int(1)}})
	newModel := buildModel(t, modelSpec{metadata: map[string]node.Node{"k": node.Int(2)}})

	var got []ChangedMetadata
	for c := range Detect(oldModel, newModel).ChangedMetadata() {
		got = append(got, c)
	}
	require.Len(t, got, 1)
	assert.Equal(t, "k", got[0].Key)
	assert.True(t, node.Equal(node.Int(1), got[0].Old))
	assert.True(t, node.Equal(node.Int(2), got[0].New))
}

func TestChangedShapesOf_RequiresMatchingKindOnBothSides(t *testing.T) {
	id := model.MustParseShapeId("ns#Agg")
	strID := "ns#Str"

	oldList, err := model.NewList(id, member(t, id, "member", strID), model.ShapeDef{})
	require.NoError(t, err)
	newSet, err := model.NewSet(id, member(t, id, "member", strID), model.ShapeDef{})
	require.NoError(t, err)

	oldModel := buildModel(t, modelSpec{shapes: []model.Shape{simple(t, model.KindString, strID), oldList}})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{simple(t, model.KindString, strID), newSet}})

	d := Detect(oldModel, newModel)

	// The kind change is visible in the untyped view.
	changed := collectIDs(d.ChangedShapes())
	assert.True(t, changed["ns#Agg"])

	// Neither typed view matches a cross-kind pair.
	for range ChangedShapesOf[*model.ListShape](d) {
		t.Fatal("list-typed view must exclude cross-kind changes")
	}
	for range ChangedShapesOf[*model.SetShape](d) {
		t.Fatal("set-typed view must exclude cross-kind changes")
	}
}

func TestChangedShapesOf_IsSubsetOfChangedShapes(t *testing.T) {
	docTrait := model.MustParseShapeId("ns#doc")
	oldModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#A"),
		simple(t, model.KindInteger, "ns#B"),
	}})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#A", model.NewTrait(docTrait, node.String("x"))),
		simple(t, model.KindInteger, "ns#B", model.NewTrait(docTrait, node.String("y"))),
	}})

	d := Detect(oldModel, newModel)

	all := collectIDs(d.ChangedShapes())
	typed := collectIDs(ChangedShapesOf[*model.SimpleShape](d))
	assert.Equal(t, all, typed)
	assert.Len(t, typed, 2)
}

func TestAddedShapesOf_FiltersByType(t *testing.T) {
	svc, err := model.NewService(model.MustParseShapeId("ns#Svc"), model.ServiceDef{Version: "1"})
	require.NoError(t, err)

	oldModel := buildModel(t, modelSpec{})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{
		svc,
		simple(t, model.KindString, "ns#Str"),
	}})

	d := Detect(oldModel, newModel)
	services := collectIDs(AddedShapesOf[*model.ServiceShape](d))
	assert.Equal(t, map[string]bool{"ns#Svc": true}, services)
}

func TestChangedShape_TraitDiff(t *testing.T) {
	kept := model.MustParseShapeId("ns#kept")
	removed := model.MustParseShapeId("ns#removed")
	added := model.MustParseShapeId("ns#added")
	changed := model.MustParseShapeId("ns#changed")

	oldModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#S",
			model.NewTrait(kept, node.Int(1)),
			model.NewTrait(removed, node.Bool(true)),
			model.NewTrait(changed, node.String("before"))),
	}})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#S",
			model.NewTrait(kept, node.Int(1)),
			model.NewTrait(added, node.Bool(true)),
			model.NewTrait(changed, node.String("after"))),
	}})

	d := Detect(oldModel, newModel)
	var pair *ChangedShape
	for c := range d.ChangedShapes() {
		pair = c
	}
	require.NotNil(t, pair)

	var addedIDs []model.ShapeId
	for tr := range pair.AddedTraits() {
		addedIDs = append(addedIDs, tr.ID)
	}
	assert.Equal(t, []model.ShapeId{added}, addedIDs)

	var removedIDs []model.ShapeId
	for tr := range pair.RemovedTraits() {
		removedIDs = append(removedIDs, tr.ID)
	}
	assert.Equal(t, []model.ShapeId{removed}, removedIDs)

	var changedTraits []ChangedTrait
	for ct := range pair.ChangedTraits() {
		changedTraits = append(changedTraits, ct)
	}
	require.Len(t, changedTraits, 1)
	assert.Equal(t, changed, changedTraits[0].Trait)
	assert.True(t, node.Equal(node.String("before"), changedTraits[0].Old))
	assert.True(t, node.Equal(node.String("after"), changedTraits[0].New))
}

func TestChangedShape_MemberDiff(t *testing.T) {
	id := model.MustParseShapeId("ns#S")

	oldStruct, err := model.NewStructure(id, []*model.MemberShape{
		member(t, id, "kept", "ns#Str"),
		member(t, id, "dropped", "ns#Str"),
		member(t, id, "retargeted", "ns#Str"),
	}, model.ShapeDef{})
	require.NoError(t, err)

	newStruct, err := model.NewStructure(id, []*model.MemberShape{
		member(t, id, "kept", "ns#Str"),
		member(t, id, "introduced", "ns#Int"),
		member(t, id, "retargeted", "ns#Int"),
	}, model.ShapeDef{})
	require.NoError(t, err)

	oldModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#Str"), simple(t, model.KindInteger, "ns#Int"), oldStruct,
	}})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{
		simple(t, model.KindString, "ns#Str"), simple(t, model.KindInteger, "ns#Int"), newStruct,
	}})

	d := Detect(oldModel, newModel)
	var structPair *ChangedShape
	for c := range d.ChangedShapes() {
		if c.ID() == id {
			structPair = c
		}
	}
	require.NotNil(t, structPair)

	addedNames := map[string]bool{}
	for m := range structPair.AddedMembers() {
		addedNames[m.MemberName()] = true
	}
	assert.Equal(t, map[string]bool{"introduced": true}, addedNames)

	removedNames := map[string]bool{}
	for m := range structPair.RemovedMembers() {
		removedNames[m.MemberName()] = true
	}
	assert.Equal(t, map[string]bool{"dropped": true}, removedNames)

	changedNames := map[string]bool{}
	for cm := range structPair.ChangedMembers() {
		changedNames[cm.Old.MemberName()] = true
	}
	assert.Equal(t, map[string]bool{"retargeted": true}, changedNames)
}

func TestQueries_AreRestartable(t *testing.T) {
	oldModel := buildModel(t, modelSpec{})
	newModel := buildModel(t, modelSpec{shapes: []model.Shape{simple(t, model.KindString, "ns#A")}})

	d := Detect(oldModel, newModel)
	seq := d.AddedShapes()

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, 1, first)
	assert.Equal(t, first, second, "re-invoking a query re-filters from scratch")
}
