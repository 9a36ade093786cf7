package knowledge

import (
	"testing"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
	"github.com/stretchr/testify/assert"
)

// instanceVsCollection builds a resource with one identifier and two
// operations: one whose input binds the identifier as a required member,
// one whose input does not.
func TestIdentifierBindingIndex_InstanceVsCollection(t *testing.T) {
	getInput := id("ns#GetThingInput")
	listInput := id("ns#ListThingsInput")

	m := newModel(t,
		simpleShape(t, model.KindString, "ns#Str"),
		structShape(t, "ns#GetThingInput",
			memberShape(t, getInput, "id1", "ns#Str", required())),
		structShape(t, "ns#ListThingsInput",
			memberShape(t, listInput, "maxResults", "ns#Str")),
		opShape(t, "ns#GetThing", model.OperationDef{Input: id("ns#GetThingInput")}),
		opShape(t, "ns#ListThings", model.OperationDef{Input: id("ns#ListThingsInput")}),
		resourceShape(t, "ns#Thing", model.ResourceDef{
			Identifiers: map[string]model.ShapeId{"id1": id("ns#Str")},
			Read:        id("ns#GetThing"),
			List:        id("ns#ListThings"),
		}),
	)

	idx := ComputeIdentifierBindingIndex(m)

	assert.Equal(t, InstanceBinding, idx.OperationBinding(id("ns#Thing"), id("ns#GetThing")))
	assert.Equal(t, CollectionBinding, idx.OperationBinding(id("ns#Thing"), id("ns#ListThings")))
}

func TestIdentifierBindingIndex_OptionalMemberDoesNotBind(t *testing.T) {
	input := id("ns#Input")
	m := newModel(t,
		simpleShape(t, model.KindString, "ns#Str"),
		structShape(t, "ns#Input",
			memberShape(t, input, "id1", "ns#Str")), // not required
		opShape(t, "ns#Op", model.OperationDef{Input: id("ns#Input")}),
		resourceShape(t, "ns#Thing", model.ResourceDef{
			Identifiers: map[string]model.ShapeId{"id1": id("ns#Str")},
			Read:        id("ns#Op"),
		}),
	)

	idx := ComputeIdentifierBindingIndex(m)
	assert.Equal(t, CollectionBinding, idx.OperationBinding(id("ns#Thing"), id("ns#Op")))
}

func TestIdentifierBindingIndex_PartialIdentifiersFallBackToCollection(t *testing.T) {
	input := id("ns#Input")
	m := newModel(t,
		simpleShape(t, model.KindString, "ns#Str"),
		structShape(t, "ns#Input",
			memberShape(t, input, "first", "ns#Str", required())),
		opShape(t, "ns#Op", model.OperationDef{Input: id("ns#Input")}),
		resourceShape(t, "ns#Thing", model.ResourceDef{
			Identifiers: map[string]model.ShapeId{
				"first":  id("ns#Str"),
				"second": id("ns#Str"),
			},
			Read: id("ns#Op"),
		}),
	)

	idx := ComputeIdentifierBindingIndex(m)
	assert.Equal(t, CollectionBinding, idx.OperationBinding(id("ns#Thing"), id("ns#Op")))
}

func TestIdentifierBindingIndex_AliasedMemberBinds(t *testing.T) {
	input := id("ns#Input")
	m := newModel(t,
		simpleShape(t, model.KindString, "ns#Str"),
		structShape(t, "ns#Input",
			memberShape(t, input, "thingId", "ns#Str",
				required(),
				model.NewTrait(model.ReferencesTrait, node.String("id1")))),
		opShape(t, "ns#Op", model.OperationDef{Input: id("ns#Input")}),
		resourceShape(t, "ns#Thing", model.ResourceDef{
			Identifiers: map[string]model.ShapeId{"id1": id("ns#Str")},
			Read:        id("ns#Op"),
		}),
	)

	idx := ComputeIdentifierBindingIndex(m)
	assert.Equal(t, InstanceBinding, idx.OperationBinding(id("ns#Thing"), id("ns#Op")))
}

func TestIdentifierBindingIndex_NoInputIsCollection(t *testing.T) {
	m := newModel(t,
		opShape(t, "ns#Op", model.OperationDef{}),
		resourceShape(t, "ns#Thing", model.ResourceDef{
			Identifiers: map[string]model.ShapeId{"id1": id("ns#Str")},
			Delete:      id("ns#Op"),
		}),
	)

	idx := ComputeIdentifierBindingIndex(m)
	assert.Equal(t, CollectionBinding, idx.OperationBinding(id("ns#Thing"), id("ns#Op")))

	// Unknown resource/operation combinations report the default too.
	assert.Equal(t, CollectionBinding, idx.OperationBinding(id("ns#Absent"), id("ns#Op")))
}
