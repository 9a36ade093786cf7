package knowledge

import (
	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// BindingType classifies how an operation bound under a resource addresses
// that resource.
type BindingType int

const (
	// CollectionBinding means the operation works across resource
	// instances: some resource identifiers are not bound by the input.
	// This is the permissive default for every ambiguous case.
	CollectionBinding BindingType = iota
	// InstanceBinding means the operation addresses a single instance:
	// every resource identifier appears as a required input member.
	InstanceBinding
)

// String returns "collection" or "instance".
func (b BindingType) String() string {
	if b == InstanceBinding {
		return "instance"
	}
	return "collection"
}

// IdentifierBindingIndex classifies every operation bound under each
// resource as an instance or collection operation.
type IdentifierBindingIndex struct {
	bindings map[model.ShapeId]map[model.ShapeId]BindingType
}

// ComputeIdentifierBindingIndex classifies operations by comparing each
// resource's identifier name set against the required member names of the
// operation's input structure. A member binds an identifier either
// directly by name or through one level of aliasing: a member carrying a
// references trait whose string value names the identifier.
func ComputeIdentifierBindingIndex(m *model.Model) *IdentifierBindingIndex {
	idx := &IdentifierBindingIndex{bindings: map[model.ShapeId]map[model.ShapeId]BindingType{}}
	ops := ComputeOperationIndex(m)

	for res := range m.Graph().Resources() {
		perOp := map[model.ShapeId]BindingType{}
		idx.bindings[res.ID()] = perOp
		for _, opID := range res.AllOperations() {
			perOp[opID] = classify(res, opID, ops)
		}
	}
	return idx
}

func classify(res *model.ResourceShape, opID model.ShapeId, ops *OperationIndex) BindingType {
	input, ok := ops.Input(opID)
	if !ok {
		return CollectionBinding
	}
	bound := map[string]bool{}
	for member := range input.Members() {
		if !member.Traits().Has(model.RequiredTrait) {
			continue
		}
		bound[member.MemberName()] = true
		if t, ok := member.Traits().Get(model.ReferencesTrait); ok {
			if alias, isString := node.AsString(t.Value); isString {
				bound[alias] = true
			}
		}
	}
	for _, name := range res.IdentifierNames() {
		if !bound[name] {
			return CollectionBinding
		}
	}
	return InstanceBinding
}

// OperationBinding returns the binding classification of an operation
// under a resource. Operations not bound under the resource report the
// collection default.
func (idx *IdentifierBindingIndex) OperationBinding(resource, operation model.ShapeId) BindingType {
	if perOp, ok := idx.bindings[resource]; ok {
		return perOp[operation]
	}
	return CollectionBinding
}
