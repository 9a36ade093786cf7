package knowledge

import "github.com/seam-lang/seam/model"

// OperationIndex resolves operation input and output references to their
// structure shapes. Operations whose input or output reference is absent
// or does not point at a structure simply have no entry.
type OperationIndex struct {
	inputs  map[model.ShapeId]*model.StructureShape
	outputs map[model.ShapeId]*model.StructureShape
}

// ComputeOperationIndex builds the index from every operation in the
// model.
func ComputeOperationIndex(m *model.Model) *OperationIndex {
	idx := &OperationIndex{
		inputs:  map[model.ShapeId]*model.StructureShape{},
		outputs: map[model.ShapeId]*model.StructureShape{},
	}
	g := m.Graph()
	for op := range g.Operations() {
		if !op.Input().IsEmpty() {
			if s, ok := g.Structure(op.Input()); ok {
				idx.inputs[op.ID()] = s
			}
		}
		if !op.Output().IsEmpty() {
			if s, ok := g.Structure(op.Output()); ok {
				idx.outputs[op.ID()] = s
			}
		}
	}
	return idx
}

// Input returns the resolved input structure of an operation.
func (idx *OperationIndex) Input(operation model.ShapeId) (*model.StructureShape, bool) {
	s, ok := idx.inputs[operation]
	return s, ok
}

// Output returns the resolved output structure of an operation.
func (idx *OperationIndex) Output(operation model.ShapeId) (*model.StructureShape, bool) {
	s, ok := idx.outputs[operation]
	return s, ok
}
