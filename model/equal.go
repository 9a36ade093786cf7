package model

// ShapesEqual reports structural equality of two shapes: same id, same
// kind-specific fields, same trait set. Source locations and trait or
// member insertion order never participate.
func ShapesEqual(a, b Shape) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ID() != b.ID() || a.ShapeKind() != b.ShapeKind() {
		return false
	}
	if !a.Traits().Equal(b.Traits()) {
		return false
	}
	switch av := a.(type) {
	case *SimpleShape:
		return true
	case *MemberShape:
		return av.Target() == b.(*MemberShape).Target()
	case *ListShape:
		return ShapesEqual(av.Member(), b.(*ListShape).Member())
	case *SetShape:
		return ShapesEqual(av.Member(), b.(*SetShape).Member())
	case *MapShape:
		bv := b.(*MapShape)
		return ShapesEqual(av.Key(), bv.Key()) && ShapesEqual(av.Value(), bv.Value())
	case *StructureShape:
		return av.members.equal(b.(*StructureShape).members)
	case *UnionShape:
		return av.members.equal(b.(*UnionShape).members)
	case *OperationShape:
		bv := b.(*OperationShape)
		return av.Input() == bv.Input() &&
			av.Output() == bv.Output() &&
			shapeIdSlicesEqual(av.Errors(), bv.Errors())
	case *ResourceShape:
		bv := b.(*ResourceShape)
		if len(av.identifiers) != len(bv.identifiers) {
			return false
		}
		for name, target := range av.identifiers {
			other, ok := bv.identifiers[name]
			if !ok || other != target {
				return false
			}
		}
		return av.Create() == bv.Create() &&
			av.Put() == bv.Put() &&
			av.Read() == bv.Read() &&
			av.Update() == bv.Update() &&
			av.Delete() == bv.Delete() &&
			av.List() == bv.List() &&
			shapeIdSlicesEqual(av.Operations(), bv.Operations()) &&
			shapeIdSlicesEqual(av.Resources(), bv.Resources())
	case *ServiceShape:
		bv := b.(*ServiceShape)
		return av.Version() == bv.Version() &&
			shapeIdSlicesEqual(av.Operations(), bv.Operations()) &&
			shapeIdSlicesEqual(av.Resources(), bv.Resources())
	default:
		return false
	}
}

func shapeIdSlicesEqual(a, b []ShapeId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
