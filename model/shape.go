package model

import (
	"fmt"
	"iter"
	"sort"

	"github.com/seam-lang/seam/model/node"
)

// ShapeKind identifies the concrete variant of a shape.
type ShapeKind int

const (
	KindBoolean ShapeKind = iota
	KindByte
	KindShort
	KindInteger
	KindLong
	KindFloat
	KindDouble
	KindBigInteger
	KindBigDecimal
	KindBlob
	KindString
	KindTimestamp
	KindList
	KindSet
	KindMap
	KindStructure
	KindUnion
	KindMember
	KindResource
	KindOperation
	KindService
)

var shapeKindNames = map[ShapeKind]string{
	KindBoolean:    "boolean",
	KindByte:       "byte",
	KindShort:      "short",
	KindInteger:    "integer",
	KindLong:       "long",
	KindFloat:      "float",
	KindDouble:     "double",
	KindBigInteger: "bigInteger",
	KindBigDecimal: "bigDecimal",
	KindBlob:       "blob",
	KindString:     "string",
	KindTimestamp:  "timestamp",
	KindList:       "list",
	KindSet:        "set",
	KindMap:        "map",
	KindStructure:  "structure",
	KindUnion:      "union",
	KindMember:     "member",
	KindResource:   "resource",
	KindOperation:  "operation",
	KindService:    "service",
}

// String returns the kind name as it appears in serialized models.
func (k ShapeKind) String() string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ParseShapeKind resolves a serialized kind name.
func ParseShapeKind(name string) (ShapeKind, error) {
	for k, n := range shapeKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", name)
}

// IsSimple reports whether the kind is one of the simple (non-aggregate,
// non-topology) kinds.
func (k ShapeKind) IsSimple() bool {
	return k >= KindBoolean && k <= KindTimestamp
}

// Shape is a node in the schema graph. Every shape owns an id, a trait
// set, and a source location. Shape equality is structural: same id, same
// kind-specific fields, same traits, independent of source location and
// insertion order.
type Shape interface {
	ID() ShapeId
	ShapeKind() ShapeKind
	Traits() Traits
	Source() node.SourceLocation

	shape()
}

type shapeBase struct {
	id     ShapeId
	traits Traits
	loc    node.SourceLocation
}

func (b shapeBase) ID() ShapeId                 { return b.id }
func (b shapeBase) Traits() Traits              { return b.traits }
func (b shapeBase) Source() node.SourceLocation { return b.loc }

// ShapeDef carries the optional construction state shared by all shapes.
type ShapeDef struct {
	Traits []Trait
	Source node.SourceLocation
}

func newBase(id ShapeId, def ShapeDef) (shapeBase, error) {
	if id.IsEmpty() {
		return shapeBase{}, &MissingRequiredError{Subject: "shape", Field: "id"}
	}
	traits, err := NewTraits(def.Traits)
	if err != nil {
		return shapeBase{}, fmt.Errorf("shape %s: %w", id, err)
	}
	return shapeBase{id: id, traits: traits, loc: def.Source}, nil
}

// SimpleShape is a shape of one of the simple kinds (boolean through
// timestamp).
type SimpleShape struct {
	shapeBase
	kind ShapeKind
}

func (*SimpleShape) shape() {}

// ShapeKind returns the simple kind this shape was constructed with.
func (s *SimpleShape) ShapeKind() ShapeKind { return s.kind }

// NewSimple constructs a simple shape of the given kind.
func NewSimple(kind ShapeKind, id ShapeId, def ShapeDef) (*SimpleShape, error) {
	if !kind.IsSimple() {
		return nil, fmt.Errorf("shape %s: %s is not a simple shape kind", id, kind)
	}
	base, err := newBase(id, def)
	if err != nil {
		return nil, err
	}
	return &SimpleShape{shapeBase: base, kind: kind}, nil
}

// MemberShape is a named reference from a container shape to a target
// shape. Its id is the container id with a member suffix.
type MemberShape struct {
	shapeBase
	target ShapeId
}

func (*MemberShape) shape() {}

// ShapeKind returns KindMember.
func (*MemberShape) ShapeKind() ShapeKind { return KindMember }

// Target returns the id of the shape the member points at.
func (m *MemberShape) Target() ShapeId { return m.target }

// Container returns the id of the shape that owns the member.
func (m *MemberShape) Container() ShapeId { return m.id.WithoutMember() }

// MemberName returns the member's name within its container.
func (m *MemberShape) MemberName() string { return m.id.Member() }

// NewMember constructs a member of the named container targeting target.
func NewMember(container ShapeId, name string, target ShapeId, def ShapeDef) (*MemberShape, error) {
	if name == "" {
		return nil, missingRequired(container, "member name")
	}
	if target.IsEmpty() {
		return nil, missingRequired(container.WithMember(name), "target")
	}
	base, err := newBase(container.WithMember(name), def)
	if err != nil {
		return nil, err
	}
	return &MemberShape{shapeBase: base, target: target}, nil
}

// ListShape holds a single "member" reference describing its elements.
type ListShape struct {
	shapeBase
	member *MemberShape
}

func (*ListShape) shape() {}

// ShapeKind returns KindList.
func (*ListShape) ShapeKind() ShapeKind { return KindList }

// Member returns the element member.
func (l *ListShape) Member() *MemberShape { return l.member }

// NewList constructs a list shape. The member is required.
func NewList(id ShapeId, member *MemberShape, def ShapeDef) (*ListShape, error) {
	if member == nil {
		return nil, missingRequired(id, "member")
	}
	base, err := newBase(id, def)
	if err != nil {
		return nil, err
	}
	return &ListShape{shapeBase: base, member: member}, nil
}

// SetShape holds a single "member" reference describing its elements.
type SetShape struct {
	shapeBase
	member *MemberShape
}

func (*SetShape) shape() {}

// ShapeKind returns KindSet.
func (*SetShape) ShapeKind() ShapeKind { return KindSet }

// Member returns the element member.
func (s *SetShape) Member() *MemberShape { return s.member }

// NewSet constructs a set shape. The member is required.
func NewSet(id ShapeId, member *MemberShape, def ShapeDef) (*SetShape, error) {
	if member == nil {
		return nil, missingRequired(id, "member")
	}
	base, err := newBase(id, def)
	if err != nil {
		return nil, err
	}
	return &SetShape{shapeBase: base, member: member}, nil
}

// MapShape holds "key" and "value" member references.
type MapShape struct {
	shapeBase
	key   *MemberShape
	value *MemberShape
}

func (*MapShape) shape() {}

// ShapeKind returns KindMap.
func (*MapShape) ShapeKind() ShapeKind { return KindMap }

// Key returns the key member.
func (m *MapShape) Key() *MemberShape { return m.key }

// Value returns the value member.
func (m *MapShape) Value() *MemberShape { return m.value }

// NewMap constructs a map shape. Both members are required.
func NewMap(id ShapeId, key, value *MemberShape, def ShapeDef) (*MapShape, error) {
	if key == nil {
		return nil, missingRequired(id, "key")
	}
	if value == nil {
		return nil, missingRequired(id, "value")
	}
	base, err := newBase(id, def)
	if err != nil {
		return nil, err
	}
	return &MapShape{shapeBase: base, key: key, value: value}, nil
}

// memberMap is the shared named-member storage of structures and unions.
type memberMap struct {
	names   []string
	members map[string]*MemberShape
}

func newMemberMap(container ShapeId, members []*MemberShape) (memberMap, error) {
	mm := memberMap{members: make(map[string]*MemberShape, len(members))}
	for _, m := range members {
		if m == nil {
			return memberMap{}, missingRequired(container, "member")
		}
		if m.Container() != container {
			return memberMap{}, fmt.Errorf("member %s does not belong to %s", m.ID(), container)
		}
		name := m.MemberName()
		if _, dup := mm.members[name]; dup {
			return memberMap{}, &DuplicateShapeError{ID: m.ID()}
		}
		mm.names = append(mm.names, name)
		mm.members[name] = m
	}
	return mm, nil
}

func (mm memberMap) get(name string) (*MemberShape, bool) {
	m, ok := mm.members[name]
	return m, ok
}

func (mm memberMap) all() iter.Seq[*MemberShape] {
	return func(yield func(*MemberShape) bool) {
		sorted := make([]string, len(mm.names))
		copy(sorted, mm.names)
		sort.Strings(sorted)
		for _, name := range sorted {
			if !yield(mm.members[name]) {
				return
			}
		}
	}
}

func (mm memberMap) equal(other memberMap) bool {
	if len(mm.members) != len(other.members) {
		return false
	}
	for name, m := range mm.members {
		o, ok := other.members[name]
		if !ok || !ShapesEqual(m, o) {
			return false
		}
	}
	return true
}

// StructureShape is a mapping of member names to members.
type StructureShape struct {
	shapeBase
	members memberMap
}

func (*StructureShape) shape() {}

// ShapeKind returns KindStructure.
func (*StructureShape) ShapeKind() ShapeKind { return KindStructure }

// Member returns the named member, if present.
func (s *StructureShape) Member(name string) (*MemberShape, bool) { return s.members.get(name) }

// Members iterates members sorted by name.
func (s *StructureShape) Members() iter.Seq[*MemberShape] { return s.members.all() }

// MemberCount returns the number of members.
func (s *StructureShape) MemberCount() int { return len(s.members.members) }

// NewStructure constructs a structure shape from its members. Each member's
// container must be the structure's id.
func NewStructure(id ShapeId, members []*MemberShape, def ShapeDef) (*StructureShape, error) {
	base, err := newBase(id, def)
	if err != nil {
		return nil, err
	}
	mm, err := newMemberMap(id, members)
	if err != nil {
		return nil, err
	}
	return &StructureShape{shapeBase: base, members: mm}, nil
}

// UnionShape is a tagged union: a mapping of member names to members, of
// which exactly one is present in any value.
type UnionShape struct {
	shapeBase
	members memberMap
}

func (*UnionShape) shape() {}

// ShapeKind returns KindUnion.
func (*UnionShape) ShapeKind() ShapeKind { return KindUnion }

// Member returns the named member, if present.
func (u *UnionShape) Member(name string) (*MemberShape, bool) { return u.members.get(name) }

// Members iterates members sorted by name.
func (u *UnionShape) Members() iter.Seq[*MemberShape] { return u.members.all() }

// MemberCount returns the number of members.
func (u *UnionShape) MemberCount() int { return len(u.members.members) }

// NewUnion constructs a union shape. At least one member is required.
func NewUnion(id ShapeId, members []*MemberShape, def ShapeDef) (*UnionShape, error) {
	if len(members) == 0 {
		return nil, missingRequired(id, "members")
	}
	base, err := newBase(id, def)
	if err != nil {
		return nil, err
	}
	mm, err := newMemberMap(id, members)
	if err != nil {
		return nil, err
	}
	return &UnionShape{shapeBase: base, members: mm}, nil
}

// OperationDef carries the optional fields of an operation shape.
type OperationDef struct {
	Input  ShapeId
	Output ShapeId
	Errors []ShapeId
	ShapeDef
}

// OperationShape models a callable operation with optional input and
// output structures and a list of error structures.
type OperationShape struct {
	shapeBase
	input  ShapeId
	output ShapeId
	errors []ShapeId
}

func (*OperationShape) shape() {}

// ShapeKind returns KindOperation.
func (*OperationShape) ShapeKind() ShapeKind { return KindOperation }

// Input returns the input shape id; the zero id when the operation has no
// input.
func (o *OperationShape) Input() ShapeId { return o.input }

// Output returns the output shape id; the zero id when the operation has
// no output.
func (o *OperationShape) Output() ShapeId { return o.output }

// Errors returns the error shape ids. The returned slice must not be
// mutated.
func (o *OperationShape) Errors() []ShapeId { return o.errors }

// NewOperation constructs an operation shape.
func NewOperation(id ShapeId, opDef OperationDef) (*OperationShape, error) {
	base, err := newBase(id, opDef.ShapeDef)
	if err != nil {
		return nil, err
	}
	errs := append([]ShapeId(nil), opDef.Errors...)
	return &OperationShape{shapeBase: base, input: opDef.Input, output: opDef.Output, errors: errs}, nil
}

// ResourceDef carries the fields of a resource shape. All fields are
// optional.
type ResourceDef struct {
	// Identifiers maps identifier names to the shapes that type them.
	Identifiers map[string]ShapeId
	// Lifecycle operation references.
	Create ShapeId
	Put    ShapeId
	Read   ShapeId
	Update ShapeId
	Delete ShapeId
	List   ShapeId
	// Non-lifecycle operations and child resources.
	Operations []ShapeId
	Resources  []ShapeId
	ShapeDef
}

// ResourceShape models an addressable resource with identifiers, lifecycle
// operations, auxiliary operations, and child resources.
type ResourceShape struct {
	shapeBase
	identifierNames []string
	identifiers     map[string]ShapeId
	create          ShapeId
	put             ShapeId
	read            ShapeId
	update          ShapeId
	delete          ShapeId
	list            ShapeId
	operations      []ShapeId
	resources       []ShapeId
}

func (*ResourceShape) shape() {}

// ShapeKind returns KindResource.
func (*ResourceShape) ShapeKind() ShapeKind { return KindResource }

// IdentifierNames returns the identifier names in sorted order. The
// returned slice must not be mutated.
func (r *ResourceShape) IdentifierNames() []string { return r.identifierNames }

// Identifier returns the shape typing the named identifier, if defined.
func (r *ResourceShape) Identifier(name string) (ShapeId, bool) {
	id, ok := r.identifiers[name]
	return id, ok
}

// Create returns the create lifecycle operation id, possibly zero.
func (r *ResourceShape) Create() ShapeId { return r.create }

// Put returns the put lifecycle operation id, possibly zero.
func (r *ResourceShape) Put() ShapeId { return r.put }

// Read returns the read lifecycle operation id, possibly zero.
func (r *ResourceShape) Read() ShapeId { return r.read }

// Update returns the update lifecycle operation id, possibly zero.
func (r *ResourceShape) Update() ShapeId { return r.update }

// Delete returns the delete lifecycle operation id, possibly zero.
func (r *ResourceShape) Delete() ShapeId { return r.delete }

// List returns the list lifecycle operation id, possibly zero.
func (r *ResourceShape) List() ShapeId { return r.list }

// Operations returns the non-lifecycle operation ids. The returned slice
// must not be mutated.
func (r *ResourceShape) Operations() []ShapeId { return r.operations }

// Resources returns the child resource ids. The returned slice must not be
// mutated.
func (r *ResourceShape) Resources() []ShapeId { return r.resources }

// AllOperations returns every operation reference of the resource:
// lifecycle then non-lifecycle.
func (r *ResourceShape) AllOperations() []ShapeId {
	var out []ShapeId
	for _, id := range []ShapeId{r.create, r.put, r.read, r.update, r.delete, r.list} {
		if !id.IsEmpty() {
			out = append(out, id)
		}
	}
	return append(out, r.operations...)
}

// HasChildResource reports whether the resource lists child among its
// child resources.
func (r *ResourceShape) HasChildResource(child ShapeId) bool {
	for _, id := range r.resources {
		if id == child {
			return true
		}
	}
	return false
}

// NewResource constructs a resource shape.
func NewResource(id ShapeId, resDef ResourceDef) (*ResourceShape, error) {
	base, err := newBase(id, resDef.ShapeDef)
	if err != nil {
		return nil, err
	}
	identifiers := make(map[string]ShapeId, len(resDef.Identifiers))
	names := make([]string, 0, len(resDef.Identifiers))
	for name, target := range resDef.Identifiers {
		if target.IsEmpty() {
			return nil, fmt.Errorf("resource %s: identifier %q has no target", id, name)
		}
		identifiers[name] = target
		names = append(names, name)
	}
	sort.Strings(names)
	return &ResourceShape{
		shapeBase:       base,
		identifierNames: names,
		identifiers:     identifiers,
		create:          resDef.Create,
		put:             resDef.Put,
		read:            resDef.Read,
		update:          resDef.Update,
		delete:          resDef.Delete,
		list:            resDef.List,
		operations:      append([]ShapeId(nil), resDef.Operations...),
		resources:       append([]ShapeId(nil), resDef.Resources...),
	}, nil
}

// ServiceDef carries the fields of a service shape. Version is required.
type ServiceDef struct {
	Version    string
	Operations []ShapeId
	Resources  []ShapeId
	ShapeDef
}

// ServiceShape is the root of a service topology: a version plus the
// operations and resources bound directly to the service.
type ServiceShape struct {
	shapeBase
	version    string
	operations []ShapeId
	resources  []ShapeId
}

func (*ServiceShape) shape() {}

// ShapeKind returns KindService.
func (*ServiceShape) ShapeKind() ShapeKind { return KindService }

// Version returns the service version string.
func (s *ServiceShape) Version() string { return s.version }

// Operations returns the operation ids bound directly to the service. The
// returned slice must not be mutated.
func (s *ServiceShape) Operations() []ShapeId { return s.operations }

// Resources returns the resource ids bound directly to the service. The
// returned slice must not be mutated.
func (s *ServiceShape) Resources() []ShapeId { return s.resources }

// NewService constructs a service shape. Version is required.
func NewService(id ShapeId, svcDef ServiceDef) (*ServiceShape, error) {
	if svcDef.Version == "" {
		return nil, missingRequired(id, "version")
	}
	base, err := newBase(id, svcDef.ShapeDef)
	if err != nil {
		return nil, err
	}
	return &ServiceShape{
		shapeBase:  base,
		version:    svcDef.Version,
		operations: append([]ShapeId(nil), svcDef.Operations...),
		resources:  append([]ShapeId(nil), svcDef.Resources...),
	}, nil
}
