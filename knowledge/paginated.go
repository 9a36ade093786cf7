package knowledge

import (
	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// paginatedTrait is the parsed value of a seam.api#paginated trait.
// All fields are optional; operation-level values win over service-level
// defaults.
type paginatedTrait struct {
	inputToken  string
	outputToken string
	pageSize    string
	items       string
}

func parsePaginatedTrait(t model.Trait) paginatedTrait {
	var p paginatedTrait
	obj, ok := node.AsObject(t.Value)
	if !ok {
		return p
	}
	p.inputToken, _ = obj.OptionalStringMember("inputToken")
	p.outputToken, _ = obj.OptionalStringMember("outputToken")
	p.pageSize, _ = obj.OptionalStringMember("pageSize")
	p.items, _ = obj.OptionalStringMember("items")
	return p
}

// merge fills unset fields from a service-level default.
func (p paginatedTrait) merge(def paginatedTrait) paginatedTrait {
	if p.inputToken == "" {
		p.inputToken = def.inputToken
	}
	if p.outputToken == "" {
		p.outputToken = def.outputToken
	}
	if p.pageSize == "" {
		p.pageSize = def.pageSize
	}
	if p.items == "" {
		p.items = def.items
	}
	return p
}

// PaginationInfo is the fully resolved pagination binding of one operation
// within one service.
type PaginationInfo struct {
	Service   *model.ServiceShape
	Operation *model.OperationShape
	Input     *model.StructureShape
	Output    *model.StructureShape

	// InputToken and OutputToken are always resolved.
	InputToken  *model.MemberShape
	OutputToken *model.MemberShape
	// PageSize and Items are nil when unset or unresolvable.
	PageSize *model.MemberShape
	Items    *model.MemberShape
}

// PaginatedIndex maps each service's paginated operations to their
// resolved pagination members. Operations whose trait cannot be fully
// resolved (no input or output structure, or unresolvable token members)
// are excluded without error.
type PaginatedIndex struct {
	info map[model.ShapeId]map[model.ShapeId]PaginationInfo
}

// ComputePaginatedIndex resolves the paginated trait of every operation
// reachable from each service, merging in the service-level trait
// defaults.
func ComputePaginatedIndex(m *model.Model) *PaginatedIndex {
	idx := &PaginatedIndex{info: map[model.ShapeId]map[model.ShapeId]PaginationInfo{}}
	topDown := ComputeTopDownIndex(m)
	ops := ComputeOperationIndex(m)

	for svc := range m.Graph().Services() {
		var serviceDefault paginatedTrait
		if t, ok := svc.Traits().Get(model.PaginatedTrait); ok {
			serviceDefault = parsePaginatedTrait(t)
		}
		mappings := map[model.ShapeId]PaginationInfo{}
		for _, op := range topDown.ContainedOperations(svc.ID()) {
			t, ok := op.Traits().Get(model.PaginatedTrait)
			if !ok {
				continue
			}
			merged := parsePaginatedTrait(t).merge(serviceDefault)
			if info, ok := resolvePagination(svc, op, merged, ops); ok {
				mappings[op.ID()] = info
			}
		}
		idx.info[svc.ID()] = mappings
	}
	return idx
}

func resolvePagination(
	svc *model.ServiceShape,
	op *model.OperationShape,
	trait paginatedTrait,
	ops *OperationIndex,
) (PaginationInfo, bool) {
	input, okIn := ops.Input(op.ID())
	output, okOut := ops.Output(op.ID())
	if !okIn || !okOut {
		return PaginationInfo{}, false
	}

	inputToken := resolveMember(input, trait.inputToken)
	outputToken := resolveMember(output, trait.outputToken)
	if inputToken == nil || outputToken == nil {
		return PaginationInfo{}, false
	}

	return PaginationInfo{
		Service:     svc,
		Operation:   op,
		Input:       input,
		Output:      output,
		InputToken:  inputToken,
		OutputToken: outputToken,
		PageSize:    resolveMember(input, trait.pageSize),
		Items:       resolveMember(output, trait.items),
	}, true
}

func resolveMember(s *model.StructureShape, name string) *model.MemberShape {
	if name == "" {
		return nil
	}
	m, ok := s.Member(name)
	if !ok {
		return nil
	}
	return m
}

// PaginationInfo returns the resolved pagination binding of an operation
// within a service, if the operation is paginated and fully resolvable.
func (idx *PaginatedIndex) PaginationInfo(service, operation model.ShapeId) (PaginationInfo, bool) {
	mappings, ok := idx.info[service]
	if !ok {
		return PaginationInfo{}, false
	}
	info, ok := mappings[operation]
	return info, ok
}
