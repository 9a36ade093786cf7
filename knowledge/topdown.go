// Package knowledge provides derived, read-only indexes computed from a
// Model: service topology, operation I/O resolution, identifier bindings,
// pagination, ARN templates, and HTTP bindings. Indexes never mutate the
// Model and silently exclude entries whose optional inputs are missing;
// reporting such gaps is a validator concern.
package knowledge

import (
	"sort"

	"github.com/seam-lang/seam/model"
)

// TopDownIndex records, for every service and resource, the complete set
// of operations and resources transitively reachable from it.
type TopDownIndex struct {
	operations map[model.ShapeId][]*model.OperationShape
	resources  map[model.ShapeId][]*model.ResourceShape
}

// ComputeTopDownIndex walks the topology from every service and resource
// root. Resource containment is expected to be a DAG, but a visited-set
// guard keeps the traversal terminating even on malformed input.
func ComputeTopDownIndex(m *model.Model) *TopDownIndex {
	idx := &TopDownIndex{
		operations: map[model.ShapeId][]*model.OperationShape{},
		resources:  map[model.ShapeId][]*model.ResourceShape{},
	}
	g := m.Graph()
	for svc := range g.Services() {
		idx.walk(g, svc.ID(), svc.Operations(), svc.Resources())
	}
	for res := range g.Resources() {
		idx.walk(g, res.ID(), res.AllOperations(), res.Resources())
	}
	return idx
}

func (idx *TopDownIndex) walk(g *model.Graph, root model.ShapeId, rootOps, rootResources []model.ShapeId) {
	if _, done := idx.operations[root]; done {
		return
	}
	var ops []*model.OperationShape
	var resources []*model.ResourceShape
	visited := map[model.ShapeId]bool{root: true}

	queueOps := append([]model.ShapeId(nil), rootOps...)
	queueResources := append([]model.ShapeId(nil), rootResources...)

	for len(queueOps) > 0 || len(queueResources) > 0 {
		for _, opID := range queueOps {
			if visited[opID] {
				continue
			}
			visited[opID] = true
			if op, ok := g.Operation(opID); ok {
				ops = append(ops, op)
			}
		}
		queueOps = nil

		next := queueResources
		queueResources = nil
		for _, resID := range next {
			if visited[resID] {
				continue
			}
			visited[resID] = true
			res, ok := g.Resource(resID)
			if !ok {
				continue
			}
			resources = append(resources, res)
			queueOps = append(queueOps, res.AllOperations()...)
			queueResources = append(queueResources, res.Resources()...)
		}
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].ID().Compare(ops[j].ID()) < 0 })
	sort.Slice(resources, func(i, j int) bool { return resources[i].ID().Compare(resources[j].ID()) < 0 })
	idx.operations[root] = ops
	idx.resources[root] = resources
}

// ContainedOperations returns every operation reachable from the given
// service or resource. The returned slice must not be mutated.
func (idx *TopDownIndex) ContainedOperations(container model.ShapeId) []*model.OperationShape {
	return idx.operations[container]
}

// ContainedResources returns every resource reachable from the given
// service or resource. The returned slice must not be mutated.
func (idx *TopDownIndex) ContainedResources(container model.ShapeId) []*model.ResourceShape {
	return idx.resources[container]
}
