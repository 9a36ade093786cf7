package model

import (
	"iter"
	"sort"

	"github.com/seam-lang/seam/model/node"
)

// Model pairs one shape graph with global metadata. It is the unit
// exchanged between pipeline stages: constructed once by an assembler and
// consumed read-only by indexes and the diff engine.
type Model struct {
	graph    *Graph
	metadata map[string]node.Node
}

// NewModel constructs a model over a graph and metadata. The metadata map
// is copied so later caller mutation cannot leak in.
func NewModel(graph *Graph, metadata map[string]node.Node) *Model {
	copied := make(map[string]node.Node, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return &Model{graph: graph, metadata: copied}
}

// Graph returns the model's shape graph.
func (m *Model) Graph() *Graph { return m.graph }

// MetadataProperty returns the metadata value for key, if present.
func (m *Model) MetadataProperty(key string) (node.Node, bool) {
	v, ok := m.metadata[key]
	return v, ok
}

// MetadataKeys returns the metadata keys in sorted order.
func (m *Model) MetadataKeys() []string {
	keys := make([]string, 0, len(m.metadata))
	for k := range m.metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Metadata iterates metadata entries in sorted key order.
func (m *Model) Metadata() iter.Seq2[string, node.Node] {
	return func(yield func(string, node.Node) bool) {
		for _, k := range m.MetadataKeys() {
			if !yield(k, m.metadata[k]) {
				return
			}
		}
	}
}

// ModelsEqual reports structural equality of two models: equal graphs and
// equal metadata. Intended for tests, not hot paths.
func ModelsEqual(a, b *Model) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a.metadata) != len(b.metadata) {
		return false
	}
	for k, v := range a.metadata {
		other, ok := b.metadata[k]
		if !ok || !node.Equal(v, other) {
			return false
		}
	}
	if a.graph.Len() != b.graph.Len() {
		return false
	}
	for s := range a.graph.All() {
		other, ok := b.graph.Get(s.ID())
		if !ok || !ShapesEqual(s, other) {
			return false
		}
	}
	return true
}
