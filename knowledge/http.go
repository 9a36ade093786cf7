package knowledge

import (
	"sort"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

// HttpBindingLocation identifies where a member is carried in an HTTP
// message.
type HttpBindingLocation int

const (
	// HttpDocument members are carried in the structured message body.
	HttpDocument HttpBindingLocation = iota
	// HttpLabel members fill URI path labels.
	HttpLabel
	// HttpQuery members are query string parameters.
	HttpQuery
	// HttpHeader members are HTTP headers.
	HttpHeader
	// HttpPayload members form the raw message body.
	HttpPayload
)

// String returns the lowercase location name.
func (l HttpBindingLocation) String() string {
	switch l {
	case HttpLabel:
		return "label"
	case HttpQuery:
		return "query"
	case HttpHeader:
		return "header"
	case HttpPayload:
		return "payload"
	default:
		return "document"
	}
}

// HttpBinding binds one member to a location in an HTTP message.
type HttpBinding struct {
	Member   *model.MemberShape
	Location HttpBindingLocation
	// Name is the on-the-wire name: the label, query parameter, or
	// header name, defaulting to the member name.
	Name string
}

// HttpDispatch is the parsed value of an operation's http trait.
type HttpDispatch struct {
	Method string
	URI    string
	Code   int
}

// HttpBindingIndex resolves the HTTP dispatch and member bindings of every
// operation carrying an http trait. Operations without the trait, or whose
// trait lacks method or uri, have no entry.
type HttpBindingIndex struct {
	dispatch map[model.ShapeId]HttpDispatch
	requests map[model.ShapeId][]HttpBinding
	response map[model.ShapeId][]HttpBinding
}

// ComputeHttpBindingIndex builds the index from every operation in the
// model.
func ComputeHttpBindingIndex(m *model.Model) *HttpBindingIndex {
	idx := &HttpBindingIndex{
		dispatch: map[model.ShapeId]HttpDispatch{},
		requests: map[model.ShapeId][]HttpBinding{},
		response: map[model.ShapeId][]HttpBinding{},
	}
	ops := ComputeOperationIndex(m)

	for op := range m.Graph().Operations() {
		t, ok := op.Traits().Get(model.HttpTrait)
		if !ok {
			continue
		}
		obj, isObj := node.AsObject(t.Value)
		if !isObj {
			continue
		}
		method, okMethod := obj.OptionalStringMember("method")
		uri, okURI := obj.OptionalStringMember("uri")
		if !okMethod || !okURI {
			continue
		}
		dispatch := HttpDispatch{Method: method, URI: uri, Code: 200}
		if code, okCode := obj.Get("code"); okCode {
			if n, isNum := code.(*node.NumberNode); isNum {
				if i, exact := n.Int(); exact {
					dispatch.Code = int(i)
				}
			}
		}
		idx.dispatch[op.ID()] = dispatch

		if input, okIn := ops.Input(op.ID()); okIn {
			idx.requests[op.ID()] = bindMembers(input, true)
		}
		if output, okOut := ops.Output(op.ID()); okOut {
			idx.response[op.ID()] = bindMembers(output, false)
		}
	}
	return idx
}

// bindMembers classifies a structure's members by their binding traits.
// Label and query bindings only apply on the request side; anything
// unbound defaults to the document.
func bindMembers(s *model.StructureShape, request bool) []HttpBinding {
	var out []HttpBinding
	for m := range s.Members() {
		binding := HttpBinding{Member: m, Location: HttpDocument, Name: m.MemberName()}
		switch {
		case request && m.Traits().Has(model.HttpLabelTrait):
			binding.Location = HttpLabel
		case request && m.Traits().Has(model.HttpQueryTrait):
			binding.Location = HttpQuery
			if t, ok := m.Traits().Get(model.HttpQueryTrait); ok {
				if name, isString := node.AsString(t.Value); isString && name != "" {
					binding.Name = name
				}
			}
		case m.Traits().Has(model.HttpHeaderTrait):
			binding.Location = HttpHeader
			if t, ok := m.Traits().Get(model.HttpHeaderTrait); ok {
				if name, isString := node.AsString(t.Value); isString && name != "" {
					binding.Name = name
				}
			}
		case m.Traits().Has(model.HttpPayloadTrait):
			binding.Location = HttpPayload
		}
		out = append(out, binding)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Member.MemberName() < out[j].Member.MemberName()
	})
	return out
}

// Dispatch returns the parsed http trait of an operation.
func (idx *HttpBindingIndex) Dispatch(operation model.ShapeId) (HttpDispatch, bool) {
	d, ok := idx.dispatch[operation]
	return d, ok
}

// RequestBindings returns the input member bindings of an operation,
// sorted by member name. The returned slice must not be mutated.
func (idx *HttpBindingIndex) RequestBindings(operation model.ShapeId) []HttpBinding {
	return idx.requests[operation]
}

// ResponseBindings returns the output member bindings of an operation,
// sorted by member name. The returned slice must not be mutated.
func (idx *HttpBindingIndex) ResponseBindings(operation model.ShapeId) []HttpBinding {
	return idx.response[operation]
}
