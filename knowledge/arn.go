package knowledge

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/seam-lang/seam/model"
	"github.com/seam-lang/seam/model/node"
)

var arnLabelPattern = regexp.MustCompile(`\{([^}]+)}`)

// ArnTemplate is the parsed value of an aws.api#arn trait attached to a
// resource.
type ArnTemplate struct {
	// Template is the resource part of the ARN, e.g. "instance/{id}".
	Template string
	// Absolute templates are used verbatim instead of being prefixed
	// with arn/partition/namespace/region/account segments.
	Absolute bool
	// NoRegion and NoAccount omit the respective segments from the
	// expanded template.
	NoRegion  bool
	NoAccount bool
	// Labels are the "{name}" placeholders found in Template, in order.
	Labels []string
}

// ParseArnTemplate parses an ARN trait value. The template property is
// required and must not start with "/".
func ParseArnTemplate(t model.Trait) (ArnTemplate, error) {
	obj, err := node.ExpectObject(t.Value)
	if err != nil {
		return ArnTemplate{}, fmt.Errorf("%s trait: %w", model.ArnTrait, err)
	}
	template, err := obj.StringMember("template")
	if err != nil {
		return ArnTemplate{}, fmt.Errorf("%s trait: %w", model.ArnTrait, err)
	}
	if strings.HasPrefix(template, "/") {
		return ArnTemplate{}, fmt.Errorf("%s trait: template must not start with '/', found %q", model.ArnTrait, template)
	}
	var labels []string
	for _, match := range arnLabelPattern.FindAllStringSubmatch(template, -1) {
		labels = append(labels, match[1])
	}
	return ArnTemplate{
		Template:  template,
		Absolute:  obj.BoolMemberOrDefault("absolute"),
		NoRegion:  obj.BoolMemberOrDefault("noRegion"),
		NoAccount: obj.BoolMemberOrDefault("noAccount"),
		Labels:    labels,
	}, nil
}

// ArnIndex resolves ARN namespaces and templates for each service and the
// effective ARN of each operation under those services.
type ArnIndex struct {
	namespaces map[model.ShapeId]string
	templates  map[model.ShapeId]map[model.ShapeId]ArnTemplate
	effective  map[model.ShapeId]map[model.ShapeId]ArnTemplate
}

// ComputeArnIndex resolves, for every service: the ARN namespace (from the
// service trait's arnNamespace property), the ARN template of each
// contained resource carrying an ARN trait, and the effective ARN of each
// operation under those resources. Unparseable ARN traits are skipped;
// surfacing them is a validator concern.
func ComputeArnIndex(m *model.Model) *ArnIndex {
	idx := &ArnIndex{
		namespaces: map[model.ShapeId]string{},
		templates:  map[model.ShapeId]map[model.ShapeId]ArnTemplate{},
		effective:  map[model.ShapeId]map[model.ShapeId]ArnTemplate{},
	}
	topDown := ComputeTopDownIndex(m)
	bindings := ComputeIdentifierBindingIndex(m)

	for svc := range m.Graph().Services() {
		if t, ok := svc.Traits().Get(model.ServiceTrait); ok {
			if obj, isObj := node.AsObject(t.Value); isObj {
				if ns, set := obj.OptionalStringMember("arnNamespace"); set {
					idx.namespaces[svc.ID()] = ns
				}
			}
		}

		templates := map[model.ShapeId]ArnTemplate{}
		idx.templates[svc.ID()] = templates
		for _, res := range topDown.ContainedResources(svc.ID()) {
			t, ok := res.Traits().Get(model.ArnTrait)
			if !ok {
				continue
			}
			parsed, err := ParseArnTemplate(t)
			if err != nil {
				continue
			}
			templates[res.ID()] = parsed
		}

		idx.effective[svc.ID()] = compileEffectiveArns(svc, templates, topDown, bindings)
	}
	return idx
}

// compileEffectiveArns maps operations to ARN templates. An instance-bound
// operation takes the ARN of its own resource; a collection-bound
// operation takes the ARN of the resource's parent, found by scanning the
// service's resources for one listing the child.
func compileEffectiveArns(
	svc *model.ServiceShape,
	templates map[model.ShapeId]ArnTemplate,
	topDown *TopDownIndex,
	bindings *IdentifierBindingIndex,
) map[model.ShapeId]ArnTemplate {
	out := map[model.ShapeId]ArnTemplate{}
	for resID, tmpl := range templates {
		for _, op := range topDown.ContainedOperations(resID) {
			switch bindings.OperationBinding(resID, op.ID()) {
			case InstanceBinding:
				out[op.ID()] = tmpl
			case CollectionBinding:
				for _, parent := range topDown.ContainedResources(svc.ID()) {
					if !parent.HasChildResource(resID) {
						continue
					}
					if parentTmpl, ok := templates[parent.ID()]; ok {
						out[op.ID()] = parentTmpl
					}
				}
			}
		}
	}
	return out
}

// ServiceArnNamespace returns the ARN namespace of a service, defaulting
// to the lowercased service shape name when no service trait sets one.
func (idx *ArnIndex) ServiceArnNamespace(service model.ShapeId) string {
	if ns, ok := idx.namespaces[service]; ok {
		return ns
	}
	return strings.ToLower(service.Name())
}

// ServiceResourceArns returns the mapping of resource ids to parsed ARN
// templates for a service. The returned map must not be mutated.
func (idx *ArnIndex) ServiceResourceArns(service model.ShapeId) map[model.ShapeId]ArnTemplate {
	return idx.templates[service]
}

// EffectiveOperationArn returns the effective ARN template of an operation
// under a service: the owning resource's template for instance bindings,
// the parent resource's template for collection bindings.
func (idx *ArnIndex) EffectiveOperationArn(service, operation model.ShapeId) (ArnTemplate, bool) {
	ops, ok := idx.effective[service]
	if !ok {
		return ArnTemplate{}, false
	}
	tmpl, ok := ops[operation]
	return tmpl, ok
}

// FullResourceArnTemplate expands a resource's relative ARN template with
// the service's namespace into the form
// "arn:{AWS::Partition}:<namespace>:{AWS::Region}:{AWS::AccountId}:<template>",
// omitting the region and account segments per the trait's flags. Absolute
// templates are returned verbatim.
func (idx *ArnIndex) FullResourceArnTemplate(service, resource model.ShapeId) (string, bool) {
	tmpl, ok := idx.templates[service][resource]
	if !ok {
		return "", false
	}
	if tmpl.Absolute {
		return tmpl.Template, true
	}
	var sb strings.Builder
	sb.WriteString("arn:{AWS::Partition}:")
	sb.WriteString(idx.ServiceArnNamespace(service))
	sb.WriteString(":")
	if !tmpl.NoRegion {
		sb.WriteString("{AWS::Region}")
	}
	sb.WriteString(":")
	if !tmpl.NoAccount {
		sb.WriteString("{AWS::AccountId}")
	}
	sb.WriteString(":")
	sb.WriteString(tmpl.Template)
	return sb.String(), true
}
