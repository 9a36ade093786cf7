package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/seam-lang/seam/knowledge"
	"github.com/seam-lang/seam/model"
)

// HttpSummary describes an operation's HTTP dispatch.
type HttpSummary struct {
	Method string `json:"method"`
	URI    string `json:"uri"`
	Code   int    `json:"code"`
}

// PaginationSummary names the resolved pagination members of an
// operation.
type PaginationSummary struct {
	InputToken  string `json:"inputToken"`
	OutputToken string `json:"outputToken"`
	PageSize    string `json:"pageSize,omitempty"`
	Items       string `json:"items,omitempty"`
}

// OperationInfo summarizes one operation within a service.
type OperationInfo struct {
	ID         string             `json:"id"`
	Binding    string             `json:"binding,omitempty"`
	Arn        string             `json:"arn,omitempty"`
	Http       *HttpSummary       `json:"http,omitempty"`
	Pagination *PaginationSummary `json:"pagination,omitempty"`
}

// ResourceInfo summarizes one resource within a service.
type ResourceInfo struct {
	ID          string          `json:"id"`
	Identifiers []string        `json:"identifiers,omitempty"`
	Arn         string          `json:"arn,omitempty"`
	Operations  []OperationInfo `json:"operations,omitempty"`
}

// ServiceInfo summarizes one service and everything reachable from it.
type ServiceInfo struct {
	ID           string          `json:"id"`
	Version      string          `json:"version"`
	ArnNamespace string          `json:"arnNamespace"`
	Operations   []OperationInfo `json:"operations,omitempty"`
	Resources    []ResourceInfo  `json:"resources,omitempty"`
}

// InspectReport is the topology summary of one model.
type InspectReport struct {
	ShapeCount int           `json:"shapeCount"`
	Metadata   []string      `json:"metadata,omitempty"`
	Services   []ServiceInfo `json:"services,omitempty"`
}

// NewInspectReport assembles a sorted topology summary using the given
// knowledge cache.
func NewInspectReport(m *model.Model, cache *knowledge.Cache) *InspectReport {
	topDown := cache.TopDown(m)
	bindings := cache.IdentifierBindings(m)
	paginated := cache.Paginated(m)
	arns := cache.Arn(m)
	http := cache.HttpBindings(m)

	r := &InspectReport{
		ShapeCount: m.Graph().Len(),
		Metadata:   m.MetadataKeys(),
	}

	for svc := range m.Graph().Services() {
		info := ServiceInfo{
			ID:           svc.ID().String(),
			Version:      svc.Version(),
			ArnNamespace: arns.ServiceArnNamespace(svc.ID()),
		}

		// Operations bound straight to the service have no resource
		// context, so no identifier binding applies.
		for _, opID := range svc.Operations() {
			info.Operations = append(info.Operations, operationInfo(svc.ID(), opID, "", paginated, arns, http))
		}
		sort.Slice(info.Operations, func(i, j int) bool { return info.Operations[i].ID < info.Operations[j].ID })

		for _, res := range topDown.ContainedResources(svc.ID()) {
			resInfo := ResourceInfo{
				ID:          res.ID().String(),
				Identifiers: res.IdentifierNames(),
			}
			if tpl, ok := arns.FullResourceArnTemplate(svc.ID(), res.ID()); ok {
				resInfo.Arn = tpl
			}
			for _, opID := range res.AllOperations() {
				binding := bindings.OperationBinding(res.ID(), opID).String()
				resInfo.Operations = append(resInfo.Operations, operationInfo(svc.ID(), opID, binding, paginated, arns, http))
			}
			sort.Slice(resInfo.Operations, func(i, j int) bool { return resInfo.Operations[i].ID < resInfo.Operations[j].ID })
			info.Resources = append(info.Resources, resInfo)
		}
		sort.Slice(info.Resources, func(i, j int) bool { return info.Resources[i].ID < info.Resources[j].ID })

		r.Services = append(r.Services, info)
	}
	sort.Slice(r.Services, func(i, j int) bool { return r.Services[i].ID < r.Services[j].ID })
	return r
}

func operationInfo(
	service, opID model.ShapeId,
	binding string,
	paginated *knowledge.PaginatedIndex,
	arns *knowledge.ArnIndex,
	http *knowledge.HttpBindingIndex,
) OperationInfo {
	info := OperationInfo{ID: opID.String(), Binding: binding}

	if tpl, ok := arns.EffectiveOperationArn(service, opID); ok {
		info.Arn = tpl.Template
	}
	if dispatch, ok := http.Dispatch(opID); ok {
		info.Http = &HttpSummary{Method: dispatch.Method, URI: dispatch.URI, Code: dispatch.Code}
	}
	if page, ok := paginated.PaginationInfo(service, opID); ok {
		summary := &PaginationSummary{
			InputToken:  page.InputToken.MemberName(),
			OutputToken: page.OutputToken.MemberName(),
		}
		if page.PageSize != nil {
			summary.PageSize = page.PageSize.MemberName()
		}
		if page.Items != nil {
			summary.Items = page.Items.MemberName()
		}
		info.Pagination = summary
	}
	return info
}

// RenderJSON writes the report as indented JSON.
func (r *InspectReport) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Render writes the report as human-readable text.
func (r *InspectReport) Render(w io.Writer, colorize bool) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.Bold)
	if !colorize {
		header.DisableColor()
		label.DisableColor()
	}

	fmt.Fprintf(w, "%d shapes", r.ShapeCount)
	if len(r.Metadata) > 0 {
		fmt.Fprintf(w, ", metadata: %v", r.Metadata)
	}
	fmt.Fprintln(w)

	for _, svc := range r.Services {
		header.Fprintf(w, "service %s\n", svc.ID)
		fmt.Fprintf(w, "  version: %s\n", svc.Version)
		fmt.Fprintf(w, "  arn namespace: %s\n", svc.ArnNamespace)
		for _, op := range svc.Operations {
			renderOperation(w, label, "  ", op)
		}
		for _, res := range svc.Resources {
			label.Fprintf(w, "  resource %s\n", res.ID)
			if len(res.Identifiers) > 0 {
				fmt.Fprintf(w, "    identifiers: %v\n", res.Identifiers)
			}
			if res.Arn != "" {
				fmt.Fprintf(w, "    arn: %s\n", res.Arn)
			}
			for _, op := range res.Operations {
				renderOperation(w, label, "    ", op)
			}
		}
	}
}

func renderOperation(w io.Writer, label *color.Color, indent string, op OperationInfo) {
	label.Fprintf(w, "%soperation %s", indent, op.ID)
	if op.Binding != "" {
		fmt.Fprintf(w, " [%s]", op.Binding)
	}
	fmt.Fprintln(w)
	if op.Http != nil {
		fmt.Fprintf(w, "%s  http: %s %s (%d)\n", indent, op.Http.Method, op.Http.URI, op.Http.Code)
	}
	if op.Arn != "" {
		fmt.Fprintf(w, "%s  arn: %s\n", indent, op.Arn)
	}
	if op.Pagination != nil {
		fmt.Fprintf(w, "%s  paginated: %s/%s", indent, op.Pagination.InputToken, op.Pagination.OutputToken)
		if op.Pagination.Items != "" {
			fmt.Fprintf(w, " items=%s", op.Pagination.Items)
		}
		if op.Pagination.PageSize != "" {
			fmt.Fprintf(w, " pageSize=%s", op.Pagination.PageSize)
		}
		fmt.Fprintln(w)
	}
}
