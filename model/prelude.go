package model

// Well-known trait ids used by the knowledge indexes. Trait values are
// plain nodes; these ids only name the definitions.
var (
	// RequiredTrait marks a structure member as required.
	RequiredTrait = MustParseShapeId("seam.api#required")

	// PaginatedTrait configures pagination token/page-size/items members
	// on operations, with service-level defaults.
	PaginatedTrait = MustParseShapeId("seam.api#paginated")

	// ReferencesTrait declares that members of a structure alias resource
	// identifiers under different names.
	ReferencesTrait = MustParseShapeId("seam.api#references")

	// HttpTrait binds an operation to an HTTP method, URI, and status code.
	HttpTrait = MustParseShapeId("seam.api#http")

	// HttpLabelTrait binds an input member to a URI label.
	HttpLabelTrait = MustParseShapeId("seam.api#httpLabel")

	// HttpQueryTrait binds an input member to a query string parameter.
	HttpQueryTrait = MustParseShapeId("seam.api#httpQuery")

	// HttpHeaderTrait binds a member to an HTTP header.
	HttpHeaderTrait = MustParseShapeId("seam.api#httpHeader")

	// HttpPayloadTrait binds a member to the raw HTTP message body.
	HttpPayloadTrait = MustParseShapeId("seam.api#httpPayload")

	// ArnTrait configures the ARN template of a resource, relative to the
	// service the resource is bound to.
	ArnTrait = MustParseShapeId("aws.api#arn")

	// ServiceTrait carries AWS-facing service settings, including the ARN
	// namespace.
	ServiceTrait = MustParseShapeId("aws.api#service")
)
