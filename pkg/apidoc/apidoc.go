// Package apidoc assembles the service's OpenAPI 3 document from the
// operations each router module declares.
package apidoc

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// BearerAuth is the security scheme name used by protected operations.
const BearerAuth = "bearerAuth"

type Info struct {
	Title       string
	Description string
	Version     string
	ServerURL   string
	ServerDesc  string
}

type Tag struct {
	Name        string
	Description string
}

// Builder collects operations into a single document. It is safe for
// concurrent use once modules have registered.
type Builder struct {
	mu  sync.RWMutex
	doc *openapi3.T
}

func New(info Info, tags ...Tag) *Builder {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       info.Title,
			Description: info.Description,
			Version:     info.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				BearerAuth: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}
	if info.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: info.ServerURL, Description: info.ServerDesc}}
	}
	for _, t := range tags {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: t.Name, Description: t.Description})
	}
	return &Builder{doc: doc}
}

// Add registers op under method and an OpenAPI-style path ("/users/{id}").
func (b *Builder) Add(method, path string, op *openapi3.Operation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	item := b.doc.Paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		b.doc.Paths.Set(path, item)
	}
	item.SetOperation(strings.ToUpper(method), op)
}

// Document returns the assembled document.
func (b *Builder) Document() *openapi3.T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc
}

func (b *Builder) MarshalJSON() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return json.Marshal(b.doc)
}

// Operation starts an operation with tags, summary and description set.
func Operation(tag, summary, description string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Tags = []string{tag}
	op.Summary = summary
	op.Description = description
	return op
}

// Secured marks op as requiring a bearer token.
func Secured(op *openapi3.Operation) *openapi3.Operation {
	op.Security = openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate(BearerAuth))
	return op
}

// UUIDPathParam declares a required path parameter in UUID format.
func UUIDPathParam(name, description string) *openapi3.Parameter {
	return openapi3.NewPathParameter(name).
		WithDescription(description).
		WithSchema(openapi3.NewUUIDSchema())
}

// JSONResponse describes a response carrying schema as application/json.
func JSONResponse(description string, schema *openapi3.Schema) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema)
}

// EmptyResponse describes a response without a body.
func EmptyResponse(description string) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description)
}

// JSONBody describes a required application/json request body.
func JSONBody(schema *openapi3.Schema) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(schema)}
}

// ErrorSchema matches response.ErrorBody.
func ErrorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("details", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("request_id", openapi3.NewStringSchema()).
		WithRequired([]string{"error"})
}
