package apidoc

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Document(t *testing.T) {
	b := New(Info{Title: "Core API", Version: "1.0.0", ServerURL: "https://api.example.com/v1/core", ServerDesc: "Production"},
		Tag{Name: "users", Description: "User management"})

	list := Operation("users", "List users", "")
	list.AddResponse(http.StatusOK, JSONResponse("Users", openapi3.NewObjectSchema()))
	b.Add(http.MethodGet, "/users", Secured(list))

	del := Operation("users", "Delete user", "")
	del.AddParameter(UUIDPathParam("id", "User ID"))
	del.AddResponse(http.StatusNoContent, EmptyResponse("Deleted"))
	b.Add("delete", "/users/{id}", Secured(del))

	get := Operation("users", "Get user", "")
	get.AddParameter(UUIDPathParam("id", "User ID"))
	get.AddResponse(http.StatusNotFound, JSONResponse("Not found", ErrorSchema()))
	b.Add(http.MethodGet, "/users/{id}", get)

	doc := b.Document()
	require.NotNil(t, doc.Paths.Value("/users/{id}"))
	assert.Equal(t, del, doc.Paths.Value("/users/{id}").Delete)
	assert.Equal(t, get, doc.Paths.Value("/users/{id}").Get)

	raw, err := b.MarshalJSON()
	require.NoError(t, err)

	var out struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]map[string]struct {
			Security []map[string][]string `json:"security"`
		} `json:"paths"`
		Components struct {
			SecuritySchemes map[string]struct {
				Type   string `json:"type"`
				Scheme string `json:"scheme"`
			} `json:"securitySchemes"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "3.0.3", out.OpenAPI)
	assert.Equal(t, "Core API", out.Info.Title)
	require.Len(t, out.Servers, 1)
	assert.Equal(t, "https://api.example.com/v1/core", out.Servers[0].URL)
	assert.Contains(t, out.Paths["/users"]["get"].Security[0], BearerAuth)
	assert.Empty(t, out.Paths["/users/{id}"]["get"].Security)
	assert.Equal(t, "http", out.Components.SecuritySchemes[BearerAuth].Type)
	assert.Equal(t, "bearer", out.Components.SecuritySchemes[BearerAuth].Scheme)
}
