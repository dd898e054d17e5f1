package modules

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"

	handlers "github.com/mikeodnis/core-service/internal/interface/http"
	"github.com/mikeodnis/core-service/internal/interface/middleware"
	"github.com/mikeodnis/core-service/pkg/apidoc"
	"github.com/mikeodnis/core-service/pkg/helpers"
)

// UserModule wires user HTTP handlers behind bearer auth.
// Protected: GET/POST /users, GET/PATCH/DELETE /users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.JWTAuth(m.JWT))
	{
		auth.GET("", m.Handler.List)
		auth.POST("", m.Handler.Create)
		auth.GET("/:id", m.Handler.Get)
		auth.PATCH("/:id", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}

func (m *UserModule) Describe(doc *apidoc.Builder) {
	errBody := apidoc.ErrorSchema()
	idParam := apidoc.UUIDPathParam("id", "User ID")
	withErrors := func(op *openapi3.Operation, statuses ...int) *openapi3.Operation {
		op.AddResponse(http.StatusUnauthorized, apidoc.JSONResponse("Missing or invalid bearer token", errBody))
		op.AddResponse(http.StatusInternalServerError, apidoc.JSONResponse("Internal server error", errBody))
		for _, s := range statuses {
			op.AddResponse(s, apidoc.JSONResponse(http.StatusText(s), errBody))
		}
		return apidoc.Secured(op)
	}

	list := apidoc.Operation("users", "List users", "Returns every user, newest first.")
	list.AddResponse(http.StatusOK, apidoc.JSONResponse("Users", usersSchema()))
	doc.Add(http.MethodGet, "/users", withErrors(list))

	create := apidoc.Operation("users", "Create user", "")
	create.RequestBody = apidoc.JSONBody(createUserSchema())
	create.AddResponse(http.StatusCreated, apidoc.JSONResponse("Created user", userSchema()))
	doc.Add(http.MethodPost, "/users", withErrors(create, http.StatusBadRequest, http.StatusConflict))

	get := apidoc.Operation("users", "Get user by ID", "")
	get.AddParameter(idParam)
	get.AddResponse(http.StatusOK, apidoc.JSONResponse("User", userSchema()))
	doc.Add(http.MethodGet, "/users/{id}", withErrors(get, http.StatusBadRequest, http.StatusNotFound))

	update := apidoc.Operation("users", "Update user", "Only name is mutable. Omitted fields keep their values.")
	update.AddParameter(idParam)
	update.RequestBody = apidoc.JSONBody(updateUserSchema())
	update.AddResponse(http.StatusOK, apidoc.JSONResponse("Updated user", userSchema()))
	doc.Add(http.MethodPatch, "/users/{id}", withErrors(update, http.StatusBadRequest, http.StatusNotFound))

	del := apidoc.Operation("users", "Delete user", "Succeeds whether or not the user existed.")
	del.AddParameter(idParam)
	del.AddResponse(http.StatusNoContent, apidoc.EmptyResponse("User deleted"))
	doc.Add(http.MethodDelete, "/users/{id}", withErrors(del, http.StatusBadRequest))
}
