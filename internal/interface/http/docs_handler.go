package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikeodnis/core-service/pkg/apidoc"
)

type DocsHandler struct {
	Doc *apidoc.Builder
}

func NewDocsHandler(doc *apidoc.Builder) *DocsHandler {
	return &DocsHandler{Doc: doc}
}

// OpenAPI serves the generated OpenAPI document.
func (h *DocsHandler) OpenAPI(c *gin.Context) {
	b, err := h.Doc.MarshalJSON()
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}
