// Package ez registers typed endpoint actions on gin router groups with one
// uniform envelope and a single error-to-code mapping.
package ez

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "bookswap/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Binder selects how the input struct is populated.
type Binder string

const (
	BindJSON  Binder = "json"  // from the request body
	BindQuery Binder = "query" // from ?a=b
	BindNone  Binder = "none"  // nothing bound; read c.Param yourself
)

// Action is one endpoint: I is the input struct, O the success payload.
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // e.g. "/swaps/:id/accept"
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

// Register mounts an action. Handler errors are rendered through the apperr
// kind mapping; anything untagged becomes a generic server error.
func Register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			c.JSON(http.StatusOK, resp.FromErr(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// PostFile mounts a multipart upload endpoint taking one file field.
func PostFile(e EZ, path, field string, h func(c *gin.Context, fh *multipart.FileHeader) (any, error)) {
	e.g.POST(path, func(c *gin.Context) {
		fh, err := c.FormFile(field)
		if err != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "missing file field '"+field+"'"))
			return
		}
		data, err := h(c, fh)
		if err != nil {
			c.JSON(http.StatusOK, resp.FromErr(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(data))
	})
}
