package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookswap/internal/service"
	"bookswap/internal/transport/http/ez"
	mdw "bookswap/internal/transport/http/middleware"
)

func init() { Register(swapModule{}) }

type swapModule struct{}

func (swapModule) MountAPI(_, authed *gin.RouterGroup, d *Deps) {
	e := ez.New(authed)

	type createIn struct {
		ListingID string `json:"listingId" binding:"required"`
		Message   string `json:"message"`
	}

	ez.Register(e, ez.Action[createIn, *service.SwapView]{
		Method: http.MethodPost,
		Path:   "/swaps",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *createIn) (*service.SwapView, error) {
			return d.Swaps.Create(c.GetString(mdw.KeyUserID), in.ListingID, in.Message)
		},
	})

	respond := func(accept bool) func(c *gin.Context, _ *struct{}) (*service.SwapView, error) {
		return func(c *gin.Context, _ *struct{}) (*service.SwapView, error) {
			return d.Swaps.Respond(c.GetString(mdw.KeyUserID), c.Param("id"), accept)
		}
	}

	ez.Register(e, ez.Action[struct{}, *service.SwapView]{
		Method: http.MethodPost, Path: "/swaps/:id/accept", Binder: ez.BindNone,
		Handler: respond(true),
	})
	ez.Register(e, ez.Action[struct{}, *service.SwapView]{
		Method: http.MethodPost, Path: "/swaps/:id/decline", Binder: ez.BindNone,
		Handler: respond(false),
	})
	ez.Register(e, ez.Action[struct{}, *service.SwapView]{
		Method: http.MethodPost, Path: "/swaps/:id/complete", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.SwapView, error) {
			return d.Swaps.Complete(c.GetString(mdw.KeyUserID), c.Param("id"))
		},
	})
	ez.Register(e, ez.Action[struct{}, *service.SwapView]{
		Method: http.MethodPost, Path: "/swaps/:id/cancel", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.SwapView, error) {
			return d.Swaps.Cancel(c.GetString(mdw.KeyUserID), c.Param("id"))
		},
	})

	ez.Register(e, ez.Action[struct{}, []service.SwapView]{
		Method: http.MethodGet, Path: "/swaps/inbox", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.SwapView, error) {
			return d.Swaps.Inbox(c.GetString(mdw.KeyUserID))
		},
	})
	ez.Register(e, ez.Action[struct{}, []service.SwapView]{
		Method: http.MethodGet, Path: "/swaps/outbox", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.SwapView, error) {
			return d.Swaps.Outbox(c.GetString(mdw.KeyUserID))
		},
	})
}
