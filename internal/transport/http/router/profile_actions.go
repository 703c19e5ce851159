package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookswap/internal/service"
	"bookswap/internal/transport/http/ez"
	mdw "bookswap/internal/transport/http/middleware"
)

func init() { Register(profileModule{}) }

type profileModule struct{}

func (profileModule) MountAPI(_, authed *gin.RouterGroup, d *Deps) {
	e := ez.New(authed)

	ez.Register(e, ez.Action[struct{}, *service.Profile]{
		Method: http.MethodGet,
		Path:   "/me/profile",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.Profile, error) {
			return d.Users.GetProfile(c.GetString(mdw.KeyUserID))
		},
	})

	ez.Register(e, ez.Action[service.Profile, *service.Profile]{
		Method: http.MethodPut,
		Path:   "/me/profile",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.Profile) (*service.Profile, error) {
			return d.Users.UpdateProfile(c.GetString(mdw.KeyUserID), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, []service.ListingCard]{
		Method: http.MethodGet,
		Path:   "/me/listings",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.ListingCard, error) {
			return d.Listings.MyLibrary(c.GetString(mdw.KeyUserID))
		},
	})
}
