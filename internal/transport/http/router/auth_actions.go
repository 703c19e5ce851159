package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookswap/internal/apperr"
	"bookswap/internal/transport/http/ez"
)

func init() { Register(authModule{}) }

type authModule struct{}

func (authModule) Priority() int { return 10 }

func (authModule) MountAPI(public, _ *gin.RouterGroup, d *Deps) {
	e := ez.New(public)

	type registerIn struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,max=80"`
		Password string `json:"password" binding:"required,min=8"`
	}
	type authOut struct {
		Token string `json:"token"`
		User  gin.H  `json:"user"`
	}

	ez.Register(e, ez.Action[registerIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (authOut, error) {
			u, err := d.Users.Register(in.Email, in.Username, in.Password)
			if err != nil {
				return authOut{}, err
			}
			tok, err := d.JWT.Issue(u.ID, u.Role)
			if err != nil {
				return authOut{}, apperr.Internal("issue token", err)
			}
			return authOut{
				Token: tok,
				User:  gin.H{"id": u.ID, "email": u.Email, "username": u.Username, "role": u.Role},
			}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	ez.Register(e, ez.Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			u, err := d.Users.Authenticate(in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			tok, err := d.JWT.Issue(u.ID, u.Role)
			if err != nil {
				return authOut{}, apperr.Internal("issue token", err)
			}
			return authOut{
				Token: tok,
				User:  gin.H{"id": u.ID, "email": u.Email, "username": u.Username, "role": u.Role},
			}, nil
		},
	})
}
