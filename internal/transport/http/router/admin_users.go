package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookswap/internal/transport/http/ez"
)

func init() { Register(adminUsersModule{}) }

type adminUsersModule struct{}

func (adminUsersModule) MountAdmin(admin *gin.RouterGroup, d *Deps) {
	e := ez.New(admin)

	type listIn struct {
		Q          string `form:"q"`
		Offset     int    `form:"offset"`
		Limit      int    `form:"limit"`
		WithBanned bool   `form:"with_banned"`
	}

	ez.Register(e, ez.Action[listIn, gin.H]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listIn) (gin.H, error) {
			users, total, err := d.Users.List(in.Q, in.Offset, in.Limit, in.WithBanned)
			if err != nil {
				return nil, err
			}
			items := make([]gin.H, 0, len(users))
			for _, u := range users {
				items = append(items, gin.H{
					"id":        u.ID,
					"email":     u.Email,
					"username":  u.Username,
					"role":      u.Role,
					"banned":    u.DeletedAt.Valid,
					"createdAt": u.CreatedAt,
				})
			}
			return gin.H{"total": total, "items": items}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := d.Users.Ban(c.Param("id")); err != nil {
				return nil, err
			}
			return gin.H{"banned": true}, nil
		},
	})
}
