package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookswap/internal/service"
	"bookswap/internal/transport/http/ez"
	mdw "bookswap/internal/transport/http/middleware"
)

func init() { Register(ratingModule{}) }

type ratingModule struct{}

func (ratingModule) MountAPI(public, authed *gin.RouterGroup, d *Deps) {
	pub := ez.New(public)
	own := ez.New(authed)

	type rateIn struct {
		Difficulty int `json:"difficulty" binding:"required"`
		Emotion    int `json:"emotion" binding:"required"`
		Enjoyment  int `json:"enjoyment" binding:"required"`
	}

	ez.Register(own, ez.Action[rateIn, *service.RatingAverages]{
		Method: http.MethodPost,
		Path:   "/books/:id/ratings",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *rateIn) (*service.RatingAverages, error) {
			return d.Ratings.Rate(c.Request.Context(),
				c.GetString(mdw.KeyUserID), c.Param("id"),
				in.Difficulty, in.Emotion, in.Enjoyment)
		},
	})

	ez.Register(pub, ez.Action[struct{}, *service.RatingAverages]{
		Method: http.MethodGet,
		Path:   "/books/:id/ratings",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.RatingAverages, error) {
			return d.Ratings.Averages(c.Request.Context(), c.Param("id"))
		},
	})
}
