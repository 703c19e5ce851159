package router

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookswap/internal/apperr"
	"bookswap/internal/service"
	"bookswap/internal/transport/http/ez"
	mdw "bookswap/internal/transport/http/middleware"
)

func init() { Register(listingModule{}) }

type listingModule struct{}

func (listingModule) MountAPI(public, authed *gin.RouterGroup, d *Deps) {
	pub := ez.New(public)
	own := ez.New(authed)

	ez.Register(pub, ez.Action[struct{}, []service.ListingCard]{
		Method: http.MethodGet,
		Path:   "/listings",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.ListingCard, error) {
			return d.Listings.Browse()
		},
	})

	ez.Register(pub, ez.Action[struct{}, *service.ListingDetail]{
		Method: http.MethodGet,
		Path:   "/listings/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.ListingDetail, error) {
			return d.Listings.Detail(c.Param("id"))
		},
	})

	ez.Register(own, ez.Action[service.ListingForm, *service.ListingDetail]{
		Method: http.MethodPost,
		Path:   "/listings",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.ListingForm) (*service.ListingDetail, error) {
			return d.Listings.Create(c.GetString(mdw.KeyUserID), *in)
		},
	})

	ez.Register(own, ez.Action[service.ListingForm, *service.ListingDetail]{
		Method: http.MethodPut,
		Path:   "/listings/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.ListingForm) (*service.ListingDetail, error) {
			return d.Listings.Update(c.GetString(mdw.KeyUserID), c.Param("id"), *in)
		},
	})

	ez.Register(own, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/listings/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := d.Listings.Delete(c.GetString(mdw.KeyUserID), c.Param("id")); err != nil {
				return nil, err
			}
			return gin.H{"deleted": true}, nil
		},
	})

	ez.PostFile(own, "/listings/:id/images", "file", func(c *gin.Context, fh *multipart.FileHeader) (any, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.Validation("unreadable upload")
		}
		defer f.Close()

		up := service.Upload{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		}
		return d.Storage.AddImage(c.GetString(mdw.KeyUserID), c.Param("id"), up)
	})

	ez.Register(own, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/listings/:id/images/:no",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			no, err := strconv.Atoi(c.Param("no"))
			if err != nil {
				return nil, apperr.Validation("image number must be an integer")
			}
			if err := d.Storage.DeleteImage(c.GetString(mdw.KeyUserID), c.Param("id"), no); err != nil {
				return nil, err
			}
			return gin.H{"deleted": true}, nil
		},
	})
}
