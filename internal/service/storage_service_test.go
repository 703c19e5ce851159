package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookswap/internal/apperr"
	"bookswap/internal/domain"
)

type storageFixture struct {
	svc    *StorageService
	images *fakeImageRepo
	store  *memStore
}

func newStorageFixture(t *testing.T, maxImages int) *storageFixture {
	t.Helper()
	listings := &fakeListingRepo{}
	require.NoError(t, listings.Create(&domain.BookListing{
		ID: "lst1", OwnerID: "owner1", BookID: "book1", Available: true,
	}))
	images := &fakeImageRepo{}
	store := newMemStore()
	return &storageFixture{
		svc:    NewStorageService(images, listings, store, zap.NewNop(), maxImages, 5),
		images: images,
		store:  store,
	}
}

func jpegUpload(name, body string) Upload {
	return Upload{
		Filename:    name,
		Size:        int64(len(body)),
		ContentType: "image/jpeg",
		Reader:      strings.NewReader(body),
	}
}

func TestAddImage(t *testing.T) {
	fx := newStorageFixture(t, 5)

	v, err := fx.svc.AddImage("owner1", "lst1", jpegUpload("cover.jpg", "fakejpeg"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.ImageNo)
	assert.Contains(t, v.Path, "/uploads/listings/lst1/")
	assert.Len(t, fx.store.files, 1)

	imgs, err := fx.svc.ListImages("lst1")
	require.NoError(t, err)
	require.Len(t, imgs, 1)
	assert.Equal(t, v.Path, imgs[0].Path)
}

func TestAddImageOwnership(t *testing.T) {
	fx := newStorageFixture(t, 5)

	_, err := fx.svc.AddImage("intruder", "lst1", jpegUpload("a.jpg", "x"))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	_, err = fx.svc.AddImage("owner1", "ghost", jpegUpload("a.jpg", "x"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, fx.store.files)
}

func TestAddImageValidation(t *testing.T) {
	fx := newStorageFixture(t, 5)

	_, err := fx.svc.AddImage("owner1", "lst1", Upload{Filename: "a.jpg"})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "empty file")

	up := jpegUpload("a.jpg", "x")
	up.Size = 6 << 20
	_, err = fx.svc.AddImage("owner1", "lst1", up)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "over the size cap")

	up = jpegUpload("a.gif", "x")
	up.ContentType = "image/gif"
	_, err = fx.svc.AddImage("owner1", "lst1", up)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "wrong content type")

	up = jpegUpload("a.webp", "x")
	_, err = fx.svc.AddImage("owner1", "lst1", up)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "wrong extension")

	assert.Empty(t, fx.store.files, "rejected uploads leave no files")
}

func TestAddImageFillsLowestFreeSlot(t *testing.T) {
	fx := newStorageFixture(t, 5)
	require.NoError(t, fx.images.Create(&domain.BookImage{ListingID: "lst1", ImageNo: 1, Path: "/uploads/listings/lst1/1-a.jpg"}))
	require.NoError(t, fx.images.Create(&domain.BookImage{ListingID: "lst1", ImageNo: 3, Path: "/uploads/listings/lst1/3-c.jpg"}))

	v, err := fx.svc.AddImage("owner1", "lst1", jpegUpload("b.png", "fakepng"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.ImageNo, "gap left by a deletion is reused first")
}

func TestAddImageCapacity(t *testing.T) {
	fx := newStorageFixture(t, 2)
	for i := 1; i <= 2; i++ {
		_, err := fx.svc.AddImage("owner1", "lst1", jpegUpload("a.jpg", "x"))
		require.NoError(t, err)
	}

	_, err := fx.svc.AddImage("owner1", "lst1", jpegUpload("a.jpg", "x"))
	assert.True(t, apperr.Is(err, apperr.KindCapacity))
	assert.Len(t, fx.store.files, 2)
}

func TestNextFreeSlot(t *testing.T) {
	imgs := func(nos ...int) []domain.BookImage {
		out := make([]domain.BookImage, 0, len(nos))
		for _, n := range nos {
			out = append(out, domain.BookImage{ImageNo: n})
		}
		return out
	}
	assert.Equal(t, 1, nextFreeSlot(nil, 5))
	assert.Equal(t, 2, nextFreeSlot(imgs(1, 3), 5))
	assert.Equal(t, 4, nextFreeSlot(imgs(1, 2, 3), 5))
	assert.Equal(t, 0, nextFreeSlot(imgs(1, 2, 3, 4, 5), 5))
}

func TestDeleteImage(t *testing.T) {
	fx := newStorageFixture(t, 5)
	v, err := fx.svc.AddImage("owner1", "lst1", jpegUpload("a.jpg", "x"))
	require.NoError(t, err)

	// Losing the file out of band must not block the delete.
	delete(fx.store.files, v.Path)

	require.NoError(t, fx.svc.DeleteImage("owner1", "lst1", v.ImageNo))
	n, _ := fx.images.CountByListing("lst1")
	assert.EqualValues(t, 0, n)

	err = fx.svc.DeleteImage("owner1", "lst1", v.ImageNo)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "row already gone")
}

func TestAddImageRollsBackFileOnRowError(t *testing.T) {
	fx := newStorageFixture(t, 5)
	fx.images.createErr = errDup

	_, err := fx.svc.AddImage("owner1", "lst1", jpegUpload("a.jpg", "x"))
	require.Error(t, err)
	assert.Empty(t, fx.store.files, "orphan file is removed when the row insert fails")
}
